package dto

import "hr-system/internal/entities"

// ImportRowDTO is one spreadsheet row as shown in the preview and in the
// commit report.
type ImportRowDTO struct {
	Row        int      `json:"row"`
	EmployeeNo string   `json:"employee_no"`
	NameEN     string   `json:"name_en"`
	NameAR     string   `json:"name_ar"`
	Status     string   `json:"status"`
	Messages   []string `json:"messages,omitempty"`
	EmployeeID *string  `json:"employee_id,omitempty"`

	CompanyInput    string `json:"company_input,omitempty"`
	DepartmentInput string `json:"department_input,omitempty"`
	JobInput        string `json:"job_input,omitempty"`
}

// ImportReportDTO summarizes a preview or a commit run.
type ImportReportDTO struct {
	Total    int            `json:"total"`
	Imported int            `json:"imported"`
	Pending  int            `json:"pending"`
	Failed   int            `json:"failed"`
	Rows     []ImportRowDTO `json:"rows"`
}

func ToImportRowDTO(row entities.ImportRow) ImportRowDTO {
	d := ImportRowDTO{
		Row:             row.Number,
		EmployeeNo:      row.Record.EmployeeNo,
		NameEN:          row.Record.NameEN,
		NameAR:          row.Record.NameAR,
		Status:          string(row.Status),
		Messages:        row.Messages,
		CompanyInput:    row.CompanyInput,
		DepartmentInput: row.DepartmentInput,
		JobInput:        row.JobInput,
	}
	if row.EmployeeID != nil {
		s := row.EmployeeID.String()
		d.EmployeeID = &s
	}
	return d
}

func ToImportReportDTO(rows []entities.ImportRow) ImportReportDTO {
	report := ImportReportDTO{Total: len(rows), Rows: make([]ImportRowDTO, 0, len(rows))}
	for _, row := range rows {
		switch row.Status {
		case entities.ImportSuccess, entities.ImportWarning:
			report.Imported++
		case entities.ImportPending:
			report.Pending++
		case entities.ImportError:
			report.Failed++
		}
		report.Rows = append(report.Rows, ToImportRowDTO(row))
	}
	return report
}
