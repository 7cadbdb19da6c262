package dto

import (
	"time"

	"hr-system/internal/entities"
	"hr-system/internal/expiry"
	"hr-system/pkg/utils"
)

type CreateEmployeeDTO struct {
	EmployeeNo   string `json:"employee_no" validate:"required,min=1,max=64"`
	NameEN       string `json:"name_en" validate:"required,min=1,max=255"`
	NameAR       string `json:"name_ar" validate:"required,min=1,max=255"`
	Nationality  string `json:"nationality" validate:"omitempty,max=128"`
	CompanyID    string `json:"company_id" validate:"omitempty,uuid4"`
	DepartmentID string `json:"department_id" validate:"omitempty,uuid4"`
	JobID        string `json:"job_id" validate:"omitempty,uuid4"`

	PassportNo       string `json:"passport_no" validate:"omitempty,max=64"`
	PassportExpiry   string `json:"passport_expiry" validate:"omitempty,dateonly"`
	CardNo           string `json:"card_no" validate:"omitempty,max=64"`
	CardExpiry       string `json:"card_expiry" validate:"omitempty,dateonly"`
	EmiratesID       string `json:"emirates_id" validate:"omitempty,max=64"`
	EmiratesIDExpiry string `json:"emirates_id_expiry" validate:"omitempty,dateonly"`
	ResidenceNo      string `json:"residence_no" validate:"omitempty,max=64"`
	ResidenceExpiry  string `json:"residence_expiry" validate:"omitempty,dateonly"`

	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateEmployeeDTO is a partial patch: nil means "leave unchanged", an
// empty string means "clear the field" for nullable columns.
type UpdateEmployeeDTO struct {
	EmployeeNo   *string `json:"employee_no" validate:"omitempty,min=1,max=64"`
	NameEN       *string `json:"name_en" validate:"omitempty,min=1,max=255"`
	NameAR       *string `json:"name_ar" validate:"omitempty,min=1,max=255"`
	Nationality  *string `json:"nationality" validate:"omitempty,max=128"`
	CompanyID    *string `json:"company_id" validate:"omitempty"`
	DepartmentID *string `json:"department_id" validate:"omitempty"`
	JobID        *string `json:"job_id" validate:"omitempty"`

	PassportNo       *string `json:"passport_no" validate:"omitempty,max=64"`
	PassportExpiry   *string `json:"passport_expiry" validate:"omitempty"`
	CardNo           *string `json:"card_no" validate:"omitempty,max=64"`
	CardExpiry       *string `json:"card_expiry" validate:"omitempty"`
	EmiratesID       *string `json:"emirates_id" validate:"omitempty,max=64"`
	EmiratesIDExpiry *string `json:"emirates_id_expiry" validate:"omitempty"`
	ResidenceNo      *string `json:"residence_no" validate:"omitempty,max=64"`
	ResidenceExpiry  *string `json:"residence_expiry" validate:"omitempty"`

	Email *string `json:"email" validate:"omitempty"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

type DocumentDTO struct {
	Number *string `json:"number"`
	Expiry *string `json:"expiry"`
	Status string  `json:"status"`
}

type EmployeeDTO struct {
	ID           string  `json:"id"`
	EmployeeNo   string  `json:"employee_no"`
	NameEN       string  `json:"name_en"`
	NameAR       string  `json:"name_ar"`
	Nationality  *string `json:"nationality"`
	CompanyID    *string `json:"company_id"`
	DepartmentID *string `json:"department_id"`
	JobID        *string `json:"job_id"`

	CompanyNameEN    *string `json:"company_name_en"`
	CompanyNameAR    *string `json:"company_name_ar"`
	DepartmentNameEN *string `json:"department_name_en"`
	DepartmentNameAR *string `json:"department_name_ar"`
	JobNameEN        *string `json:"job_name_en"`
	JobNameAR        *string `json:"job_name_ar"`

	Passport   DocumentDTO `json:"passport"`
	Card       DocumentDTO `json:"card"`
	EmiratesID DocumentDTO `json:"emirates_id"`
	Residence  DocumentDTO `json:"residence"`

	Email *string `json:"email"`
	Phone *string `json:"phone"`

	AddedAt   string `json:"added_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToEmployeeDTO classifies each document against ref and flattens the
// entity for the API.
func ToEmployeeDTO(e *entities.Employee, ref time.Time) EmployeeDTO {
	docDTO := func(number *string, date *time.Time) DocumentDTO {
		return DocumentDTO{
			Number: number,
			Expiry: formatDatePtr(date),
			Status: string(expiry.Classify(date, ref)),
		}
	}
	var companyID, departmentID, jobID *string
	if e.CompanyID != nil {
		companyID = utils.ToPtr(e.CompanyID.String())
	}
	if e.DepartmentID != nil {
		departmentID = utils.ToPtr(e.DepartmentID.String())
	}
	if e.JobID != nil {
		jobID = utils.ToPtr(e.JobID.String())
	}

	return EmployeeDTO{
		ID:           e.ID.String(),
		EmployeeNo:   e.EmployeeNo,
		NameEN:       e.NameEN,
		NameAR:       e.NameAR,
		Nationality:  e.Nationality,
		CompanyID:    companyID,
		DepartmentID: departmentID,
		JobID:        jobID,

		CompanyNameEN:    e.CompanyNameEN,
		CompanyNameAR:    e.CompanyNameAR,
		DepartmentNameEN: e.DepartmentNameEN,
		DepartmentNameAR: e.DepartmentNameAR,
		JobNameEN:        e.JobNameEN,
		JobNameAR:        e.JobNameAR,

		Passport:   docDTO(e.PassportNo, e.PassportExpiry),
		Card:       docDTO(e.CardNo, e.CardExpiry),
		EmiratesID: docDTO(e.EmiratesID, e.EmiratesIDExpiry),
		Residence:  docDTO(e.ResidenceNo, e.ResidenceExpiry),

		Email: e.Email,
		Phone: e.Phone,

		AddedAt:   e.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
