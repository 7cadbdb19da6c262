package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/internal/expiry"
	"hr-system/internal/match"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/utils"
	"hr-system/pkg/xlsx"
)

// Canonical column keys of the import sheet. Both the machine-readable
// template spelling and the human spelling used by the export are accepted.
const (
	colEmployeeNo       = "employee_no"
	colNameEN           = "name_en"
	colNameAR           = "name_ar"
	colNationality      = "nationality"
	colCompany          = "company_name"
	colDepartment       = "department_name"
	colJob              = "job_name"
	colPassportNo       = "passport_no"
	colPassportExpiry   = "passport_expiry"
	colCardNo           = "card_no"
	colCardExpiry       = "card_expiry"
	colEmiratesID       = "emirates_id"
	colEmiratesIDExpiry = "emirates_id_expiry"
	colResidenceNo      = "residence_no"
	colResidenceExpiry  = "residence_expiry"
	colPhone            = "phone"
	colEmail            = "email"
)

var importColumns = []struct {
	Key   string
	Label string
}{
	{colEmployeeNo, "Employee No"},
	{colNameEN, "Name (EN)"},
	{colNameAR, "Name (AR)"},
	{colNationality, "Nationality"},
	{colCompany, "Company"},
	{colDepartment, "Department"},
	{colJob, "Job"},
	{colPassportNo, "Passport No"},
	{colPassportExpiry, "Passport Expiry"},
	{colCardNo, "Card No"},
	{colCardExpiry, "Card Expiry"},
	{colEmiratesID, "Emirates ID"},
	{colEmiratesIDExpiry, "Emirates ID Expiry"},
	{colResidenceNo, "Residence No"},
	{colResidenceExpiry, "Residence Expiry"},
	{colPhone, "Phone"},
	{colEmail, "Email"},
}

// headerAliases maps every accepted header spelling, lowercased, to its
// canonical key.
var headerAliases = func() map[string]string {
	aliases := make(map[string]string, len(importColumns)*2)
	for _, col := range importColumns {
		aliases[col.Key] = col.Key
		aliases[strings.ToLower(col.Label)] = col.Key
	}
	return aliases
}()

// suggestionLimit caps "did you mean" lists for jobs and nationalities.
const suggestionLimit = 5

// EmployeeImporter runs the two-phase bulk import: a pure parse/resolve
// phase that never writes, and a best-effort commit phase that inserts row
// by row. Preview and commit re-run the same parse, so what the operator saw
// is what gets imported.
type EmployeeImporter struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	referenceSvc *ReferenceService
	bus          *eventbus.Bus
	logger       *zap.Logger
	now          func() time.Time
}

func NewEmployeeImporter(
	employeeRepo repositories.EmployeeRepositoryInterface,
	referenceSvc *ReferenceService,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *EmployeeImporter {
	return &EmployeeImporter{
		employeeRepo: employeeRepo,
		referenceSvc: referenceSvc,
		bus:          bus,
		logger:       logger,
		now:          time.Now,
	}
}

// dictionaries is the resolver context loaded once per import run.
type dictionaries struct {
	companies     []match.Candidate
	departments   []match.Candidate
	jobs          []match.Candidate
	nationalities []match.Candidate

	nameResolver        *match.Resolver
	jobResolver         *match.Resolver
	nationalityResolver *match.Resolver
}

func (s *EmployeeImporter) loadDictionaries(ctx context.Context) (*dictionaries, error) {
	d := &dictionaries{
		nameResolver:        match.NewNameResolver(),
		jobResolver:         match.NewJobResolver(),
		nationalityResolver: match.NewNationalityResolver(),
	}
	var err error
	if d.companies, err = s.referenceSvc.Candidates(ctx, entities.RefCompany); err != nil {
		return nil, err
	}
	if d.departments, err = s.referenceSvc.Candidates(ctx, entities.RefDepartment); err != nil {
		return nil, err
	}
	if d.jobs, err = s.referenceSvc.Candidates(ctx, entities.RefJob); err != nil {
		return nil, err
	}
	if d.nationalities, err = s.referenceSvc.Candidates(ctx, entities.RefNationality); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads the workbook and resolves every row without writing anything.
// Errors accumulate per row; one bad row never aborts the run.
func (s *EmployeeImporter) Parse(ctx context.Context, reader io.Reader) ([]entities.ImportRow, error) {
	rawRows, err := xlsx.ParseWorkbook(reader)
	if err != nil {
		return nil, apperrors.BadRequest("could not read the uploaded file as xlsx", err)
	}

	dicts, err := s.loadDictionaries(ctx)
	if err != nil {
		return nil, err
	}

	seenNumbers := make(map[string]int)
	rows := make([]entities.ImportRow, 0, len(rawRows))
	for _, raw := range rawRows {
		row := s.parseRow(ctx, raw, dicts)

		// In-file duplicates: every repeat of an employee number after the
		// first becomes an error.
		if no := row.Record.EmployeeNo; no != "" {
			if first, dup := seenNumbers[no]; dup {
				row.AddError(fmt.Sprintf("Duplicate employee number %q, first used in row %d", no, first))
			} else {
				seenNumbers[no] = row.Number
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func canonicalFields(raw xlsx.Row) map[string]string {
	fields := make(map[string]string, len(raw.Fields))
	for header, value := range raw.Fields {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(header))]; ok {
			fields[key] = strings.TrimSpace(value)
		}
	}
	return fields
}

func (s *EmployeeImporter) parseRow(ctx context.Context, raw xlsx.Row, dicts *dictionaries) entities.ImportRow {
	fields := canonicalFields(raw)
	row := entities.ImportRow{
		Number: raw.Number,
		Raw:    fields,
		Status: entities.ImportPending,
	}

	row.Record.EmployeeNo = fields[colEmployeeNo]
	row.Record.NameEN = fields[colNameEN]
	row.Record.NameAR = fields[colNameAR]

	for _, required := range []struct{ key, label string }{
		{colEmployeeNo, "Employee number"},
		{colNameEN, "English name"},
		{colNameAR, "Arabic name"},
		{colNationality, "Nationality"},
	} {
		if fields[required.key] == "" {
			row.AddError(required.label + " is required")
		}
	}

	if no := row.Record.EmployeeNo; no != "" {
		exists, err := s.employeeRepo.ExistsByNumber(ctx, no)
		if err != nil {
			row.AddError("Could not check for duplicates: " + err.Error())
		} else if exists {
			row.AddError(fmt.Sprintf("Employee number %q already exists", no))
		}
	}

	// Nationality resolves by exact name only: a typo here is the
	// operator's to fix, never a guess.
	if term := fields[colNationality]; term != "" {
		if c := dicts.nationalityResolver.Resolve(term, dicts.nationalities); c != nil {
			name := c.NameEN
			row.Record.Nationality = &name
		} else {
			row.AddError(notFoundMessage("Nationality", term, dicts.nationalities, true))
		}
	}

	row.CompanyInput = fields[colCompany]
	if term := row.CompanyInput; term != "" {
		if c := dicts.nameResolver.Resolve(term, dicts.companies); c != nil {
			id := c.ID
			row.Record.CompanyID = &id
		} else {
			row.AddError(notFoundMessage("Company", term, dicts.companies, false))
		}
	}

	row.DepartmentInput = fields[colDepartment]
	if term := row.DepartmentInput; term != "" {
		if c := dicts.nameResolver.Resolve(term, dicts.departments); c != nil {
			id := c.ID
			row.Record.DepartmentID = &id
		} else {
			row.AddError(notFoundMessage("Department", term, dicts.departments, false))
		}
	}

	row.JobInput = fields[colJob]
	if term := row.JobInput; term != "" {
		if c := dicts.jobResolver.Resolve(term, dicts.jobs); c != nil {
			id := c.ID
			row.Record.JobID = &id
		} else {
			row.AddError(notFoundMessage("Job", term, dicts.jobs, true))
		}
	}

	strPtr := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	row.Record.PassportNo = strPtr(fields[colPassportNo])
	row.Record.CardNo = strPtr(fields[colCardNo])
	row.Record.EmiratesID = strPtr(fields[colEmiratesID])
	row.Record.ResidenceNo = strPtr(fields[colResidenceNo])
	row.Record.Phone = strPtr(fields[colPhone])
	row.Record.Email = strPtr(fields[colEmail])

	// Dates parse or silently stay empty; a malformed date is not an error,
	// the document just carries no expiry.
	row.Record.PassportExpiry = expiry.ParseDate(fields[colPassportExpiry])
	row.Record.CardExpiry = expiry.ParseDate(fields[colCardExpiry])
	row.Record.EmiratesIDExpiry = expiry.ParseDate(fields[colEmiratesIDExpiry])
	row.Record.ResidenceExpiry = expiry.ParseDate(fields[colResidenceExpiry])

	return row
}

// notFoundMessage builds the operator-facing resolution error. Small
// dictionaries (companies, departments) list everything available; large
// ones (jobs, nationalities) get a bounded "did you mean" list.
func notFoundMessage(kind, term string, candidates []match.Candidate, didYouMean bool) string {
	if didYouMean {
		if suggestions := match.Suggest(term, candidates, suggestionLimit); len(suggestions) > 0 {
			return fmt.Sprintf("%s %q not found. Did you mean: %s?", kind, term, strings.Join(suggestions, ", "))
		}
		return fmt.Sprintf("%s %q not found", kind, term)
	}
	names := match.Names(candidates)
	if len(names) == 0 {
		return fmt.Sprintf("%s %q not found (the %s list is empty)", kind, term, strings.ToLower(kind))
	}
	return fmt.Sprintf("%s %q not found. Available: %s", kind, term, strings.Join(names, ", "))
}

// Preview parses the workbook and reports what a commit would do.
func (s *EmployeeImporter) Preview(ctx context.Context, reader io.Reader) (*dto.ImportReportDTO, error) {
	rows, err := s.Parse(ctx, reader)
	if err != nil {
		return nil, err
	}
	report := dto.ToImportReportDTO(rows)
	return &report, nil
}

// Commit re-parses the workbook and inserts every pending row. Inserts are
// best effort: each row commits independently, a failure marks just that
// row, and there is no enclosing transaction to roll back the others.
func (s *EmployeeImporter) Commit(ctx context.Context, reader io.Reader, actor events.Actor) (*dto.ImportReportDTO, error) {
	rows, err := s.Parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		row := &rows[i]
		if row.Failed() {
			continue
		}

		created, err := s.employeeRepo.CreateEmployee(ctx, row.Record)
		if err != nil {
			row.AddError("Insert failed: " + err.Error())
			s.logger.Warn("import row failed",
				zap.Int("row", row.Number),
				zap.String("employee_no", row.Record.EmployeeNo),
				zap.Error(err))
			continue
		}

		row.Status = entities.ImportSuccess
		id := created.ID
		row.EmployeeID = &id
		s.bus.Publish(ctx, events.EmployeeCreatedEvent{Employee: *created, Actor: actor})
	}

	report := dto.ToImportReportDTO(rows)
	s.logger.Info("bulk import finished",
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed))
	return &report, nil
}

// Template renders an empty import workbook with one illustrative row.
func (s *EmployeeImporter) Template() ([]byte, error) {
	headers := make([]string, 0, len(importColumns))
	for _, col := range importColumns {
		headers = append(headers, col.Key)
	}
	sample := []interface{}{
		"EMP001", "Ahmed Ali", "أحمد علي", "Egyptian",
		"Alpha Contracting", "Operations", "Engineer",
		"A1234567", "2027-01-31", "C-998", "2026-09-30",
		"784-1990-1234567-1", "2026-12-15", "R-5521", "2027-03-01",
		"+971501234567", "ahmed@example.com",
	}
	return xlsx.BuildWorkbook(xlsx.Sheet{
		Name:    "Employees",
		Headers: headers,
		Rows:    [][]interface{}{sample},
	})
}

// Export renders the current roster, filtered exactly like the list
// endpoint, using the human header spellings. An exported file can be
// re-imported: the importer accepts both spellings.
func (s *EmployeeImporter) Export(ctx context.Context, employees []entities.Employee) ([]byte, error) {
	headers := make([]string, 0, len(importColumns))
	for _, col := range importColumns {
		headers = append(headers, col.Label)
	}

	rows := make([][]interface{}, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		rows = append(rows, []interface{}{
			e.EmployeeNo, e.NameEN, e.NameAR, utils.SafeDeref(e.Nationality),
			utils.SafeDeref(e.CompanyNameEN), utils.SafeDeref(e.DepartmentNameEN), utils.SafeDeref(e.JobNameEN),
			utils.SafeDeref(e.PassportNo), expiry.FormatDate(e.PassportExpiry),
			utils.SafeDeref(e.CardNo), expiry.FormatDate(e.CardExpiry),
			utils.SafeDeref(e.EmiratesID), expiry.FormatDate(e.EmiratesIDExpiry),
			utils.SafeDeref(e.ResidenceNo), expiry.FormatDate(e.ResidenceExpiry),
			utils.SafeDeref(e.Phone), utils.SafeDeref(e.Email),
		})
	}
	return xlsx.BuildWorkbook(xlsx.Sheet{
		Name:    "Employees",
		Headers: headers,
		Rows:    rows,
	})
}
