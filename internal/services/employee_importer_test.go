package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/xlsx"
)

// ---- fakes ----

type fakeEmployeeRepo struct {
	existing map[string]bool // employee numbers already in the roster
	created  []entities.Employee
	failOn   map[string]error // employee_no -> insert error
	roster   []entities.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		existing: map[string]bool{},
		failOn:   map[string]error{},
	}
}

func (f *fakeEmployeeRepo) GetEmployees(ctx context.Context) ([]entities.Employee, error) {
	return f.roster, nil
}

func (f *fakeEmployeeRepo) FindEmployee(ctx context.Context, id uuid.UUID) (*entities.Employee, error) {
	for i := range f.roster {
		if f.roster[i].ID == id {
			emp := f.roster[i]
			return &emp, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeEmployeeRepo) ExistsByNumber(ctx context.Context, employeeNo string) (bool, error) {
	return f.existing[employeeNo], nil
}

func (f *fakeEmployeeRepo) CreateEmployee(ctx context.Context, employee entities.Employee) (*entities.Employee, error) {
	if err, ok := f.failOn[employee.EmployeeNo]; ok {
		return nil, err
	}
	employee.ID = uuid.New()
	f.created = append(f.created, employee)
	return &employee, nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, id uuid.UUID, patch dto.UpdateEmployeeDTO) (*entities.Employee, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmployeeRepo) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	for i := range f.roster {
		if f.roster[i].ID == id {
			f.roster = append(f.roster[:i], f.roster[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeReferenceRepo struct {
	byKind map[entities.ReferenceKind][]entities.Reference
}

func (f *fakeReferenceRepo) GetReferences(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error) {
	return f.byKind[kind], nil
}

func (f *fakeReferenceRepo) FindReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReferenceRepo) CreateReference(ctx context.Context, kind entities.ReferenceKind, ref entities.Reference) (*entities.Reference, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReferenceRepo) UpdateReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID, patch dto.UpdateReferenceDTO) (*entities.Reference, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReferenceRepo) DeleteReference(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) error {
	return errors.New("not implemented")
}

// fakeCache always misses; Candidates then falls through to the repository.
type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string) (string, error) { return "", errors.New("miss") }
func (fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (fakeCache) Del(ctx context.Context, keys ...string) error { return nil }

// ---- helpers ----

func ref(name string) entities.Reference {
	return entities.Reference{ID: uuid.New(), NameEN: name}
}

func testDictionaries() map[entities.ReferenceKind][]entities.Reference {
	return map[entities.ReferenceKind][]entities.Reference{
		entities.RefCompany:     {ref("Alpha Contracting"), ref("Delta Trading")},
		entities.RefDepartment:  {ref("Operations"), ref("Finance")},
		entities.RefJob:         {ref("Engineer"), ref("Senior Specialist")},
		entities.RefNationality: {ref("Indian"), ref("Indonesian"), ref("Egyptian")},
	}
}

func newTestImporter(t *testing.T, employeeRepo *fakeEmployeeRepo) *EmployeeImporter {
	t.Helper()
	logger := zap.NewNop()
	referenceService := NewReferenceService(
		&fakeReferenceRepo{byKind: testDictionaries()}, fakeCache{}, logger)
	return NewEmployeeImporter(employeeRepo, referenceService, eventbus.New(logger), logger)
}

var templateHeaders = []string{
	"employee_no", "name_en", "name_ar", "nationality",
	"company_name", "department_name", "job_name",
	"passport_no", "passport_expiry",
}

func buildSheet(t *testing.T, headers []string, rows ...[]interface{}) *bytes.Reader {
	t.Helper()
	data, err := xlsx.BuildWorkbook(xlsx.Sheet{Name: "Employees", Headers: headers, Rows: rows})
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func findRow(t *testing.T, rows []entities.ImportRow, employeeNo string) *entities.ImportRow {
	t.Helper()
	for i := range rows {
		if rows[i].Record.EmployeeNo == employeeNo {
			return &rows[i]
		}
	}
	t.Fatalf("row %s not found", employeeNo)
	return nil
}

// ---- tests ----

func TestParseResolvesCleanRow(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "Egyptian", "alpha", "Operations", "Marketing Specialist", "A1234567", "2027-01-31"},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, entities.ImportPending, row.Status)
	assert.Empty(t, row.Messages)
	require.NotNil(t, row.Record.Nationality)
	assert.Equal(t, "Egyptian", *row.Record.Nationality)
	assert.NotNil(t, row.Record.CompanyID, "fuzzy company match should resolve")
	assert.NotNil(t, row.Record.DepartmentID)
	assert.NotNil(t, row.Record.JobID, "last-token job match should resolve")
	require.NotNil(t, row.Record.PassportExpiry)
	assert.Equal(t, "2027-01-31", row.Record.PassportExpiry.Format("2006-01-02"))
}

func TestParseAcceptsExportedHeaderSpellings(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	sheet := buildSheet(t,
		[]string{"Employee No", "Name (EN)", "Name (AR)", "Nationality", "Passport Expiry"},
		[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "Indian", "2027-01-31"},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entities.ImportPending, rows[0].Status)
	assert.Equal(t, "EMP001", rows[0].Record.EmployeeNo)
	require.NotNil(t, rows[0].Record.PassportExpiry)
}

func TestParseAccumulatesErrorsPerRow(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	// missing names AND unknown nationality in one row: both reported
	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "", "", "Martian", "", "", "", "", ""},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, entities.ImportError, row.Status)
	assert.GreaterOrEqual(t, len(row.Messages), 3)
}

func TestParseUnknownCompanyListsAvailable(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "Indian", "Zeta Holdings", "", "", "", ""},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	row := rows[0]
	require.True(t, row.Failed())

	var found bool
	for _, msg := range row.Messages {
		if msg == `Company "Zeta Holdings" not found. Available: Alpha Contracting, Delta Trading` {
			found = true
		}
	}
	assert.True(t, found, "expected available-list message, got %v", row.Messages)
	assert.Equal(t, "Zeta Holdings", row.CompanyInput)
}

func TestParseMisspelledNationalitySuggests(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "indian ", "", "", "", "", ""},
	)

	// trailing space plus case still resolves exactly
	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.NotNil(t, rows[0].Record.Nationality)
	assert.Equal(t, "Indian", *rows[0].Record.Nationality)

	// a real typo does not resolve and gets a suggestion
	sheet = buildSheet(t, templateHeaders,
		[]interface{}{"EMP002", "Budi", "بودي", "Indians", "", "", "", "", ""},
	)
	rows, err = importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.True(t, rows[0].Failed())
	assert.Contains(t, rows[0].Messages[0], "Did you mean")
	assert.Contains(t, rows[0].Messages[0], "Indian")
}

func TestParseFlagsDuplicates(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.existing["EMP100"] = true
	importer := newTestImporter(t, repo)

	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP100", "A", "أ", "Indian", "", "", "", "", ""},
		[]interface{}{"EMP200", "B", "ب", "Indian", "", "", "", "", ""},
		[]interface{}{"EMP200", "C", "ج", "Indian", "", "", "", "", ""},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.True(t, findRow(t, rows, "EMP100").Failed(), "duplicate against the roster")
	assert.False(t, rows[1].Failed(), "first in-file occurrence stays clean")
	assert.True(t, rows[2].Failed(), "second in-file occurrence is flagged")
}

func TestParseMalformedDateIsSilentlyEmpty(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "Indian", "", "", "", "A1", "soon"},
	)

	rows, err := importer.Parse(context.Background(), sheet)
	require.NoError(t, err)
	row := rows[0]
	assert.False(t, row.Failed(), "a bad date is not a row error")
	assert.Nil(t, row.Record.PassportExpiry)
}

func TestParseIsDeterministic(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())
	build := func() *bytes.Reader {
		return buildSheet(t, templateHeaders,
			[]interface{}{"EMP001", "Ahmed Ali", "أحمد علي", "Egyptian", "alpha", "Operations", "Engineer", "A1", "2027-01-31"},
			[]interface{}{"EMP002", "", "", "Martian", "", "", "", "", ""},
		)
	}

	first, err := importer.Parse(context.Background(), build())
	require.NoError(t, err)
	second, err := importer.Parse(context.Background(), build())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Status, second[i].Status)
		assert.Equal(t, first[i].Messages, second[i].Messages)
		assert.Equal(t, first[i].Record.CompanyID, second[i].Record.CompanyID)
	}
}

func TestCommitIsBestEffort(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.failOn["EMP002"] = fmt.Errorf("constraint violation")
	importer := newTestImporter(t, repo)

	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "A", "أ", "Indian", "", "", "", "", ""},
		[]interface{}{"EMP002", "B", "ب", "Indian", "", "", "", "", ""},
		[]interface{}{"EMP003", "C", "ج", "Indian", "", "", "", "", ""},
		[]interface{}{"EMP004", "", "", "Indian", "", "", "", "", ""}, // parse error
	)

	report, err := importer.Commit(context.Background(), sheet, events.Actor{})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 2, report.Failed)
	assert.Len(t, repo.created, 2, "rows around the failure still commit")

	// the failed insert carries its error and the clean rows carry ids
	byNo := map[string]dto.ImportRowDTO{}
	for _, r := range report.Rows {
		byNo[r.EmployeeNo] = r
	}
	assert.Equal(t, string(entities.ImportError), byNo["EMP002"].Status)
	assert.NotNil(t, byNo["EMP001"].EmployeeID)
	assert.NotNil(t, byNo["EMP003"].EmployeeID)
}

func TestPreviewDoesNotWrite(t *testing.T) {
	repo := newFakeEmployeeRepo()
	importer := newTestImporter(t, repo)

	sheet := buildSheet(t, templateHeaders,
		[]interface{}{"EMP001", "A", "أ", "Indian", "", "", "", "", ""},
	)

	report, err := importer.Preview(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pending)
	assert.Empty(t, repo.created)
}

func TestTemplateRoundTrips(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())

	data, err := importer.Template()
	require.NoError(t, err)

	rows, err := xlsx.ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP001", rows[0].Get("employee_no"))
}

func TestExportUsesHumanHeadersAndReimports(t *testing.T) {
	importer := newTestImporter(t, newFakeEmployeeRepo())

	nationality := "Indian"
	passportNo := "A1234567"
	expiryDate := time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)
	employees := []entities.Employee{{
		EmployeeNo:     "EMP001",
		NameEN:         "Ahmed Ali",
		NameAR:         "أحمد علي",
		Nationality:    &nationality,
		PassportNo:     &passportNo,
		PassportExpiry: &expiryDate,
	}}

	data, err := importer.Export(context.Background(), employees)
	require.NoError(t, err)

	// the export must be importable as-is
	rows, err := importer.Parse(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Failed())
	assert.Equal(t, "EMP001", rows[0].Record.EmployeeNo)
	require.NotNil(t, rows[0].Record.PassportExpiry)
	assert.Equal(t, "2027-01-31", rows[0].Record.PassportExpiry.Format("2006-01-02"))
}
