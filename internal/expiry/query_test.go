package expiry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-system/internal/entities"
)

func strp(s string) *string { return &s }

func testRoster() ([]entities.Employee, uuid.UUID, uuid.UUID) {
	alphaID := uuid.New()
	deltaID := uuid.New()

	return []entities.Employee{
		{
			ID:             uuid.New(),
			EmployeeNo:     "EMP001",
			NameEN:         "Ahmed Ali",
			NameAR:         "أحمد علي",
			Nationality:    strp("Egyptian"),
			CompanyID:      &alphaID,
			CompanyNameEN:  strp("Alpha Contracting"),
			PassportNo:     strp("A1111111"),
			PassportExpiry: datePtr(2026, time.July, 1), // expiring
		},
		{
			ID:             uuid.New(),
			EmployeeNo:     "EMP002",
			NameEN:         "Budi Santoso",
			NameAR:         "بودي سانتوسو",
			Nationality:    strp("Indonesian"),
			CompanyID:      &deltaID,
			CompanyNameEN:  strp("Delta Trading"),
			PassportExpiry: datePtr(2026, time.January, 1), // expired
		},
		{
			ID:            uuid.New(),
			EmployeeNo:    "EMP003",
			NameEN:        "Carlos Reyes",
			NameAR:        "كارلوس رييس",
			Nationality:   strp("Filipino"),
			CompanyID:     &alphaID,
			CompanyNameEN: strp("Alpha Contracting"),
			// no passport expiry at all
		},
		{
			ID:             uuid.New(),
			EmployeeNo:     "EMP004",
			NameEN:         "Deepak Kumar",
			NameAR:         "ديباك كومار",
			Nationality:    strp("Indian"),
			PassportExpiry: datePtr(2028, time.January, 1), // valid
		},
	}, alphaID, deltaID
}

func TestFilterAndSortComposesWithAND(t *testing.T) {
	roster, alphaID, _ := testRoster()
	ref := date(2026, time.June, 15)

	got := FilterAndSort(roster, Criteria{
		CompanyID: &alphaID,
		Statuses:  map[entities.DocumentType]Status{entities.DocPassport: StatusExpiring},
	}, Sort{}, ref)

	require.Len(t, got, 1)
	assert.Equal(t, "EMP001", got[0].EmployeeNo)
}

func TestFilterStatusNoneIsItsOwnBucket(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	// an undated passport never matches a concrete status...
	for _, status := range []Status{StatusValid, StatusExpiring, StatusExpired} {
		got := FilterAndSort(roster, Criteria{
			Statuses: map[entities.DocumentType]Status{entities.DocPassport: status},
		}, Sort{}, ref)
		for _, e := range got {
			assert.NotEqual(t, "EMP003", e.EmployeeNo, "undated passport matched %s", status)
		}
	}

	// ...but is selectable explicitly
	got := FilterAndSort(roster, Criteria{
		Statuses: map[entities.DocumentType]Status{entities.DocPassport: StatusNone},
	}, Sort{}, ref)
	require.Len(t, got, 1)
	assert.Equal(t, "EMP003", got[0].EmployeeNo)
}

func TestFilterSearchCoversIdentifierFields(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	byName := FilterAndSort(roster, Criteria{Search: "ahmed"}, Sort{}, ref)
	require.Len(t, byName, 1)
	assert.Equal(t, "EMP001", byName[0].EmployeeNo)

	byArabic := FilterAndSort(roster, Criteria{Search: "أحم"}, Sort{}, ref)
	require.Len(t, byArabic, 1)

	byPassport := FilterAndSort(roster, Criteria{Search: "A1111"}, Sort{}, ref)
	require.Len(t, byPassport, 1)

	byNumber := FilterAndSort(roster, Criteria{Search: "EMP00"}, Sort{}, ref)
	assert.Len(t, byNumber, 4)
}

func TestFilterNationalityIsExact(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	got := FilterAndSort(roster, Criteria{Nationality: "Indian"}, Sort{}, ref)
	require.Len(t, got, 1)
	assert.Equal(t, "EMP004", got[0].EmployeeNo)

	// "Indian" must not match "Indonesian" and case must not matter
	got = FilterAndSort(roster, Criteria{Nationality: "indian"}, Sort{}, ref)
	require.Len(t, got, 1)
	assert.Equal(t, "EMP004", got[0].EmployeeNo)
}

func TestSortPlacesMissingValuesLastBothDirections(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	asc := FilterAndSort(roster, Criteria{}, Sort{Key: SortPassportExpiry}, ref)
	require.Len(t, asc, 4)
	assert.Equal(t, "EMP002", asc[0].EmployeeNo) // 2026-01-01
	assert.Equal(t, "EMP001", asc[1].EmployeeNo) // 2026-07-01
	assert.Equal(t, "EMP004", asc[2].EmployeeNo) // 2028-01-01
	assert.Equal(t, "EMP003", asc[3].EmployeeNo) // nil stays last

	desc := FilterAndSort(roster, Criteria{}, Sort{Key: SortPassportExpiry, Desc: true}, ref)
	assert.Equal(t, "EMP004", desc[0].EmployeeNo)
	assert.Equal(t, "EMP003", desc[3].EmployeeNo) // nil still last
}

func TestSortMissingCompanyLast(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	got := FilterAndSort(roster, Criteria{}, Sort{Key: SortCompany}, ref)
	require.Len(t, got, 4)
	assert.Equal(t, "EMP004", got[3].EmployeeNo) // no company name
}

func TestSortIsStableForTies(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	// EMP001 and EMP003 share a company name; input order must survive.
	got := FilterAndSort(roster, Criteria{}, Sort{Key: SortCompany}, ref)
	assert.Equal(t, "EMP001", got[0].EmployeeNo)
	assert.Equal(t, "EMP003", got[1].EmployeeNo)
}

func TestFilterAndSortIsPure(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)
	originalFirst := roster[0].EmployeeNo

	first := FilterAndSort(roster, Criteria{Search: "EMP"}, Sort{Key: SortName, Desc: true}, ref)
	second := FilterAndSort(roster, Criteria{Search: "EMP"}, Sort{Key: SortName, Desc: true}, ref)

	assert.Equal(t, first, second)
	assert.Equal(t, originalFirst, roster[0].EmployeeNo, "input slice must not be reordered")
}
