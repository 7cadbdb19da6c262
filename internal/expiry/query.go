package expiry

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-system/internal/entities"
)

// Criteria is the employee-list filter. Zero values mean "all": an empty
// search, a nil reference id, an empty nationality or an absent status entry
// disable that predicate. All active predicates combine with AND.
type Criteria struct {
	Search       string
	Nationality  string
	CompanyID    *uuid.UUID
	DepartmentID *uuid.UUID
	JobID        *uuid.UUID

	// Statuses filters each document independently by its classified status.
	// A record whose document has no expiry date (StatusNone) never matches
	// a concrete status filter.
	Statuses map[entities.DocumentType]Status
}

// SortKey names a sortable column.
type SortKey string

const (
	SortEmployeeNo  SortKey = "employee_no"
	SortName        SortKey = "name"
	SortNationality SortKey = "nationality"
	SortCompany     SortKey = "company"
	SortDepartment  SortKey = "department"
	SortJob         SortKey = "job"

	SortPassportExpiry   SortKey = "passport_expiry"
	SortCardExpiry       SortKey = "card_expiry"
	SortEmiratesIDExpiry SortKey = "emirates_id_expiry"
	SortResidenceExpiry  SortKey = "residence_expiry"
)

// Sort selects one column and a direction. Arabic switches the name-keyed
// columns to their Arabic variant.
type Sort struct {
	Key    SortKey
	Desc   bool
	Arabic bool
}

// FilterAndSort returns a new, ordered slice of the employees matching the
// criteria. The input is never mutated; identical inputs and reference date
// yield identical output. Records missing the sort value go last regardless
// of direction, and ties keep input order.
func FilterAndSort(employees []entities.Employee, c Criteria, s Sort, ref time.Time) []entities.Employee {
	out := make([]entities.Employee, 0, len(employees))
	for _, e := range employees {
		if matches(&e, c, ref) {
			out = append(out, e)
		}
	}

	if s.Key == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j], s)
	})
	return out
}

func matches(e *entities.Employee, c Criteria, ref time.Time) bool {
	if q := strings.TrimSpace(c.Search); q != "" && !matchesSearch(e, q) {
		return false
	}
	if c.Nationality != "" {
		if e.Nationality == nil || !strings.EqualFold(*e.Nationality, c.Nationality) {
			return false
		}
	}
	if c.CompanyID != nil && (e.CompanyID == nil || *e.CompanyID != *c.CompanyID) {
		return false
	}
	if c.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *c.DepartmentID) {
		return false
	}
	if c.JobID != nil && (e.JobID == nil || *e.JobID != *c.JobID) {
		return false
	}
	for doc, want := range c.Statuses {
		if Classify(e.ExpiryOf(doc), ref) != want {
			return false
		}
	}
	return true
}

// matchesSearch checks the query as a substring of any searchable field.
// Latin text is compared case-insensitively; Arabic has no case, so the raw
// substring check covers it.
func matchesSearch(e *entities.Employee, q string) bool {
	lq := strings.ToLower(q)
	for _, field := range []string{
		e.EmployeeNo,
		e.NameEN,
		deref(e.PassportNo),
		deref(e.EmiratesID),
		deref(e.ResidenceNo),
	} {
		if strings.Contains(strings.ToLower(field), lq) {
			return true
		}
	}
	return strings.Contains(e.NameAR, q)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func less(a, b *entities.Employee, s Sort) bool {
	switch s.Key {
	case SortPassportExpiry, SortCardExpiry, SortEmiratesIDExpiry, SortResidenceExpiry:
		return lessDate(sortDate(a, s.Key), sortDate(b, s.Key), s.Desc)
	default:
		return lessString(sortString(a, s), sortString(b, s), s.Desc)
	}
}

func sortDate(e *entities.Employee, key SortKey) *time.Time {
	switch key {
	case SortPassportExpiry:
		return e.PassportExpiry
	case SortCardExpiry:
		return e.CardExpiry
	case SortEmiratesIDExpiry:
		return e.EmiratesIDExpiry
	case SortResidenceExpiry:
		return e.ResidenceExpiry
	}
	return nil
}

func sortString(e *entities.Employee, s Sort) *string {
	pick := func(en, ar *string) *string {
		if s.Arabic {
			return ar
		}
		return en
	}
	switch s.Key {
	case SortEmployeeNo:
		return &e.EmployeeNo
	case SortName:
		if s.Arabic {
			return &e.NameAR
		}
		return &e.NameEN
	case SortNationality:
		return e.Nationality
	case SortCompany:
		return pick(e.CompanyNameEN, e.CompanyNameAR)
	case SortDepartment:
		return pick(e.DepartmentNameEN, e.DepartmentNameAR)
	case SortJob:
		return pick(e.JobNameEN, e.JobNameAR)
	}
	return nil
}

// lessString orders present values before nil ones; nil never wins, so null
// records end up last in either direction.
func lessString(a, b *string, desc bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	av, bv := strings.ToLower(*a), strings.ToLower(*b)
	if av == bv {
		return false
	}
	if desc {
		return av > bv
	}
	return av < bv
}

func lessDate(a, b *time.Time, desc bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.Equal(*b) {
		return false
	}
	if desc {
		return a.After(*b)
	}
	return a.Before(*b)
}
