package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceKind identifies one of the four lookup dictionaries.
type ReferenceKind string

const (
	RefCompany     ReferenceKind = "company"
	RefDepartment  ReferenceKind = "department"
	RefJob         ReferenceKind = "job"
	RefNationality ReferenceKind = "nationality"
)

// Table returns the backing table name for the dictionary.
func (k ReferenceKind) Table() string {
	switch k {
	case RefCompany:
		return "companies"
	case RefDepartment:
		return "departments"
	case RefJob:
		return "jobs"
	case RefNationality:
		return "nationalities"
	}
	return ""
}

// Reference is a shared lookup row: company, department, job or nationality.
// Codes are unique per table and normalized to uppercase on write.
type Reference struct {
	ID        uuid.UUID `db:"id"`
	Code      string    `db:"code"`
	NameEN    string    `db:"name_en"`
	NameAR    string    `db:"name_ar"`
	CreatedAt time.Time `db:"created_at"`
}
