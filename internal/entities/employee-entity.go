package entities

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType names the four tracked documents of an employee.
type DocumentType string

const (
	DocPassport   DocumentType = "passport"
	DocCard       DocumentType = "card"
	DocEmiratesID DocumentType = "emirates_id"
	DocResidence  DocumentType = "residence"
)

// DocumentTypes lists the tracked document types in display order.
var DocumentTypes = []DocumentType{DocPassport, DocCard, DocEmiratesID, DocResidence}

// Employee is the roster record. Nationality is a denormalized free-text
// label, not a foreign key; company/department/job references and all four
// document fields are independently nullable.
type Employee struct {
	ID           uuid.UUID  `db:"id"`
	EmployeeNo   string     `db:"employee_no"`
	NameEN       string     `db:"name_en"`
	NameAR       string     `db:"name_ar"`
	Nationality  *string    `db:"nationality"`
	CompanyID    *uuid.UUID `db:"company_id"`
	DepartmentID *uuid.UUID `db:"department_id"`
	JobID        *uuid.UUID `db:"job_id"`

	PassportNo       *string    `db:"passport_no"`
	PassportExpiry   *time.Time `db:"passport_expiry"`
	CardNo           *string    `db:"card_no"`
	CardExpiry       *time.Time `db:"card_expiry"`
	EmiratesID       *string    `db:"emirates_id"`
	EmiratesIDExpiry *time.Time `db:"emirates_id_expiry"`
	ResidenceNo      *string    `db:"residence_no"`
	ResidenceExpiry  *time.Time `db:"residence_expiry"`

	Email *string `db:"email"`
	Phone *string `db:"phone"`

	// Resolved reference names, filled by the list query joins. Used for
	// display and for name-keyed sorting.
	CompanyNameEN    *string `db:"company_name_en"`
	CompanyNameAR    *string `db:"company_name_ar"`
	DepartmentNameEN *string `db:"department_name_en"`
	DepartmentNameAR *string `db:"department_name_ar"`
	JobNameEN        *string `db:"job_name_en"`
	JobNameAR        *string `db:"job_name_ar"`

	AddedAt   time.Time `db:"added_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ExpiryOf returns the expiry date of the given document, nil when unset.
func (e *Employee) ExpiryOf(doc DocumentType) *time.Time {
	switch doc {
	case DocPassport:
		return e.PassportExpiry
	case DocCard:
		return e.CardExpiry
	case DocEmiratesID:
		return e.EmiratesIDExpiry
	case DocResidence:
		return e.ResidenceExpiry
	}
	return nil
}
