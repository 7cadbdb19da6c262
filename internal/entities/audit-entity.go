package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// ActivityLog is one append-only audit record of an employee mutation.
// OldValues/NewValues hold the field-level diff as JSON.
type ActivityLog struct {
	ID         uuid.UUID   `db:"id"`
	EmployeeID uuid.UUID   `db:"employee_id"`
	Action     string      `db:"action"`
	EmployeeNo null.String `db:"employee_no"`
	NameEN     null.String `db:"name_en"`
	NameAR     null.String `db:"name_ar"`
	OldValues  null.JSON   `db:"old_values"`
	NewValues  null.JSON   `db:"new_values"`
	UserID     *uuid.UUID  `db:"user_id"`
	UserEmail  null.String `db:"user_email"`
	Timestamp  time.Time   `db:"timestamp"`
}
