package dto

import (
	"encoding/json"

	"hr-system/internal/entities"
)

type ActivityLogDTO struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Action     string          `json:"action"`
	EmployeeNo *string         `json:"employee_no"`
	NameEN     *string         `json:"name_en"`
	NameAR     *string         `json:"name_ar"`
	OldValues  json.RawMessage `json:"old_values,omitempty"`
	NewValues  json.RawMessage `json:"new_values,omitempty"`
	UserEmail  *string         `json:"user_email"`
	Timestamp  string          `json:"timestamp"`
}

func ToActivityLogDTO(a entities.ActivityLog) ActivityLogDTO {
	d := ActivityLogDTO{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Action:     a.Action,
		Timestamp:  a.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
	if a.EmployeeNo.Valid {
		d.EmployeeNo = &a.EmployeeNo.String
	}
	if a.NameEN.Valid {
		d.NameEN = &a.NameEN.String
	}
	if a.NameAR.Valid {
		d.NameAR = &a.NameAR.String
	}
	if a.OldValues.Valid {
		d.OldValues = json.RawMessage(a.OldValues.JSON)
	}
	if a.NewValues.Valid {
		d.NewValues = json.RawMessage(a.NewValues.JSON)
	}
	if a.UserEmail.Valid {
		d.UserEmail = &a.UserEmail.String
	}
	return d
}
