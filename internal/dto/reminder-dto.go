package dto

import "hr-system/internal/entities"

type ReminderDTO struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	TargetDate string  `json:"target_date"`
	Status     string  `json:"status"`
	SentAt     *string `json:"sent_at"`
	CreatedAt  string  `json:"created_at"`
}

// ReminderRunDTO reports one manual or scheduled reminder sweep.
type ReminderRunDTO struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func ToReminderDTO(r entities.Reminder) ReminderDTO {
	d := ReminderDTO{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		Type:       string(r.Type),
		TargetDate: r.TargetDate.Format("2006-01-02"),
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if r.SentAt.Valid {
		s := r.SentAt.Time.Format("2006-01-02T15:04:05Z07:00")
		d.SentAt = &s
	}
	return d
}
