package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderSent    ReminderStatus = "sent"
	ReminderFailed  ReminderStatus = "failed"
)

// Reminder logs one expiry-notice dispatch attempt, success or failure.
type Reminder struct {
	ID         uuid.UUID      `db:"id"`
	EmployeeID uuid.UUID      `db:"employee_id"`
	Type       DocumentType   `db:"type"`
	TargetDate time.Time      `db:"target_date"`
	Status     ReminderStatus `db:"status"`
	SentAt     null.Time      `db:"sent_at"`
	CreatedAt  time.Time      `db:"created_at"`
}
