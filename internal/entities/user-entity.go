package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is a login identity for the HR operators.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
