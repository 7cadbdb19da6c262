package dto

import (
	"time"

	"hr-system/internal/expiry"
)

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := expiry.FormatDate(t)
	return &s
}
