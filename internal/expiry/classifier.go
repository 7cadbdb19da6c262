// Package expiry holds the document-expiry classification and the in-memory
// filter/sort engine shared by the employee list, the dashboard counters and
// the reminder pipeline. Everything here is pure: the reference "today" is
// always an argument, never read from the clock.
package expiry

import "time"

// Status is the derived state of one document. It is computed at read time
// and never persisted, since it changes as the reference date moves.
type Status string

const (
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
	// StatusNone marks an absent expiry date. It is deliberately distinct
	// from StatusValid so an undated document is never reported as known-good.
	StatusNone Status = "none"
)

// ExpiringWindowDays is the inclusive "expiring soon" horizon.
const ExpiringWindowDays = 30

// Classify assigns a status from an optional expiry date and a reference day.
// The boundary is inclusive: a document expiring exactly 30 days from the
// reference date is still "expiring", and one expiring today is "expiring",
// not "expired".
func Classify(expiry *time.Time, ref time.Time) Status {
	if expiry == nil {
		return StatusNone
	}
	days := DaysUntil(*expiry, ref)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusValid
	}
}

// ParseStatus maps a filter value onto a Status; ok is false for anything
// unrecognized (including the "all" sentinel, which disables the predicate).
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusValid, StatusExpiring, StatusExpired, StatusNone:
		return Status(s), true
	}
	return "", false
}
