package expiry

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero of the 1900 date system (serial 1 = 1900-01-01,
// with the off-by-two accounting for Excel's fictitious 1900-02-29).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DaysUntil returns the whole calendar-day difference between the reference
// day and the expiry day. Negative when the expiry is in the past. Time-of-day
// and timezone components are discarded so the result is DST-safe.
func DaysUntil(expiry, ref time.Time) int {
	return int(midnightUTC(expiry).Sub(midnightUTC(ref)).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate normalizes a spreadsheet cell into a date, or nil when the value
// is absent or unparseable (defensive parse-or-null: a malformed date never
// produces an error here). Accepted forms: YYYY-MM-DD, DD/MM/YYYY,
// DD-MM-YYYY, and Excel numeric date serials.
func ParseDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}

	// Excel serial: a bare number of days since the 1900 epoch.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > 300000 { // outside any plausible date
			return nil
		}
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = midnightUTC(t)
			return &t
		}
	}
	return nil
}

// FormatDate renders a date in the canonical YYYY-MM-DD form, "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
