package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format accepted in requests and config.
const DateLayout = "2006-01-02"

// ParseUTCDate parses a YYYY-MM-DD string as midnight UTC of that day.
func ParseUTCDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// StartOfUTCDay floors t to 00:00:00 UTC of its calendar day.
func StartOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MinTime returns the earlier of a and b.
func MinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// WholeDaysBetween returns the number of whole 24h periods from start to end,
// truncated toward zero.
func WholeDaysBetween(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}
