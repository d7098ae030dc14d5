package sla

import (
	"time"
)

// Remaining returns the signed time left until due; negative means overdue.
func Remaining(due, now time.Time) time.Duration {
	return due.Sub(now)
}

// Parts is a floor-division decomposition of a duration magnitude.
// Each field is a running total, not a remainder: 90 minutes yields
// {Minutes: 90, Hours: 1, Days: 0}.
type Parts struct {
	Minutes int
	Hours   int
	Days    int
}

// Breakdown decomposes a duration into total minutes, hours, and days,
// taking the absolute value first so overdue durations truncate toward zero.
func Breakdown(d time.Duration) Parts {
	if d < 0 {
		d = -d
	}
	minutes := int(d / time.Minute)
	hours := minutes / 60
	days := hours / 24
	return Parts{Minutes: minutes, Hours: hours, Days: days}
}

// ParseDue parses an ISO-8601 deadline string as a UTC instant.
// Empty input means the deadline is absent, which is not an error.
func ParseDue(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	utc := t.UTC()
	return &utc, nil
}
