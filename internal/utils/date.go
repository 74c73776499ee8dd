package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date format")

// dateLayouts are tried in order. Layouts without a zone are read as UTC so
// the result never depends on the server's local timezone.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseDate parses a calendar date or timestamp and returns it in UTC,
// truncated to the millisecond so it always falls inside a MonthRange.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// MonthRange returns the first and the last millisecond of the UTC calendar
// month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
