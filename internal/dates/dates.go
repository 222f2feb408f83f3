// Package dates normalizes calendar days and months.
//
// A day is stored as midnight UTC of the calendar date the caller wrote,
// whatever offset the input carried. "2025-03-05" and
// "2025-03-05T23:30:00-05:00" both become 2025-03-05 00:00 UTC. Query
// boundaries are built from the same representation so filters always
// line up with what was written.
package dates

import (
	"errors"
	"fmt"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var ErrInvalidDate = errors.New("invalid date")

var dayLayouts = []string{
	DayLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
}

// Day returns midnight UTC of t's calendar date in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts a plain date or a full timestamp.
func ParseDay(s string) (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseMonth parses "YYYY-MM" into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MonthRange returns [first day, first day of next month).
func MonthRange(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DayRange returns [day, next day).
func DayRange(day time.Time) (time.Time, time.Time) {
	d := Day(day)
	return d, d.AddDate(0, 0, 1)
}

// InclusiveRange turns two inclusive calendar days into [start, end+1).
func InclusiveRange(start, end time.Time) (time.Time, time.Time) {
	return Day(start), Day(end).AddDate(0, 0, 1)
}

func FormatDay(t time.Time) string   { return t.UTC().Format(DayLayout) }
func FormatMonth(t time.Time) string { return t.UTC().Format(MonthLayout) }

// CurrentMonth is the first day of the current month in UTC.
func CurrentMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
