package dateutil

import (
	"fmt"
	"time"
)

// ISOFormat is the calendar date layout used everywhere in the planner.
// Dates are timezone-naive: "2025-06-01" means the same day for everyone.
const ISOFormat = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD date string
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return t, nil
}

// IsISODate reports whether s is a well-formed YYYY-MM-DD date
func IsISODate(s string) bool {
	_, err := time.Parse(ISOFormat, s)
	return err == nil
}

// FormatISODate formats a time as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format(ISOFormat)
}

// ISODate builds a YYYY-MM-DD string from its components
func ISODate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthStart returns the first day of the month as an ISO date string
func MonthStart(year int, month time.Month) string {
	return ISODate(year, month, 1)
}

// MonthEnd returns the last day of the month as an ISO date string
func MonthEnd(year int, month time.Month) string {
	return ISODate(year, month, DaysInMonth(year, month))
}

// FirstWeekday returns the weekday of the first day of the month
// (Sunday = 0, matching the calendar grid's Sunday-first layout)
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// TodayISO returns today's date as an ISO date string
func TodayISO() string {
	return FormatISODate(time.Now())
}
