// Package planner holds the team planner core: user and event records,
// the multi-year calendar state machine, and event filtering.
package planner

import (
	"encoding/json"
	"sort"
)

// EventKind distinguishes the two persisted event record kinds
type EventKind string

const (
	KindHoliday EventKind = "holiday"
	KindWFH     EventKind = "wfh"
)

// DayPart says which part of a day an event occupies
type DayPart string

const (
	DayPartFull DayPart = "full"
	DayPartAM   DayPart = "am"
	DayPartPM   DayPart = "pm"
)

// ParseDayPart normalizes a day part string; anything unrecognized
// (including the empty string) falls back to a full day
func ParseDayPart(s string) DayPart {
	switch DayPart(s) {
	case DayPartAM:
		return DayPartAM
	case DayPartPM:
		return DayPartPM
	default:
		return DayPartFull
	}
}

// UnmarshalJSON implements json.Unmarshaler for DayPart.
// Records written before day parts existed, or with unknown values,
// decode as a full day rather than failing.
func (p *DayPart) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*p = DayPartFull
		return nil
	}
	*p = ParseDayPart(s)
	return nil
}

// DateSet is a set of ISO (YYYY-MM-DD) date strings. Membership is
// what matters; the persisted and displayed form is always a sorted
// ascending array.
type DateSet map[string]struct{}

// NewDateSet builds a set from the given dates, collapsing duplicates
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts a date; inserting an existing date is a no-op
func (s DateSet) Add(date string) {
	s[date] = struct{}{}
}

// Remove deletes a date if present
func (s DateSet) Remove(date string) {
	delete(s, date)
}

// Has reports membership
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Len returns the number of dates in the set
func (s DateSet) Len() int {
	return len(s)
}

// Toggle flips membership of a date and reports whether the date is
// selected afterwards
func (s DateSet) Toggle(date string) bool {
	if s.Has(date) {
		s.Remove(date)
		return false
	}
	s.Add(date)
	return true
}

// Clear empties the set in place
func (s DateSet) Clear() {
	for d := range s {
		delete(s, d)
	}
}

// Clone returns an independent copy of the set
func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Sorted returns the dates in ascending order
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Min returns the earliest date in the set, if any
func (s DateSet) Min() (string, bool) {
	min := ""
	for d := range s {
		if min == "" || d < min {
			min = d
		}
	}
	return min, min != ""
}

// Max returns the latest date in the set, if any
func (s DateSet) Max() (string, bool) {
	max := ""
	for d := range s {
		if d > max {
			max = d
		}
	}
	return max, max != ""
}

// MarshalJSON implements json.Marshaler; sets persist as sorted arrays
func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
// Malformed dates fields (null, a scalar, an object) decode as an empty
// set; the surrounding record stays usable.
func (s *DateSet) UnmarshalJSON(b []byte) error {
	var dates []string
	if err := json.Unmarshal(b, &dates); err != nil {
		*s = NewDateSet()
		return nil
	}
	*s = NewDateSet(dates...)
	return nil
}

// UserRecord represents a team member
type UserRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// EventRecord is a Holiday or WFH entry: a named set of selected dates
// owned by one user. Holidays and WFH share this shape and live in
// separate collections.
type EventRecord struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	UserID  string  `json:"userId"`
	Dates   DateSet `json:"dates"`
	DayPart DayPart `json:"dayPart"`
}

// normalize repairs a freshly decoded record: nil date sets become
// empty ones and absent or unknown day parts default to full
func (e *EventRecord) normalize() {
	if e.Dates == nil {
		e.Dates = NewDateSet()
	}
	e.DayPart = ParseDayPart(string(e.DayPart))
}

// MinDate returns the event's earliest date, if it has any dates
func (e EventRecord) MinDate() (string, bool) {
	return e.Dates.Min()
}

// MaxDate returns the event's latest date, if it has any dates
func (e EventRecord) MaxDate() (string, bool) {
	return e.Dates.Max()
}
