package planner

import (
	"fmt"
	"sort"

	"github.com/username/team-planner/pkg/dateutil"
)

// FilterMode selects which events a list view shows
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterOld       FilterMode = "old"
	FilterThisMonth FilterMode = "thisMonth"
)

// ParseFilterMode validates a filter mode string
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterAll, FilterOld, FilterThisMonth:
		return FilterMode(s), nil
	default:
		return "", fmt.Errorf("unknown filter mode %q (want all, old or thisMonth)", s)
	}
}

// FilterEvents returns the subset of events matching the mode relative
// to the reference month, sorted ascending by each event's earliest
// date (stable on input order for ties). Events with no dates are
// always dropped: without a min/max date they have no place in any
// date-range view.
//
//   - all: everything (minus the empty-set discard)
//   - old: events entirely before the reference month — max date
//     strictly before its first day
//   - thisMonth: events overlapping the reference month — min or max
//     date inside it, or spanning across it
func FilterEvents(events []EventRecord, mode FilterMode, ref Cursor) []EventRecord {
	monthStart := dateutil.MonthStart(ref.Year, ref.Month)
	monthEnd := dateutil.MonthEnd(ref.Year, ref.Month)

	out := make([]EventRecord, 0, len(events))
	for _, e := range events {
		min, ok := e.MinDate()
		if !ok {
			continue
		}
		max, _ := e.MaxDate()

		switch mode {
		case FilterOld:
			if !(max < monthStart) {
				continue
			}
		case FilterThisMonth:
			minInside := min >= monthStart && min <= monthEnd
			maxInside := max >= monthStart && max <= monthEnd
			spans := min < monthStart && max > monthEnd
			if !minInside && !maxInside && !spans {
				continue
			}
		}

		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		mi, _ := out[i].MinDate()
		mj, _ := out[j].MinDate()
		return mi < mj
	})

	return out
}
