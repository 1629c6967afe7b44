package planner

import "fmt"

// EventSummary describes one event for list displays: owner resolved
// to a name (or "Unknown"), day count, and the sorted date range.
type EventSummary struct {
	ID        string
	Name      string
	Owner     string
	Color     string
	Days      int
	DateRange string
}

// Fallback color of list entries whose owner is missing
const fallbackListColor = "#444"

// SummarizeEvents builds list summaries for the given events, in
// input order. Dangling user references degrade to an "Unknown" owner
// with a fallback color.
func SummarizeEvents(events []EventRecord, users []UserRecord) []EventSummary {
	byID := make(map[string]UserRecord, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		s := EventSummary{
			ID:    e.ID,
			Name:  e.Name,
			Owner: UnknownOwner,
			Color: fallbackListColor,
			Days:  e.Dates.Len(),
		}
		if u, ok := byID[e.UserID]; ok {
			s.Owner = u.Name
			s.Color = u.Color
		}

		dates := e.Dates.Sorted()
		if len(dates) > 0 {
			s.DateRange = fmt.Sprintf("%s → %s", dates[0], dates[len(dates)-1])
		} else {
			s.DateRange = "No dates selected"
		}

		out = append(out, s)
	}

	return out
}
