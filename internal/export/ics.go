// Package export renders planner records as an iCalendar feed so
// holidays and WFH days can be subscribed to from regular calendar
// clients.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/username/team-planner/internal/planner"
	"github.com/username/team-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// Exporter turns event records into an ICS document. Every event
// becomes one or more all-day VEVENTs, one per contiguous date run.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates an ICS exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Calendar serializes the given holidays and WFH events into a single
// ICS document. Owners are resolved against users; dangling references
// render as "Unknown". Events without dates produce no VEVENTs.
func (e *Exporter) Calendar(holidays, wfh []planner.EventRecord, users []planner.UserRecord) string {
	byID := make(map[string]planner.UserRecord, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//team-planner//EN")

	stamp := time.Now().UTC()
	count := 0
	count += e.addEvents(cal, holidays, byID, "Holiday", stamp)
	count += e.addEvents(cal, wfh, byID, "WFH", stamp)

	e.logger.Info("Calendar exported",
		zap.Int("holidays", len(holidays)),
		zap.Int("wfh", len(wfh)),
		zap.Int("vevents", count))

	return cal.Serialize()
}

// WriteFile serializes the events and writes the document to path,
// creating parent directories as needed.
func (e *Exporter) WriteFile(path string, holidays, wfh []planner.EventRecord, users []planner.UserRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	content := e.Calendar(holidays, wfh, users)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write ICS file: %w", err)
	}

	e.logger.Info("ICS file written", zap.String("path", path))
	return nil
}

func (e *Exporter) addEvents(cal *ical.Calendar, events []planner.EventRecord, users map[string]planner.UserRecord, label string, stamp time.Time) int {
	count := 0
	for _, rec := range events {
		owner := planner.UnknownOwner
		if u, ok := users[rec.UserID]; ok {
			owner = u.Name
		}

		summary := fmt.Sprintf("%s: %s", owner, rec.Name)
		switch rec.DayPart {
		case planner.DayPartAM:
			summary += " (AM)"
		case planner.DayPartPM:
			summary += " (PM)"
		}

		for _, run := range dateRuns(rec.Dates.Sorted()) {
			ev := cal.AddEvent(fmt.Sprintf("%s/%s@team-planner", rec.ID, run.start.Format("20060102")))
			ev.SetDtStampTime(stamp)
			ev.SetAllDayStartAt(run.start)
			// DTEND is exclusive for all-day events
			ev.SetAllDayEndAt(run.end.AddDate(0, 0, 1))
			ev.SetSummary(summary)
			ev.SetDescription(fmt.Sprintf("%s for %s", label, owner))
			count++
		}
	}
	return count
}

type dateRun struct {
	start time.Time
	end   time.Time
}

// dateRuns groups sorted ISO dates into contiguous runs, so a week of
// holiday dates exports as one spanning VEVENT instead of seven.
// Malformed dates are skipped.
func dateRuns(dates []string) []dateRun {
	var runs []dateRun

	for _, iso := range dates {
		day, err := dateutil.ParseISODate(iso)
		if err != nil {
			continue
		}

		if n := len(runs); n > 0 && runs[n-1].end.AddDate(0, 0, 1).Equal(day) {
			runs[n-1].end = day
			continue
		}
		runs = append(runs, dateRun{start: day, end: day})
	}

	return runs
}
