package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/username/team-planner/internal/planner"
	"go.uber.org/zap"
)

func TestExporter_Calendar(t *testing.T) {
	users := []planner.UserRecord{{ID: "u1", Name: "ana", Color: "#ff0000"}}
	holidays := []planner.EventRecord{
		{
			ID:      "holiday-1",
			Name:    "Summer",
			UserID:  "u1",
			Dates:   planner.NewDateSet("2025-06-01", "2025-06-02", "2025-06-03", "2025-06-05"),
			DayPart: planner.DayPartFull,
		},
	}
	wfh := []planner.EventRecord{
		{
			ID:      "wfh-1",
			Name:    "Remote Friday",
			UserID:  "u-gone",
			Dates:   planner.NewDateSet("2025-06-06"),
			DayPart: planner.DayPartAM,
		},
	}

	exp := NewExporter(zap.NewNop())
	got := exp.Calendar(holidays, wfh, users)

	if !strings.Contains(got, "BEGIN:VCALENDAR") || !strings.Contains(got, "METHOD:PUBLISH") {
		t.Fatalf("missing calendar envelope:\n%s", got)
	}

	// Three contiguous June days plus a gap day plus the WFH day
	if n := strings.Count(got, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("serialized %d VEVENTs, want 3:\n%s", n, got)
	}

	// The contiguous run exports as one span with an exclusive end
	if !strings.Contains(got, "DTSTART;VALUE=DATE:20250601") {
		t.Error("missing all-day start of the contiguous run")
	}
	if !strings.Contains(got, "DTEND;VALUE=DATE:20250604") {
		t.Error("missing exclusive all-day end of the contiguous run")
	}

	if !strings.Contains(got, "SUMMARY:ana: Summer") {
		t.Error("missing resolved owner in summary")
	}
	if !strings.Contains(got, "SUMMARY:Unknown: Remote Friday (AM)") {
		t.Error("dangling user reference should export with an Unknown owner")
	}
	if !strings.Contains(got, "UID:holiday-1/20250601@team-planner") {
		t.Error("missing deterministic UID")
	}
}

func TestExporter_CalendarSkipsEmptyEvents(t *testing.T) {
	holidays := []planner.EventRecord{
		{ID: "holiday-1", Name: "Ghost", UserID: "u1", Dates: planner.NewDateSet()},
	}

	exp := NewExporter(zap.NewNop())
	got := exp.Calendar(holidays, nil, nil)

	if strings.Contains(got, "BEGIN:VEVENT") {
		t.Errorf("event without dates produced a VEVENT:\n%s", got)
	}
}

func TestExporter_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "team.ics")

	holidays := []planner.EventRecord{
		{ID: "holiday-1", Name: "Summer", UserID: "u1", Dates: planner.NewDateSet("2025-06-01")},
	}

	exp := NewExporter(zap.NewNop())
	if err := exp.WriteFile(path, holidays, nil, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(content), "BEGIN:VCALENDAR") {
		t.Errorf("exported file content = %q", content)
	}
}

func TestDateRuns(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  [][2]string
	}{
		{
			name:  "SingleRun",
			dates: []string{"2025-06-01", "2025-06-02", "2025-06-03"},
			want:  [][2]string{{"2025-06-01", "2025-06-03"}},
		},
		{
			name:  "GapSplits",
			dates: []string{"2025-06-01", "2025-06-03"},
			want:  [][2]string{{"2025-06-01", "2025-06-01"}, {"2025-06-03", "2025-06-03"}},
		},
		{
			name:  "MonthBoundary",
			dates: []string{"2025-06-30", "2025-07-01"},
			want:  [][2]string{{"2025-06-30", "2025-07-01"}},
		},
		{
			name:  "MalformedSkipped",
			dates: []string{"2025-06-01", "junk", "2025-06-02"},
			want:  [][2]string{{"2025-06-01", "2025-06-02"}},
		},
		{
			name:  "Empty",
			dates: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dateRuns(tt.dates)
			if len(got) != len(tt.want) {
				t.Fatalf("dateRuns(%v) produced %d runs, want %d", tt.dates, len(got), len(tt.want))
			}
			for i, run := range got {
				start := run.start.Format("2006-01-02")
				end := run.end.Format("2006-01-02")
				if start != tt.want[i][0] || end != tt.want[i][1] {
					t.Errorf("run %d = %s..%s, want %s..%s", i, start, end, tt.want[i][0], tt.want[i][1])
				}
			}
		})
	}
}
