package dateutil

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"Valid date",
			"2025-06-01",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"End of year",
			"2027-12-31",
			time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC),
			false,
		},
		{"Missing zero padding", "2025-6-1", time.Time{}, true},
		{"Not a date", "yesterday", time.Time{}, true},
		{"Empty string", "", time.Time{}, true},
		{"Date with time", "2025-06-01T10:00:00", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseISODate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseISODate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsISODate(t *testing.T) {
	if !IsISODate("2024-01-01") {
		t.Error("IsISODate(2024-01-01) = false, want true")
	}
	if IsISODate("01.06.2025") {
		t.Error("IsISODate(01.06.2025) = true, want false")
	}
}

func TestISODate(t *testing.T) {
	got := ISODate(2025, time.June, 1)
	if got != "2025-06-01" {
		t.Errorf("ISODate(2025, June, 1) = %q, want %q", got, "2025-06-01")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"June has 30 days", 2025, time.June, 30},
		{"July has 31 days", 2025, time.July, 31},
		{"February non-leap", 2025, time.February, 28},
		{"February leap year", 2024, time.February, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysInMonth(tt.year, tt.month)
			if got != tt.want {
				t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	if got := MonthStart(2025, time.June); got != "2025-06-01" {
		t.Errorf("MonthStart = %q, want 2025-06-01", got)
	}
	if got := MonthEnd(2025, time.June); got != "2025-06-30" {
		t.Errorf("MonthEnd = %q, want 2025-06-30", got)
	}
	if got := MonthEnd(2024, time.February); got != "2024-02-29" {
		t.Errorf("MonthEnd leap = %q, want 2024-02-29", got)
	}
}

func TestFirstWeekday(t *testing.T) {
	// June 1st 2025 is a Sunday
	if got := FirstWeekday(2025, time.June); got != 0 {
		t.Errorf("FirstWeekday(2025, June) = %d, want 0", got)
	}
	// May 1st 2025 is a Thursday
	if got := FirstWeekday(2025, time.May); got != 4 {
		t.Errorf("FirstWeekday(2025, May) = %d, want 4", got)
	}
}

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}
