package dates

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "plain date",
			in:   time.Date(2025, 11, 23, 14, 30, 0, 0, time.Local),
			want: "2025-11-23",
		},
		{
			name: "single digit month and day are zero padded",
			in:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.Local),
			want: "2025-03-07",
		},
		{
			name: "one nanosecond before midnight stays on the same day",
			in:   time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.Local),
			want: "2025-12-31",
		},
		{
			name: "midnight belongs to the new day",
			in:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local),
			want: "2026-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-11-23")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.November || got.Day() != 23 {
		t.Errorf("Parse() = %v, want 2025-11-23", got)
	}
	if Key(got.UTC()) != "2025-11-23" {
		t.Errorf("Key(Parse(k)) = %q, want the original key", Key(got.UTC()))
	}

	for _, bad := range []string{"", "not-a-date", "2025-13-40", "23-11-2025"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) accepted an invalid key", bad)
		}
	}
}

func TestRange(t *testing.T) {
	end := time.Date(2025, 11, 23, 9, 15, 0, 0, time.Local)

	days := Range(end, WeekSpan)
	if len(days) != WeekSpan {
		t.Fatalf("Range() returned %d days, want %d", len(days), WeekSpan)
	}
	if got := Key(days[0]); got != "2025-11-17" {
		t.Errorf("first day = %q, want %q", got, "2025-11-17")
	}
	if got := Key(days[len(days)-1]); got != "2025-11-23" {
		t.Errorf("last day = %q, want %q", got, "2025-11-23")
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			t.Errorf("days[%d] is not after days[%d]", i, i-1)
		}
	}
}

func TestRangeCrossesMonthBoundary(t *testing.T) {
	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	days := Range(end, 3)
	want := []string{"2024-02-28", "2024-02-29", "2024-03-01"} // leap year
	if len(days) != len(want) {
		t.Fatalf("Range() returned %d days, want %d", len(days), len(want))
	}
	for i, w := range want {
		if got := Key(days[i]); got != w {
			t.Errorf("days[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestRangeSingleDay(t *testing.T) {
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	days := Range(end, 1)
	if len(days) != 1 {
		t.Fatalf("Range() returned %d days, want 1", len(days))
	}
	if got := Key(days[0]); got != "2025-06-01" {
		t.Errorf("days[0] = %q, want %q", got, "2025-06-01")
	}
}

func TestRangeNonPositiveCount(t *testing.T) {
	end := time.Now()

	if got := Range(end, 0); got != nil {
		t.Errorf("Range(end, 0) = %v, want nil", got)
	}
	if got := Range(end, -3); got != nil {
		t.Errorf("Range(end, -3) = %v, want nil", got)
	}
}

func TestGridSpanIsEighteenWeeks(t *testing.T) {
	if GridSpan != 126 {
		t.Errorf("GridSpan = %d, want 126", GridSpan)
	}
	if GridSpan != GridWeeks*7 {
		t.Errorf("GridSpan = %d, want GridWeeks*7 = %d", GridSpan, GridWeeks*7)
	}
}
