// Package dates provides calendar-day helpers for habit tracking.
// A day is identified by its date-key, the local-date string YYYY-MM-DD.
package dates

import "time"

// Spans of the two habit views.
const (
	// WeekSpan is the number of days shown in the weekly view.
	WeekSpan = 7
	// GridWeeks is the number of weeks shown in the grid overview.
	GridWeeks = 18
	// GridSpan is the number of days shown in the grid overview.
	GridSpan = GridWeeks * 7
)

const keyLayout = "2006-01-02"

// Key returns the date-key for the local calendar day of t.
func Key(t time.Time) string {
	return t.Format(keyLayout)
}

// Parse converts a date-key back into a time, midnight UTC. The inverse of
// Key for the date part.
func Parse(key string) (time.Time, error) {
	return time.Parse(keyLayout, key)
}

// Range returns count consecutive calendar days ending on the day of end,
// oldest first: index 0 lies count-1 days back, the last index is end's own
// day. A count of zero or less yields nil.
func Range(end time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	days := make([]time.Time, 0, count)
	for i := count - 1; i >= 0; i-- {
		days = append(days, end.AddDate(0, 0, -i))
	}
	return days
}
