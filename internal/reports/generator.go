// Package reports provides daily and weekly report generation for the everyday app.
package reports

import (
	"time"

	"everyday/internal/dates"
	"everyday/internal/habit"
	"everyday/internal/storage"
)

// Generator creates reports from stored habit data.
type Generator struct {
	store *storage.Storage
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{store: store}
}

// GenerateDaily generates a report for a specific date. A missing data
// file yields an empty report.
func (g *Generator) GenerateDaily(date time.Time) *DailyReport {
	habits, _ := g.store.Load()
	date = startOfDay(date)

	return &DailyReport{
		Date:        date,
		Habits:      daySummary(habits, date),
		GeneratedAt: g.store.Now(),
	}
}

// GenerateWeekly generates a report for the week containing the given date.
func (g *Generator) GenerateWeekly(date time.Time) *WeeklyReport {
	habits, _ := g.store.Load()

	// Align to start of week (Sunday)
	start := startOfWeekSunday(date)
	end := start.AddDate(0, 0, 7)
	weekEnd := end.Add(-time.Nanosecond)

	var statuses []WeeklyHabitStatus
	totalCompleted := 0

	for _, h := range habits {
		daysCompleted := make([]bool, dates.WeekSpan)
		completedCount := 0
		for i := range daysCompleted {
			day := start.AddDate(0, 0, i)
			if h.CompletedOn(dates.Key(day)) {
				daysCompleted[i] = true
				completedCount++
			}
		}
		totalCompleted += completedCount

		statuses = append(statuses, WeeklyHabitStatus{
			ID:             h.ID,
			Name:           h.DisplayName(),
			Color:          string(h.Color),
			DaysCompleted:  daysCompleted,
			CompletedCount: completedCount,
			CompletionRate: percentage(completedCount, dates.WeekSpan),
			Streak:         h.StreakAt(weekEnd),
			BestStreak:     h.BestStreak(),
		})
	}

	totalExpected := len(habits) * dates.WeekSpan

	breakdown := make([]DailySummary, 0, dates.WeekSpan)
	for i := 0; i < dates.WeekSpan; i++ {
		day := start.AddDate(0, 0, i)
		summary := daySummary(habits, day)
		breakdown = append(breakdown, DailySummary{
			Date:           dates.Key(day),
			DayOfWeek:      day.Format("Mon"),
			HabitsComplete: summary.CompletedCount,
			HabitsTotal:    summary.TotalCount,
		})
	}

	return &WeeklyReport{
		StartDate:      start,
		EndDate:        weekEnd,
		Habits: WeeklyHabits{
			Habits:         statuses,
			OverallRate:    percentage(totalCompleted, totalExpected),
			TotalCompleted: totalCompleted,
			TotalExpected:  totalExpected,
		},
		DailyBreakdown: breakdown,
		GeneratedAt:    g.store.Now(),
	}
}

// daySummary returns habit statistics for a specific date.
func daySummary(habits []habit.Habit, date time.Time) HabitSummary {
	key := dates.Key(date)
	var statuses []HabitStatus
	completed := 0

	for _, h := range habits {
		done := h.CompletedOn(key)
		if done {
			completed++
		}
		statuses = append(statuses, HabitStatus{
			ID:         h.ID,
			Name:       h.DisplayName(),
			Color:      string(h.Color),
			Done:       done,
			Streak:     h.StreakAt(date),
			BestStreak: h.BestStreak(),
		})
	}

	return HabitSummary{
		Habits:         statuses,
		CompletedCount: completed,
		TotalCount:     len(statuses),
		CompletionRate: percentage(completed, len(statuses)),
	}
}

// Helper functions

// startOfDay returns the start of the day (midnight).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeekSunday returns the start of the week (Sunday).
func startOfWeekSunday(t time.Time) time.Time {
	t = startOfDay(t)
	weekday := int(t.Weekday())
	return t.AddDate(0, 0, -weekday)
}

func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
