// Package reports provides daily and weekly report generation for the everyday app.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown formats a daily report as human-readable Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report · %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	s := report.Habits
	if s.TotalCount == 0 {
		b.WriteString("No habits tracked yet.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## Habits (%d/%d · %.0f%%)\n\n",
		s.CompletedCount, s.TotalCount, s.CompletionRate)

	for _, h := range s.Habits {
		mark := " "
		if h.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s", mark, h.Name)
		if h.Streak > 1 {
			fmt.Fprintf(&b, " (%d day streak)", h.Streak)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "_Generated %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as human-readable Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report · %s to %s\n\n",
		report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006"))

	w := report.Habits
	if len(w.Habits) == 0 {
		b.WriteString("No habits tracked yet.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Overall: %d/%d check-ins (%.0f%%)\n\n",
		w.TotalCompleted, w.TotalExpected, w.OverallRate)

	// One table row per habit, one column per weekday
	b.WriteString("## Habits\n\n")
	b.WriteString("| Habit | Su | Mo | Tu | We | Th | Fr | Sa | Done | Streak |\n")
	b.WriteString("|-------|----|----|----|----|----|----|----|------|--------|\n")
	for _, h := range w.Habits {
		fmt.Fprintf(&b, "| %s |", escapePipes(h.Name))
		for _, done := range h.DaysCompleted {
			if done {
				b.WriteString(" ✓ |")
			} else {
				b.WriteString(" · |")
			}
		}
		fmt.Fprintf(&b, " %d/7 | %d |\n", h.CompletedCount, h.Streak)
	}
	b.WriteString("\n")

	b.WriteString("## Daily Breakdown\n\n")
	for _, day := range report.DailyBreakdown {
		fmt.Fprintf(&b, "- %s %s: %d/%d\n",
			day.DayOfWeek, day.Date, day.HabitsComplete, day.HabitsTotal)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "_Generated %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// escapePipes keeps habit names from breaking the Markdown table.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
