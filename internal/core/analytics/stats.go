// Package analytics derives statistics from habit log histories.
//
// Every function is pure: the result depends only on the arguments,
// including the calendar day treated as "today". Habits must be well formed
// (every log has a non-zero Date, at most one log per Date); malformed
// input is not detected.
package analytics

import (
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// ComputeStats derives the statistics of a single habit as of today.
func ComputeStats(habit *domain.Habit, today domain.Date) domain.HabitStats {
	var completions, misses []domain.LogEntry
	completed := make(map[domain.Date]bool)

	for _, l := range habit.Logs {
		switch l.Status {
		case domain.StatusCompleted:
			completions = append(completions, l)
			completed[l.Date] = true
		case domain.StatusMissed:
			misses = append(misses, l)
		}
	}

	longest, finalRun := streakWalk(habit.Logs, completed)

	stats := domain.HabitStats{
		CurrentStreak:       currentStreak(completed, today),
		LongestStreak:       longest,
		WeeklyConsistency:   weeklyConsistency(completed, today),
		TotalCompletions:    len(completions),
		TotalMisses:         len(misses),
		MostMissedWeekday:   mostMissedWeekday(misses),
		MostCommonTimeRange: mostCommonTimeRange(completions),
		ExcuseFrequency:     excuseFrequency(misses),
	}
	stats.Insights = buildInsights(insightInput{stats: stats, finalRun: finalRun})

	return stats
}
