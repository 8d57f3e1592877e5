package analytics

import (
	"sort"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// currentStreak counts consecutive completed days walking back from today.
// An incomplete today is skipped once so an open day does not break the run.
func currentStreak(completed map[domain.Date]bool, today domain.Date) int {
	day := today
	if !completed[day] {
		day = day.AddDays(-1)
	}

	streak := 0
	for completed[day] {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// streakWalk scans every logged date in ascending order. Continuity only
// holds between consecutive logged dates exactly one day apart, so a day
// with no log at all breaks the chain like a miss does.
//
// It returns the longest run and the run still open after the last logged
// date.
func streakWalk(logs []domain.LogEntry, completed map[domain.Date]bool) (longest, final int) {
	seen := make(map[domain.Date]bool, len(logs))
	dates := make([]domain.Date, 0, len(logs))
	for _, l := range logs {
		if !seen[l.Date] {
			seen[l.Date] = true
			dates = append(dates, l.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	run := 0
	for i, d := range dates {
		if !completed[d] {
			run = 0
			continue
		}

		if i > 0 && d.DaysSince(dates[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest, run
}
