package analytics

import (
	"sort"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// ComputeOverall scores the whole portfolio on last-7-days consistency and
// names the strongest and weakest habits.
func ComputeOverall(habits []*domain.Habit, today domain.Date) domain.AggregateStats {
	if len(habits) == 0 {
		return domain.AggregateStats{
			Best:  domain.NoHabitName,
			Worst: domain.NoHabitName,
		}
	}

	type ranked struct {
		name        string
		consistency int
	}

	ranking := make([]ranked, 0, len(habits))
	totalDone := 0.0
	for _, h := range habits {
		c := ComputeStats(h, today).WeeklyConsistency
		totalDone += float64(c) / 100 * consistencyWindowDays
		ranking = append(ranking, ranked{name: h.Name, consistency: c})
	}
	totalPossible := float64(len(habits) * consistencyWindowDays)

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].consistency > ranking[j].consistency
	})

	return domain.AggregateStats{
		Score: percent(totalDone, totalPossible),
		Total: len(habits),
		Best:  ranking[0].name,
		Worst: ranking[len(ranking)-1].name,
	}
}
