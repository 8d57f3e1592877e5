package domain

import "sort"

type TimeRange string

const (
	TimeRangeMorning       TimeRange = "Morning"
	TimeRangeAfternoon     TimeRange = "Afternoon"
	TimeRangeNight         TimeRange = "Night"
	TimeRangeNotApplicable TimeRange = "N/A"
)

// HabitStats is derived from a habit's logs on every request and never stored.
type HabitStats struct {
	CurrentStreak       int            `json:"current_streak"`
	LongestStreak       int            `json:"longest_streak"`
	WeeklyConsistency   int            `json:"weekly_consistency"`
	TotalCompletions    int            `json:"total_completions"`
	TotalMisses         int            `json:"total_misses"`
	MostMissedWeekday   string         `json:"most_missed_weekday,omitempty"`
	MostCommonTimeRange TimeRange      `json:"most_common_time_range"`
	ExcuseFrequency     map[string]int `json:"excuse_frequency"`
	Insights            []string       `json:"insights"`
}

type ExcuseCount struct {
	Excuse string `json:"excuse"`
	Count  int    `json:"count"`
}

// TopExcuses returns up to n excuses, most frequent first. Equal counts
// are ordered alphabetically.
func (s HabitStats) TopExcuses(n int) []ExcuseCount {
	out := make([]ExcuseCount, 0, len(s.ExcuseFrequency))
	for excuse, count := range s.ExcuseFrequency {
		out = append(out, ExcuseCount{Excuse: excuse, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Excuse < out[j].Excuse
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

const NoHabitName = "None"

type AggregateStats struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Best  string `json:"best"`
	Worst string `json:"worst"`
}

// HabitReport is the single-habit view: identity plus its statistics.
type HabitReport struct {
	HabitID    string        `json:"habit_id"`
	HabitName  string        `json:"habit_name"`
	AsOf       Date          `json:"as_of"`
	Stats      HabitStats    `json:"stats"`
	TopExcuses []ExcuseCount `json:"top_excuses"`
}
