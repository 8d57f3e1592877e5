package analytics

import (
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

const (
	lowConsistencyThreshold = 30
	pushLengthThreshold     = 5
)

// insightInput is everything the rules look at.
type insightInput struct {
	stats    domain.HabitStats
	finalRun int
}

type insightRule struct {
	name    string
	applies func(in insightInput) bool
	message func(in insightInput) string
}

// insightRules are evaluated in this order and every matching rule adds
// its message. Callers and tests rely on the order.
var insightRules = []insightRule{
	{
		name:    "weekday_failure",
		applies: func(in insightInput) bool { return in.stats.MostMissedWeekday != "" },
		message: func(in insightInput) string {
			return fmt.Sprintf("Your discipline reliably fails on %ss.", in.stats.MostMissedWeekday)
		},
	},
	{
		name:    "time_of_day",
		applies: func(in insightInput) bool { return in.stats.MostCommonTimeRange != domain.TimeRangeNotApplicable },
		message: func(in insightInput) string {
			return fmt.Sprintf("You are a %s performer. Attempting this at other times likely leads to failure.",
				strings.ToLower(string(in.stats.MostCommonTimeRange)))
		},
	},
	{
		name:    "wish_not_habit",
		applies: func(in insightInput) bool { return in.stats.TotalMisses > in.stats.TotalCompletions },
		message: func(in insightInput) string {
			rate := percent(float64(in.stats.TotalMisses), float64(in.stats.TotalMisses+in.stats.TotalCompletions))
			return fmt.Sprintf("This is currently more of a wish than a habit. Your failure rate is %d%%.", rate)
		},
	},
	{
		name: "at_peak",
		applies: func(in insightInput) bool {
			return in.stats.CurrentStreak > 0 && in.stats.CurrentStreak == in.stats.LongestStreak
		},
		message: func(insightInput) string {
			return "You are at your peak. Expect a regression soon if you don't stay vigilant."
		},
	},
	{
		name:    "no_consistency",
		applies: func(in insightInput) bool { return in.stats.WeeklyConsistency < lowConsistencyThreshold },
		message: func(insightInput) string {
			return "Consistency is non-existent. You are essentially starting from zero every week."
		},
	},
	{
		// Reads the run still open at the last logged date, not the longest run.
		name:    "push_then_drop",
		applies: func(in insightInput) bool { return in.finalRun > pushLengthThreshold },
		message: func(insightInput) string {
			return "Pattern detected: Your consistency often drops significantly after a 5-day push."
		},
	},
}

func buildInsights(in insightInput) []string {
	insights := make([]string, 0, len(insightRules))
	for _, rule := range insightRules {
		if rule.applies(in) {
			insights = append(insights, rule.message(in))
		}
	}
	return insights
}
