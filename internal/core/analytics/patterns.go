package analytics

import (
	"strings"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

const consistencyWindowDays = 7

// percent mirrors round((num / den) * 100) with halves rounding up.
func percent(num, den float64) int {
	if den == 0 {
		return 0
	}
	return roundHalfUp(num / den * 100)
}

func roundHalfUp(v float64) int {
	f := float64(int(v))
	if v-f >= 0.5 {
		return int(f) + 1
	}
	return int(f)
}

// weeklyConsistency is the share of the window [today-6, today] with a
// completion.
func weeklyConsistency(completed map[domain.Date]bool, today domain.Date) int {
	done := 0
	for i := 0; i < consistencyWindowDays; i++ {
		if completed[today.AddDays(-i)] {
			done++
		}
	}
	return percent(float64(done), consistencyWindowDays)
}

// orderedCounter counts keys and remembers first-seen order for tie breaks.
type orderedCounter struct {
	order  []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the key with the highest count, the earliest seen on ties.
func (c *orderedCounter) top() (string, bool) {
	best, bestCount := "", 0
	for _, k := range c.order {
		if c.counts[k] > bestCount {
			best, bestCount = k, c.counts[k]
		}
	}
	return best, bestCount > 0
}

func mostMissedWeekday(misses []domain.LogEntry) string {
	counter := newOrderedCounter()
	for _, m := range misses {
		counter.add(m.Date.Weekday().String())
	}
	day, _ := counter.top()
	return day
}

func timeRangeOf(c domain.ClockTime) domain.TimeRange {
	switch {
	case c.Hour >= 5 && c.Hour < 12:
		return domain.TimeRangeMorning
	case c.Hour >= 12 && c.Hour < 18:
		return domain.TimeRangeAfternoon
	default:
		return domain.TimeRangeNight
	}
}

func mostCommonTimeRange(completions []domain.LogEntry) domain.TimeRange {
	counter := newOrderedCounter()
	// Seed the fixed order so ties resolve Morning, Afternoon, Night.
	for _, r := range []domain.TimeRange{domain.TimeRangeMorning, domain.TimeRangeAfternoon, domain.TimeRangeNight} {
		counter.order = append(counter.order, string(r))
		counter.counts[string(r)] = 0
	}

	for _, c := range completions {
		if c.Time != nil {
			counter.add(string(timeRangeOf(*c.Time)))
		}
	}

	r, ok := counter.top()
	if !ok {
		return domain.TimeRangeNotApplicable
	}
	return domain.TimeRange(r)
}

func normalizeExcuse(note string) string {
	return strings.ToLower(strings.TrimSpace(note))
}

func excuseFrequency(misses []domain.LogEntry) map[string]int {
	freq := make(map[string]int)
	for _, m := range misses {
		excuse := normalizeExcuse(m.Note)
		if excuse == "" {
			continue
		}
		freq[excuse]++
	}
	return freq
}
