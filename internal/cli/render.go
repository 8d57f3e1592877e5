package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

const noInsights = "Analysis pending more data points."

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	insightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func orDash(s string) string {
	if s == "" || s == string(domain.TimeRangeNotApplicable) {
		return "-"
	}
	return s
}

func writeReport(w io.Writer, r *domain.HabitReport) {
	s := r.Stats
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.HabitName))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  as of %s", r.AsOf)))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Current streak", plural(s.CurrentStreak, "day"))
	line("Longest streak", plural(s.LongestStreak, "day"))
	line("Last 7 days", fmt.Sprintf("%d%%", s.WeeklyConsistency))
	line("Completions", fmt.Sprintf("%d", s.TotalCompletions))
	line("Misses", fmt.Sprintf("%d", s.TotalMisses))
	line("Most missed day", orDash(s.MostMissedWeekday))
	line("Usual time", orDash(string(s.MostCommonTimeRange)))

	if len(r.TopExcuses) > 0 {
		b.WriteString(sectionStyle.Render("Common excuses"))
		b.WriteString("\n")
		for _, e := range r.TopExcuses {
			fmt.Fprintf(&b, "  %q x%d\n", e.Excuse, e.Count)
		}
	}

	b.WriteString(sectionStyle.Render("Insights"))
	b.WriteString("\n")
	if len(s.Insights) == 0 {
		b.WriteString("  " + subtleStyle.Render(noInsights) + "\n")
	}
	for _, insight := range s.Insights {
		b.WriteString("  " + insightStyle.Render(insight) + "\n")
	}

	fmt.Fprint(w, b.String())
}
