package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

func parseAsOf(raw string) (*domain.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func newStatsCommand(a *app) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "stats <habit>",
		Short: "Show the statistics and insights of one habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			h, err := a.find(cmd, args[0])
			if err != nil {
				return err
			}

			report, err := a.stats.HabitStats(cmd.Context(), h.ID, day)
			if err != nil {
				return err
			}
			writeReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Compute as if today were this day (YYYY-MM-DD)")
	return cmd
}

func newAuditCommand(a *app) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Score the whole portfolio over the last 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			overall, err := a.stats.Overall(cmd.Context(), day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d%% across %s\n",
				titleStyle.Render("Score"), overall.Score, plural(overall.Total, "habit"))
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("Strongest"), overall.Best)
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("Weakest"), overall.Worst)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Compute as if today were this day (YYYY-MM-DD)")
	return cmd
}
