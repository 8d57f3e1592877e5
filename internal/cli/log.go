package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
)

func newLogCommand(a *app) *cobra.Command {
	var (
		missed bool
		date   string
		at     string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "log <habit>",
		Short: "Record a completion (or a miss) for one day",
		Long: `Record what happened with a habit on one day. Logging the same day
again replaces the earlier entry.

Examples:
  kanso log run                               # completed today, now
  kanso log run --time 06:30                  # completed today at 06:30
  kanso log run --missed --note "too tired"   # missed today
  kanso log run --date 2024-03-14 --missed    # missed yesterday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.find(cmd, args[0])
			if err != nil {
				return err
			}

			input := services.LogActivityInput{
				HabitID: h.ID,
				Status:  string(domain.StatusCompleted),
				Note:    note,
			}
			if missed {
				input.Status = string(domain.StatusMissed)
			}
			if date != "" {
				d, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				input.Date = &d
			}
			if at != "" {
				t, err := domain.ParseClock(at)
				if err != nil {
					return err
				}
				input.Time = &t
			}

			updated, err := a.habits.LogActivity(cmd.Context(), input)
			if err != nil {
				return err
			}

			entry := updated.Logs[len(updated.Logs)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %s on %s\n", entry.Status, updated.Name, entry.Date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&missed, "missed", false, "Record a miss instead of a completion")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to log (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&at, "time", "t", "", "Time of completion (HH:MM, default now)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Note or excuse")
	return cmd
}
