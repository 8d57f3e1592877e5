package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-audit/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

func newHabitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage tracked habits",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Start tracking a habit",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.habits.Create(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s (%s)\n", h.Name, shortID(h.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List habits, newest first",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHabitList(cmd, a)
			},
		},
		&cobra.Command{
			Use:     "rm <habit>",
			Aliases: []string{"delete"},
			Short:   "Stop tracking a habit and drop its history",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.find(cmd, args[0])
				if err != nil {
					return err
				}
				if err := a.habits.Delete(cmd.Context(), h.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", h.Name)
				return nil
			},
		},
	)
	return cmd
}

func runHabitList(cmd *cobra.Command, a *app) error {
	habits, err := a.habits.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(habits) == 0 {
		fmt.Fprintln(out, "No habits yet. Add one with: kanso habit add <name>")
		return nil
	}

	today := domain.DateOf(a.clock())
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		s := analytics.ComputeStats(h, today)
		rows = append(rows, []string{
			shortID(h.ID),
			h.Name,
			fmt.Sprintf("%d", s.CurrentStreak),
			fmt.Sprintf("%d%%", s.WeeklyConsistency),
			fmt.Sprintf("%d", len(h.Logs)),
		})
	}

	fmt.Fprintln(out, renderTable([]string{"ID", "HABIT", "STREAK", "7 DAYS", "LOGS"}, rows))
	return nil
}

func (a *app) find(cmd *cobra.Command, ref string) (*domain.Habit, error) {
	habits, err := a.habits.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	return resolveHabit(habits, ref)
}
