// Package cli implements the kanso command line client. It works directly
// against the configured store, no server required.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-audit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-audit/internal/config"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
	"github.com/comitanigiacomo/kanso-audit/internal/logging"
)

// app holds what every subcommand needs once the store is open.
type app struct {
	clock  func() time.Time
	store  *repository.Store
	habits *services.HabitService
	stats  *services.StatsService
	log    logrus.FieldLogger

	driver string
	dbPath string
}

func Execute() {
	if err := NewRootCommand(time.Now).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree. clock decides what "today" is.
func NewRootCommand(clock func() time.Time) *cobra.Command {
	a := &app{clock: clock}

	root := &cobra.Command{
		Use:   "kanso",
		Short: "Brutally honest habit tracking",
		Long: `kanso tracks daily habits and tells you, without sugar-coating,
where your discipline breaks down.

Examples:
  kanso habit add "Morning run"
  kanso log run --note "rain"
  kanso log run --missed --date 2024-03-14 --note "too tired"
  kanso stats run
  kanso audit`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.driver, "driver", "", "Store driver: sqlite, postgres or memory (default from STORE_DRIVER)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default from SQLITE_PATH)")

	root.AddCommand(
		newHabitCommand(a),
		newLogCommand(a),
		newStatsCommand(a),
		newAuditCommand(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, args []string) error {
	if a.store != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.StoreDriver = a.driver
	}
	if a.dbPath != "" {
		cfg.SQLitePath = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel == "info" {
		// Keep command output clean unless asked otherwise.
		log.SetLevel(logrus.WarnLevel)
	}

	store, err := repository.Open(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open habit store: %w", err)
	}

	a.store = store
	a.log = log
	a.habits = services.NewHabitService(store, nil, a.clock)
	a.stats = services.NewStatsService(store, a.clock)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
