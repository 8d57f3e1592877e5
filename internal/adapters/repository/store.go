package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/config"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

// Store is the configured backing repository plus the connection it owns.
type Store struct {
	domain.HabitRepository
	db      *sqlx.DB
	metrics *observability.Metrics
}

// Open builds the repository selected by cfg.StoreDriver and makes sure its
// schema exists.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Store, error) {
	var db *sqlx.DB
	var err error

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return &Store{HabitRepository: NewInMemoryRepository(log)}, nil
	case config.DriverSQLite:
		db, err = OpenSQLite(cfg.SQLitePath)
	case config.DriverPostgres:
		db, err = OpenPostgres(cfg.DB.DSN())
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	repo := NewSQLRepository(db, cfg.StoreTable, log)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{HabitRepository: repo, db: db}, nil
}

// Instrument counts every load and save in m.
func (s *Store) Instrument(m *observability.Metrics) {
	s.metrics = m
}

func (s *Store) Load(ctx context.Context) ([]*domain.Habit, error) {
	habits, err := s.HabitRepository.Load(ctx)
	s.record("load", err)
	return habits, err
}

func (s *Store) Save(ctx context.Context, habits []*domain.Habit) error {
	err := s.HabitRepository.Save(ctx, habits)
	s.record("save", err)
	return err
}

func (s *Store) record(op string, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(op, err)
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
