package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var _ domain.HabitRepository = (*SQLRepository)(nil)

// SQLRepository stores the whole collection as one JSON value in a
// key/value table. The same queries run on SQLite and Postgres.
type SQLRepository struct {
	db    *sqlx.DB
	table string
	key   string
	log   logrus.FieldLogger
}

func NewSQLRepository(db *sqlx.DB, table string, log logrus.FieldLogger) *SQLRepository {
	return &SQLRepository{
		db:    db,
		table: pq.QuoteIdentifier(table),
		key:   domain.StorageKey,
		log:   log,
	}
}

func OpenSQLite(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	return db, nil
}

func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            key        TEXT PRIMARY KEY,
            value      TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        )`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLRepository) Load(ctx context.Context) ([]*domain.Habit, error) {
	query := r.db.Rebind(fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, r.table))

	var value string
	err := r.db.GetContext(ctx, &value, query, r.key)
	if errors.Is(err, sql.ErrNoRows) {
		return []*domain.Habit{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}

	return decodeHabits([]byte(value), r.log), nil
}

func (r *SQLRepository) Save(ctx context.Context, habits []*domain.Habit) error {
	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}

	query := r.db.Rebind(fmt.Sprintf(`
        INSERT INTO %s (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (key) DO UPDATE
        SET value = excluded.value, updated_at = excluded.updated_at`, r.table))

	if _, err := r.db.ExecContext(ctx, query, r.key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
