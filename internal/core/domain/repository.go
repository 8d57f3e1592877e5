package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

// StorageKey is the fixed key the habit collection is stored under.
const StorageKey = "brutally_honest_habits"

type HabitRepository interface {
	// Load returns the whole habit collection. A missing or unreadable
	// blob yields an empty collection and no error.
	Load(ctx context.Context) ([]*Habit, error)

	// Save replaces the stored collection.
	Save(ctx context.Context, habits []*Habit) error
}
