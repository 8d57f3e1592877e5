package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("name is required")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitAlreadyExists = errors.New("habit already exists")
)

const MaxNameLen = 100

// Habit JSON tags mirror the stored blob format, hence camelCase.
type Habit struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	Logs      []LogEntry `json:"logs"`
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

// NewHabit validates the name against the existing collection and returns
// a habit with no logs.
func NewHabit(name string, existing []*Habit, now time.Time) (*Habit, error) {
	clean, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	for _, h := range existing {
		if strings.EqualFold(h.Name, clean) {
			return nil, ErrHabitAlreadyExists
		}
	}

	return &Habit{
		ID:        uuid.New().String(),
		Name:      clean,
		CreatedAt: now.UTC(),
		Logs:      []LogEntry{},
	}, nil
}

// UpsertLog replaces any entry already recorded for entry.Date. The new
// entry goes to the end of the list.
func (h *Habit) UpsertLog(entry LogEntry) {
	kept := make([]LogEntry, 0, len(h.Logs)+1)
	for _, l := range h.Logs {
		if l.Date != entry.Date {
			kept = append(kept, l)
		}
	}
	h.Logs = append(kept, entry)
}

func (h *Habit) LogFor(date Date) (LogEntry, bool) {
	for _, l := range h.Logs {
		if l.Date == date {
			return l, true
		}
	}
	return LogEntry{}, false
}

// Clone returns a deep copy so callers can hand out snapshots.
func (h *Habit) Clone() *Habit {
	c := *h
	c.Logs = make([]LogEntry, len(h.Logs))
	for i, l := range h.Logs {
		if l.Time != nil {
			t := *l.Time
			l.Time = &t
		}
		c.Logs[i] = l
	}
	return &c
}
