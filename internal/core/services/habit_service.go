package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// AuditQueue receives habit ids whose statistics may have changed.
type AuditQueue interface {
	Enqueue(habitID string)
	Forget(habitID string)
}

type HabitService struct {
	repo  domain.HabitRepository
	audit AuditQueue
	clock func() time.Time

	// Every write loads the whole collection, changes it and saves it back.
	mu sync.Mutex
}

// NewHabitService wires the service. audit may be nil.
func NewHabitService(repo domain.HabitRepository, audit AuditQueue, clock func() time.Time) *HabitService {
	if clock == nil {
		clock = time.Now
	}
	return &HabitService{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

type LogActivityInput struct {
	HabitID string
	Status  string
	Date    *domain.Date
	Time    *domain.ClockTime
	Note    string
}

func (s *HabitService) Create(ctx context.Context, name string) (*domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(name, habits, s.clock())
	if err != nil {
		return nil, err
	}

	// Newest first.
	habits = append([]*domain.Habit{habit}, habits...)
	if err := s.repo.Save(ctx, habits); err != nil {
		return nil, fmt.Errorf("saving new habit: %w", err)
	}

	s.enqueue(habit.ID)
	return habit.Clone(), nil
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	habits, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out, nil
}

func (s *HabitService) Get(ctx context.Context, id string) (*domain.Habit, error) {
	habits, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	h, _ := find(habits, id)
	if h == nil {
		return nil, domain.ErrHabitNotFound
	}
	return h.Clone(), nil
}

func (s *HabitService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	_, idx := find(habits, id)
	if idx < 0 {
		return domain.ErrHabitNotFound
	}

	habits = append(habits[:idx], habits[idx+1:]...)
	if err := s.repo.Save(ctx, habits); err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}

	if s.audit != nil {
		s.audit.Forget(id)
	}
	return nil
}

// LogActivity records a completion or a miss for one day, replacing any
// entry already present for that day. A completion without an explicit
// time is stamped with the current time of day.
func (s *HabitService) LogActivity(ctx context.Context, input LogActivityInput) (*domain.Habit, error) {
	status, err := domain.ParseLogStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	today := domain.DateOf(now)

	date := today
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}
	if date.After(today) {
		return nil, domain.ErrLogDateInFuture
	}

	at := input.Time
	if at == nil && status == domain.StatusCompleted {
		c := domain.ClockOf(now)
		at = &c
	}

	entry, err := domain.NewLogEntry(date, status, at, input.Note, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	habit, _ := find(habits, input.HabitID)
	if habit == nil {
		return nil, domain.ErrHabitNotFound
	}

	habit.UpsertLog(entry)
	if err := s.repo.Save(ctx, habits); err != nil {
		return nil, fmt.Errorf("saving log for habit %s: %w", habit.ID, err)
	}

	s.enqueue(habit.ID)
	return habit.Clone(), nil
}

func (s *HabitService) enqueue(id string) {
	if s.audit != nil {
		s.audit.Enqueue(id)
	}
}

func find(habits []*domain.Habit, id string) (*domain.Habit, int) {
	for i, h := range habits {
		if h.ID == id {
			return h, i
		}
	}
	return nil, -1
}
