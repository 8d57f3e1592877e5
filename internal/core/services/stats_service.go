package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-audit/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

const topExcuseCount = 3

type StatsService struct {
	repo  domain.HabitRepository
	clock func() time.Time
}

func NewStatsService(repo domain.HabitRepository, clock func() time.Time) *StatsService {
	if clock == nil {
		clock = time.Now
	}
	return &StatsService{
		repo:  repo,
		clock: clock,
	}
}

// Today is the calendar day, in local time, that statistics are computed for
// when the caller gives no explicit date.
func (s *StatsService) Today() domain.Date {
	return domain.DateOf(s.clock())
}

func (s *StatsService) resolve(asOf *domain.Date) domain.Date {
	if asOf != nil && !asOf.IsZero() {
		return *asOf
	}
	return s.Today()
}

func (s *StatsService) HabitStats(ctx context.Context, id string, asOf *domain.Date) (*domain.HabitReport, error) {
	habits, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	habit, _ := find(habits, id)
	if habit == nil {
		return nil, domain.ErrHabitNotFound
	}

	day := s.resolve(asOf)
	stats := analytics.ComputeStats(habit, day)

	return &domain.HabitReport{
		HabitID:    habit.ID,
		HabitName:  habit.Name,
		AsOf:       day,
		Stats:      stats,
		TopExcuses: stats.TopExcuses(topExcuseCount),
	}, nil
}

func (s *StatsService) Overall(ctx context.Context, asOf *domain.Date) (domain.AggregateStats, error) {
	habits, err := s.repo.Load(ctx)
	if err != nil {
		return domain.AggregateStats{}, err
	}
	return analytics.ComputeOverall(habits, s.resolve(asOf)), nil
}
