package workers

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Enqueuer interface {
	Enqueue(habitID string)
}

// Scheduler re-audits every habit on a cron schedule. Streaks change when
// the day rolls over even if nobody logs anything.
type Scheduler struct {
	cron  *cron.Cron
	repo  HabitLoader
	queue Enqueuer
	log   logrus.FieldLogger
}

func NewScheduler(schedule string, repo HabitLoader, queue Enqueuer, log logrus.FieldLogger) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(),
		repo:  repo,
		queue: queue,
		log:   log.WithField("component", "scheduler"),
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.AuditAll(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running audit to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// AuditAll enqueues one job per habit and returns how many were enqueued.
func (s *Scheduler) AuditAll(ctx context.Context) int {
	habits, err := s.repo.Load(ctx)
	if err != nil {
		s.log.WithError(err).Error("scheduled audit failed to load habits")
		return 0
	}
	for _, h := range habits {
		s.queue.Enqueue(h.ID)
	}
	s.log.WithField("habits", len(habits)).Info("scheduled audit enqueued")
	return len(habits)
}
