package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

type HabitLoader interface {
	Load(ctx context.Context) ([]*domain.Habit, error)
}

type AuditJob struct {
	HabitID string
}

// AuditWorker recomputes a habit's statistics off the request path and
// publishes them as Prometheus gauges. Nothing it computes is stored.
type AuditWorker struct {
	repo    HabitLoader
	metrics *observability.Metrics
	clock   func() time.Time
	log     logrus.FieldLogger
	jobs    chan AuditJob
	done    chan struct{}

	// forgotten holds deleted habit ids. A job that loaded the collection
	// before the delete must not publish them again.
	mu        sync.Mutex
	forgotten map[string]struct{}
}

func NewAuditWorker(repo HabitLoader, metrics *observability.Metrics, clock func() time.Time, log logrus.FieldLogger, queueSize int) *AuditWorker {
	if clock == nil {
		clock = time.Now
	}
	if queueSize < 1 {
		queueSize = 100
	}
	return &AuditWorker{
		repo:      repo,
		metrics:   metrics,
		clock:     clock,
		log:       log.WithField("component", "audit_worker"),
		jobs:      make(chan AuditJob, queueSize),
		done:      make(chan struct{}),
		forgotten: make(map[string]struct{}),
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.log.Info("audit worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("audit worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker loop has returned.
func (w *AuditWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks. When the queue is full the job is dropped; the next
// scheduled audit catches up.
func (w *AuditWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- AuditJob{HabitID: habitID}:
	default:
		w.metrics.AuditQueueDropped.Inc()
		w.log.WithField("habit_id", habitID).Warn("audit queue full, dropping job")
	}
}

func (w *AuditWorker) Forget(habitID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.forgotten[habitID] = struct{}{}
	w.metrics.ForgetHabit(habitID)
}

func (w *AuditWorker) processJob(ctx context.Context, job AuditJob) {
	habits, err := w.repo.Load(ctx)
	if err != nil {
		w.metrics.AuditJobsTotal.WithLabelValues("error").Inc()
		w.log.WithError(err).WithField("habit_id", job.HabitID).Error("failed to load habits")
		return
	}

	today := domain.DateOf(w.clock())

	overall := analytics.ComputeOverall(habits, today)
	w.metrics.PortfolioScore.Set(float64(overall.Score))
	w.metrics.HabitsTotal.Set(float64(overall.Total))

	var habit *domain.Habit
	for _, h := range habits {
		if h.ID == job.HabitID {
			habit = h
			break
		}
	}
	if habit == nil {
		w.metrics.ForgetHabit(job.HabitID)
		w.metrics.AuditJobsTotal.WithLabelValues("missing").Inc()
		w.log.WithField("habit_id", job.HabitID).Debug("habit no longer exists")
		return
	}

	stats := analytics.ComputeStats(habit, today)

	w.mu.Lock()
	if _, gone := w.forgotten[habit.ID]; gone {
		w.mu.Unlock()
		w.metrics.AuditJobsTotal.WithLabelValues("missing").Inc()
		w.log.WithField("habit_id", habit.ID).Debug("habit deleted during audit")
		return
	}
	w.metrics.SetHabit(habit.ID, habit.Name, stats.CurrentStreak, stats.LongestStreak, stats.WeeklyConsistency)
	w.mu.Unlock()
	w.metrics.AuditJobsTotal.WithLabelValues("ok").Inc()

	w.log.WithFields(logrus.Fields{
		"habit":       habit.Name,
		"current":     stats.CurrentStreak,
		"longest":     stats.LongestStreak,
		"consistency": stats.WeeklyConsistency,
	}).Debug("habit audited")
}
