// Package observability exposes the Prometheus metrics of the service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StoreOperationsTotal *prometheus.CounterVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter

	AuditJobsTotal     *prometheus.CounterVec
	AuditQueueDropped  prometheus.Counter
	HabitCurrentStreak *prometheus.GaugeVec
	HabitLongestStreak *prometheus.GaugeVec
	HabitConsistency   *prometheus.GaugeVec
	PortfolioScore     prometheus.Gauge
	HabitsTotal        prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on registry. A nil
// registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	habitLabels := []string{"habit_id", "habit"}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanso_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kanso_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanso_store_operations_total",
				Help: "Habit store loads and saves",
			},
			[]string{"operation", "status"},
		),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_cache_hits_total",
			Help: "Habit collection reads served from Redis",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_cache_misses_total",
			Help: "Habit collection reads that fell through to the store",
		}),
		AuditJobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kanso_audit_jobs_total",
				Help: "Audit jobs processed by the background worker",
			},
			[]string{"status"},
		),
		AuditQueueDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_audit_queue_dropped_total",
			Help: "Audit jobs dropped because the queue was full",
		}),
		HabitCurrentStreak: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kanso_habit_current_streak",
			Help: "Current streak in days",
		}, habitLabels),
		HabitLongestStreak: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kanso_habit_longest_streak",
			Help: "Longest streak in days",
		}, habitLabels),
		HabitConsistency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kanso_habit_weekly_consistency",
			Help: "Percentage of the last 7 days completed",
		}, habitLabels),
		PortfolioScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kanso_portfolio_score",
			Help: "Aggregate last-7-days score across all habits",
		}),
		HabitsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kanso_habits_total",
			Help: "Number of tracked habits",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StoreOperationsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.AuditJobsTotal,
		m.AuditQueueDropped,
		m.HabitCurrentStreak,
		m.HabitLongestStreak,
		m.HabitConsistency,
		m.PortfolioScore,
		m.HabitsTotal,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordStoreOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StoreOperationsTotal.WithLabelValues(op, status).Inc()
}

// SetHabit publishes the derived statistics of one habit.
func (m *Metrics) SetHabit(id, name string, current, longest, consistency int) {
	m.HabitCurrentStreak.WithLabelValues(id, name).Set(float64(current))
	m.HabitLongestStreak.WithLabelValues(id, name).Set(float64(longest))
	m.HabitConsistency.WithLabelValues(id, name).Set(float64(consistency))
}

// ForgetHabit drops every series labelled with the habit id.
func (m *Metrics) ForgetHabit(id string) {
	match := prometheus.Labels{"habit_id": id}
	m.HabitCurrentStreak.DeletePartialMatch(match)
	m.HabitLongestStreak.DeletePartialMatch(match)
	m.HabitConsistency.DeletePartialMatch(match)
}

// GinMiddleware records request counts and latency by route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
