package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose reachability /health reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const (
	StatusConnected   = "connected"
	StatusUnreachable = "unreachable"
	StatusDisabled    = "disabled"
)

// HealthChecker reports the store and cache status. A nil dependency is
// reported as disabled and does not make the service unhealthy.
type HealthChecker struct {
	store     Pinger
	cache     Pinger
	startTime time.Time
}

func NewHealthChecker(store, cache Pinger, startTime time.Time) *HealthChecker {
	return &HealthChecker{store: store, cache: cache, startTime: startTime}
}

func status(ctx context.Context, p Pinger) string {
	if p == nil {
		return StatusDisabled
	}
	if err := p.Ping(ctx); err != nil {
		return StatusUnreachable
	}
	return StatusConnected
}

func (h *HealthChecker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	storeStatus := status(ctx, h.store)
	cacheStatus := status(ctx, h.cache)

	code := http.StatusOK
	overall := "ok"
	if storeStatus == StatusUnreachable || cacheStatus == StatusUnreachable {
		code = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(code, gin.H{
		"status":   overall,
		"database": storeStatus,
		"redis":    cacheStatus,
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
	})
}
