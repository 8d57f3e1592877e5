package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

type RouterDependencies struct {
	HabitHandler *HabitHandler
	LogHandler   *LogHandler
	StatsHandler *StatsHandler
	Health       *observability.HealthChecker
	Metrics      *observability.Metrics
	Redis        *redis.Client
	Logger       logrus.FieldLogger
	APIToken     string
	RateLimit    int
	RateWindow   time.Duration
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS())

	if deps.Metrics != nil {
		router.Use(deps.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	if deps.Health != nil {
		router.GET("/health", deps.Health.Handle)
	}

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.TokenAuthMiddleware(deps.APIToken))
	{
		deps.HabitHandler.RegisterRoutes(apiV1)
		deps.LogHandler.RegisterRoutes(apiV1)
		deps.StatsHandler.RegisterRoutes(apiV1)
	}

	return router
}
