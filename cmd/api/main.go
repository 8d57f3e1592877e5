package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-audit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-audit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-audit/internal/config"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
	"github.com/comitanigiacomo/kanso-audit/internal/core/workers"
	"github.com/comitanigiacomo/kanso-audit/internal/logging"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

// app is everything the server owns between startup and shutdown.
type app struct {
	router    *gin.Engine
	store     *repository.Store
	redis     *redis.Client
	worker    *workers.AuditWorker
	scheduler *workers.Scheduler
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger, clock func() time.Time) (*app, error) {
	startTime := clock()

	store, err := repository.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{store: store}
	metrics := observability.NewMetrics(nil)
	store.Instrument(metrics)

	var repo domain.HabitRepository = store
	var cachePinger observability.Pinger
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without cache and rate limiting")
		} else {
			a.redis = rdb
			repo = repository.NewCachedRepository(store, rdb, cfg.CacheTTL, log, metrics)
			cachePinger = observability.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	a.worker = workers.NewAuditWorker(repo, metrics, clock, log, cfg.WorkerQueueSize)
	a.scheduler, err = workers.NewScheduler(cfg.AuditSchedule, repo, a.worker, log)
	if err != nil {
		a.close()
		return nil, err
	}

	habitService := services.NewHabitService(repo, a.worker, clock)
	statsService := services.NewStatsService(repo, clock)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(habitService),
		LogHandler:   adapterHTTP.NewLogHandler(habitService),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService),
		Health:       observability.NewHealthChecker(store, cachePinger, startTime),
		Metrics:      metrics,
		Redis:        a.redis,
		Logger:       log,
		APIToken:     cfg.APIToken,
		RateLimit:    cfg.RateLimit,
		RateWindow:   cfg.RateWindow,
	})

	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	a.store.Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Critical: invalid configuration: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("driver", cfg.StoreDriver).Info("opening habit store")
	a, err := newApp(ctx, cfg, log, time.Now)
	if err != nil {
		log.Fatalf("Critical: failed to start: %v", err)
	}
	defer a.close()

	a.worker.Start(ctx)
	a.scheduler.Start()
	a.scheduler.AuditAll(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Kanso Audit running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	a.scheduler.Stop(shutdownCtx)

	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
	}

	log.Info("server stopped gracefully")
}
