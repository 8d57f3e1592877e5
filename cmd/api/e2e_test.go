package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-audit/internal/config"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/logging"
)

var testNow = time.Date(2024, 3, 15, 20, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		StoreDriver:     config.DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "kanso.db"),
		StoreTable:      "kv_store",
		CacheTTL:        time.Minute,
		RateLimit:       1000,
		RateWindow:      time.Minute,
		AuditSchedule:   "@daily",
		WorkerQueueSize: 10,
	}
}

func send(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_HabitLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Redis = config.RedisConfig{Host: host, Port: port}

	ctx, cancel := context.WithCancel(context.Background())

	a, err := newApp(ctx, cfg, logging.Discard(), func() time.Time { return testNow })
	require.NoError(t, err)
	a.worker.Start(ctx)
	defer func() {
		cancel()
		<-a.worker.Done()
		a.close()
	}()

	var habitID string

	t.Run("1. Create Habit", func(t *testing.T) {
		w := send(t, a.router, http.MethodPost, "/api/v1/habits", `{"name": "Morning Run"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var h domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
		assert.Equal(t, "Morning Run", h.Name)
		habitID = h.ID
	})

	t.Run("2. Log a week", func(t *testing.T) {
		logs := []string{
			`{"date": "2024-03-09", "status": "missed", "note": "Too tired"}`,
			`{"date": "2024-03-10", "status": "completed", "time": "06:30"}`,
			`{"date": "2024-03-11", "status": "completed", "time": "06:45"}`,
			`{"date": "2024-03-12", "status": "missed", "note": "too tired "}`,
			`{"date": "2024-03-13", "status": "completed", "time": "07:00"}`,
			`{"date": "2024-03-14", "status": "completed", "time": "07:10"}`,
		}
		for _, body := range logs {
			w := send(t, a.router, http.MethodPut, "/api/v1/habits/"+habitID+"/logs", body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
	})

	t.Run("3. Stats reflect the log", func(t *testing.T) {
		w := send(t, a.router, http.MethodGet, "/api/v1/habits/"+habitID+"/stats", "")
		require.Equal(t, http.StatusOK, w.Code)

		var report domain.HabitReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Stats.CurrentStreak)
		assert.Equal(t, 2, report.Stats.LongestStreak)
		assert.Equal(t, 57, report.Stats.WeeklyConsistency)
		assert.Equal(t, "Saturday", report.Stats.MostMissedWeekday)
		assert.Equal(t, domain.TimeRangeMorning, report.Stats.MostCommonTimeRange)
		require.Len(t, report.TopExcuses, 1)
		assert.Equal(t, domain.ExcuseCount{Excuse: "too tired", Count: 2}, report.TopExcuses[0])
	})

	t.Run("4. Audit worker publishes gauges", func(t *testing.T) {
		assert.Eventually(t, func() bool {
			w := send(t, a.router, http.MethodGet, "/metrics", "")
			return bytes.Contains(w.Body.Bytes(), []byte(`kanso_habit_current_streak{habit="Morning Run"`))
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("5. Health reports both dependencies", func(t *testing.T) {
		w := send(t, a.router, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"connected"`)
		assert.Contains(t, w.Body.String(), `"database":"connected"`)
	})

	t.Run("6. Delete Habit", func(t *testing.T) {
		w := send(t, a.router, http.MethodDelete, "/api/v1/habits/"+habitID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = send(t, a.router, http.MethodGet, "/api/v1/stats/overall", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"score":0,"total":0,"best":"None","worst":"None"}`, w.Body.String())
	})
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = config.DriverMemory
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: "1"}

	a, err := newApp(context.Background(), cfg, logging.Discard(), time.Now)
	require.NoError(t, err)
	defer a.close()

	assert.Nil(t, a.redis)
	w := send(t, a.router, http.MethodGet, "/health", "")
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}

func TestNewApp_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.AuditSchedule = "whenever"

	_, err := newApp(context.Background(), cfg, logging.Discard(), time.Now)
	assert.ErrorContains(t, err, "invalid audit schedule")
}
