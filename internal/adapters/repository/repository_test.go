package repository

import (
	"time"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/logging"
)

var quiet = logging.Discard()

func sampleHabits() []*domain.Habit {
	at := domain.ClockTime{Hour: 7, Minute: 15}
	return []*domain.Habit{
		{
			ID:        "h2",
			Name:      "Gym",
			CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			Logs: []domain.LogEntry{
				{
					Date:       domain.NewDate(2024, time.March, 14),
					Status:     domain.StatusCompleted,
					Time:       &at,
					RecordedAt: time.Date(2024, 3, 14, 7, 16, 0, 0, time.UTC),
				},
				{
					Date:       domain.NewDate(2024, time.March, 13),
					Status:     domain.StatusMissed,
					Note:       "rain",
					RecordedAt: time.Date(2024, 3, 13, 21, 0, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:        "h1",
			Name:      "Read",
			CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
			Logs:      []domain.LogEntry{},
		},
	}
}
