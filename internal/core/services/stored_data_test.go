package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-audit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
	"github.com/comitanigiacomo/kanso-audit/internal/logging"
)

func TestServices_NullStoredEntry(t *testing.T) {
	ctx := context.Background()
	setup := func() (*services.HabitService, *services.StatsService) {
		repo := repository.NewInMemoryRepository(logging.Discard())
		repo.SetRaw([]byte("[null]"))
		return newTestService(repo), services.NewStatsService(repo, fixedClock)
	}

	t.Run("List is empty", func(t *testing.T) {
		habits, _ := setup()

		var list []*domain.Habit
		var err error
		require.NotPanics(t, func() { list, err = habits.List(ctx) })
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Overall is neutral", func(t *testing.T) {
		_, stats := setup()

		var overall domain.AggregateStats
		var err error
		require.NotPanics(t, func() { overall, err = stats.Overall(ctx, nil) })
		require.NoError(t, err)
		assert.Equal(t, domain.AggregateStats{Best: domain.NoHabitName, Worst: domain.NoHabitName}, overall)
	})

	t.Run("Create replaces the null entry", func(t *testing.T) {
		habits, _ := setup()

		var err error
		require.NotPanics(t, func() { _, err = habits.Create(ctx, "Gym") })
		require.NoError(t, err)

		list, err := habits.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Gym", list[0].Name)
	})
}
