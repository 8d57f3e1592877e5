package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store loads an empty collection", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)

		habits, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.NotNil(t, habits)
		assert.Empty(t, habits)
	})

	t.Run("Save then load round trips", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)
		want := sampleHabits()

		require.NoError(t, repo.Save(ctx, want))
		got, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Loaded habits are independent copies", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)
		require.NoError(t, repo.Save(ctx, sampleHabits()))

		first, _ := repo.Load(ctx)
		first[0].Name = "Changed"
		second, _ := repo.Load(ctx)

		assert.Equal(t, "Gym", second[0].Name)
	})

	t.Run("Corrupt blob loads empty", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)
		repo.SetRaw([]byte("{not json"))

		habits, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, habits)
	})

	t.Run("Null entry loads empty", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)
		repo.SetRaw([]byte("[null]"))

		habits, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.NotNil(t, habits)
		assert.Empty(t, habits)
	})

	t.Run("Null entries are skipped, real habits kept", func(t *testing.T) {
		repo := NewInMemoryRepository(quiet)
		repo.SetRaw([]byte(`[null,{"id":"h1","name":"Read","createdAt":"2024-02-01T08:00:00Z","logs":[{"date":"2024-2-3","status":"completed","timestamp":"2024-02-03T08:00:00Z"}]},null]`))

		habits, err := repo.Load(ctx)

		require.NoError(t, err)
		require.Len(t, habits, 1)
		assert.Equal(t, "Read", habits[0].Name)
		require.Len(t, habits[0].Logs, 1)
		assert.Equal(t, domain.NewDate(2024, 2, 3), habits[0].Logs[0].Date)
	})
}
