package repository

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

var _ domain.HabitRepository = (*InMemoryRepository)(nil)

// InMemoryRepository keeps the serialized collection in memory, so callers
// never share habit pointers with the store.
type InMemoryRepository struct {
	blob []byte
	log  logrus.FieldLogger

	mu sync.RWMutex
}

func NewInMemoryRepository(log logrus.FieldLogger) *InMemoryRepository {
	return &InMemoryRepository{log: log}
}

func (r *InMemoryRepository) Load(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return decodeHabits(r.blob, r.log), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, habits []*domain.Habit) error {
	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.blob = data
	return nil
}

// SetRaw replaces the stored bytes as is.
func (r *InMemoryRepository) SetRaw(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blob = append([]byte(nil), data...)
}
