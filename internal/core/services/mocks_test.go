package services_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// fakeRepo keeps the collection as JSON so every Load hands out fresh copies.
type fakeRepo struct {
	blob    []byte
	saves   int
	loadErr  error
	saveErr  error
}

func newFakeRepo(habits ...*domain.Habit) *fakeRepo {
	r := &fakeRepo{}
	if len(habits) > 0 {
		r.blob, _ = json.Marshal(habits)
	}
	return r
}

func (r *fakeRepo) Load(ctx context.Context) ([]*domain.Habit, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	habits := []*domain.Habit{}
	if len(r.blob) == 0 {
		return habits, nil
	}
	err := json.Unmarshal(r.blob, &habits)
	return habits, err
}

func (r *fakeRepo) Save(ctx context.Context, habits []*domain.Habit) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	b, err := json.Marshal(habits)
	if err != nil {
		return err
	}
	r.blob = b
	r.saves++
	return nil
}

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Load(ctx context.Context) ([]*domain.Habit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Save(ctx context.Context, habits []*domain.Habit) error {
	args := m.Called(ctx, habits)
	return args.Error(0)
}

type MockAuditQueue struct {
	mock.Mock
}

func (m *MockAuditQueue) Enqueue(habitID string) {
	m.Called(habitID)
}

func (m *MockAuditQueue) Forget(habitID string) {
	m.Called(habitID)
}
