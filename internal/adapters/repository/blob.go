package repository

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

// decodeHabits parses a stored collection. An unreadable blob is logged and
// treated as an empty collection so the user can keep working.
func decodeHabits(data []byte, log logrus.FieldLogger) []*domain.Habit {
	habits := []*domain.Habit{}
	if len(data) == 0 {
		return habits
	}
	if err := json.Unmarshal(data, &habits); err != nil {
		log.WithError(err).Warn("stored habit collection is unreadable, starting empty")
		return []*domain.Habit{}
	}
	return dropNil(habits, log)
}

// dropNil removes null entries, which are valid JSON but not habits.
func dropNil(habits []*domain.Habit, log logrus.FieldLogger) []*domain.Habit {
	kept := habits[:0]
	for _, h := range habits {
		if h != nil {
			kept = append(kept, h)
		}
	}
	if dropped := len(habits) - len(kept); dropped > 0 {
		log.WithField("dropped", dropped).Warn("stored habit collection has null entries, skipping them")
	}
	return kept
}

func encodeHabits(habits []*domain.Habit) ([]byte, error) {
	if habits == nil {
		habits = []*domain.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("encoding habits: %w", err)
	}
	return data, nil
}
