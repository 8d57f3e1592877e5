package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
)

var errAmbiguousHabit = errors.New("ambiguous habit reference")

const minPrefixLen = 4

// resolveHabit finds a habit by exact id, case-insensitive name or a unique
// id prefix of at least four characters, in that order.
func resolveHabit(habits []*domain.Habit, ref string) (*domain.Habit, error) {
	ref = strings.TrimSpace(ref)

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	if len(ref) >= minPrefixLen {
		var match *domain.Habit
		for _, h := range habits {
			if strings.HasPrefix(h.ID, ref) {
				if match != nil {
					return nil, fmt.Errorf("%w: %q matches more than one habit", errAmbiguousHabit, ref)
				}
				match = h
			}
		}
		if match != nil {
			return match, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrHabitNotFound, ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
