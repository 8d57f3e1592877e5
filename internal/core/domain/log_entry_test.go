package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogEntry(t *testing.T) {
	day := NewDate(2026, 1, 28)
	loc, _ := time.LoadLocation("Europe/Rome")
	if loc == nil {
		loc = time.UTC
	}
	recorded := time.Date(2026, 1, 28, 10, 0, 0, 0, loc)
	at := ClockTime{Hour: 6, Minute: 45}

	t.Run("Should keep time and trimmed note for completions", func(t *testing.T) {
		entry, err := NewLogEntry(day, StatusCompleted, &at, "  felt good ", recorded)

		require.NoError(t, err)
		require.NotNil(t, entry.Time)
		assert.Equal(t, at, *entry.Time)
		assert.Equal(t, "felt good", entry.Note)
	})

	t.Run("Should drop time for misses", func(t *testing.T) {
		entry, err := NewLogEntry(day, StatusMissed, &at, "rain", recorded)

		require.NoError(t, err)
		assert.Nil(t, entry.Time)
		assert.Equal(t, "rain", entry.Note)
	})

	t.Run("Should force RecordedAt to UTC", func(t *testing.T) {
		entry, err := NewLogEntry(day, StatusCompleted, nil, "", recorded)

		require.NoError(t, err)
		assert.Equal(t, recorded.UTC(), entry.RecordedAt)
		assert.Equal(t, "UTC", entry.RecordedAt.Location().String())
	})

	t.Run("Should copy the clock time", func(t *testing.T) {
		local := ClockTime{Hour: 8}
		entry, err := NewLogEntry(day, StatusCompleted, &local, "", recorded)
		require.NoError(t, err)

		local.Hour = 23
		assert.Equal(t, 8, entry.Time.Hour)
	})
}

func TestLogEntry_Validate(t *testing.T) {
	day := NewDate(2026, 1, 28)

	tests := []struct {
		name    string
		entry   LogEntry
		wantErr error
	}{
		{
			name:  "Valid completion",
			entry: LogEntry{Date: day, Status: StatusCompleted},
		},
		{
			name:  "Valid miss with excuse",
			entry: LogEntry{Date: day, Status: StatusMissed, Note: "too tired"},
		},
		{
			name:    "Missing date",
			entry:   LogEntry{Status: StatusCompleted},
			wantErr: ErrLogDateRequired,
		},
		{
			name:    "Unknown status",
			entry:   LogEntry{Date: day, Status: "skipped"},
			wantErr: ErrInvalidLogStatus,
		},
		{
			name:    "Clock out of range",
			entry:   LogEntry{Date: day, Status: StatusCompleted, Time: &ClockTime{Hour: 24}},
			wantErr: ErrInvalidClockTime,
		},
		{
			name:    "Note too long",
			entry:   LogEntry{Date: day, Status: StatusMissed, Note: strings.Repeat("x", MaxNoteLen+1)},
			wantErr: ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseLogStatus(t *testing.T) {
	s, err := ParseLogStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	s, err = ParseLogStatus("missed")
	require.NoError(t, err)
	assert.Equal(t, StatusMissed, s)

	_, err = ParseLogStatus("done")
	assert.ErrorIs(t, err, ErrInvalidLogStatus)
}

func TestLogEntry_StatusHelpers(t *testing.T) {
	done := LogEntry{Status: StatusCompleted}
	missed := LogEntry{Status: StatusMissed}

	assert.True(t, done.IsCompleted())
	assert.False(t, done.IsMissed())
	assert.True(t, missed.IsMissed())
	assert.False(t, missed.IsCompleted())
}
