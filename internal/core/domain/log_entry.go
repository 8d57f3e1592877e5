package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidLogStatus = errors.New("invalid log status (must be completed or missed)")
	ErrLogDateRequired  = errors.New("log date is required")
	ErrLogDateInFuture  = errors.New("log date cannot be in the future")
	ErrNoteTooLong      = errors.New("note is too long (max 500 chars)")
)

const MaxNoteLen = 500

type LogStatus string

const (
	StatusCompleted LogStatus = "completed"
	StatusMissed    LogStatus = "missed"
)

func ParseLogStatus(s string) (LogStatus, error) {
	switch LogStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusMissed:
		return StatusMissed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLogStatus, s)
}

// LogEntry is one dated record of a completion or a miss. A habit holds
// at most one entry per Date.
type LogEntry struct {
	Date       Date       `json:"date"`
	Status     LogStatus  `json:"status"`
	Time       *ClockTime `json:"time,omitempty"`
	Note       string     `json:"note,omitempty"`
	RecordedAt time.Time  `json:"timestamp"`
}

// NewLogEntry builds a validated entry. The clock time is only kept for
// completions; a miss has no meaningful time of day.
func NewLogEntry(date Date, status LogStatus, at *ClockTime, note string, recordedAt time.Time) (LogEntry, error) {
	entry := LogEntry{
		Date:       date,
		Status:     status,
		Note:       strings.TrimSpace(note),
		RecordedAt: recordedAt.UTC(),
	}
	if status == StatusCompleted && at != nil {
		t := *at
		entry.Time = &t
	}

	if err := entry.Validate(); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

func (e LogEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrLogDateRequired
	}
	if e.Status != StatusCompleted && e.Status != StatusMissed {
		return ErrInvalidLogStatus
	}
	if e.Time != nil && (e.Time.Hour < 0 || e.Time.Hour > 23 || e.Time.Minute < 0 || e.Time.Minute > 59) {
		return ErrInvalidClockTime
	}
	if utf8.RuneCountInString(e.Note) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

func (e LogEntry) IsCompleted() bool {
	return e.Status == StatusCompleted
}

func (e LogEntry) IsMissed() bool {
	return e.Status == StatusMissed
}
