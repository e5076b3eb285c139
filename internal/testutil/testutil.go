package testutil

import (
	"palabra/internal/domain"
	"time"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates a record with full detail
func NewTestRecord(word, meaning, example string) domain.Record {
	return domain.Record{
		Word:    word,
		Meaning: meaning,
		Example: example,
	}
}

// NewDatedRecord creates a word-only record added on the given day
func NewDatedRecord(word string, added time.Time) domain.Record {
	return domain.Record{
		Word:  word,
		Added: domain.Day(added),
	}
}

// FixedClock returns a clock frozen at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
