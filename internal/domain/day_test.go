package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	in := time.Date(2024, 12, 12, 17, 45, 3, 99, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 12, 0, 0, 0, 0, time.UTC), Day(in))
}

func TestIsDue(t *testing.T) {
	today := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		added    time.Time
		interval int
		expected bool
	}{
		{
			name:     "no date is always due",
			added:    time.Time{},
			interval: 15,
			expected: true,
		},
		{
			name:     "added today, 5 day interval",
			added:    today,
			interval: 5,
			expected: false,
		},
		{
			name:     "exactly 5 days ago",
			added:    time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC),
			interval: 5,
			expected: true,
		},
		{
			name:     "4 days ago",
			added:    time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			interval: 5,
			expected: false,
		},
		{
			name:     "16 days ago, 15 day interval",
			added:    time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
			interval: 15,
			expected: true,
		},
		{
			name:     "zero interval due immediately",
			added:    today,
			interval: 0,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDue(tt.added, tt.interval, today))
		})
	}
}

func TestIsDue_MixedLocations(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	added := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		today    time.Time
		expected bool
	}{
		{"due morning, still previous day in UTC", time.Date(2026, 10, 19, 8, 0, 0, 0, tokyo), true},
		{"day before due", time.Date(2026, 10, 18, 23, 0, 0, 0, tokyo), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDue(added, 5, tt.today))
		})
	}
}

func TestLocalDay(t *testing.T) {
	d := LocalDay(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local), d)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 2, d.Day())

	_, err = ParseDate("20240102")
	assert.Error(t, err)
}
