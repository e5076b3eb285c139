package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.True(t, got.Pool().IsValid())
	}

	_, err := ParseMode("weekly")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestMode_Pool(t *testing.T) {
	assert.Equal(t, NewWords, ModeNewWords.Pool())
	assert.Equal(t, ToPractice, ModeReview.Pool())
	assert.Equal(t, Difficult5, ModeFiveDay.Pool())
	assert.Equal(t, Difficult15, ModeFifteenDay.Pool())
	assert.Equal(t, Today, ModeToday.Pool())
	assert.Equal(t, "15 Day", ModeFifteenDay.Title())
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome("know")
	require.NoError(t, err)
	assert.Equal(t, Know, o)

	o, err = ParseOutcome(" DONT_KNOW ")
	require.NoError(t, err)
	assert.Equal(t, DontKnow, o)

	_, err = ParseOutcome("maybe")
	assert.True(t, errors.Is(err, ErrInvalidOutcome))
}

func TestParsePool(t *testing.T) {
	for _, p := range Pools {
		got, err := ParsePool(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "difficult_15.txt", Difficult15.FileName())
	assert.Equal(t, 5, Difficult5.Interval())
	assert.Equal(t, 0, ToPractice.Interval())

	_, err := ParsePool("archive")
	assert.True(t, errors.Is(err, ErrUnknownPool))
}
