package domain

import (
	"fmt"
	"strings"
)

// Mode is a study session over one pool.
type Mode string

const (
	ModeNewWords   Mode = "new"
	ModeReview     Mode = "review"
	ModeFiveDay    Mode = "day5"
	ModeFifteenDay Mode = "day15"
	ModeToday      Mode = "today"
)

// Modes lists the study modes in menu order.
var Modes = []Mode{ModeNewWords, ModeReview, ModeFiveDay, ModeFifteenDay, ModeToday}

var modePools = map[Mode]Pool{
	ModeNewWords:   NewWords,
	ModeReview:     ToPractice,
	ModeFiveDay:    Difficult5,
	ModeFifteenDay: Difficult15,
	ModeToday:      Today,
}

var modeTitles = map[Mode]string{
	ModeNewWords:   "New words",
	ModeReview:     "Review",
	ModeFiveDay:    "5 Day",
	ModeFifteenDay: "15 Day",
	ModeToday:      "Today",
}

// DefaultMode is the mode a fresh session starts in.
func DefaultMode() Mode { return ModeNewWords }

// Pool returns the pool the mode draws words from.
func (m Mode) Pool() Pool { return modePools[m] }

// Title returns the human readable mode name.
func (m Mode) Title() string {
	if t, ok := modeTitles[m]; ok {
		return t
	}
	return string(m)
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	_, ok := modePools[m]
	return ok
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Outcome is the user's recall judgment for the shown word.
type Outcome int

const (
	Know Outcome = iota + 1
	DontKnow
)

// String returns "know" or "dont_know".
func (o Outcome) String() string {
	switch o {
	case Know:
		return "know"
	case DontKnow:
		return "dont_know"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ParseOutcome parses an outcome name as returned by String.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "know":
		return Know, nil
	case "dont_know":
		return DontKnow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}
