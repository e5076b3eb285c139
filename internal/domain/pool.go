package domain

import (
	"fmt"
	"strings"
)

// Pool is a named collection of vocabulary records, one stage of the learning cycle.
type Pool int

const (
	NewWords Pool = iota + 1
	Dictionary
	ToPractice
	Today
	Difficult5
	Difficult15
)

// Pools lists every pool in display order.
var Pools = []Pool{NewWords, Dictionary, ToPractice, Today, Difficult5, Difficult15}

var poolNames = map[Pool]string{
	NewWords:    "new_words",
	Dictionary:  "dictionary",
	ToPractice:  "to_practice",
	Today:       "today",
	Difficult5:  "difficult_5",
	Difficult15: "difficult_15",
}

// String returns the pool name, which is also the base of its file name.
func (p Pool) String() string {
	if name, ok := poolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Pool(%d)", int(p))
}

// FileName returns the text file backing the pool.
func (p Pool) FileName() string {
	return p.String() + ".txt"
}

// IsValid reports whether p is one of the known pools.
func (p Pool) IsValid() bool {
	_, ok := poolNames[p]
	return ok
}

// HasDetail reports whether records of the pool carry meaning and example.
func (p Pool) HasDetail() bool {
	return p == NewWords || p == Dictionary
}

// IsDated reports whether records of the pool carry the date they were added.
func (p Pool) IsDated() bool {
	return p == Difficult5 || p == Difficult15
}

// Interval returns the re-test interval in days, zero for undated pools.
func (p Pool) Interval() int {
	switch p {
	case Difficult5:
		return 5
	case Difficult15:
		return 15
	}
	return 0
}

// ParsePool parses a pool name as returned by String.
func ParsePool(s string) (Pool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range poolNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPool, s)
}
