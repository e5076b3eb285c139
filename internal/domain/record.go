package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ExampleSeparator separates several example sentences inside one example field.
const ExampleSeparator = "|"

// Record is one vocabulary entry of a pool.
// Meaning and Example are set for NewWords and Dictionary only;
// Added is set for Difficult5 and Difficult15 only.
type Record struct {
	Word    string
	Meaning string
	Example string
	Added   time.Time
}

// Examples splits the example field into its sentences.
func (r Record) Examples() []string {
	parts := lo.Map(strings.Split(r.Example, ExampleSeparator), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Filter(parts, func(s string, _ int) bool { return s != "" })
}

// Hint reveals the example sentences only.
func (r Record) Hint() Reveal {
	return Reveal{Word: r.Word, Examples: r.Examples()}
}

// Verify reveals both meaning and example sentences.
func (r Record) Verify() Reveal {
	return Reveal{Word: r.Word, Meaning: r.Meaning, Examples: r.Examples()}
}

// Reveal is the part of a record shown on Hint or Verify.
type Reveal struct {
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning,omitempty"`
	Examples []string `json:"examples"`
}

// IndexOf returns the position of word in records, or -1.
func IndexOf(records []Record, word string) int {
	return lo.IndexOf(Words(records), word)
}

// Contains reports whether word is present in records.
func Contains(records []Record, word string) bool {
	return IndexOf(records, word) >= 0
}

// Remove drops every record for word and reports whether one was present.
func Remove(records []Record, word string) ([]Record, bool) {
	out := lo.Filter(records, func(r Record, _ int) bool { return r.Word != word })
	return out, len(out) != len(records)
}

// Upsert replaces the record with the same word in place, or appends rec.
func Upsert(records []Record, rec Record) []Record {
	if idx := IndexOf(records, rec.Word); idx >= 0 {
		out := append([]Record(nil), records...)
		out[idx] = rec
		return out
	}
	return append(records, rec)
}

// Dedupe keeps one record per word at the position of its first occurrence.
// Dated pools keep the latest date; other pools keep the last record.
func Dedupe(pool Pool, records []Record) []Record {
	out := make([]Record, 0, len(records))
	pos := make(map[string]int, len(records))
	for _, r := range records {
		idx, seen := pos[r.Word]
		if !seen {
			pos[r.Word] = len(out)
			out = append(out, r)
			continue
		}
		if pool.IsDated() && r.Added.Before(out[idx].Added) {
			continue
		}
		out[idx] = r
	}
	return out
}

// Sorted returns records in the order they are written to storage:
// Dictionary by word, dated pools by (date, word), others unchanged.
func Sorted(pool Pool, records []Record) []Record {
	out := append([]Record(nil), records...)
	switch {
	case pool == Dictionary:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	case pool.IsDated():
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].Added.Equal(out[j].Added) {
				return out[i].Added.Before(out[j].Added)
			}
			return out[i].Word < out[j].Word
		})
	}
	return out
}

// Words returns the words of records in order.
func Words(records []Record) []string {
	return lo.Map(records, func(r Record, _ int) string { return r.Word })
}
