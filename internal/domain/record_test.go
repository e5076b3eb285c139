package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Reveal(t *testing.T) {
	r := Record{
		Word:    "sakura",
		Meaning: "cherry blossom",
		Example: "Sakura bloom in spring | Under the sakura ",
	}

	hint := r.Hint()
	assert.Equal(t, "sakura", hint.Word)
	assert.Empty(t, hint.Meaning)
	assert.Equal(t, []string{"Sakura bloom in spring", "Under the sakura"}, hint.Examples)

	verify := r.Verify()
	assert.Equal(t, "cherry blossom", verify.Meaning)
	assert.Equal(t, hint.Examples, verify.Examples)
}

func TestRecord_ExamplesEmpty(t *testing.T) {
	assert.Empty(t, Record{Word: "neko"}.Examples())
	assert.Empty(t, Record{Word: "neko", Example: " | "}.Examples())
}

func TestRemoveAndUpsert(t *testing.T) {
	records := []Record{{Word: "a"}, {Word: "b"}, {Word: "c"}}

	out, removed := Remove(records, "b")
	assert.True(t, removed)
	assert.Equal(t, []string{"a", "c"}, Words(out))

	_, removed = Remove(records, "zzz")
	assert.False(t, removed)

	out = Upsert(records, Record{Word: "b", Meaning: "new"})
	assert.Equal(t, []string{"a", "b", "c"}, Words(out))
	assert.Equal(t, "new", out[1].Meaning)
	assert.Empty(t, records[1].Meaning, "input slice is not modified")

	out = Upsert(records, Record{Word: "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, Words(out))
}

func TestDedupe(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("detail pool keeps last record at first position", func(t *testing.T) {
		out := Dedupe(Dictionary, []Record{
			{Word: "a", Meaning: "one"},
			{Word: "b", Meaning: "bee"},
			{Word: "a", Meaning: "two"},
		})
		assert.Equal(t, []string{"a", "b"}, Words(out))
		assert.Equal(t, "two", out[0].Meaning)
	})

	t.Run("dated pool keeps latest date", func(t *testing.T) {
		out := Dedupe(Difficult5, []Record{
			{Word: "a", Added: late},
			{Word: "a", Added: early},
		})
		assert.Len(t, out, 1)
		assert.Equal(t, late, out[0].Added)
	})
}

func TestSorted(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	in := []Record{{Word: "c", Added: d2}, {Word: "b", Added: d1}, {Word: "a", Added: d2}}

	assert.Equal(t, []string{"b", "a", "c"}, Words(Sorted(Difficult5, in)))
	assert.Equal(t, []string{"a", "b", "c"}, Words(Sorted(Dictionary, in)))
	assert.Equal(t, []string{"c", "b", "a"}, Words(Sorted(Today, in)))
}
