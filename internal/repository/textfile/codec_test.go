package textfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"palabra/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDecode_Dictionary(t *testing.T) {
	text := `# word : meaning : example
sakura : cherry blossom : Sakura bloom in spring

neko : cat : The neko sleeps | A black neko
broken line without fields
 : empty word : ignored
`
	records, skipped, err := Decode(domain.Dictionary, strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, []string{"sakura", "neko"}, domain.Words(records))
	assert.Equal(t, "cherry blossom", records[0].Meaning)
	assert.Equal(t, "The neko sleeps | A black neko", records[1].Example)

	require.Len(t, skipped, 2)
	for _, e := range skipped {
		assert.True(t, errors.Is(e, domain.ErrMalformedRecord))
	}
	var lineErr *LineError
	require.True(t, errors.As(skipped[0], &lineErr))
	assert.Equal(t, 5, lineErr.Line)
}

func TestDecode_WordOnly(t *testing.T) {
	text := "hola\n\n# comment\nadiós\nhola\n"
	records, skipped, err := Decode(domain.ToPractice, strings.NewReader(text))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{"hola", "adiós"}, domain.Words(records))
}

func TestDecode_Dated(t *testing.T) {
	text := `perro : 2024-03-01
2024-02-01,gato
2024-01-01,perro
casa
mesa : yesterday
`
	records, skipped, err := Decode(domain.Difficult5, strings.NewReader(text))
	require.NoError(t, err)

	require.Len(t, skipped, 1)
	assert.True(t, errors.Is(skipped[0], domain.ErrMalformedRecord))

	assert.Equal(t, []string{"perro", "gato", "casa"}, domain.Words(records))
	assert.Equal(t, date(2024, 3, 1), records[0].Added, "latest date wins on duplicates")
	assert.Equal(t, date(2024, 2, 1), records[1].Added)
	assert.True(t, records[2].Added.IsZero())
}

func TestEncode_Order(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(domain.Difficult15, &buf, []domain.Record{
		{Word: "b", Added: date(2024, 1, 2)},
		{Word: "a", Added: date(2024, 1, 2)},
		{Word: "c", Added: date(2024, 1, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "c : 2024-01-01\na : 2024-01-02\nb : 2024-01-02\n", buf.String())

	buf.Reset()
	err = Encode(domain.Dictionary, &buf, []domain.Record{
		{Word: "zorro", Meaning: "fox", Example: "El zorro corre"},
		{Word: "abeja", Meaning: "bee", Example: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "abeja : bee : \nzorro : fox : El zorro corre\n", buf.String())
}

func TestEncode_Escaping(t *testing.T) {
	rec := domain.Record{
		Word:    "ratio",
		Meaning: "proportion 3:4",
		Example: `path C:\tmp` + "\nsecond line",
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(domain.NewWords, &buf, []domain.Record{rec}))
	assert.Equal(t, `ratio : proportion 3\:4 : path C\:\\tmp\nsecond line`+"\n", buf.String())

	records, skipped, err := Decode(domain.NewWords, &buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		pool    domain.Pool
		records []domain.Record
	}{
		{
			pool: domain.NewWords,
			records: []domain.Record{
				{Word: "sakura", Meaning: "cherry blossom", Example: "Sakura bloom in spring"},
				{Word: "a: b", Meaning: "colon word", Example: "x | y"},
				{Word: "crlf", Meaning: "carriage return", Example: "line one\r\nline two"},
			},
		},
		{
			pool: domain.Dictionary,
			records: []domain.Record{
				{Word: "neko", Meaning: "cat", Example: "The neko sleeps"},
				{Word: "inu", Meaning: "dog", Example: ""},
				{Word: "#hashtag", Meaning: "tag", Example: "Follow #hashtag"},
			},
		},
		{
			pool:    domain.Today,
			records: []domain.Record{{Word: "hola"}, {Word: "buenos días"}, {Word: "#1"}},
		},
		{
			pool: domain.Difficult5,
			records: []domain.Record{
				{Word: "neko", Added: date(2024, 5, 1)},
				{Word: "inu", Added: date(2024, 4, 1)},
				{Word: "tori"},
				{Word: "#top", Added: date(2024, 5, 2)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pool.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(tt.pool, &buf, tt.records))

			got, skipped, err := Decode(tt.pool, &buf)
			require.NoError(t, err)
			assert.Empty(t, skipped)
			assert.ElementsMatch(t, tt.records, got)
		})
	}
}

func TestEncode_LineStartAndCarriageReturn(t *testing.T) {
	tests := []struct {
		name     string
		pool     domain.Pool
		record   domain.Record
		expected string
	}{
		{
			name:     "leading hash",
			pool:     domain.Today,
			record:   domain.Record{Word: "#1"},
			expected: "\\#1\n",
		},
		{
			name:     "inner hash",
			pool:     domain.Today,
			record:   domain.Record{Word: "C#"},
			expected: "C#\n",
		},
		{
			name:     "carriage return",
			pool:     domain.NewWords,
			record:   domain.Record{Word: "crlf", Meaning: "a\r\nb", Example: ""},
			expected: "crlf : a\\r\\nb : \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(tt.pool, &buf, []domain.Record{tt.record}))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}
