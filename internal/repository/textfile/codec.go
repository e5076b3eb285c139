package textfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"palabra/internal/domain"
)

const (
	fieldSep     = " : "
	commentLead  = "#"
	legacyDateCh = ","
)

// LineError describes a line that could not be parsed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Decode parses pool text. Malformed lines are skipped and returned as *LineError
// values wrapping domain.ErrMalformedRecord. Duplicates are collapsed.
func Decode(pool domain.Pool, r io.Reader) ([]domain.Record, []error, error) {
	var (
		records []domain.Record
		skipped []error
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, commentLead) {
			continue
		}
		rec, err := decodeLine(pool, line)
		if err != nil {
			skipped = append(skipped, &LineError{Line: n, Text: line, Err: err})
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return domain.Dedupe(pool, records), skipped, nil
}

func decodeLine(pool domain.Pool, line string) (domain.Record, error) {
	fields := splitFields(line)
	switch {
	case pool.HasDetail():
		if len(fields) != 3 {
			return domain.Record{}, fmt.Errorf("%w: want 3 fields, got %d", domain.ErrMalformedRecord, len(fields))
		}
		if fields[0] == "" {
			return domain.Record{}, fmt.Errorf("%w: empty word", domain.ErrMalformedRecord)
		}
		return domain.Record{Word: fields[0], Meaning: fields[1], Example: fields[2]}, nil

	case pool.IsDated():
		return decodeDated(line, fields)

	default:
		if len(fields) != 1 || fields[0] == "" {
			return domain.Record{}, fmt.Errorf("%w: want a single word", domain.ErrMalformedRecord)
		}
		return domain.Record{Word: fields[0]}, nil
	}
}

func decodeDated(line string, fields []string) (domain.Record, error) {
	switch len(fields) {
	case 1:
		// yyyy-mm-dd,word as written by older versions, or a bare word.
		if d, w, ok := strings.Cut(line, legacyDateCh); ok {
			if added, err := domain.ParseDate(strings.TrimSpace(d)); err == nil {
				w = strings.TrimSpace(w)
				if w == "" {
					return domain.Record{}, fmt.Errorf("%w: empty word", domain.ErrMalformedRecord)
				}
				return domain.Record{Word: w, Added: added}, nil
			}
		}
		if fields[0] == "" {
			return domain.Record{}, fmt.Errorf("%w: empty word", domain.ErrMalformedRecord)
		}
		return domain.Record{Word: fields[0]}, nil
	case 2:
		if fields[0] == "" {
			return domain.Record{}, fmt.Errorf("%w: empty word", domain.ErrMalformedRecord)
		}
		added, err := domain.ParseDate(fields[1])
		if err != nil {
			return domain.Record{}, fmt.Errorf("%w: bad date %q", domain.ErrMalformedRecord, fields[1])
		}
		return domain.Record{Word: fields[0], Added: added}, nil
	}
	return domain.Record{}, fmt.Errorf("%w: want word and date, got %d fields", domain.ErrMalformedRecord, len(fields))
}

// Encode writes records in the pool's storage order.
func Encode(pool domain.Pool, w io.Writer, records []domain.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range domain.Sorted(pool, records) {
		if _, err := bw.WriteString(encodeLine(pool, r)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeLine(pool domain.Pool, r domain.Record) string {
	word := escapeLead(r.Word)
	switch {
	case pool.HasDetail():
		return word + fieldSep + escape(r.Meaning) + fieldSep + escape(r.Example)
	case pool.IsDated() && !r.Added.IsZero():
		return word + fieldSep + r.Added.Format(domain.DateLayout)
	default:
		return word
	}
}

// escapeLead escapes the first field of a line. A leading # is written \#
// so the record is not read back as a comment.
func escapeLead(s string) string {
	e := escape(s)
	if i := strings.IndexFunc(e, func(c rune) bool { return c != ' ' && c != '\t' }); i >= 0 && e[i] == '#' {
		return e[:i] + `\` + e[i:]
	}
	return e
}

// escape protects the field separator: \ becomes \\, : becomes \:, a newline \n
// and a carriage return \r.
func escape(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case ':':
			b.WriteString(`\:`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// splitFields splits on unescaped ':' and unescapes and trims each field.
func splitFields(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		esc    bool
	)
	for _, c := range line {
		switch {
		case esc:
			switch c {
			case 'n':
				cur.WriteRune('\n')
			case 'r':
				cur.WriteRune('\r')
			default:
				cur.WriteRune(c)
			}
			esc = false
		case c == '\\':
			esc = true
		case c == ':':
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	if esc {
		cur.WriteRune('\\')
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
