package domain

import "time"

// DateLayout is the on-disk format of the added date of dated records.
const DateLayout = "2006-01-02"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LocalDay returns the calendar date of t as midnight in the local zone.
// Database drivers hand back DATE columns as UTC midnight.
func LocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DueDate returns the day a record added on added becomes due after interval days.
func DueDate(added time.Time, interval int) time.Time {
	return Day(added).AddDate(0, 0, interval)
}

// IsDue reports whether a record added on added is due on today.
// Only calendar dates are compared, whatever the locations of added and today.
// Records without a date are always due.
func IsDue(added time.Time, interval int, today time.Time) bool {
	if added.IsZero() {
		return true
	}
	return !civil(DueDate(added, interval)).After(civil(today))
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-mm-dd date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
