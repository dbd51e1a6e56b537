package internal

import "time"

const DateFormat = "2006-01-02"

// DayKey collapses a timestamp to its calendar date string, the key
// the projection buckets events under.
func DayKey(t time.Time) string {
	return t.Format(DateFormat)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's calendar day, the bound all-day
// events are normalized to at save time.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
