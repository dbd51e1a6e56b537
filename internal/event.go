package internal

import "time"

// Event is the normalized record both backends are converted into.
// ID is assigned at creation and never changes; ExternalRef is set only
// while the record is owned by the live backend and is what the live
// adapter resolves on update/delete.
type Event struct {
	ID          string
	ExternalRef string
	Title       string
	StartsAt    time.Time
	EndsAt      time.Time
	AllDay      bool
	Location    string
	Color       Color
	Notes       string
	Source      Source
}

// Clone returns a copy the caller may mutate without affecting e.
func (e *Event) Clone() *Event {
	cp := *e
	return &cp
}

// CoversDay reports whether the event's [StartsAt, EndsAt) interval
// touches the calendar day of d. A zero-length event counts for the
// single day of its instant.
func (e *Event) CoversDay(d time.Time) bool {
	day := StartOfDay(d)
	next := day.AddDate(0, 0, 1)
	if e.EndsAt.Equal(e.StartsAt) {
		return !e.StartsAt.Before(day) && e.StartsAt.Before(next)
	}
	return e.StartsAt.Before(next) && e.EndsAt.After(day)
}

// EventDraft is user input before validation and ID assignment.
type EventDraft struct {
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	AllDay   bool
	Location string
	Color    Color
	Notes    string
}

// Source records which backend owns an event. Update and delete dispatch
// on it, regardless of how the access state changed since creation.
type Source string

func (s Source) String() string {
	return string(s)
}

const (
	SourceLive  Source = "live"
	SourceLocal Source = "local"
)

// Color is an opaque display color, hex encoded ("#rrggbb"). It is never
// used for routing or ordering.
type Color string

func (c Color) IsZero() bool {
	return c == ""
}

// Bytes is the blob form the local store persists.
func (c Color) Bytes() []byte {
	if c == "" {
		return nil
	}
	return []byte(c)
}

func ColorFromBytes(b []byte) Color {
	return Color(b)
}

// PlaceholderTitle replaces an empty title at save time; empty input is
// coerced, never rejected.
const PlaceholderTitle = "New Event"
