package google

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/caluindar/caluindar/internal"
)

func TestNewEventTimed(t *testing.T) {
	got := newEvent(&calendar.Event{
		Id:      "ext-1",
		Summary: "Standup",
		Start:   &calendar.EventDateTime{DateTime: "2024-10-16T09:00:00+09:00"},
		End:     &calendar.EventDateTime{DateTime: "2024-10-16T09:30:00+09:00"},
		ColorId: "9",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{idProperty: "dom-1"},
		},
	})

	if got.ID != "dom-1" {
		t.Fatalf("ID = %q, want the domain id carried on the record", got.ID)
	}
	if got.ExternalRef != "ext-1" {
		t.Fatalf("ExternalRef = %q, want ext-1", got.ExternalRef)
	}
	if got.Source != internal.SourceLive {
		t.Fatalf("Source = %s, want live", got.Source)
	}
	if got.AllDay {
		t.Fatal("timed event flagged all-day")
	}
	if got.Color != eventColors["9"] {
		t.Fatalf("Color = %q, want %q", got.Color, eventColors["9"])
	}
	wantStart := time.Date(2024, time.October, 16, 9, 0, 0, 0, time.FixedZone("", 9*3600))
	if !got.StartsAt.Equal(wantStart) {
		t.Fatalf("StartsAt = %s, want %s", got.StartsAt, wantStart)
	}
}

func TestNewEventAllDay(t *testing.T) {
	got := newEvent(&calendar.Event{
		Id:      "ext-2",
		Summary: "Holiday",
		Start:   &calendar.EventDateTime{Date: "2024-10-16"},
		End:     &calendar.EventDateTime{Date: "2024-10-17"},
	})

	if !got.AllDay {
		t.Fatal("date-only event not flagged all-day")
	}
	wantStart := time.Date(2024, time.October, 16, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, time.October, 16, 23, 59, 59, 0, time.Local)
	if !got.StartsAt.Equal(wantStart) || !got.EndsAt.Equal(wantEnd) {
		t.Fatalf("bounds = (%s, %s), want day bounds", got.StartsAt, got.EndsAt)
	}
	// No stashed domain id: fall back to the native one.
	if got.ID != "ext-2" {
		t.Fatalf("ID = %q, want ext-2", got.ID)
	}
}

func TestNewGoogleEventRoundTrip(t *testing.T) {
	event := &internal.Event{
		ID:          "dom-1",
		ExternalRef: "ext-1",
		Title:       "Standup",
		StartsAt:    time.Date(2024, time.October, 16, 9, 0, 0, 0, time.Local),
		EndsAt:      time.Date(2024, time.October, 16, 9, 30, 0, 0, time.Local),
		Location:    "Room 1",
		Color:       eventColors["9"],
		Notes:       "bring slides",
		Source:      internal.SourceLive,
	}

	gevent := newGoogleEvent(event)
	if gevent.ExtendedProperties.Private[idProperty] != "dom-1" {
		t.Fatal("domain id not carried on the native record")
	}
	if gevent.ColorId != "9" {
		t.Fatalf("ColorId = %q, want 9", gevent.ColorId)
	}
	if gevent.Start.Date != "" {
		t.Fatal("timed event serialized as all-day")
	}

	gevent.Id = "ext-1"
	back := newEvent(gevent)
	if back.ID != event.ID || back.Title != event.Title || back.Location != event.Location ||
		back.Notes != event.Notes || back.Color != event.Color {
		t.Fatalf("round trip lost fields: %+v", back)
	}
	if !back.StartsAt.Equal(event.StartsAt) || !back.EndsAt.Equal(event.EndsAt) {
		t.Fatalf("round trip times = (%s, %s)", back.StartsAt, back.EndsAt)
	}
}

func TestNewGoogleEventAllDay(t *testing.T) {
	event := &internal.Event{
		ID:       "dom-2",
		Title:    "Holiday",
		StartsAt: time.Date(2024, time.October, 16, 0, 0, 0, 0, time.Local),
		EndsAt:   time.Date(2024, time.October, 16, 23, 59, 59, 0, time.Local),
		AllDay:   true,
	}

	gevent := newGoogleEvent(event)
	if gevent.Start.Date != "2024-10-16" {
		t.Fatalf("Start.Date = %q, want 2024-10-16", gevent.Start.Date)
	}
	// The API wants an exclusive end date.
	if gevent.End.Date != "2024-10-17" {
		t.Fatalf("End.Date = %q, want 2024-10-17", gevent.End.Date)
	}
}
