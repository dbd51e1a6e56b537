package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/caluindar/caluindar/internal"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStorage(db)
}

func testEvent(id, title string, start, end time.Time) *internal.Event {
	return &internal.Event{
		ID:       id,
		Title:    title,
		StartsAt: start,
		EndsAt:   end,
		Location: "Room 1",
		Color:    internal.Color("#5484ed"),
		Notes:    "bring slides",
		Source:   internal.SourceLocal,
	}
}

func TestStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	start := time.Date(2024, time.October, 16, 9, 0, 0, 0, time.Local)
	want := testEvent("ev-1", "Standup", start, start.Add(30*time.Minute))
	if _, err := s.CreateEvent(ctx, want); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := s.Events(ctx, internal.StartOfDay(start), internal.StartOfDay(start).AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.ID != want.ID || got.Title != want.Title || got.Location != want.Location ||
		got.Notes != want.Notes || got.Color != want.Color {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !got.StartsAt.Equal(want.StartsAt) || !got.EndsAt.Equal(want.EndsAt) {
		t.Fatalf("times = (%s, %s), want (%s, %s)", got.StartsAt, got.EndsAt, want.StartsAt, want.EndsAt)
	}
	if got.Source != internal.SourceLocal {
		t.Fatalf("Source = %s, want local", got.Source)
	}
}

func TestStorageRangeIsHalfOpen(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	day := time.Date(2024, time.October, 16, 0, 0, 0, 0, time.Local)
	next := day.AddDate(0, 0, 1)

	// Ends exactly at the range start: excluded.
	if _, err := s.CreateEvent(ctx, testEvent("before", "Before", day.Add(-time.Hour), day)); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	// Starts exactly at the range end: excluded.
	if _, err := s.CreateEvent(ctx, testEvent("after", "After", next, next.Add(time.Hour))); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	// Inside.
	if _, err := s.CreateEvent(ctx, testEvent("in", "In", day.Add(9*time.Hour), day.Add(10*time.Hour))); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	// Zero length at range start: included.
	if _, err := s.CreateEvent(ctx, testEvent("instant", "Instant", day, day)); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := s.Events(ctx, day, next)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	got := make(map[string]bool, len(events))
	for _, ev := range events {
		got[ev.ID] = true
	}
	if !got["in"] || !got["instant"] || got["before"] || got["after"] {
		t.Fatalf("got %v, want exactly {in, instant}", got)
	}
}

func TestStorageUpdate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	start := time.Date(2024, time.October, 16, 9, 0, 0, 0, time.Local)
	ev := testEvent("ev-1", "Standup", start, start.Add(30*time.Minute))
	if _, err := s.CreateEvent(ctx, ev); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	ev.Title = "Standup (moved)"
	ev.StartsAt = start.Add(time.Hour)
	ev.EndsAt = start.Add(90 * time.Minute)
	if err := s.UpdateEvent(ctx, ev); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	events, err := s.Events(ctx, internal.StartOfDay(start), internal.StartOfDay(start).AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Standup (moved)" {
		t.Fatalf("got %v, want the renamed event", events)
	}
}

func TestStorageMissingRecordIsNotFound(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ghost := testEvent("ghost", "Ghost", time.Now(), time.Now().Add(time.Hour))
	if err := s.UpdateEvent(ctx, ghost); !errors.Is(err, internal.ErrNotFound) {
		t.Fatalf("UpdateEvent err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteEvent(ctx, ghost); !errors.Is(err, internal.ErrNotFound) {
		t.Fatalf("DeleteEvent err = %v, want ErrNotFound", err)
	}
}

func TestStorageDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	start := time.Date(2024, time.October, 16, 9, 0, 0, 0, time.Local)
	ev := testEvent("ev-1", "Standup", start, start.Add(30*time.Minute))
	if _, err := s.CreateEvent(ctx, ev); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := s.DeleteEvent(ctx, ev); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	events, err := s.Events(ctx, internal.StartOfDay(start), internal.StartOfDay(start).AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %v after delete, want none", events)
	}
}
