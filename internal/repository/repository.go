// Package repository routes event CRUD between the live and local
// backends and is the only place that decides which one is authoritative
// for a given call.
package repository

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/access"
)

type (
	Event      = internal.Event
	EventDraft = internal.EventDraft
)

type Repository struct {
	output io.Writer
	gate   *access.Gate
	live   internal.Backend
	local  internal.Backend
}

func New(output io.Writer, gate *access.Gate, live, local internal.Backend) *Repository {
	if output == nil {
		output = os.Stderr
	}
	return &Repository{
		output: output,
		gate:   gate,
		live:   live,
		local:  local,
	}
}

// active picks the backend for fetch/create from the access state
// snapshot at call entry. The choice is made once per call; both sources
// are never merged.
func (r *Repository) active() (internal.Backend, internal.Source) {
	if r.gate.HasFullAccess() {
		return r.live, internal.SourceLive
	}
	return r.local, internal.SourceLocal
}

// byOrigin picks the backend an existing record's writes must go to.
// A record keeps routing to the backend that created it even if the
// access state changed since; anything else orphans the write.
func (r *Repository) byOrigin(source internal.Source) internal.Backend {
	if source == internal.SourceLive {
		return r.live
	}
	return r.local
}

// Fetch returns events overlapping [start, end) from whichever backend
// is active right now. A failed read degrades to an empty result instead
// of propagating; a broken backend should not take the calendar down.
func (r *Repository) Fetch(ctx context.Context, start, end time.Time) ([]*Event, error) {
	backend, source := r.active()
	events, err := backend.Events(ctx, start, end)
	if err != nil {
		r.logf(source, "unable to fetch events: %v", err)
		return []*Event{}, nil
	}
	for _, ev := range events {
		ev.Source = source
	}
	return events, nil
}

// Create routes by the current access state, assigns the record's stable
// ID and, on the live route, records the backend's own reference.
func (r *Repository) Create(ctx context.Context, draft EventDraft) (*Event, error) {
	backend, source := r.active()

	event := &Event{
		ID:       uuid.NewString(),
		Title:    draft.Title,
		StartsAt: draft.StartsAt,
		EndsAt:   draft.EndsAt,
		AllDay:   draft.AllDay,
		Location: draft.Location,
		Color:    draft.Color,
		Notes:    draft.Notes,
		Source:   source,
	}
	created, err := backend.CreateEvent(ctx, event)
	if err != nil {
		return nil, internal.NewBackendError(source, "create", err)
	}
	created.Source = source
	return created, nil
}

// Update dispatches to the backend named by the record's own Source, not
// the current access state.
func (r *Repository) Update(ctx context.Context, event *Event) error {
	err := r.byOrigin(event.Source).UpdateEvent(ctx, event)
	return internal.NewBackendError(event.Source, "update", err)
}

// Delete follows the same routing rule as Update. A record the owning
// backend cannot resolve is ErrNotFound, never a silent success.
func (r *Repository) Delete(ctx context.Context, event *Event) error {
	err := r.byOrigin(event.Source).DeleteEvent(ctx, event)
	return internal.NewBackendError(event.Source, "delete", err)
}

func (r *Repository) logf(source internal.Source, format string, a ...any) {
	internal.Logf(r.output, "repository:", source, format, a...)
}
