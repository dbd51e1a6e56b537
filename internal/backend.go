package internal

import (
	"context"
	"time"
)

// Backend is the narrow CRUD contract both adapters implement. The
// repository depends only on this interface; native record shapes stay
// inside each adapter.
type Backend interface {
	// Events returns events overlapping the half-open range [start, end),
	// already converted to the domain shape with Source set.
	Events(ctx context.Context, start, end time.Time) ([]*Event, error)

	// CreateEvent persists a new record and returns it with the
	// backend-assigned identifier filled in.
	CreateEvent(ctx context.Context, event *Event) (*Event, error)

	// UpdateEvent rewrites the stored record resolved by the event's own
	// identifier. ErrNotFound if the backend cannot resolve it.
	UpdateEvent(ctx context.Context, event *Event) error

	// DeleteEvent removes the stored record. ErrNotFound if the backend
	// cannot resolve it; deleting a missing record is not a silent success.
	DeleteEvent(ctx context.Context, event *Event) error
}
