package pipeline

import (
	"context"
	"sync"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/service"
)

// Intents for the event-detail screen.
type (
	// EditTapped opens the edit form for the shown event.
	EditTapped struct{}

	// TrashTapped asks for delete confirmation.
	TrashTapped struct{}

	// DeleteConfirmed deletes the shown event through its own backend.
	DeleteConfirmed struct{}

	// EventUpdated replaces the shown event after an edit elsewhere.
	EventUpdated struct {
		Event *internal.Event
	}
)

type DetailSnapshot struct {
	Phase         Phase
	Event         *internal.Event
	ShowForm      bool
	ConfirmDelete bool
	Dismiss       bool
	Err           error
}

type Detail struct {
	svc *service.Service

	intents chan any
	updates chan DetailSnapshot
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	snap DetailSnapshot
}

func NewDetail(svc *service.Service, event *internal.Event) *Detail {
	d := &Detail{
		svc:     svc,
		intents: make(chan any, intentBuffer),
		updates: make(chan DetailSnapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	d.snap = DetailSnapshot{
		Phase: PhaseReady,
		Event: event.Clone(),
	}
	go d.run()
	return d
}

func (d *Detail) Send(intent any) {
	select {
	case <-d.quit:
	case d.intents <- intent:
	}
}

func (d *Detail) Snapshot() DetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

func (d *Detail) Updates() <-chan DetailSnapshot {
	return d.updates
}

func (d *Detail) Close() {
	close(d.quit)
	<-d.done
}

func (d *Detail) run() {
	defer close(d.done)
	ctx := context.Background()
	for {
		select {
		case <-d.quit:
			return
		case intent := <-d.intents:
			d.handle(ctx, intent)
		}
	}
}

func (d *Detail) handle(ctx context.Context, intent any) {
	switch m := intent.(type) {
	case EditTapped:
		snap := d.Snapshot()
		snap.ShowForm = true
		d.publish(snap)
	case TrashTapped:
		snap := d.Snapshot()
		snap.ConfirmDelete = true
		d.publish(snap)
	case DeleteConfirmed:
		d.delete(ctx)
	case EventUpdated:
		snap := d.Snapshot()
		snap.Event = m.Event.Clone()
		snap.ShowForm = false
		d.publish(snap)
	}
}

func (d *Detail) delete(ctx context.Context) {
	snap := d.Snapshot()
	snap.Phase = PhaseDeleting
	snap.ConfirmDelete = false
	snap.Err = nil
	d.publish(snap)

	err := d.svc.Delete(ctx, snap.Event)

	snap.Phase = PhaseReady
	if err != nil {
		snap.Err = err
		d.publish(snap)
		return
	}
	snap.Dismiss = true
	d.publish(snap)
}

func (d *Detail) publish(snap DetailSnapshot) {
	select {
	case <-d.quit:
		return
	default:
	}
	d.mu.Lock()
	d.snap = snap
	d.mu.Unlock()

	select {
	case d.updates <- snap:
	default:
		select {
		case <-d.updates:
		default:
		}
		select {
		case d.updates <- snap:
		default:
		}
	}
}
