package pipeline

import (
	"context"
	"sync"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/service"
)

type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// Submitted carries the form contents when the save button is pushed.
// In edit mode the draft's fields overwrite the event the form was
// opened with.
type Submitted struct {
	Draft internal.EventDraft
}

// FormSnapshot is the form screen's output. Saved flips exactly once per
// successful submission; the owning screen reacts to it by reloading.
// On failure Err is set and the form stays open.
type FormSnapshot struct {
	Phase   Phase
	Mode    FormMode
	Event   *internal.Event
	Saved   bool
	Dismiss bool
	Err     error
}

type Form struct {
	svc *service.Service

	intents chan any
	updates chan FormSnapshot
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	snap FormSnapshot
}

// NewForm starts a form pipeline. A nil event means create mode; a
// non-nil event is edited in place and dispatched by its own origin.
func NewForm(svc *service.Service, event *internal.Event) *Form {
	f := &Form{
		svc:     svc,
		intents: make(chan any, intentBuffer),
		updates: make(chan FormSnapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	mode := ModeCreate
	if event != nil {
		mode = ModeEdit
		event = event.Clone()
	}
	f.snap = FormSnapshot{
		Phase: PhaseIdle,
		Mode:  mode,
		Event: event,
	}
	go f.run()
	return f
}

func (f *Form) Send(intent any) {
	select {
	case <-f.quit:
	case f.intents <- intent:
	}
}

func (f *Form) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *Form) Updates() <-chan FormSnapshot {
	return f.updates
}

func (f *Form) Close() {
	close(f.quit)
	<-f.done
}

func (f *Form) run() {
	defer close(f.done)
	ctx := context.Background()
	for {
		select {
		case <-f.quit:
			return
		case intent := <-f.intents:
			if m, ok := intent.(Submitted); ok {
				f.save(ctx, m.Draft)
			}
		}
	}
}

func (f *Form) save(ctx context.Context, draft internal.EventDraft) {
	snap := f.Snapshot()
	snap.Phase = PhaseSaving
	snap.Saved = false
	snap.Err = nil
	f.publish(snap)

	var err error
	switch snap.Mode {
	case ModeEdit:
		updated := snap.Event.Clone()
		updated.Title = draft.Title
		updated.StartsAt = draft.StartsAt
		updated.EndsAt = draft.EndsAt
		updated.AllDay = draft.AllDay
		updated.Location = draft.Location
		updated.Color = draft.Color
		updated.Notes = draft.Notes
		err = f.svc.Update(ctx, updated)
		if err == nil {
			snap.Event = updated
		}
	default:
		snap.Event, err = f.svc.Create(ctx, draft)
	}

	snap.Phase = PhaseReady
	if err != nil {
		snap.Err = err
		f.publish(snap)
		return
	}
	snap.Saved = true
	snap.Dismiss = true
	f.publish(snap)
}

func (f *Form) publish(snap FormSnapshot) {
	select {
	case <-f.quit:
		return
	default:
	}
	f.mu.Lock()
	f.snap = snap
	f.mu.Unlock()

	select {
	case f.updates <- snap:
	default:
		select {
		case <-f.updates:
		default:
		}
		select {
		case f.updates <- snap:
		default:
		}
	}
}
