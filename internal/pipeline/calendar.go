package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/projection"
	"github.com/caluindar/caluindar/internal/service"
)

// Intents for the month-grid screen.
type (
	// Appear fires when the screen becomes visible for the first time.
	Appear struct{}

	// PageChanged fires when the user pages the grid to another month.
	PageChanged struct {
		Date time.Time
	}

	// DateSelected marks a day in the grid. It flags navigation intent
	// and does not refetch.
	DateSelected struct {
		Date time.Time
	}

	// EventChanged signals that a create/update/delete completed
	// somewhere; the current window is refetched in full.
	EventChanged struct{}
)

// CalendarSnapshot is the immutable output the month grid renders from.
type CalendarSnapshot struct {
	Phase         Phase
	Page          time.Time
	Window        projection.Window
	Projection    *projection.Projection
	SelectedDate  time.Time
	ShowDayScreen bool
	Err           error
}

type Calendar struct {
	svc *service.Service

	intents chan any
	updates chan CalendarSnapshot
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	snap CalendarSnapshot
}

// NewCalendar starts the pipeline pinned to pivot's month, usually
// today's.
func NewCalendar(svc *service.Service, pivot time.Time) *Calendar {
	c := &Calendar{
		svc:     svc,
		intents: make(chan any, intentBuffer),
		updates: make(chan CalendarSnapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.snap = CalendarSnapshot{
		Phase: PhaseIdle,
		Page:  internal.StartOfDay(pivot),
	}
	go c.run()
	return c
}

// Send enqueues an intent. Intents are processed strictly in arrival
// order; after Close they are discarded.
func (c *Calendar) Send(intent any) {
	select {
	case <-c.quit:
	case c.intents <- intent:
	}
}

// Snapshot returns the last published output.
func (c *Calendar) Snapshot() CalendarSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Updates delivers the latest snapshot after each transition. The
// channel holds only the newest value; a slow consumer skips
// intermediate states, never observes stale ones.
func (c *Calendar) Updates() <-chan CalendarSnapshot {
	return c.updates
}

// Close stops intake. An intent already being handled runs to
// completion but its result is discarded, not published.
func (c *Calendar) Close() {
	close(c.quit)
	<-c.done
}

func (c *Calendar) run() {
	defer close(c.done)
	ctx := context.Background()
	for {
		select {
		case <-c.quit:
			return
		case intent := <-c.intents:
			c.handle(ctx, intent)
		}
	}
}

func (c *Calendar) handle(ctx context.Context, intent any) {
	switch m := intent.(type) {
	case Appear:
		c.reload(ctx, c.Snapshot().Page)
	case PageChanged:
		c.reload(ctx, internal.StartOfDay(m.Date))
	case DateSelected:
		snap := c.Snapshot()
		snap.SelectedDate = m.Date
		snap.ShowDayScreen = true
		c.publish(snap)
	case EventChanged:
		c.reload(ctx, c.Snapshot().Page)
	}
}

func (c *Calendar) reload(ctx context.Context, page time.Time) {
	snap := c.Snapshot()
	snap.Phase = PhaseLoading
	snap.Page = page
	snap.ShowDayScreen = false
	snap.Err = nil
	c.publish(snap)

	window := projection.WindowAround(page)
	events, err := c.svc.Fetch(ctx, window.Start, window.End)

	snap.Window = window
	snap.Projection = projection.Build(window, events)
	snap.Phase = PhaseReady
	snap.Err = err
	c.publish(snap)
}

func (c *Calendar) publish(snap CalendarSnapshot) {
	select {
	case <-c.quit:
		return
	default:
	}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	select {
	case c.updates <- snap:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- snap:
		default:
		}
	}
}
