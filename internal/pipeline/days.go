package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/projection"
	"github.com/caluindar/caluindar/internal/service"
)

// DaysSnapshot is the day-detail screen's output: the selected day's
// records split into the all-day bucket and the timed bucket, the latter
// ordered by start ascending.
type DaysSnapshot struct {
	Phase  Phase
	Date   time.Time
	AllDay []*internal.Event
	Timed  []*internal.Event
	Err    error
}

// EventAtHour returns the first timed event covering the given hour, or
// nil. Mirrors how the hour rows on the day screen look up their event.
func (s DaysSnapshot) EventAtHour(hour int) *internal.Event {
	for _, ev := range s.Timed {
		if hour >= ev.StartsAt.Hour() && hour < ev.EndsAt.Hour() {
			return ev
		}
	}
	return nil
}

type Days struct {
	svc *service.Service

	intents chan any
	updates chan DaysSnapshot
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	snap DaysSnapshot
}

func NewDays(svc *service.Service, date time.Time) *Days {
	d := &Days{
		svc:     svc,
		intents: make(chan any, intentBuffer),
		updates: make(chan DaysSnapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	d.snap = DaysSnapshot{
		Phase: PhaseIdle,
		Date:  internal.StartOfDay(date),
	}
	go d.run()
	return d
}

func (d *Days) Send(intent any) {
	select {
	case <-d.quit:
	case d.intents <- intent:
	}
}

func (d *Days) Snapshot() DaysSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

func (d *Days) Updates() <-chan DaysSnapshot {
	return d.updates
}

func (d *Days) Close() {
	close(d.quit)
	<-d.done
}

func (d *Days) run() {
	defer close(d.done)
	ctx := context.Background()
	for {
		select {
		case <-d.quit:
			return
		case intent := <-d.intents:
			switch intent.(type) {
			case Appear, EventChanged:
				d.reload(ctx)
			}
		}
	}
}

func (d *Days) reload(ctx context.Context) {
	snap := d.Snapshot()
	snap.Phase = PhaseLoading
	snap.Err = nil
	d.publish(snap)

	window := projection.DayWindow(snap.Date)
	events, err := d.svc.Fetch(ctx, window.Start, window.End)

	proj := projection.Build(window, events)
	snap.AllDay, snap.Timed = proj.DaySplit(snap.Date)
	snap.Phase = PhaseReady
	snap.Err = err
	d.publish(snap)
}

func (d *Days) publish(snap DaysSnapshot) {
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
