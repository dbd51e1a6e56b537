// Package projection derives the day-indexed views the calendar screens
// render from: a per-date month index, a per-cell title strip and an
// all-day/timed split for one selected day. It never mutates records and
// holds no backend handles; given the same window and records it always
// yields the same result.
package projection

import (
	"sort"
	"time"

	"github.com/caluindar/caluindar/internal"
)

// OverflowMarker is shown when a cell has more events than it can list.
const OverflowMarker = "..."

// maxCellTitles is how many titles fit in one month-grid cell.
const maxCellTitles = 3

type Event = internal.Event

// Projection is the immutable month index for one (window, records)
// pair. Rebuild it whenever the window shifts or a mutation completes;
// there is no partial-update path.
type Projection struct {
	window Window
	days   map[string][]*Event
}

// Build indexes every record whose interval touches a day inside the
// window. Records are copied; callers may keep mutating their own.
func Build(window Window, records []*Event) *Projection {
	p := &Projection{
		window: window,
		days:   make(map[string][]*Event),
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for day := internal.StartOfDay(rec.StartsAt); rec.CoversDay(day); day = day.AddDate(0, 0, 1) {
			if window.Contains(day) {
				key := internal.DayKey(day)
				p.days[key] = append(p.days[key], rec.Clone())
			}
			if !day.Before(window.End) {
				break
			}
		}
	}
	for _, events := range p.days {
		sortEvents(events)
	}
	return p
}

func (p *Projection) Window() Window {
	return p.window
}

// Events returns the ordered records bucketed under date's calendar day.
func (p *Projection) Events(date time.Time) []*Event {
	return p.days[internal.DayKey(date)]
}

// CellTitles is the title strip for one month-grid cell: at most three
// titles, with the overflow marker prepended when more events exist than
// the cell can show.
func (p *Projection) CellTitles(date time.Time) []string {
	events := p.Events(date)
	titles := make([]string, 0, maxCellTitles+1)
	for i, ev := range events {
		if i == maxCellTitles {
			break
		}
		titles = append(titles, ev.Title)
	}
	if len(events) > maxCellTitles {
		titles = append([]string{OverflowMarker}, titles...)
	}
	return titles
}

// DaySplit partitions one day's records into the all-day bucket and the
// timed bucket, the latter ordered by start ascending.
func (p *Projection) DaySplit(date time.Time) (allDay, timed []*Event) {
	for _, ev := range p.Events(date) {
		if ev.AllDay {
			allDay = append(allDay, ev)
		} else {
			timed = append(timed, ev)
		}
	}
	return allDay, timed
}

// EventAtHour returns the first timed event covering the given hour of
// the date, or nil. All-day events never match.
func (p *Projection) EventAtHour(date time.Time, hour int) *Event {
	for _, ev := range p.Events(date) {
		if ev.AllDay {
			continue
		}
		if hour >= ev.StartsAt.Hour() && hour < ev.EndsAt.Hour() {
			return ev
		}
	}
	return nil
}

func sortEvents(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartsAt.Equal(events[j].StartsAt) {
			return events[i].StartsAt.Before(events[j].StartsAt)
		}
		if events[i].Title != events[j].Title {
			return events[i].Title < events[j].Title
		}
		return events[i].ID < events[j].ID
	})
}
