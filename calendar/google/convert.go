package google

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/caluindar/caluindar/internal"
)

// idProperty carries the domain ID on the native record so it survives
// a round trip through the live backend.
const idProperty = "caluindar_id"

// eventColors is the fixed Google event color palette, keyed by colorId.
var eventColors = map[string]internal.Color{
	"1":  "#a4bdfc",
	"2":  "#7ae7bf",
	"3":  "#dbadff",
	"4":  "#ff887c",
	"5":  "#fbd75b",
	"6":  "#ffb878",
	"7":  "#46d6db",
	"8":  "#e1e1e1",
	"9":  "#5484ed",
	"10": "#51b749",
	"11": "#dc2127",
}

func newEvent(event *calendar.Event) *internal.Event {
	var (
		startsAt time.Time
		endsAt   time.Time
		allDay   bool
	)
	if event.Start != nil && event.Start.Date != "" {
		// All-day records come back as bare dates; normalize to the
		// same day bounds the service writes.
		allDay = true
		day, _ := time.ParseInLocation(internal.DateFormat, event.Start.Date, time.Local)
		startsAt = internal.StartOfDay(day)
		endsAt = internal.EndOfDay(day)
	} else {
		if event.Start != nil {
			startsAt, _ = time.Parse(time.RFC3339, event.Start.DateTime)
			startsAt = startsAt.In(time.Local)
		}
		if event.End != nil {
			endsAt, _ = time.Parse(time.RFC3339, event.End.DateTime)
			endsAt = endsAt.In(time.Local)
		}
	}

	id := event.Id
	if event.ExtendedProperties != nil {
		if v, ok := event.ExtendedProperties.Private[idProperty]; ok && v != "" {
			id = v
		}
	}

	return &internal.Event{
		ID:          id,
		ExternalRef: event.Id,
		Title:       event.Summary,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		AllDay:      allDay,
		Location:    event.Location,
		Color:       eventColors[event.ColorId],
		Notes:       event.Description,
		Source:      internal.SourceLive,
	}
}

func newGoogleEvent(event *internal.Event) *calendar.Event {
	gevent := &calendar.Event{
		Summary:     event.Title,
		Description: event.Notes,
		Location:    event.Location,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				idProperty: event.ID,
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: true,
		},
	}
	if event.AllDay {
		gevent.Start = &calendar.EventDateTime{
			Date: event.StartsAt.Format(internal.DateFormat),
		}
		gevent.End = &calendar.EventDateTime{
			Date: event.EndsAt.AddDate(0, 0, 1).Format(internal.DateFormat),
		}
	} else {
		gevent.Start = &calendar.EventDateTime{
			DateTime: event.StartsAt.Format(time.RFC3339),
		}
		gevent.End = &calendar.EventDateTime{
			DateTime: event.EndsAt.Format(time.RFC3339),
		}
	}
	for colorID, hex := range eventColors {
		if hex == event.Color {
			gevent.ColorId = colorID
			break
		}
	}
	return gevent
}
