package sqlite

import (
	"time"

	"github.com/caluindar/caluindar/internal"
)

type Event struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	StartsAt int64  `db:"starts_at"`
	EndsAt   int64  `db:"ends_at"`
	AllDay   bool   `db:"all_day"`
	Location string `db:"location"`
	Color    []byte `db:"color"`
	Notes    string `db:"notes"`
}

func newRow(event *internal.Event) Event {
	return Event{
		ID:       event.ID,
		Title:    event.Title,
		StartsAt: event.StartsAt.Unix(),
		EndsAt:   event.EndsAt.Unix(),
		AllDay:   event.AllDay,
		Location: event.Location,
		Color:    event.Color.Bytes(),
		Notes:    event.Notes,
	}
}

func (e Event) Convert() *internal.Event {
	return &internal.Event{
		ID:       e.ID,
		Title:    e.Title,
		StartsAt: time.Unix(e.StartsAt, 0).In(time.Local),
		EndsAt:   time.Unix(e.EndsAt, 0).In(time.Local),
		AllDay:   e.AllDay,
		Location: e.Location,
		Color:    internal.ColorFromBytes(e.Color),
		Notes:    e.Notes,
		Source:   internal.SourceLocal,
	}
}
