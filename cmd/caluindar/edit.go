package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/pipeline"
)

var EditCommand = _editCommand{
	Name:        "edit",
	Description: "Edit an existing event",
}

type _editCommand struct {
	Name        string
	Description string
}

func (c _editCommand) Run(ctx context.Context, app *App, args []string) error {
	var (
		id       string
		title    string
		start    timeFlag
		end      timeFlag
		allDay   bool
		location string
		colorTag string
		notes    string
		on       = dateFlag{time.Now()}
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.StringVar(&id, "id", "", "event id (shown by the day command)")
	fs.Var(&on, "on", "day the event is around, used to locate it (default: today)")
	fs.StringVar(&title, "title", "", "new title")
	fs.Var(&start, "start", "new start")
	fs.Var(&end, "end", "new end")
	fs.BoolVar(&allDay, "all-day", false, "make the event all-day")
	fs.StringVar(&location, "location", "", "new location")
	fs.StringVar(&colorTag, "color", "", "new display color")
	fs.StringVar(&notes, "notes", "", "new notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: -id is required", internal.ErrInvalidInput)
	}

	event, err := app.findEvent(ctx, id, on.Time)
	if err != nil {
		return err
	}

	draft := internal.EventDraft{
		Title:    event.Title,
		StartsAt: event.StartsAt,
		EndsAt:   event.EndsAt,
		AllDay:   event.AllDay || allDay,
		Location: event.Location,
		Color:    event.Color,
		Notes:    event.Notes,
	}
	if title != "" {
		draft.Title = title
	}
	if !start.IsZero() {
		draft.StartsAt = start.Time
	}
	if !end.IsZero() {
		draft.EndsAt = end.Time
	}
	if location != "" {
		draft.Location = location
	}
	if colorTag != "" {
		draft.Color = internal.Color(colorTag)
	}
	if notes != "" {
		draft.Notes = notes
	}

	pl := pipeline.NewForm(app.Service, event)
	defer pl.Close()

	pl.Send(pipeline.Submitted{Draft: draft})
	snap, err := awaitForm(ctx, pl)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Updated %q (%s)\n", snap.Event.Title, snap.Event.ID)
	return nil
}
