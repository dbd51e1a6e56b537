package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/pipeline"
)

var AddCommand = _addCommand{
	Name:        "add",
	Description: "Create a new event",
}

type _addCommand struct {
	Name        string
	Description string
}

func (c _addCommand) Run(ctx context.Context, app *App, args []string) error {
	var (
		title    string
		start    timeFlag
		end      timeFlag
		allDay   bool
		location string
		colorTag string
		notes    string
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.StringVar(&title, "title", "", "event title")
	fs.Var(&start, "start", `start (e.g. "2024-10-16 09:00")`)
	fs.Var(&end, "end", `end (e.g. "2024-10-16 09:30")`)
	fs.BoolVar(&allDay, "all-day", false, "all-day event; start/end stretch to day bounds")
	fs.StringVar(&location, "location", "", "event location")
	fs.StringVar(&colorTag, "color", "", `display color (e.g. "#5484ed")`)
	fs.StringVar(&notes, "notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: -start and -end are required", internal.ErrInvalidInput)
	}

	pl := pipeline.NewForm(app.Service, nil)
	defer pl.Close()

	pl.Send(pipeline.Submitted{Draft: internal.EventDraft{
		Title:    title,
		StartsAt: start.Time,
		EndsAt:   end.Time,
		AllDay:   allDay,
		Location: location,
		Color:    internal.Color(colorTag),
		Notes:    notes,
	}})

	snap, err := awaitForm(ctx, pl)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created %q (%s) on %s\n",
		snap.Event.Title, snap.Event.ID, snap.Event.StartsAt.Format(internal.DateFormat))
	return nil
}

func awaitForm(ctx context.Context, pl *pipeline.Form) (pipeline.FormSnapshot, error) {
	for {
		select {
		case snap := <-pl.Updates():
			if snap.Phase != pipeline.PhaseReady {
				continue
			}
			if snap.Err != nil {
				return snap, snap.Err
			}
			if snap.Saved {
				return snap, nil
			}
		case <-ctx.Done():
			return pipeline.FormSnapshot{}, ctx.Err()
		}
	}
}
