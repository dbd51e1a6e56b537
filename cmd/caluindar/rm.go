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

var RemoveCommand = _rmCommand{
	Name:        "rm",
	Description: "Delete an event",
}

type _rmCommand struct {
	Name        string
	Description string
}

func (c _rmCommand) Run(ctx context.Context, app *App, args []string) error {
	var (
		id string
		on = dateFlag{time.Now()}
	)

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.StringVar(&id, "id", "", "event id (shown by the day command)")
	fs.Var(&on, "on", "day the event is around, used to locate it (default: today)")
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

	pl := pipeline.NewDetail(app.Service, event)
	defer pl.Close()

	pl.Send(pipeline.TrashTapped{})
	pl.Send(pipeline.DeleteConfirmed{})

	for {
		select {
		case snap := <-pl.Updates():
			if snap.Err != nil {
				return snap.Err
			}
			if snap.Dismiss {
				fmt.Fprintf(os.Stdout, "Deleted %q (%s)\n", event.Title, event.ID)
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
