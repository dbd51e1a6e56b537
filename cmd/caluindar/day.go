package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caluindar/caluindar/internal/pipeline"
)

var DayCommand = _dayCommand{
	Name:        "day",
	Description: "Show one day's events, all-day first",
}

type _dayCommand struct {
	Name        string
	Description string
}

func (c _dayCommand) Run(ctx context.Context, app *App, args []string) error {
	date := dateFlag{time.Now()}

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Var(&date, "on", "day to show (e.g. 2024-10-16, default: today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pl := pipeline.NewDays(app.Service, date.Time)
	defer pl.Close()

	pl.Send(pipeline.Appear{})
	snap, err := awaitDays(ctx, pl)
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintln(w, snap.Date.Format("Monday, January 2, 2006"))
	if len(snap.AllDay) == 0 && len(snap.Timed) == 0 {
		fmt.Fprintln(w, "No events")
		return nil
	}
	for _, ev := range snap.AllDay {
		fmt.Fprintf(w, "  all day      %s\n", colorize(ev.Color, ev.Title))
	}
	for _, ev := range snap.Timed {
		fmt.Fprintf(w, "  %s-%s  %s", formatTime(ev.StartsAt), formatTime(ev.EndsAt), colorize(ev.Color, ev.Title))
		if ev.Location != "" {
			fmt.Fprintf(w, "  (%s)", ev.Location)
		}
		fmt.Fprintf(w, "  [%s]\n", ev.ID)
	}
	return nil
}

func awaitDays(ctx context.Context, pl *pipeline.Days) (pipeline.DaysSnapshot, error) {
	for {
		select {
		case snap := <-pl.Updates():
			if snap.Phase == pipeline.PhaseReady {
				return snap, snap.Err
			}
		case <-ctx.Done():
			return pipeline.DaysSnapshot{}, ctx.Err()
		}
	}
}
