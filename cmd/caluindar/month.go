package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/pipeline"
	"github.com/caluindar/caluindar/internal/projection"
)

var MonthCommand = _monthCommand{
	Name:        "month",
	Description: "Show the month grid with event summaries",
}

type _monthCommand struct {
	Name        string
	Description string
}

func (c _monthCommand) Run(ctx context.Context, app *App, args []string) error {
	page := dateFlag{time.Now()}

	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Var(&page, "page", "month to show (e.g. 2024-10-01, default: today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pl := pipeline.NewCalendar(app.Service, page.Time)
	defer pl.Close()

	pl.Send(pipeline.Appear{})
	snap, err := awaitCalendar(ctx, pl)
	if err != nil {
		return err
	}

	renderMonth(os.Stdout, snap)
	return nil
}

func awaitCalendar(ctx context.Context, pl *pipeline.Calendar) (pipeline.CalendarSnapshot, error) {
	for {
		select {
		case snap := <-pl.Updates():
			if snap.Phase == pipeline.PhaseReady {
				return snap, snap.Err
			}
		case <-ctx.Done():
			return pipeline.CalendarSnapshot{}, ctx.Err()
		}
	}
}

func renderMonth(w *os.File, snap pipeline.CalendarSnapshot) {
	fmt.Fprintf(w, "      %s\n", snap.Page.Format("January 2006"))
	fmt.Fprintln(w, "Sun Mon Tue Wed Thu Fri Sat")

	days := projection.GridDays(snap.Page)
	for row := 0; row < len(days); row += 7 {
		cells := make([]string, 0, 7)
		for _, day := range days[row : row+7] {
			cell := fmt.Sprintf("%3d", day.Date.Day())
			if !day.InPage {
				cell = dim(cell)
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
	fmt.Fprintln(w)

	for _, day := range days {
		titles := snap.Projection.CellTitles(day.Date)
		if len(titles) == 0 {
			continue
		}
		line := fmt.Sprintf("%s  %s", internal.DayKey(day.Date), strings.Join(titles, ", "))
		if !day.InPage {
			line = dim(line)
		}
		fmt.Fprintln(w, line)
	}
}
