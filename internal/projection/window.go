package projection

import (
	"fmt"
	"time"

	"github.com/caluindar/caluindar/internal"
)

// monthSpan is how far the fetch window reaches either side of its
// pivot. The month grid materializes four months at a time so paging a
// month in either direction stays inside already-fetched data.
const monthSpan = 2

// Window is the half-open [Start, End) date range currently
// materialized for display.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowAround builds the wide fetch window centered on pivot. The
// pivot's own day is always inside it.
func WindowAround(pivot time.Time) Window {
	day := internal.StartOfDay(pivot)
	return Window{
		Start: day.AddDate(0, -monthSpan, 0),
		End:   day.AddDate(0, monthSpan, 0),
	}
}

// DayWindow is the narrow single-day window used by the day screen.
func DayWindow(date time.Time) Window {
	day := internal.StartOfDay(date)
	return Window{Start: day, End: day.AddDate(0, 0, 1)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(internal.DateFormat), w.End.Format(internal.DateFormat))
}
