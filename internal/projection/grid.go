package projection

import "time"

// GridDay is one cell of the rendered 6-week month grid. InPage is a
// display hint only; events on out-of-page days are still indexed and
// returned, the consumer just dims them.
type GridDay struct {
	Date   time.Time
	InPage bool
}

const (
	gridWeeks   = 6
	gridColumns = 7
)

// GridDays lays out the 6-week grid for the month containing page,
// starting each row on Sunday. It always returns 42 days; leading and
// trailing days belong to the neighbor months and are flagged
// InPage=false.
func GridDays(page time.Time) []GridDay {
	first := time.Date(page.Year(), page.Month(), 1, 0, 0, 0, 0, page.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]GridDay, 0, gridWeeks*gridColumns)
	for i := 0; i < gridWeeks*gridColumns; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, GridDay{
			Date:   d,
			InPage: d.Month() == page.Month() && d.Year() == page.Year(),
		})
	}
	return days
}
