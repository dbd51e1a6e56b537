package projection

import (
	"fmt"
	"testing"
	"time"

	"github.com/caluindar/caluindar/internal"
)

func day(d int) time.Time {
	return time.Date(2024, time.October, d, 0, 0, 0, 0, time.Local)
}

func at(d, hour, min int) time.Time {
	return time.Date(2024, time.October, d, hour, min, 0, 0, time.Local)
}

func timed(id, title string, start, end time.Time) *internal.Event {
	return &internal.Event{ID: id, Title: title, StartsAt: start, EndsAt: end}
}

func allDay(id, title string, d int) *internal.Event {
	return &internal.Event{
		ID:       id,
		Title:    title,
		StartsAt: internal.StartOfDay(day(d)),
		EndsAt:   internal.EndOfDay(day(d)),
		AllDay:   true,
	}
}

func octoberWindow() Window {
	return Window{Start: day(1), End: day(1).AddDate(0, 1, 0)}
}

func TestBuildBucketsByDay(t *testing.T) {
	proj := Build(octoberWindow(), []*internal.Event{
		timed("a", "Standup", at(16, 9, 0), at(16, 9, 30)),
		timed("b", "Review", at(17, 14, 0), at(17, 15, 0)),
	})

	if got := proj.Events(day(16)); len(got) != 1 || got[0].Title != "Standup" {
		t.Fatalf("day 16 = %v, want [Standup]", got)
	}
	if got := proj.Events(day(17)); len(got) != 1 || got[0].Title != "Review" {
		t.Fatalf("day 17 = %v, want [Review]", got)
	}
	if got := proj.Events(day(18)); len(got) != 0 {
		t.Fatalf("day 18 = %v, want empty", got)
	}
}

func TestBuildSpansMultiDayIntervals(t *testing.T) {
	proj := Build(octoberWindow(), []*internal.Event{
		timed("a", "Conference", at(14, 18, 0), at(16, 12, 0)),
	})

	for d := 14; d <= 16; d++ {
		events := proj.Events(day(d))
		if len(events) != 1 {
			t.Fatalf("day %d has %d records, want exactly 1", d, len(events))
		}
	}
	if got := proj.Events(day(13)); len(got) != 0 {
		t.Fatalf("day 13 = %v, want empty", got)
	}
	if got := proj.Events(day(17)); len(got) != 0 {
		t.Fatalf("day 17 = %v, want empty", got)
	}
}

func TestZeroLengthEventCountsOnce(t *testing.T) {
	instant := at(16, 9, 0)
	proj := Build(octoberWindow(), []*internal.Event{
		timed("a", "Reminder", instant, instant),
	})

	if got := proj.Events(day(16)); len(got) != 1 {
		t.Fatalf("day 16 = %v, want the single reminder", got)
	}
	if got := proj.Events(day(17)); len(got) != 0 {
		t.Fatalf("day 17 = %v, want empty", got)
	}
}

func TestEventEndingAtMidnightExcludesNextDay(t *testing.T) {
	proj := Build(octoberWindow(), []*internal.Event{
		timed("a", "Party", at(16, 20, 0), day(17)),
	})

	if got := proj.Events(day(16)); len(got) != 1 {
		t.Fatalf("day 16 = %v, want [Party]", got)
	}
	if got := proj.Events(day(17)); len(got) != 0 {
		t.Fatalf("half-open interval leaked into day 17: %v", got)
	}
}

func TestCellTitlesOverflow(t *testing.T) {
	var events []*internal.Event
	for i := 0; i < 5; i++ {
		events = append(events, timed(
			fmt.Sprintf("ev-%d", i),
			fmt.Sprintf("Event %d", i),
			at(16, 9+i, 0), at(16, 10+i, 0)))
	}

	t.Run("more than three prepends the marker", func(t *testing.T) {
		proj := Build(octoberWindow(), events)
		titles := proj.CellTitles(day(16))
		if len(titles) != 4 {
			t.Fatalf("titles = %v, want 3 titles plus marker", titles)
		}
		if titles[0] != OverflowMarker {
			t.Fatalf("marker must be prepended, got %v", titles)
		}
		want := []string{"Event 0", "Event 1", "Event 2"}
		for i, title := range want {
			if titles[i+1] != title {
				t.Fatalf("titles = %v, want marker then %v", titles, want)
			}
		}
	})

	t.Run("exactly three has no marker", func(t *testing.T) {
		proj := Build(octoberWindow(), events[:3])
		titles := proj.CellTitles(day(16))
		if len(titles) != 3 {
			t.Fatalf("titles = %v, want exactly 3", titles)
		}
		for _, title := range titles {
			if title == OverflowMarker {
				t.Fatalf("unexpected marker in %v", titles)
			}
		}
	})
}

func TestDaySplit(t *testing.T) {
	proj := Build(octoberWindow(), []*internal.Event{
		timed("b", "Review", at(16, 14, 0), at(16, 15, 0)),
		allDay("c", "Holiday", 16),
		timed("a", "Standup", at(16, 9, 0), at(16, 9, 30)),
	})

	allDayEvents, timedEvents := proj.DaySplit(day(16))
	if len(allDayEvents) != 1 || allDayEvents[0].Title != "Holiday" {
		t.Fatalf("allDay = %v, want [Holiday]", allDayEvents)
	}
	if len(timedEvents) != 2 {
		t.Fatalf("timed = %v, want 2 events", timedEvents)
	}
	if timedEvents[0].Title != "Standup" || timedEvents[1].Title != "Review" {
		t.Fatalf("timed order = [%s %s], want start ascending", timedEvents[0].Title, timedEvents[1].Title)
	}
}

func TestEventAtHour(t *testing.T) {
	proj := Build(octoberWindow(), []*internal.Event{
		allDay("c", "Holiday", 16),
		timed("a", "Standup", at(16, 9, 0), at(16, 10, 0)),
	})

	if got := proj.EventAtHour(day(16), 9); got == nil || got.Title != "Standup" {
		t.Fatalf("hour 9 = %v, want Standup", got)
	}
	if got := proj.EventAtHour(day(16), 10); got != nil {
		t.Fatalf("hour 10 = %v, want nil (end hour excluded)", got)
	}
	if got := proj.EventAtHour(day(16), 12); got != nil {
		t.Fatalf("all-day events must not match hours, got %v", got)
	}
}

func TestProjectionIsPure(t *testing.T) {
	records := []*internal.Event{
		timed("a", "Standup", at(16, 9, 0), at(16, 9, 30)),
	}
	window := octoberWindow()

	first := Build(window, records)
	records[0].Title = "Mutated"
	second := Build(window, []*internal.Event{
		timed("a", "Standup", at(16, 9, 0), at(16, 9, 30)),
	})

	a := first.Events(day(16))
	b := second.Events(day(16))
	if a[0].Title != b[0].Title {
		t.Fatal("projection leaked caller mutations into its index")
	}
}

func TestWindowAround(t *testing.T) {
	pivot := at(16, 13, 45)
	window := WindowAround(pivot)

	if !window.Contains(internal.StartOfDay(pivot)) {
		t.Fatalf("window %s must contain its pivot day", window)
	}
	if want := day(16).AddDate(0, -2, 0); !window.Start.Equal(want) {
		t.Fatalf("Start = %s, want %s", window.Start, want)
	}
	if want := day(16).AddDate(0, 2, 0); !window.End.Equal(want) {
		t.Fatalf("End = %s, want %s", window.End, want)
	}
}

func TestDayWindow(t *testing.T) {
	window := DayWindow(at(16, 13, 45))
	if !window.Start.Equal(day(16)) || !window.End.Equal(day(17)) {
		t.Fatalf("window = %s, want [day16, day17)", window)
	}
}

func TestGridDays(t *testing.T) {
	days := GridDays(day(1))
	if len(days) != 42 {
		t.Fatalf("grid has %d days, want 42", len(days))
	}
	// October 2024 starts on a Tuesday; the grid starts the Sunday before.
	if want := time.Date(2024, time.September, 29, 0, 0, 0, 0, time.Local); !days[0].Date.Equal(want) {
		t.Fatalf("grid starts %s, want %s", days[0].Date, want)
	}
	if days[0].InPage {
		t.Fatal("September day flagged in page")
	}

	var inPage int
	for _, d := range days {
		if d.InPage {
			inPage++
		}
	}
	if inPage != 31 {
		t.Fatalf("%d days flagged in page, want 31", inPage)
	}
}
