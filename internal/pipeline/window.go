package pipeline

import "time"

// Window is an inclusive time range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, both ends included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthWindow returns the calendar month containing ref, in ref's location:
// from the first instant of the month to one millisecond before the next.
func MonthWindow(ref time.Time) Window {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
	}
}

// YearWindow returns the calendar year in loc, built the same way as MonthWindow.
func YearWindow(year int, loc *time.Location) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Millisecond),
	}
}

// MonthsOf splits a year into its twelve month windows.
func MonthsOf(year int, loc *time.Location) []Window {
	out := make([]Window, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, MonthWindow(time.Date(year, m, 1, 0, 0, 0, 0, loc)))
	}
	return out
}

// wholeDays truncates a duration to whole days toward zero.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

// daysBetween counts whole days from one instant to another, truncated
// toward zero. Both are read as wall-clock times in from's location, so a
// daylight-saving shift between them does not lose or add a day.
func daysBetween(from, to time.Time) int {
	return wholeDays(wallClock(to.In(from.Location())).Sub(wallClock(from)))
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
