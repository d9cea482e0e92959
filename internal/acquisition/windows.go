package acquisition

import (
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

// Window is a single retrieval request covering (at most) one calendar year.
type Window struct {
	Year  int
	Start time.Time
	End   time.Time
}

// Complete reports whether the window spans its whole calendar year.
func (w Window) Complete() bool {
	return w.Start.Equal(time.Date(w.Year, 1, 1, 0, 0, 0, 0, time.UTC)) &&
		w.End.Equal(time.Date(w.Year, 12, 31, 0, 0, 0, 0, time.UTC))
}

// YearWindows partitions [start, end] into inclusive, non-overlapping
// calendar-year windows, oldest first.
//
// Behavior:
//   - Every year from start.Year() to end.Year() gets exactly one window.
//   - A window normally spans Jan 1 to Dec 31.
//   - The first window starts at start when start is later than Jan 1.
//   - The last window ends at end, so no future dates are requested.
//   - start after end yields no windows.
func YearWindows(start, end time.Time) []Window {
	start, end = models.Day(start), models.Day(end)
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil
	}

	out := make([]Window, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		w := Window{
			Year:  y,
			Start: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC),
		}
		if w.Start.Before(start) {
			w.Start = start
		}
		if w.End.After(end) {
			w.End = end
		}
		out = append(out, w)
	}
	return out
}
