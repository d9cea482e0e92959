package acquisition

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearWindows_Partitioning(t *testing.T) {
	start := day(2019, 1, 1)
	end := time.Date(2025, 9, 18, 17, 45, 0, 0, time.UTC)

	ws := YearWindows(start, end)
	if len(ws) != 7 {
		t.Fatalf("want 7 windows got %d", len(ws))
	}
	for i, w := range ws {
		if w.Year != 2019+i {
			t.Fatalf("window %d: year %d", i, w.Year)
		}
		if i > 0 && !w.Start.Equal(ws[i-1].End.AddDate(0, 0, 1)) {
			t.Fatalf("window %d is not contiguous with the previous one: %v after %v", i, w.Start, ws[i-1].End)
		}
		if w.End.Before(w.Start) {
			t.Fatalf("window %d ends before it starts", i)
		}
	}
	last := ws[len(ws)-1]
	if !last.End.Equal(day(2025, 9, 18)) {
		t.Fatalf("last window must end today, got %v", last.End)
	}
	if last.Complete() {
		t.Fatalf("current year window should not be complete")
	}
	if !ws[0].Complete() {
		t.Fatalf("first window should be complete")
	}
}

func TestYearWindows_EdgeCases(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       []Window
	}{
		{
			name:  "single partial year",
			start: day(2024, 3, 5),
			end:   day(2024, 8, 1),
			want:  []Window{{Year: 2024, Start: day(2024, 3, 5), End: day(2024, 8, 1)}},
		},
		{
			name:  "mid-year start",
			start: day(2023, 11, 20),
			end:   day(2024, 1, 2),
			want: []Window{
				{Year: 2023, Start: day(2023, 11, 20), End: day(2023, 12, 31)},
				{Year: 2024, Start: day(2024, 1, 1), End: day(2024, 1, 2)},
			},
		},
		{name: "inverted", start: day(2025, 1, 1), end: day(2024, 1, 1), want: nil},
		{name: "zero end", start: day(2025, 1, 1), want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := YearWindows(tc.start, tc.end)
			if len(got) != len(tc.want) {
				t.Fatalf("want %d windows got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("window %d: want %+v got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}
