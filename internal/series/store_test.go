package series

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_AppendKeepsOrderAndDuplicates(t *testing.T) {
	s := NewStore()
	pts := []models.PricePoint{
		{Date: day(2020, 3, 1), Price: 10},
		{Date: day(2020, 1, 1), Price: 20},
		{Date: day(2020, 3, 1), Price: 30},
	}
	if err := s.Append(pts...); err != nil {
		t.Fatalf("append: %v", err)
	}
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("want 3 points got %d", len(snap))
	}
	for i := range pts {
		if snap[i] != pts[i] {
			t.Fatalf("point %d: want %+v got %+v", i, pts[i], snap[i])
		}
	}
}

func TestStore_AppendRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		p    models.PricePoint
	}{
		{name: "zero date", p: models.PricePoint{Price: 1}},
		{name: "negative price", p: models.PricePoint{Date: day(2020, 1, 1), Price: -0.01}},
		{name: "nan price", p: models.PricePoint{Date: day(2020, 1, 1), Price: math.NaN()}},
		{name: "inf price", p: models.PricePoint{Date: day(2020, 1, 1), Price: math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			ok := models.PricePoint{Date: day(2019, 1, 1), Price: 5}
			err := s.Append(ok, tc.p)
			if !errors.Is(err, ErrInvalidObservation) {
				t.Fatalf("want ErrInvalidObservation got %v", err)
			}
			if s.Len() != 0 {
				t.Fatalf("append must be atomic, store has %d points", s.Len())
			}
		})
	}
}

func TestStore_ZeroPriceIsValid(t *testing.T) {
	s := NewStore()
	if err := s.Append(models.PricePoint{Date: day(2020, 1, 1), Price: 0}); err != nil {
		t.Fatalf("zero price should be accepted: %v", err)
	}
}

func TestStore_MergeFirstWriteWins(t *testing.T) {
	s := NewStore()
	n, err := s.Merge(
		models.PricePoint{Date: day(2020, 1, 2), Price: 100},
		models.PricePoint{Date: day(2020, 1, 3), Price: 101},
	)
	if err != nil || n != 2 {
		t.Fatalf("first merge: n=%d err=%v", n, err)
	}
	// Same day with a different wall-clock time still collides.
	n, err = s.Merge(
		models.PricePoint{Date: time.Date(2020, 1, 3, 15, 4, 5, 0, time.UTC), Price: 999},
		models.PricePoint{Date: day(2020, 1, 6), Price: 102},
	)
	if err != nil || n != 1 {
		t.Fatalf("second merge: n=%d err=%v", n, err)
	}
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("want 3 points got %d", len(snap))
	}
	if snap[1].Price != 101 {
		t.Fatalf("first write should win, got %v", snap[1].Price)
	}
}

func TestStore_FreezeBlocksWrites(t *testing.T) {
	s := NewStore()
	s.Freeze()
	if !s.Frozen() {
		t.Fatalf("expected frozen store")
	}
	if err := s.Append(models.PricePoint{Date: day(2020, 1, 1), Price: 1}); !errors.Is(err, ErrStoreFrozen) {
		t.Fatalf("append: want ErrStoreFrozen got %v", err)
	}
	if _, err := s.Merge(models.PricePoint{Date: day(2020, 1, 1), Price: 1}); !errors.Is(err, ErrStoreFrozen) {
		t.Fatalf("merge: want ErrStoreFrozen got %v", err)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore()
	_ = s.Append(models.PricePoint{Date: day(2020, 1, 1), Price: 1})
	snap := s.Snapshot()
	snap[0].Price = 42

	got, err := s.LoadSeries(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0].Price != 1 {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestStore_ConcurrentMerge(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for y := 2015; y < 2025; y++ {
		wg.Add(1)
		go func(year int) {
			defer wg.Done()
			var pts []models.PricePoint
			for d := 1; d <= 28; d++ {
				pts = append(pts, models.PricePoint{Date: day(year, 2, d), Price: float64(d)})
			}
			if _, err := s.Merge(pts...); err != nil {
				t.Errorf("merge %d: %v", year, err)
			}
		}(y)
	}
	wg.Wait()
	if s.Len() != 10*28 {
		t.Fatalf("want %d points got %d", 10*28, s.Len())
	}
}
