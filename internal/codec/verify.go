package codec

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/domain/models"
)

// Verify checks that reloaded reproduces the average, the top-n and bottom-n
// of the trailing year, and the optimal buy/sell window of original.
// Both series are compared in date order, so a codec may reorder points.
// The first difference found is returned wrapped in ErrRoundTripMismatch.
func Verify(original, reloaded []models.PricePoint, topN int, now time.Time) error {
	if len(original) != len(reloaded) {
		return fmt.Errorf("%w: %d points written, %d read back", ErrRoundTripMismatch, len(original), len(reloaded))
	}
	original, reloaded = byDate(original), byDate(reloaded)

	a1, err1 := analytics.Average(original)
	a2, err2 := analytics.Average(reloaded)
	if !errors.Is(err2, err1) || a1 != a2 {
		return fmt.Errorf("%w: average %v vs %v", ErrRoundTripMismatch, a1, a2)
	}

	if err := samePoints("top", analytics.TopN(original, topN, now), analytics.TopN(reloaded, topN, now)); err != nil {
		return err
	}
	if err := samePoints("bottom", analytics.BottomN(original, topN, now), analytics.BottomN(reloaded, topN, now)); err != nil {
		return err
	}

	from, to := yearSpan(original)
	w1, err1 := analytics.OptimalWindow(original, from, to)
	w2, err2 := analytics.OptimalWindow(reloaded, from, to)
	if !errors.Is(err2, err1) || !errors.Is(err1, err2) {
		return fmt.Errorf("%w: optimal window error %v vs %v", ErrRoundTripMismatch, err1, err2)
	}
	if !sameWindow(w1, w2) {
		return fmt.Errorf("%w: optimal window %+v vs %+v", ErrRoundTripMismatch, w1, w2)
	}
	return nil
}

func byDate(points []models.PricePoint) []models.PricePoint {
	out := append([]models.PricePoint(nil), points...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func samePoints(label string, a, b []models.PricePoint) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s has %d vs %d points", ErrRoundTripMismatch, label, len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Price != b[i].Price {
			return fmt.Errorf("%w: %s[%d] %s=%v vs %s=%v", ErrRoundTripMismatch, label, i,
				formatDate(a[i].Date), a[i].Price, formatDate(b[i].Date), b[i].Price)
		}
	}
	return nil
}

func sameWindow(a, b models.BuySellWindow) bool {
	return a.BuyDate.Equal(b.BuyDate) && a.SellDate.Equal(b.SellDate) &&
		a.BuyPrice == b.BuyPrice && a.SellPrice == b.SellPrice && a.ROIPercent == b.ROIPercent
}

func yearSpan(points []models.PricePoint) (int, int) {
	if len(points) == 0 {
		return 0, 0
	}
	from, to := points[0].Date.Year(), points[0].Date.Year()
	for _, p := range points[1:] {
		if y := p.Date.Year(); y < from {
			from = y
		} else if y > to {
			to = y
		}
	}
	return from, to
}
