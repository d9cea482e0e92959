// Package analytics implements the descriptive and optimization queries
// over a gold price series.
//
// Every function is pure: it receives a read-only series, never mutates it,
// and sorts private copies whenever chronological or price order matters.
// Functions that depend on "now" take it as a parameter.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

var (
	// ErrEmptySeries is returned by Average when the series has no points.
	ErrEmptySeries = errors.New("empty series")
	// ErrNoViableWindow is returned by OptimalWindow when no sell point
	// follows the minimum price in range.
	ErrNoViableWindow = errors.New("no viable buy/sell window")
)

// TrailingYears is the look-back span used by TopN and BottomN.
const TrailingYears = 1

// Average returns the arithmetic mean of every price in the series.
func Average(series []models.PricePoint) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}
	var sum float64
	for _, p := range series {
		sum += p.Price
	}
	return sum / float64(len(series)), nil
}

// TopN returns up to n points with the highest prices among those dated on
// or after now minus one year. Equal prices keep their input order.
func TopN(series []models.PricePoint, n int, now time.Time) []models.PricePoint {
	return trailingRank(series, n, now, byPriceDesc)
}

// BottomN is TopN with ascending price order.
func BottomN(series []models.PricePoint, n int, now time.Time) []models.PricePoint {
	return trailingRank(series, n, now, byPriceAsc)
}

// ProfitableDays returns every point from refYear onward priced above
// threshold times the reference price. The reference is the chronologically
// first observation of refYear/refMonth; without one the result is empty.
func ProfitableDays(series []models.PricePoint, refYear int, refMonth time.Month, threshold float64) []models.PricePoint {
	sorted := chronological(series)

	ref, found := models.PricePoint{}, false
	for _, p := range sorted {
		if p.Date.Year() == refYear && p.Date.Month() == refMonth {
			ref, found = p, true
			break
		}
	}
	if !found {
		return []models.PricePoint{}
	}

	limit := ref.Price * threshold
	out := make([]models.PricePoint, 0)
	for _, p := range sorted {
		if p.Date.Year() >= refYear && p.Price > limit {
			out = append(out, p)
		}
	}
	return out
}

// RankedWindow filters to the inclusive year range, ranks by price
// descending and returns the band [skip, skip+take). A negative take means
// "everything after skip".
func RankedWindow(series []models.PricePoint, fromYear, toYear, skip, take int) []models.PricePoint {
	ranked := inYears(series, fromYear, toYear)
	sort.SliceStable(ranked, func(i, j int) bool { return byPriceDesc(ranked[i], ranked[j]) })

	if skip < 0 {
		skip = 0
	}
	if skip >= len(ranked) {
		return []models.PricePoint{}
	}
	end := len(ranked)
	if take >= 0 && take < end-skip {
		end = skip + take
	}
	return ranked[skip:end]
}

// YearlyAverages returns the mean price of each requested year, in request
// order. A year without observations averages to 0.
func YearlyAverages(series []models.PricePoint, years []int) []models.YearAverage {
	sums := make(map[int]float64, len(years))
	counts := make(map[int]int, len(years))
	for _, p := range series {
		y := p.Date.Year()
		sums[y] += p.Price
		counts[y]++
	}

	out := make([]models.YearAverage, 0, len(years))
	for _, y := range years {
		ya := models.YearAverage{Year: y, Count: counts[y]}
		if ya.Count > 0 {
			ya.Average = sums[y] / float64(ya.Count)
		}
		out = append(out, ya)
	}
	return out
}

// OptimalWindow finds the best buy/sell pair inside the inclusive year range:
// buy at the first minimum, sell at the first maximum strictly after it.
func OptimalWindow(series []models.PricePoint, fromYear, toYear int) (models.BuySellWindow, error) {
	inRange := chronological(inYears(series, fromYear, toYear))
	if len(inRange) == 0 {
		return models.BuySellWindow{}, ErrNoViableWindow
	}

	buy := inRange[0]
	for _, p := range inRange[1:] {
		if p.Price < buy.Price {
			buy = p
		}
	}

	var sell models.PricePoint
	found := false
	for _, p := range inRange {
		if !p.Date.After(buy.Date) {
			continue
		}
		if !found || p.Price > sell.Price {
			sell, found = p, true
		}
	}
	// ROI is undefined for a zero buy price.
	if !found || buy.Price == 0 {
		return models.BuySellWindow{}, ErrNoViableWindow
	}

	return models.BuySellWindow{
		BuyDate:    buy.Date,
		BuyPrice:   buy.Price,
		SellDate:   sell.Date,
		SellPrice:  sell.Price,
		ROIPercent: (sell.Price - buy.Price) / buy.Price * 100,
	}, nil
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// yearsBefore moves day back n calendar years, clamping Feb 29 to Feb 28
// instead of rolling over into March.
func yearsBefore(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	y -= n
	if last := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day(); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trailingRank(series []models.PricePoint, n int, now time.Time, less func(a, b models.PricePoint) bool) []models.PricePoint {
	if n <= 0 {
		return []models.PricePoint{}
	}
	cutoff := yearsBefore(models.Day(now), TrailingYears)

	recent := make([]models.PricePoint, 0, len(series))
	for _, p := range series {
		if !p.Date.Before(cutoff) {
			recent = append(recent, p)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return less(recent[i], recent[j]) })
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

func inYears(series []models.PricePoint, fromYear, toYear int) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(series))
	for _, p := range series {
		if y := p.Date.Year(); y >= fromYear && y <= toYear {
			out = append(out, p)
		}
	}
	return out
}

// chronological returns a date-ascending copy; same-day points keep input order.
func chronological(series []models.PricePoint) []models.PricePoint {
	out := make([]models.PricePoint, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func byPriceDesc(a, b models.PricePoint) bool { return a.Price > b.Price }
func byPriceAsc(a, b models.PricePoint) bool  { return a.Price < b.Price }
