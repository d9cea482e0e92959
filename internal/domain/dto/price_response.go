package dto

import (
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

// PriceResponse is a single dated gold price.
type PriceResponse struct {
	Date  string  `json:"date" example:"2020-01-02"` // Quotation day (YYYY-MM-DD)
	Price float64 `json:"price" example:"192.31"`    // PLN per gram
}

// PriceListResponse wraps a list of prices returned by the /prices endpoints.
type PriceListResponse struct {
	Count  int             `json:"count" example:"3"`
	Prices []PriceResponse `json:"prices"`
}

// AverageResponse is returned by GET /api/v1/prices/average.
type AverageResponse struct {
	Average float64 `json:"average" example:"231.57"`
}

// YearAverageResponse is one entry of GET /api/v1/prices/yearly-averages.
type YearAverageResponse struct {
	Year    int     `json:"year" example:"2020"`
	Average float64 `json:"average" example:"221.08"`
	Count   int     `json:"count" example:"252"`
}

// BuySellWindowResponse is returned by GET /api/v1/prices/optimal-window.
type BuySellWindowResponse struct {
	BuyDate    string  `json:"buy_date" example:"2020-03-19"`
	BuyPrice   float64 `json:"buy_price" example:"198.47"`
	SellDate   string  `json:"sell_date" example:"2024-10-30"`
	SellPrice  float64 `json:"sell_price" example:"345.92"`
	ROIPercent float64 `json:"roi_percent" example:"74.29"` // Rounded to 2 decimals
}

// ReportResponse bundles every analytics query. Queries that failed are
// omitted from their field and listed in Errors.
type ReportResponse struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	Points         int                    `json:"points" example:"1690"`
	Average        float64                `json:"average" example:"231.57"`
	Top            []PriceResponse        `json:"top"`
	Bottom         []PriceResponse        `json:"bottom"`
	ProfitableDays int                    `json:"profitable_days" example:"1012"`
	Ranked         []PriceResponse        `json:"ranked"`
	YearlyAverages []YearAverageResponse  `json:"yearly_averages"`
	OptimalWindow  *BuySellWindowResponse `json:"optimal_window,omitempty"`
	Errors         map[string]string      `json:"errors,omitempty"`
}

func formatDay(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// NewPriceResponse maps a domain point.
func NewPriceResponse(p models.PricePoint) PriceResponse {
	return PriceResponse{Date: formatDay(p.Date), Price: p.Price}
}

// NewPriceListResponse maps a list of domain points; never returns a nil list.
func NewPriceListResponse(points []models.PricePoint) PriceListResponse {
	return PriceListResponse{Count: len(points), Prices: toPrices(points)}
}

// NewYearAverages maps per-year averages.
func NewYearAverages(in []models.YearAverage) []YearAverageResponse {
	out := make([]YearAverageResponse, 0, len(in))
	for _, ya := range in {
		out = append(out, YearAverageResponse{Year: ya.Year, Average: ya.Average, Count: ya.Count})
	}
	return out
}

// NewBuySellWindowResponse maps a window, rounding ROI with round.
func NewBuySellWindowResponse(w models.BuySellWindow, round func(float64) float64) BuySellWindowResponse {
	return BuySellWindowResponse{
		BuyDate:    formatDay(w.BuyDate),
		BuyPrice:   w.BuyPrice,
		SellDate:   formatDay(w.SellDate),
		SellPrice:  w.SellPrice,
		ROIPercent: round(w.ROIPercent),
	}
}

// NewReportResponse maps a full report.
func NewReportResponse(r models.Report, round func(float64) float64) ReportResponse {
	resp := ReportResponse{
		GeneratedAt:    r.GeneratedAt,
		Points:         r.Points,
		Average:        r.Average,
		Top:            toPrices(r.Top),
		Bottom:         toPrices(r.Bottom),
		ProfitableDays: len(r.ProfitableDays),
		Ranked:         toPrices(r.Ranked),
		YearlyAverages: NewYearAverages(r.YearlyAverages),
		Errors:         r.Errors,
	}
	if r.Optimal != nil {
		w := NewBuySellWindowResponse(*r.Optimal, round)
		resp.OptimalWindow = &w
	}
	return resp
}

func toPrices(points []models.PricePoint) []PriceResponse {
	out := make([]PriceResponse, 0, len(points))
	for _, p := range points {
		out = append(out, NewPriceResponse(p))
	}
	return out
}
