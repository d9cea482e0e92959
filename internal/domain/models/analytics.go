package models

import "time"

// BuySellWindow is the best historical entry/exit pair within a year range.
//
// Fields:
//   - BuyDate/BuyPrice: the first occurrence of the minimum price in range.
//   - SellDate/SellPrice: the first occurrence of the maximum price strictly after BuyDate.
//   - ROIPercent: (SellPrice - BuyPrice) / BuyPrice * 100, unrounded.
//
// swagger:model BuySellWindow
type BuySellWindow struct {
	BuyDate    time.Time `json:"buy_date"`
	BuyPrice   float64   `json:"buy_price" example:"180.12"`
	SellDate   time.Time `json:"sell_date"`
	SellPrice  float64   `json:"sell_price" example:"291.70"`
	ROIPercent float64   `json:"roi_percent" example:"61.95"`
}

// YearAverage is the mean price of a single calendar year.
// Count is zero (and Average is 0) when the year has no observations.
type YearAverage struct {
	Year    int     `json:"year" example:"2020"`
	Average float64 `json:"average" example:"217.43"`
	Count   int     `json:"count" example:"252"`
}

// Report bundles every analytics query over one series snapshot.
//
// Queries fail independently; a failed query leaves its field empty and
// records the reason in Errors keyed by query name.
type Report struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	Points         int               `json:"points"`
	Average        float64           `json:"average"`
	Top            []PricePoint      `json:"top"`
	Bottom         []PricePoint      `json:"bottom"`
	ProfitableDays []PricePoint      `json:"profitable_days"`
	Ranked         []PricePoint      `json:"ranked"`
	YearlyAverages []YearAverage     `json:"yearly_averages"`
	Optimal        *BuySellWindow    `json:"optimal,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
}
