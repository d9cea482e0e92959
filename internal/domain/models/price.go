package models

import "time"

// PricePoint represents a single daily gold price observation.
//
// Fields:
//   - Date: the calendar day of the observation, normalized to UTC midnight.
//   - Price: price per gram (PLN) published for that day. Never negative.
//
// A PricePoint is a value type; once built it is never mutated.
type PricePoint struct {
	Date  time.Time `json:"date" example:"2024-01-02T00:00:00Z"`
	Price float64   `json:"price" example:"252.32"`
}

// NewPricePoint builds a PricePoint with its date truncated to day granularity.
func NewPricePoint(date time.Time, price float64) PricePoint {
	return PricePoint{Date: Day(date), Price: price}
}

// Day normalizes t to midnight UTC of the same calendar day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
