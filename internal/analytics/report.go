package analytics

import (
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

// Query names used as keys of models.Report.Errors.
const (
	QueryAverage = "average"
	QueryOptimal = "optimal_window"
)

// ReportOptions parameterizes every query of a Report.
type ReportOptions struct {
	TopN int

	ReferenceYear  int
	ReferenceMonth time.Month
	Threshold      float64

	RankFromYear int
	RankToYear   int
	RankSkip     int
	RankTake     int

	Years []int

	WindowFromYear int
	WindowToYear   int
}

// DefaultReportOptions mirrors the queries of the classic gold savings report:
// top/bottom 3, days 5% above January 2020, ranks 11-13 of 2019-2022,
// averages of 2020, 2023, 2024 and the best window of 2020-2024.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		TopN:           3,
		ReferenceYear:  2020,
		ReferenceMonth: time.January,
		Threshold:      1.05,
		RankFromYear:   2019,
		RankToYear:     2022,
		RankSkip:       10,
		RankTake:       3,
		Years:          []int{2020, 2023, 2024},
		WindowFromYear: 2020,
		WindowToYear:   2024,
	}
}

// BuildReport runs every query against series. A failing query is recorded
// in Report.Errors and never prevents the others from running.
func BuildReport(series []models.PricePoint, opts ReportOptions, now time.Time) models.Report {
	r := models.Report{
		GeneratedAt:    now,
		Points:         len(series),
		Top:            TopN(series, opts.TopN, now),
		Bottom:         BottomN(series, opts.TopN, now),
		ProfitableDays: ProfitableDays(series, opts.ReferenceYear, opts.ReferenceMonth, opts.Threshold),
		Ranked:         RankedWindow(series, opts.RankFromYear, opts.RankToYear, opts.RankSkip, opts.RankTake),
		YearlyAverages: YearlyAverages(series, opts.Years),
	}

	if avg, err := Average(series); err != nil {
		recordError(&r, QueryAverage, err)
	} else {
		r.Average = avg
	}

	if w, err := OptimalWindow(series, opts.WindowFromYear, opts.WindowToYear); err != nil {
		recordError(&r, QueryOptimal, err)
	} else {
		r.Optimal = &w
	}
	return r
}

func recordError(r *models.Report, query string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[query] = err.Error()
}
