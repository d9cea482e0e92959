package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/domain/models"
)

// SeriesLoader supplies the series analytics run on. Both series.Store and
// the Postgres repository satisfy it.
type SeriesLoader interface {
	LoadSeries(ctx context.Context) ([]models.PricePoint, error)
}

// AnalyticsService defines business logic for querying the gold price series.
type AnalyticsService interface {
	Average(ctx context.Context) (float64, error)
	Top(ctx context.Context, n int) ([]models.PricePoint, error)
	Bottom(ctx context.Context, n int) ([]models.PricePoint, error)
	Ranked(ctx context.Context, fromYear, toYear, skip, take int) ([]models.PricePoint, error)
	YearlyAverages(ctx context.Context, years []int) ([]models.YearAverage, error)
	ProfitableDays(ctx context.Context, refYear int, refMonth time.Month, threshold float64) ([]models.PricePoint, error)
	OptimalWindow(ctx context.Context, fromYear, toYear int) (models.BuySellWindow, error)
	Report(ctx context.Context, opts analytics.ReportOptions) (models.Report, error)
}

type analyticsService struct {
	loader SeriesLoader
	now    func() time.Time
}

// Option configures the analytics service.
type Option func(*analyticsService)

// WithClock overrides the reference "now" used by trailing-year queries.
func WithClock(now func() time.Time) Option {
	return func(s *analyticsService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewAnalyticsService(loader SeriesLoader, opts ...Option) AnalyticsService {
	s := &analyticsService{loader: loader, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *analyticsService) load(ctx context.Context) ([]models.PricePoint, error) {
	points, err := s.loader.LoadSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	return points, nil
}

func (s *analyticsService) Average(ctx context.Context) (float64, error) {
	points, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return analytics.Average(points)
}

func (s *analyticsService) Top(ctx context.Context, n int) ([]models.PricePoint, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopN(points, n, s.now()), nil
}

func (s *analyticsService) Bottom(ctx context.Context, n int) ([]models.PricePoint, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BottomN(points, n, s.now()), nil
}

func (s *analyticsService) Ranked(ctx context.Context, fromYear, toYear, skip, take int) ([]models.PricePoint, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.RankedWindow(points, fromYear, toYear, skip, take), nil
}

func (s *analyticsService) YearlyAverages(ctx context.Context, years []int) ([]models.YearAverage, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.YearlyAverages(points, years), nil
}

func (s *analyticsService) ProfitableDays(ctx context.Context, refYear int, refMonth time.Month, threshold float64) ([]models.PricePoint, error) {
	points, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ProfitableDays(points, refYear, refMonth, threshold), nil
}

func (s *analyticsService) OptimalWindow(ctx context.Context, fromYear, toYear int) (models.BuySellWindow, error) {
	points, err := s.load(ctx)
	if err != nil {
		return models.BuySellWindow{}, err
	}
	return analytics.OptimalWindow(points, fromYear, toYear)
}

// Report loads the series once and runs every query on it.
func (s *analyticsService) Report(ctx context.Context, opts analytics.ReportOptions) (models.Report, error) {
	points, err := s.load(ctx)
	if err != nil {
		return models.Report{}, err
	}
	return analytics.BuildReport(points, opts, s.now()), nil
}
