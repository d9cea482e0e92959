package acquisition

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/goldpulse/internal/domain/models"
	"github.com/guttosm/goldpulse/internal/logger"
	"github.com/guttosm/goldpulse/internal/series"
)

// ErrNoDataIngested is returned when no window produced a single point.
var ErrNoDataIngested = errors.New("no data ingested")

const (
	defaultFetchTimeout = 30 * time.Second
	maxParallel         = 8
)

// Fetcher retrieves the gold prices published between start and end (inclusive).
// It may return fewer points than days requested, or none.
type Fetcher interface {
	FetchPrices(ctx context.Context, start, end time.Time) ([]models.PricePoint, error)
}

// FetchJournal records the outcome of each window. rows is the number of
// points merged into the store; fetchErr is nil on success.
type FetchJournal interface {
	RecordFetch(ctx context.Context, w Window, rows int, fetchErr error) error
}

// Orchestrator fetches a date range one calendar year at a time and
// accumulates the results into a series.Store.
type Orchestrator struct {
	fetcher  Fetcher
	journal  FetchJournal
	parallel int
	timeout  time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithParallel bounds how many windows are fetched concurrently (1..8).
// Zero or negative picks min(8, NumCPU).
func WithParallel(n int) Option {
	return func(o *Orchestrator) { o.parallel = n }
}

// WithFetchTimeout sets the per-window timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithJournal attaches a fetch journal.
func WithJournal(j FetchJournal) Option {
	return func(o *Orchestrator) { o.journal = j }
}

// NewOrchestrator builds an Orchestrator around fetcher.
func NewOrchestrator(fetcher Fetcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{fetcher: fetcher, timeout: defaultFetchTimeout}
	for _, opt := range opts {
		opt(o)
	}
	o.parallel = clampParallel(o.parallel)
	return o
}

// Run fetches every year window of [start, end] and returns the frozen store.
//
// Behavior:
//   - Up to o.parallel windows are in flight at once.
//   - A failed, timed-out or empty window is logged and counted as zero
//     records; it never aborts the remaining windows.
//   - A chunk holding an invalid observation is logged and discarded whole.
//   - Chunks are merged as they complete (first write wins per date), so
//     overlapping chunks cannot double count a day.
//
// Returns:
//   - ErrNoDataIngested if the store is empty once every window is done.
//   - ctx.Err() if ctx was cancelled before all windows were launched.
func (o *Orchestrator) Run(ctx context.Context, start, end time.Time) (*series.Store, error) {
	windows := YearWindows(start, end)
	store := series.NewStore()

	logger.L().Info().
		Int("windows", len(windows)).
		Time("start", models.Day(start)).
		Time("end", models.Day(end)).
		Int("max_parallel", o.parallel).
		Msg("acquisition start")

	// Window failures are swallowed, so the group only ever carries ctx errors.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, o.parallel)

launch:
	for _, w := range windows {
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			break launch
		}

		win := w
		g.Go(func() error {
			defer func() { <-sem }()
			o.fetchWindow(gctx, store, win)
			return nil
		})
	}
	_ = g.Wait()
	store.Freeze()

	if err := ctx.Err(); err != nil {
		return store, fmt.Errorf("acquisition cancelled: %w", err)
	}
	if store.Len() == 0 {
		logger.L().Error().Int("windows", len(windows)).Msg("no data found")
		return store, ErrNoDataIngested
	}

	logger.L().Info().Int("points", store.Len()).Msg("acquisition done")
	return store, nil
}

func (o *Orchestrator) fetchWindow(ctx context.Context, store *series.Store, w Window) {
	started := time.Now()
	fctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	points, err := o.fetcher.FetchPrices(fctx, w.Start, w.End)
	rows := 0
	switch {
	case err != nil:
		logger.L().Warn().Int("year", w.Year).Err(err).Dur("elapsed", time.Since(started)).Msg("window fetch failed, skipping")
	case len(points) == 0:
		logger.L().Warn().Int("year", w.Year).Msg("window returned no records")
	default:
		rows, err = store.Merge(points...)
		if err != nil {
			logger.L().Warn().Int("year", w.Year).Err(err).Msg("window rejected")
		}
	}

	logger.L().Info().
		Int("year", w.Year).
		Time("window_start", w.Start).
		Time("window_end", w.End).
		Int("fetched", len(points)).
		Int("rows", rows).
		Dur("elapsed", time.Since(started)).
		Msgf("Retrieved %d records for %d", rows, w.Year)

	if o.journal != nil {
		// The window's own context may have expired; the journal gets the parent.
		if jerr := o.journal.RecordFetch(ctx, w, rows, err); jerr != nil {
			logger.L().Error().Int("year", w.Year).Err(jerr).Msg("record fetch log failed")
		}
	}
}

func clampParallel(n int) int {
	if n > maxParallel {
		return maxParallel
	}
	if n > 0 {
		return n
	}
	if c := runtime.NumCPU(); c < maxParallel {
		return c
	}
	return maxParallel
}
