package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/guttosm/goldpulse/config"
	"github.com/guttosm/goldpulse/internal/acquisition"
	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/codec"
	"github.com/guttosm/goldpulse/internal/domain/models"
	"github.com/guttosm/goldpulse/internal/logger"
	"github.com/guttosm/goldpulse/internal/nbp"
	"github.com/guttosm/goldpulse/internal/report"
)

// NewFetcher builds the NBP client described by cfg.
func NewFetcher(cfg config.FetchConfig) *nbp.Client {
	return nbp.NewClient(cfg.APIURL, nbp.WithRateLimit(cfg.RatePerSec))
}

func newOrchestrator(cfg config.FetchConfig, fetcher acquisition.Fetcher, journal acquisition.FetchJournal) *acquisition.Orchestrator {
	opts := []acquisition.Option{
		acquisition.WithParallel(cfg.Parallel),
		acquisition.WithFetchTimeout(cfg.Timeout),
	}
	if journal != nil {
		opts = append(opts, acquisition.WithJournal(journal))
	}
	return acquisition.NewOrchestrator(fetcher, opts...)
}

// RunReport fetches the series from cfg.Fetch.StartDate until today, prints
// the analytics report to out, saves the series to cfg.Export.Path and
// verifies that the reloaded file yields the same analytics.
//
// Behavior:
//   - acquisition.ErrNoDataIngested stops the run before any analytics.
//   - Failed queries are printed with the report and do not fail the run.
//   - A round-trip mismatch is returned wrapped with codec.ErrRoundTripMismatch.
func RunReport(ctx context.Context, cfg config.Config, fetcher acquisition.Fetcher, out io.Writer) error {
	today := now()
	store, err := newOrchestrator(cfg.Fetch, fetcher, nil).Run(ctx, cfg.Fetch.StartDate, today)
	if err != nil {
		return fmt.Errorf("acquire prices: %w", err)
	}
	points := store.Snapshot()
	log := logger.Component("report")

	opts := ReportOptions(cfg.Analytics)
	r := analytics.BuildReport(points, opts, today)
	for query, msg := range r.Errors {
		log.Warn().Str("query", query).Str("error", msg).Msg("query failed")
	}
	if err := report.Print(out, r, opts); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	path := cfg.Export.Path
	if err := codec.SaveFile(path, points); err != nil {
		return fmt.Errorf("save series: %w", err)
	}
	reloaded, err := codec.LoadFile(path)
	if err != nil {
		return fmt.Errorf("reload series: %w", err)
	}
	if err := codec.Verify(points, reloaded, opts.TopN, today); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("points", len(reloaded)).Msg("round trip verified")
	return nil
}

// IngestStore is the persistence needed by RunIngest;
// storage.PricesRepository satisfies it.
type IngestStore interface {
	acquisition.FetchJournal
	ReplacePrices(ctx context.Context, start, end time.Time, points []models.PricePoint) error
	CompletedYears(ctx context.Context) (map[int]bool, error)
}

// RunIngest fetches prices into Postgres.
//
// Behavior:
//   - Unless force is set, leading years already fully recorded in the
//     fetch log are not fetched again.
//   - The fetched range is replaced atomically, so reruns are idempotent.
//   - Window outcomes reach the fetch log only after the prices are
//     committed, so a failed write never marks a year as complete.
//
// Returns the number of rows written.
func RunIngest(ctx context.Context, cfg config.Config, fetcher acquisition.Fetcher, repo IngestStore, force bool) (int, error) {
	today := now()
	start := cfg.Fetch.StartDate
	log := logger.Component("ingest")

	if !force {
		done, err := repo.CompletedYears(ctx)
		if err != nil {
			return 0, fmt.Errorf("read fetch log: %w", err)
		}
		start = firstPendingDay(start, today, done)
		if start.After(today) {
			log.Info().Msg("all years already ingested")
			return 0, nil
		}
	}

	pending := &pendingJournal{}
	store, err := newOrchestrator(cfg.Fetch, fetcher, pending).Run(ctx, start, today)
	if err != nil {
		if errors.Is(err, acquisition.ErrNoDataIngested) {
			log.Warn().Time("start", start).Msg("nothing to ingest")
			// Every window failed or came back empty; none can count as complete.
			if ferr := pending.flush(ctx, repo); ferr != nil {
				log.Error().Err(ferr).Msg("record fetch log failed")
			}
		}
		return 0, fmt.Errorf("acquire prices: %w", err)
	}

	points := store.Snapshot()
	if err := repo.ReplacePrices(ctx, start, today, points); err != nil {
		return 0, fmt.Errorf("store prices: %w", err)
	}
	if err := pending.flush(ctx, repo); err != nil {
		return len(points), fmt.Errorf("record fetch log: %w", err)
	}

	log.Info().Time("start", start).Time("end", today).Int("rows", len(points)).Msg("ingestion finished")
	return len(points), nil
}

// pendingJournal holds window outcomes until the prices they describe are stored.
type pendingJournal struct {
	mu      sync.Mutex
	entries []journalEntry
}

type journalEntry struct {
	window acquisition.Window
	rows   int
	err    error
}

func (p *pendingJournal) RecordFetch(_ context.Context, w acquisition.Window, rows int, fetchErr error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, journalEntry{window: w, rows: rows, err: fetchErr})
	return nil
}

func (p *pendingJournal) flush(ctx context.Context, to acquisition.FetchJournal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if err := to.RecordFetch(ctx, e.window, e.rows, e.err); err != nil {
			return fmt.Errorf("year %d: %w", e.window.Year, err)
		}
	}
	p.entries = nil
	return nil
}

// firstPendingDay advances start past the leading run of completed years.
func firstPendingDay(start, end time.Time, done map[int]bool) time.Time {
	for _, w := range acquisition.YearWindows(start, end) {
		if !w.Complete() || !done[w.Year] {
			return w.Start
		}
	}
	return end.AddDate(0, 0, 1)
}
