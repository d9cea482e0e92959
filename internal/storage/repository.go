package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/goldpulse/internal/acquisition"
	"github.com/guttosm/goldpulse/internal/domain/models"
)

// PricesRepository defines contract for DB operations.
type PricesRepository interface {
	ReplacePrices(ctx context.Context, start, end time.Time, points []models.PricePoint) error
	ListPrices(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.PricePoint, error)
	LoadSeries(ctx context.Context) ([]models.PricePoint, error)
	RecordFetch(ctx context.Context, w acquisition.Window, rows int, fetchErr error) error
	CompletedYears(ctx context.Context) (map[int]bool, error)
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// ReplacePrices swaps every stored price dated within [start, end] for points,
// in a single transaction. points must not repeat a date.
func (r *pricesRepository) ReplacePrices(ctx context.Context, start, end time.Time, points []models.PricePoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE price_date BETWEEN $1 AND $2`,
		models.Day(start), models.Day(end)); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("prices", "price_date", "price"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, models.Day(p.Date), p.Price); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("copy %s: %w", p.Date.Format(time.DateOnly), err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListPrices returns stored prices ordered by date, optionally bounded
// (inclusive) by startDate and endDate.
func (r *pricesRepository) ListPrices(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.PricePoint, error) {
	// Build dynamic conditions for date range filters.
	conditions := "TRUE"
	var args []interface{}
	if startDate != nil {
		placeholder := len(args) + 1 // next positional param index
		conditions += fmt.Sprintf(" AND price_date >= $%d", placeholder)
		args = append(args, models.Day(*startDate))
	}
	if endDate != nil {
		placeholder := len(args) + 1
		conditions += fmt.Sprintf(" AND price_date <= $%d", placeholder)
		args = append(args, models.Day(*endDate))
	}

	query := fmt.Sprintf(`SELECT price_date, price FROM prices WHERE %s ORDER BY price_date`, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.PricePoint, 0, 512)
	for rows.Next() {
		var (
			d     time.Time
			price float64
		)
		if err := rows.Scan(&d, &price); err != nil {
			return nil, err
		}
		out = append(out, models.NewPricePoint(d, price))
	}
	return out, rows.Err()
}

// LoadSeries returns the whole stored series.
func (r *pricesRepository) LoadSeries(ctx context.Context) ([]models.PricePoint, error) {
	return r.ListPrices(ctx, nil, nil)
}

// RecordFetch upserts the fetch_log entry for the window's year.
func (r *pricesRepository) RecordFetch(ctx context.Context, w acquisition.Window, rows int, fetchErr error) error {
	var lastErr sql.NullString
	if fetchErr != nil {
		lastErr = sql.NullString{String: fetchErr.Error(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fetch_log (year, window_start, window_end, row_count, last_error)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (year)
		DO UPDATE SET window_start = EXCLUDED.window_start,
					  window_end = EXCLUDED.window_end,
					  row_count = EXCLUDED.row_count,
					  last_error = EXCLUDED.last_error,
					  fetched_at = NOW()
	`, w.Year, w.Start, w.End, rows, lastErr)
	return err
}

// CompletedYears returns the years whose whole calendar year was fetched
// successfully with at least one row.
func (r *pricesRepository) CompletedYears(ctx context.Context) (map[int]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT year FROM fetch_log
		WHERE last_error IS NULL
		  AND row_count > 0
		  AND window_start = make_date(year, 1, 1)
		  AND window_end = make_date(year, 12, 31)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]bool)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out[y] = true
	}
	return out, rows.Err()
}
