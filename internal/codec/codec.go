// Package codec persists a price series to disk and reads it back.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

var (
	// ErrUnsupportedFormat is returned by ForPath for an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrRoundTripMismatch is returned by Verify when a reloaded series does
	// not reproduce the analytics of the original.
	ErrRoundTripMismatch = errors.New("round-trip mismatch")
)

// Codec encodes and decodes a whole series.
type Codec interface {
	Encode(w io.Writer, points []models.PricePoint) error
	Decode(r io.Reader) ([]models.PricePoint, error)
	Extension() string
}

// ForPath picks a codec from the file extension (.xml or .xlsx).
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return XML{}, nil
	case ".xlsx":
		return XLSX{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveFile writes points to path, replacing any existing file.
func SaveFile(path string, points []models.PricePoint) error {
	c, err := ForPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Encode(f, points); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile reads the series stored at path.
func LoadFile(path string) ([]models.PricePoint, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	points, err := c.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return points, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// parseDate accepts a plain date or a date-time as written by other tools
// (e.g. 2020-01-02T00:00:00).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// formatPrice uses the shortest representation that parses back to p.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return p, nil
}
