package series

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

var (
	// ErrInvalidObservation is returned for a point with a zero date or a
	// negative / non-finite price.
	ErrInvalidObservation = errors.New("invalid observation")
	// ErrStoreFrozen is returned when writing to a store after Freeze.
	ErrStoreFrozen = errors.New("series store is frozen")
)

// Store accumulates price points in insertion order.
//
// The store has two phases: a write phase (Append/Merge, safe for concurrent
// callers) and a read phase started by Freeze. Analytics only ever receive
// copies produced by Snapshot.
type Store struct {
	mu     sync.Mutex
	points []models.PricePoint
	seen   map[time.Time]struct{}
	frozen bool
}

// NewStore returns an empty store in the write phase.
func NewStore() *Store {
	return &Store{seen: make(map[time.Time]struct{})}
}

// Validate checks a single observation.
func Validate(p models.PricePoint) error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidObservation)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("%w: non-finite price on %s", ErrInvalidObservation, p.Date.Format(time.DateOnly))
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: negative price %v on %s", ErrInvalidObservation, p.Price, p.Date.Format(time.DateOnly))
	}
	return nil
}

// Append adds points in the order received without deduplication.
// The call is atomic: if any point is invalid nothing is appended.
func (s *Store) Append(points ...models.PricePoint) error {
	if err := validateAll(points); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return ErrStoreFrozen
	}
	for _, p := range points {
		p.Date = models.Day(p.Date)
		s.points = append(s.points, p)
		s.seen[p.Date] = struct{}{}
	}
	return nil
}

// Merge adds points keyed by date. The first observation stored for a date
// wins; later points for the same date are dropped. Returns how many points
// were added.
func (s *Store) Merge(points ...models.PricePoint) (int, error) {
	if err := validateAll(points); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return 0, ErrStoreFrozen
	}
	added := 0
	for _, p := range points {
		p.Date = models.Day(p.Date)
		if _, dup := s.seen[p.Date]; dup {
			continue
		}
		s.seen[p.Date] = struct{}{}
		s.points = append(s.points, p)
		added++
	}
	return added, nil
}

// Freeze ends the write phase.
func (s *Store) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (s *Store) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Snapshot returns a copy of the accumulated points in insertion order.
func (s *Store) Snapshot() []models.PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// LoadSeries lets a store act as the series source of the analytics service.
func (s *Store) LoadSeries(_ context.Context) ([]models.PricePoint, error) {
	return s.Snapshot(), nil
}

func validateAll(points []models.PricePoint) error {
	for i, p := range points {
		if err := Validate(p); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}
