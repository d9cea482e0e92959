// Package nbp fetches daily gold prices from the National Bank of Poland
// public API (https://api.nbp.pl).
package nbp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/guttosm/goldpulse/internal/domain/models"
	"github.com/guttosm/goldpulse/internal/logger"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.nbp.pl/api"

	// MaxRangeDays is the widest range the API serves in one request.
	MaxRangeDays = 367

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// ErrRangeTooWide is returned when the requested range exceeds MaxRangeDays.
var ErrRangeTooWide = errors.New("nbp: range exceeds 367 days")

// goldPrice is one element of the /cenyzlota response.
type goldPrice struct {
	Date  string  `json:"data"`
	Price float64 `json:"cena"`
}

// Client is a rate-limited HTTP client for the gold price endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.HTTP = h
		}
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "nbp" }

// FetchPrices returns the gold prices published between start and end
// (inclusive). A 404 means the API has no quotes for the range and yields
// an empty slice with a nil error.
func (c *Client) FetchPrices(ctx context.Context, start, end time.Time) ([]models.PricePoint, error) {
	start, end = models.Day(start), models.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("nbp: end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if end.Sub(start) > (MaxRangeDays-1)*24*time.Hour {
		return nil, ErrRangeTooWide
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("nbp rate limit: %w", err)
		}
	}

	u := fmt.Sprintf("%s/cenyzlota/%s/%s?format=json", c.BaseURL, start.Format(time.DateOnly), end.Format(time.DateOnly))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nbp fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		logger.L().Debug().Str("url", u).Msg("nbp: no data for range")
		return []models.PricePoint{}, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("nbp: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []goldPrice
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("nbp decode: %w", err)
	}

	out := make([]models.PricePoint, 0, len(raw))
	for _, r := range raw {
		d, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("nbp: bad date %q: %w", r.Date, err)
		}
		out = append(out, models.NewPricePoint(d, r.Price))
	}
	return out, nil
}
