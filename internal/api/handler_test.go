package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/domain/dto"
	"github.com/guttosm/goldpulse/internal/domain/models"
	"github.com/guttosm/goldpulse/internal/service"
)

// mockAnalyticsService records the arguments of the last call and returns
// canned results.
type mockAnalyticsService struct {
	points  []models.PricePoint
	avg     float64
	years   []models.YearAverage
	window  models.BuySellWindow
	report  models.Report
	err     error
	gotArgs []any
}

func (m *mockAnalyticsService) Average(_ context.Context) (float64, error) { return m.avg, m.err }
func (m *mockAnalyticsService) Top(_ context.Context, n int) ([]models.PricePoint, error) {
	m.gotArgs = []any{n}
	return m.points, m.err
}
func (m *mockAnalyticsService) Bottom(_ context.Context, n int) ([]models.PricePoint, error) {
	m.gotArgs = []any{n}
	return m.points, m.err
}
func (m *mockAnalyticsService) Ranked(_ context.Context, from, to, skip, take int) ([]models.PricePoint, error) {
	m.gotArgs = []any{from, to, skip, take}
	return m.points, m.err
}
func (m *mockAnalyticsService) YearlyAverages(_ context.Context, years []int) ([]models.YearAverage, error) {
	m.gotArgs = []any{years}
	return m.years, m.err
}
func (m *mockAnalyticsService) ProfitableDays(_ context.Context, y int, mo time.Month, th float64) ([]models.PricePoint, error) {
	m.gotArgs = []any{y, mo, th}
	return m.points, m.err
}
func (m *mockAnalyticsService) OptimalWindow(_ context.Context, from, to int) (models.BuySellWindow, error) {
	m.gotArgs = []any{from, to}
	return m.window, m.err
}
func (m *mockAnalyticsService) Report(_ context.Context, _ analytics.ReportOptions) (models.Report, error) {
	return m.report, m.err
}

var _ service.AnalyticsService = (*mockAnalyticsService)(nil)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupRouterWithMock(s service.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, analytics.DefaultReportOptions())
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/prices/average", h.GetAverage)
	v1.GET("/prices/top", h.GetTop)
	v1.GET("/prices/bottom", h.GetBottom)
	v1.GET("/prices/ranked", h.GetRanked)
	v1.GET("/prices/yearly-averages", h.GetYearlyAverages)
	v1.GET("/prices/profitable-days", h.GetProfitableDays)
	v1.GET("/prices/optimal-window", h.GetOptimalWindow)
	v1.GET("/report", h.GetReport)
	return r
}

func TestHandlers_TableDriven(t *testing.T) {
	twoPoints := []models.PricePoint{{Date: day(2024, 5, 1), Price: 300}, {Date: day(2024, 6, 1), Price: 290}}

	cases := []struct {
		name     string
		svc      *mockAnalyticsService
		query    string
		status   int
		wantArgs []any
		assert   func(t *testing.T, body []byte)
	}{
		{
			name:   "average ok",
			svc:    &mockAnalyticsService{avg: 231.5},
			query:  "/api/v1/prices/average",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.AverageResponse
				if err := json.Unmarshal(body, &out); err != nil || out.Average != 231.5 {
					t.Fatalf("unexpected body %s err=%v", body, err)
				}
			},
		},
		{
			name:   "average empty series",
			svc:    &mockAnalyticsService{err: analytics.ErrEmptySeries},
			query:  "/api/v1/prices/average",
			status: http.StatusNotFound,
		},
		{
			name:   "average internal error",
			svc:    &mockAnalyticsService{err: errors.New("db down")},
			query:  "/api/v1/prices/average",
			status: http.StatusInternalServerError,
		},
		{
			name:     "top default n",
			svc:      &mockAnalyticsService{points: twoPoints},
			query:    "/api/v1/prices/top",
			status:   http.StatusOK,
			wantArgs: []any{3},
			assert: func(t *testing.T, body []byte) {
				var out dto.PriceListResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Count != 2 || out.Prices[0].Date != "2024-05-01" || out.Prices[0].Price != 300 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{name: "top explicit n", svc: &mockAnalyticsService{}, query: "/api/v1/prices/top?n=5", status: http.StatusOK, wantArgs: []any{5}},
		{name: "top bad n", svc: &mockAnalyticsService{}, query: "/api/v1/prices/top?n=abc", status: http.StatusBadRequest},
		{name: "top negative n", svc: &mockAnalyticsService{}, query: "/api/v1/prices/top?n=-1", status: http.StatusBadRequest},
		{name: "bottom", svc: &mockAnalyticsService{points: twoPoints}, query: "/api/v1/prices/bottom?n=2", status: http.StatusOK, wantArgs: []any{2}},
		{
			name:     "ranked defaults",
			svc:      &mockAnalyticsService{},
			query:    "/api/v1/prices/ranked",
			status:   http.StatusOK,
			wantArgs: []any{2019, 2022, 10, 3},
		},
		{
			name:     "ranked explicit take all",
			svc:      &mockAnalyticsService{},
			query:    "/api/v1/prices/ranked?from_year=2020&to_year=2020&skip=0&take=-1",
			status:   http.StatusOK,
			wantArgs: []any{2020, 2020, 0, -1},
		},
		{name: "ranked inverted years", svc: &mockAnalyticsService{}, query: "/api/v1/prices/ranked?from_year=2023&to_year=2020", status: http.StatusBadRequest},
		{name: "ranked negative skip", svc: &mockAnalyticsService{}, query: "/api/v1/prices/ranked?skip=-2", status: http.StatusBadRequest},
		{
			name:     "yearly averages",
			svc:      &mockAnalyticsService{years: []models.YearAverage{{Year: 2020, Average: 200, Count: 2}}},
			query:    "/api/v1/prices/yearly-averages?years=2020,%202023",
			status:   http.StatusOK,
			wantArgs: []any{[]int{2020, 2023}},
		},
		{name: "yearly averages bad list", svc: &mockAnalyticsService{}, query: "/api/v1/prices/yearly-averages?years=20x0", status: http.StatusBadRequest},
		{
			name:     "profitable defaults",
			svc:      &mockAnalyticsService{},
			query:    "/api/v1/prices/profitable-days",
			status:   http.StatusOK,
			wantArgs: []any{2020, time.January, 1.05},
		},
		{
			name:     "profitable explicit",
			svc:      &mockAnalyticsService{},
			query:    "/api/v1/prices/profitable-days?reference=2021-03&threshold=1.2",
			status:   http.StatusOK,
			wantArgs: []any{2021, time.March, 1.2},
		},
		{name: "profitable bad reference", svc: &mockAnalyticsService{}, query: "/api/v1/prices/profitable-days?reference=2021/03", status: http.StatusBadRequest},
		{name: "profitable bad threshold", svc: &mockAnalyticsService{}, query: "/api/v1/prices/profitable-days?threshold=-1", status: http.StatusBadRequest},
		{
			name: "optimal ok",
			svc: &mockAnalyticsService{window: models.BuySellWindow{
				BuyDate: day(2020, 3, 19), BuyPrice: 3, SellDate: day(2024, 10, 30), SellPrice: 4, ROIPercent: 100.0 / 3,
			}},
			query:    "/api/v1/prices/optimal-window",
			status:   http.StatusOK,
			wantArgs: []any{2020, 2024},
			assert: func(t *testing.T, body []byte) {
				var out dto.BuySellWindowResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.ROIPercent != 33.33 || out.BuyDate != "2020-03-19" || out.SellDate != "2024-10-30" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{name: "optimal none", svc: &mockAnalyticsService{err: analytics.ErrNoViableWindow}, query: "/api/v1/prices/optimal-window?from_year=2020&to_year=2020", status: http.StatusNotFound},
		{
			name: "report",
			svc: &mockAnalyticsService{report: models.Report{
				Points: 2, Average: 295, Top: twoPoints,
				Errors: map[string]string{analytics.QueryOptimal: analytics.ErrNoViableWindow.Error()},
			}},
			query:  "/api/v1/report",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.ReportResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Points != 2 || len(out.Top) != 2 || out.OptimalWindow != nil || out.Errors[analytics.QueryOptimal] == "" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status >= 400 {
				var e dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Message == "" {
					t.Fatalf("expected ErrorResponse body, got %s", w.Body.String())
				}
			}
			if tc.wantArgs != nil && !sameArgs(tc.wantArgs, tc.svc.gotArgs) {
				t.Fatalf("service args %v, want %v", tc.svc.gotArgs, tc.wantArgs)
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	got, err := ParseYears(" 2024, 2020 ,,2023")
	if err != nil {
		t.Fatalf("ParseYears: %v", err)
	}
	if len(got) != 3 || got[0] != 2024 || got[1] != 2020 || got[2] != 2023 {
		t.Fatalf("unexpected years %v", got)
	}
	for _, bad := range []string{"", ",", "abc", "0", "20200"} {
		if _, err := ParseYears(bad); err == nil {
			t.Fatalf("ParseYears(%q) should fail", bad)
		}
	}
}

func sameArgs(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		switch w := want[i].(type) {
		case []int:
			g, ok := got[i].([]int)
			if !ok || len(g) != len(w) {
				return false
			}
			for j := range w {
				if w[j] != g[j] {
					return false
				}
			}
		default:
			if want[i] != got[i] {
				return false
			}
		}
	}
	return true
}
