package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/domain/dto"
	"github.com/guttosm/goldpulse/internal/middleware"
	"github.com/guttosm/goldpulse/internal/service"
)

const maxN = 1000

// Handler provides HTTP handlers for the gold price analytics endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters, falling back to configured defaults
//   - Call the analytics service with the request context
//   - Translate domain results into response DTOs
//   - Map domain errors to HTTP status codes
type Handler struct {
	svc      service.AnalyticsService
	defaults analytics.ReportOptions
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.AnalyticsService): analytics over the stored series.
//   - defaults (analytics.ReportOptions): values used for omitted query parameters.
func NewHandler(svc service.AnalyticsService, defaults analytics.ReportOptions) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

// GetAverage godoc
// @Summary      Average gold price
// @Description  Arithmetic mean over every stored observation
// @Tags         prices
// @Produce      json
// @Success      200  {object}  dto.AverageResponse
// @Failure      404  {object}  dto.ErrorResponse  "No data"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/average [get]
func (h *Handler) GetAverage(c *gin.Context) {
	avg, err := h.svc.Average(c.Request.Context())
	if err != nil {
		respondError(c, "failed to compute average", err)
		return
	}
	c.JSON(http.StatusOK, dto.AverageResponse{Average: avg})
}

// GetTop godoc
// @Summary      Highest prices of the trailing year
// @Tags         prices
// @Produce      json
// @Param        n    query     int  false  "How many prices" default(3)
// @Success      200  {object}  dto.PriceListResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/top [get]
func (h *Handler) GetTop(c *gin.Context) {
	n, err := intQuery(c, "n", h.defaults.TopN, 0, maxN)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid n", err)
		return
	}
	points, err := h.svc.Top(c.Request.Context(), n)
	if err != nil {
		respondError(c, "failed to fetch top prices", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPriceListResponse(points))
}

// GetBottom godoc
// @Summary      Lowest prices of the trailing year
// @Tags         prices
// @Produce      json
// @Param        n    query     int  false  "How many prices" default(3)
// @Success      200  {object}  dto.PriceListResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/bottom [get]
func (h *Handler) GetBottom(c *gin.Context) {
	n, err := intQuery(c, "n", h.defaults.TopN, 0, maxN)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid n", err)
		return
	}
	points, err := h.svc.Bottom(c.Request.Context(), n)
	if err != nil {
		respondError(c, "failed to fetch bottom prices", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPriceListResponse(points))
}

// GetRanked godoc
// @Summary      Ranked slice of prices within a year range
// @Description  Prices from from_year to to_year sorted high to low, then skip/take
// @Tags         prices
// @Produce      json
// @Param        from_year  query     int  false  "First year (inclusive)" default(2019)
// @Param        to_year    query     int  false  "Last year (inclusive)" default(2022)
// @Param        skip       query     int  false  "Ranks to skip" default(10)
// @Param        take       query     int  false  "Ranks to return, -1 for all" default(3)
// @Success      200        {object}  dto.PriceListResponse
// @Failure      400        {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/ranked [get]
func (h *Handler) GetRanked(c *gin.Context) {
	from, to, err := yearRange(c, h.defaults.RankFromYear, h.defaults.RankToYear)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid year range", err)
		return
	}
	skip, err := intQuery(c, "skip", h.defaults.RankSkip, 0, 1<<20)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid skip", err)
		return
	}
	take, err := intQuery(c, "take", h.defaults.RankTake, -1, 1<<20)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid take", err)
		return
	}
	points, err := h.svc.Ranked(c.Request.Context(), from, to, skip, take)
	if err != nil {
		respondError(c, "failed to rank prices", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPriceListResponse(points))
}

// GetYearlyAverages godoc
// @Summary      Average price per calendar year
// @Tags         prices
// @Produce      json
// @Param        years  query     string  false  "Comma separated years" example(2020,2023,2024)
// @Success      200    {array}   dto.YearAverageResponse
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/yearly-averages [get]
func (h *Handler) GetYearlyAverages(c *gin.Context) {
	years := h.defaults.Years
	if raw := strings.TrimSpace(c.Query("years")); raw != "" {
		parsed, err := ParseYears(raw)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid years", err)
			return
		}
		years = parsed
	}
	out, err := h.svc.YearlyAverages(c.Request.Context(), years)
	if err != nil {
		respondError(c, "failed to compute yearly averages", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewYearAverages(out))
}

// GetProfitableDays godoc
// @Summary      Days priced above a reference month
// @Description  Days from the reference year on whose price exceeds the first price of the reference month times threshold
// @Tags         prices
// @Produce      json
// @Param        reference  query     string  false  "Reference month YYYY-MM" example(2020-01)
// @Param        threshold  query     number  false  "Multiplier over the reference price" default(1.05)
// @Success      200        {object}  dto.PriceListResponse
// @Failure      400        {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/profitable-days [get]
func (h *Handler) GetProfitableDays(c *gin.Context) {
	refYear, refMonth := h.defaults.ReferenceYear, h.defaults.ReferenceMonth
	if raw := strings.TrimSpace(c.Query("reference")); raw != "" {
		ref, err := time.Parse("2006-01", raw)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid reference format, expected YYYY-MM", err)
			return
		}
		refYear, refMonth = ref.Year(), ref.Month()
	}
	threshold := h.defaults.Threshold
	if raw := strings.TrimSpace(c.Query("threshold")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid threshold, expected a positive number", err)
			return
		}
		threshold = v
	}
	points, err := h.svc.ProfitableDays(c.Request.Context(), refYear, refMonth, threshold)
	if err != nil {
		respondError(c, "failed to compute profitable days", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPriceListResponse(points))
}

// GetOptimalWindow godoc
// @Summary      Best buy/sell pair within a year range
// @Tags         prices
// @Produce      json
// @Param        from_year  query     int  false  "First year (inclusive)" default(2020)
// @Param        to_year    query     int  false  "Last year (inclusive)" default(2024)
// @Success      200        {object}  dto.BuySellWindowResponse
// @Failure      400        {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404        {object}  dto.ErrorResponse  "No viable window"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/prices/optimal-window [get]
func (h *Handler) GetOptimalWindow(c *gin.Context) {
	from, to, err := yearRange(c, h.defaults.WindowFromYear, h.defaults.WindowToYear)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid year range", err)
		return
	}
	w, err := h.svc.OptimalWindow(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "failed to compute optimal window", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBuySellWindowResponse(w, roi))
}

// GetReport godoc
// @Summary      Full analytics report
// @Description  Every query with the configured defaults; failed queries are listed under errors
// @Tags         report
// @Produce      json
// @Success      200  {object}  dto.ReportResponse
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	r, err := h.svc.Report(c.Request.Context(), h.defaults)
	if err != nil {
		respondError(c, "failed to build report", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReportResponse(r, roi))
}

// respondError maps domain errors: empty series or no viable window is 404,
// anything else 500.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, analytics.ErrEmptySeries) || errors.Is(err, analytics.ErrNoViableWindow) {
		status = http.StatusNotFound
	}
	middleware.AbortWithError(c, status, message, err)
}

func roi(v float64) float64 { return analytics.RoundTo(v, 2) }

func intQuery(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return v, nil
}

func yearRange(c *gin.Context, defFrom, defTo int) (int, int, error) {
	from, err := intQuery(c, "from_year", defFrom, 1, 9999)
	if err != nil {
		return 0, 0, err
	}
	to, err := intQuery(c, "to_year", defTo, 1, 9999)
	if err != nil {
		return 0, 0, err
	}
	if from > to {
		return 0, 0, fmt.Errorf("from_year %d is after to_year %d", from, to)
	}
	return from, to, nil
}

// ParseYears parses a comma separated list such as "2020,2023,2024".
func ParseYears(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		y, err := strconv.Atoi(p)
		if err != nil || y < 1 || y > 9999 {
			return nil, fmt.Errorf("invalid year %q", p)
		}
		out = append(out, y)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no years in %q", raw)
	}
	return out, nil
}
