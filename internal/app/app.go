package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/goldpulse/config"
	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/api"
	"github.com/guttosm/goldpulse/internal/service"
	"github.com/guttosm/goldpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (PricesRepository).
//   - Builds the analytics service on top of the repository.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewPricesRepository(db)
	svc := service.NewAnalyticsService(repo)
	handler := api.NewHandler(svc, ReportOptions(cfg.Analytics))
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// ReportOptions maps the analytics configuration onto query options.
// Zero values fall back to analytics.DefaultReportOptions, except RankSkip
// where zero is a valid offset.
func ReportOptions(cfg config.AnalyticsConfig) analytics.ReportOptions {
	opts := analytics.DefaultReportOptions()
	if cfg.TopN > 0 {
		opts.TopN = cfg.TopN
	}
	if len(cfg.Years) > 0 {
		opts.Years = append([]int(nil), cfg.Years...)
	}
	if cfg.RankFromYear != 0 {
		opts.RankFromYear = cfg.RankFromYear
	}
	if cfg.RankToYear != 0 {
		opts.RankToYear = cfg.RankToYear
	}
	if cfg.RankSkip >= 0 {
		opts.RankSkip = cfg.RankSkip
	}
	if cfg.RankTake > 0 {
		opts.RankTake = cfg.RankTake
	}
	if cfg.WindowFromYear != 0 {
		opts.WindowFromYear = cfg.WindowFromYear
	}
	if cfg.WindowToYear != 0 {
		opts.WindowToYear = cfg.WindowToYear
	}
	if !cfg.ProfitReference.IsZero() {
		opts.ReferenceYear = cfg.ProfitReference.Year()
		opts.ReferenceMonth = cfg.ProfitReference.Month()
	}
	if cfg.ProfitThreshold > 0 {
		opts.Threshold = cfg.ProfitThreshold
	}
	return opts
}

// now is the clock used by the report and ingest runners; overridden in tests.
var now = func() time.Time { return time.Now().UTC() }
