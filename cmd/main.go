package main

//
//  @title           GoldPulse API
//  @version         1.0
//  @description     Gold price history analytics over NBP quotations.
//  @termsOfService  https://github.com/guttosm/goldpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/goldpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        prices
//  @tag.description Analytics over the stored gold price series
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/goldpulse/config"
	_ "github.com/guttosm/goldpulse/docs" // swagger docs
	"github.com/guttosm/goldpulse/internal/app"
	"github.com/guttosm/goldpulse/internal/logger"
	"github.com/guttosm/goldpulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, then shuts the server down
// and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// applyFlags overrides the loaded configuration with explicit CLI values.
// Empty values keep the configuration.
func applyFlags(cfg *config.Config, start, export string) error {
	if start != "" {
		t, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return err
		}
		cfg.Fetch.StartDate = t
	}
	if export != "" {
		cfg.Export.Path = export
	}
	return nil
}

// main is the entry point of the goldpulse application.
//
// Modes (selected via --mode flag):
//   - report: Fetches the series from NBP, prints the analytics and saves the series to a file.
//   - ingest: Fetches the series from NBP into PostgreSQL.
//   - api:    Starts the REST API over the stored series.
func main() {
	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "report", "Mode: report, ingest or api")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	start := flag.String("start", "", "First day to fetch (YYYY-MM-DD), defaults to PRICES_START_DATE")
	export := flag.String("export", "", "File the report mode writes (.xml or .xlsx), defaults to EXPORT_PATH")
	force := flag.Bool("force", false, "Refetch years already recorded in the fetch log")
	flag.Parse()

	if err := applyFlags(&config.AppConfig, *start, *export); err != nil {
		logger.L().Fatal().Err(err).Str("start", *start).Msg("invalid --start")
	}
	cfg := config.AppConfig

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "report":
		fetcher := app.NewFetcher(cfg.Fetch)
		logger.L().Info().Str("source", fetcher.Name()).Time("start", cfg.Fetch.StartDate).Str("export", cfg.Export.Path).Msg("running report")
		if err := app.RunReport(ctx, cfg, fetcher, os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}

	case "ingest":
		fetcher := app.NewFetcher(cfg.Fetch)
		logger.L().Info().Str("source", fetcher.Name()).Time("start", cfg.Fetch.StartDate).Bool("force", *force).Msg("running ingestion")

		db, err := app.InitPostgres(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		rows, err := app.RunIngest(ctx, cfg, fetcher, storage.NewPricesRepository(db), *force)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Int("rows", rows).Msg("ingestion completed successfully")

	case "api":
		// The server handles its own signals.
		stop()
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
