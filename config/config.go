package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=goldpulse
//	PRICES_API_URL=https://api.nbp.pl/api
//	PRICES_START_DATE=2019-01-01
//	FETCH_PARALLEL=4
//	EXPORT_PATH=gold_prices.xml
//	REPORT_YEARS=2020,2023,2024
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Postgres  PostgresConfig  // PostgreSQL connection settings
	Fetch     FetchConfig     // Price retrieval
	Export    ExportConfig    // Series file written by the report mode
	Analytics AnalyticsConfig // Query defaults for the report and the API
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// URL is the DSN computed from the other fields.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// FetchConfig controls the acquisition of prices from the upstream API.
type FetchConfig struct {
	APIURL     string        // API root, e.g. https://api.nbp.pl/api
	StartDate  time.Time     // First day to fetch (UTC)
	Parallel   int           // Concurrent year windows, 0 = auto
	Timeout    time.Duration // Per-window timeout
	RatePerSec float64       // Outgoing request rate, 0 = unlimited
}

// ExportConfig sets where the report mode persists the series.
type ExportConfig struct {
	Path string // .xml or .xlsx
}

// AnalyticsConfig holds the defaults of every analytics query.
type AnalyticsConfig struct {
	TopN            int
	Years           []int
	RankFromYear    int
	RankToYear      int
	RankSkip        int
	RankTake        int
	WindowFromYear  int
	WindowToYear    int
	ProfitReference time.Time // Only year and month are used
	ProfitThreshold float64
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	var problems []string
	AppConfig, problems = build()
	validateConfig(problems...)
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "goldpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("PRICES_API_URL", "https://api.nbp.pl/api")
	viper.SetDefault("PRICES_START_DATE", "2019-01-01")
	viper.SetDefault("FETCH_PARALLEL", 0)
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("FETCH_RATE_PER_SEC", 5.0)

	viper.SetDefault("EXPORT_PATH", "gold_prices.xml")

	viper.SetDefault("REPORT_TOP_N", 3)
	viper.SetDefault("REPORT_YEARS", "2020,2023,2024")
	viper.SetDefault("RANK_FROM_YEAR", 2019)
	viper.SetDefault("RANK_TO_YEAR", 2022)
	viper.SetDefault("RANK_SKIP", 10)
	viper.SetDefault("RANK_TAKE", 3)
	viper.SetDefault("WINDOW_FROM_YEAR", 2020)
	viper.SetDefault("WINDOW_TO_YEAR", 2024)
	viper.SetDefault("PROFIT_REFERENCE", "2020-01")
	viper.SetDefault("PROFIT_THRESHOLD", 1.05)
}

// build reads viper into a Config and reports values that failed to parse.
func build() (Config, []string) {
	var problems []string

	start, err := time.Parse(time.DateOnly, viper.GetString("PRICES_START_DATE"))
	if err != nil {
		problems = append(problems, "PRICES_START_DATE (YYYY-MM-DD)")
	}
	ref, err := time.Parse("2006-01", viper.GetString("PROFIT_REFERENCE"))
	if err != nil {
		problems = append(problems, "PROFIT_REFERENCE (YYYY-MM)")
	}
	years, err := ParseIntList(viper.GetString("REPORT_YEARS"))
	if err != nil {
		problems = append(problems, "REPORT_YEARS (comma separated years)")
	}

	cfg := Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Fetch: FetchConfig{
			APIURL:     viper.GetString("PRICES_API_URL"),
			StartDate:  start,
			Parallel:   viper.GetInt("FETCH_PARALLEL"),
			Timeout:    viper.GetDuration("FETCH_TIMEOUT"),
			RatePerSec: viper.GetFloat64("FETCH_RATE_PER_SEC"),
		},
		Export: ExportConfig{
			Path: viper.GetString("EXPORT_PATH"),
		},
		Analytics: AnalyticsConfig{
			TopN:            viper.GetInt("REPORT_TOP_N"),
			Years:           years,
			RankFromYear:    viper.GetInt("RANK_FROM_YEAR"),
			RankToYear:      viper.GetInt("RANK_TO_YEAR"),
			RankSkip:        viper.GetInt("RANK_SKIP"),
			RankTake:        viper.GetInt("RANK_TAKE"),
			WindowFromYear:  viper.GetInt("WINDOW_FROM_YEAR"),
			WindowToYear:    viper.GetInt("WINDOW_TO_YEAR"),
			ProfitReference: ref,
			ProfitThreshold: viper.GetFloat64("PROFIT_THRESHOLD"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	cfg.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
	return cfg, problems
}

// ParseIntList parses "2020, 2023,2024" into []int{2020, 2023, 2024}.
// Empty items are skipped.
func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// missingFields returns the names of required settings that are empty or
// out of range in cfg.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.Fetch.APIURL == "" {
		missing = append(missing, "PRICES_API_URL")
	}
	if cfg.Fetch.Timeout <= 0 {
		missing = append(missing, "FETCH_TIMEOUT")
	}
	if cfg.Export.Path == "" {
		missing = append(missing, "EXPORT_PATH")
	}
	if cfg.Analytics.ProfitThreshold <= 0 {
		missing = append(missing, "PROFIT_THRESHOLD")
	}
	return missing
}

// validateConfig terminates the application when required variables are
// missing from AppConfig or extra problems were reported while parsing.
func validateConfig(problems ...string) {
	missing := append(missingFields(AppConfig), problems...)
	if len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
