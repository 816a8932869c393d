// Package config provides application configuration loaded from environment variables.
// Use MustLoad() from main() so misconfiguration is caught at boot.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sub-config structs
// ──────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // e.g. "8080"
	MetricsPort    string        // e.g. "9090"; "" disables the metrics server
	Env            string        // "development" | "production"
	ReadTimeout    time.Duration // default 10s
	WriteTimeout   time.Duration // default 10s
	AllowedOrigins []string      // CORS origins allowed in production
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	DSN             string        // full postgres DSN
	MaxOpenConns    int           // default 25
	MaxIdleConns    int           // default 10
	ConnMaxLifetime time.Duration // default 5m
}

// OddsAPIConfig holds settings for the external odds/scores provider.
type OddsAPIConfig struct {
	BaseURL            string        // default "https://api.the-odds-api.com/v4"
	APIKey             string        // must be set outside development
	Region             string        // default "us"
	PreferredBookmaker string        // default "draftkings"; falls back to first in payload
	FetchTimeout       time.Duration // default 10s; bounds every provider request
	ScoresDaysFrom     int           // default 1; how many past days of scores to pull
	Sports             []string      // sports polled by the scheduler
}

// RedisConfig holds the optional quote-cache settings.
type RedisConfig struct {
	Addr     string        // "" disables the cache entirely
	QuoteTTL time.Duration // default 5m
}

// PollConfig holds the background polling cadence.
type PollConfig struct {
	Enabled        bool          // default true
	OddsInterval   time.Duration // default 10m
	ScoresInterval time.Duration // default 5m
}

// ──────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ──────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for the entire application.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	OddsAPI OddsAPIConfig
	Redis   RedisConfig
	Poll    PollConfig
}

// IsProd returns true when running in the production environment.
func (c *Config) IsProd() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.IsProd() && c.OddsAPI.APIKey == "" {
		errs = append(errs, errors.New("ODDS_API_KEY must be set in production"))
	}
	if c.IsProd() && c.DB.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must be set in production"))
	}

	// The provider caps daysFrom at 3.
	if c.OddsAPI.ScoresDaysFrom < 1 || c.OddsAPI.ScoresDaysFrom > 3 {
		errs = append(errs, fmt.Errorf(
			"ODDS_SCORES_DAYS_FROM must be between 1 and 3, got %d", c.OddsAPI.ScoresDaysFrom))
	}
	if len(c.OddsAPI.Sports) == 0 {
		errs = append(errs, errors.New("ODDS_SPORTS must name at least one sport key"))
	}
	if c.OddsAPI.FetchTimeout <= 0 {
		errs = append(errs, errors.New("ODDS_FETCH_TIMEOUT must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Singleton
// ──────────────────────────────────────────────────────────────────────────────

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the singleton Config, loading it once from environment variables.
func Get() *Config {
	once.Do(func() {
		instance, loadErr = load()
	})
	if loadErr != nil {
		panic(fmt.Sprintf("config: failed to load: %v", loadErr))
	}
	return instance
}

// MustLoad loads and validates configuration. Intended for use in main().
// Panics on any error so misconfiguration is caught immediately at boot.
func MustLoad() *Config {
	cfg := Get()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: validation failed: %v", err))
	}
	return cfg
}

// ──────────────────────────────────────────────────────────────────────────────
// Internal loader
// ──────────────────────────────────────────────────────────────────────────────

func load() (*Config, error) {
	cfg := &Config{}

	// ── Server ────────────────────────────────────────────────────────────────
	cfg.Server = ServerConfig{
		Port:           getEnv("SERVER_PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		Env:            getEnv("ENVIRONMENT", "development"),
		ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", nil),
	}

	// ── Database ──────────────────────────────────────────────────────────────
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Build DSN from individual components for convenience in dev
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "betboard"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS: %w", err)
	}

	cfg.DB = DBConfig{
		DSN:             dsn,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	// ── Odds provider ─────────────────────────────────────────────────────────
	daysFrom, err := getInt("ODDS_SCORES_DAYS_FROM", 1)
	if err != nil {
		return nil, fmt.Errorf("ODDS_SCORES_DAYS_FROM: %w", err)
	}

	cfg.OddsAPI = OddsAPIConfig{
		BaseURL:            getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		APIKey:             getEnv("ODDS_API_KEY", ""),
		Region:             getEnv("ODDS_API_REGION", "us"),
		PreferredBookmaker: getEnv("ODDS_PREFERRED_BOOKMAKER", "draftkings"),
		FetchTimeout:       getDuration("ODDS_FETCH_TIMEOUT", 10*time.Second),
		ScoresDaysFrom:     daysFrom,
		Sports:             getList("ODDS_SPORTS", []string{"basketball_ncaab"}),
	}

	// ── Redis quote cache (optional) ──────────────────────────────────────────
	cfg.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		QuoteTTL: getDuration("REDIS_QUOTE_TTL", 5*time.Minute),
	}

	// ── Polling ───────────────────────────────────────────────────────────────
	cfg.Poll = PollConfig{
		Enabled:        getEnv("POLL_ENABLED", "true") == "true",
		OddsInterval:   getDuration("POLL_ODDS_INTERVAL", 10*time.Minute),
		ScoresInterval: getDuration("POLL_SCORES_INTERVAL", 5*time.Minute),
	}

	return cfg, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helper functions
// ──────────────────────────────────────────────────────────────────────────────

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

// getDuration parses an env var as a Go duration string (e.g. "15m", "2s").
// Falls back to defaultVal if the variable is unset or unparseable.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// getList parses a comma-separated env var, trimming whitespace around items.
func getList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
