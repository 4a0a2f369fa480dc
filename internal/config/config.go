// Package config provides application configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	// Broker credentials
	Username  string
	Password  string
	AccountID string

	// Broker client settings
	BaseURL     string
	TokenFile   string
	HTTPTimeout time.Duration

	// Re-login once on a 401 instead of surfacing the error.
	ReloginOn401 bool

	// Reconciliation settings
	WatchlistFile     string
	SkipFailedTickers bool

	// Output settings
	OutputDir string

	// Run-history database
	DBPath string
}

// New creates a new Config with values from environment variables or defaults.
func New() *Config {
	return &Config{
		Username:          os.Getenv("BALANZ_USER"),
		Password:          os.Getenv("BALANZ_PASSWORD"),
		AccountID:         os.Getenv("BALANZ_ACCOUNT_ID"),
		BaseURL:           getEnv("BALANZ_BASE_URL", "https://clientes.balanz.com/api/v1"),
		TokenFile:         getEnv("BALANZ_TOKEN_FILE", "balanz_token.json"),
		HTTPTimeout:       getDuration("HTTP_TIMEOUT", 30*time.Second),
		ReloginOn401:      getBool("RELOGIN_ON_401", true),
		WatchlistFile:     getEnv("WATCHLIST_FILE", "quotes.json"),
		SkipFailedTickers: getBool("SKIP_FAILED_TICKERS", false),
		OutputDir:         getEnv("OUTPUT_DIR", "."),
		DBPath:            getEnv("DB_PATH", filepath.Join("data", "balanz.db")),
	}
}

// Validate checks that the broker credentials are present.
func (c *Config) Validate() error {
	if c.Username == "" || c.Password == "" || c.AccountID == "" {
		return errors.New("BALANZ_USER, BALANZ_PASSWORD and BALANZ_ACCOUNT_ID must be set")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool parses a boolean environment variable or returns a default.
func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getDuration parses a duration environment variable or returns a default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
