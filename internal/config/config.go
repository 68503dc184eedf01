// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, upload limits, and matcher tuning.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Upload Configuration
	MaxUploadBytes int64 // Per-file upload size cap

	// Rate Limiting
	UploadRateBurst  float64 // Per-client burst for upload endpoints (0 = disabled)
	UploadRateRefill float64 // Tokens per second refilled per client

	// Matcher Configuration
	// Heuristic constants of the matching cascade; tunable because there
	// is no principled derivation for the historical defaults.
	FuzzyMatchThreshold float64
	MinNameMatchLength  int

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Observability
	SentryDSN           string // Sentry DSN for crash reporting (empty = disabled)
	BetterStackToken    string // Better Stack log shipping token (empty = disabled)
	BetterStackEndpoint string // Better Stack ingesting endpoint override
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		MaxUploadBytes: int64(getIntEnv("MAX_UPLOAD_BYTES", 16<<20)), // 16 MiB per file

		UploadRateBurst:  getFloatEnv("UPLOAD_RATE_BURST", 5),
		UploadRateRefill: getFloatEnv("UPLOAD_RATE_REFILL", 0.5),

		FuzzyMatchThreshold: getFloatEnv("FUZZY_MATCH_THRESHOLD", 0.5),
		MinNameMatchLength:  getIntEnv("MIN_NAME_MATCH_LENGTH", 3),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN:           getEnv("SENTRY_DSN", ""),
		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.UploadRateBurst > 0 && c.UploadRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("UPLOAD_RATE_REFILL must be positive when rate limiting is enabled, got %v", c.UploadRateRefill))
	}
	if c.FuzzyMatchThreshold < 0 || c.FuzzyMatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("FUZZY_MATCH_THRESHOLD must be in [0,1], got %v", c.FuzzyMatchThreshold))
	}
	if c.MinNameMatchLength < 0 {
		errs = append(errs, fmt.Errorf("MIN_NAME_MATCH_LENGTH cannot be negative, got %d", c.MinNameMatchLength))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
