// Package config loads the arbiter configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Clock describes the time control requested for every created game.
type Clock struct {
	LimitSec     int
	IncrementSec int
}

// Retry bounds the retry loop around every outbound call to the game host.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Config carries everything the adapters need. It is built once at startup
// and passed down explicitly; nothing reads the environment afterwards.
type Config struct {
	// Token is the bearer credential for the game host API.
	Token string

	// BaseURL is the game host endpoint, without trailing slash.
	BaseURL string

	// DatabasePath is the SQLite file holding the pairing ledger.
	DatabasePath string

	// SheetPathTemplate locates the pairing sheet for a round; it must
	// contain one %d verb for the round number.
	SheetPathTemplate string

	Rated bool
	Clock Clock
	Retry Retry
}

// Load reads the configuration from the environment. A .env file in the
// working directory is folded in first, if present.
func Load() (*Config, error) {
	// Ignore a missing .env; plain environment variables are fine too.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:           "https://lichess.org",
		DatabasePath:      "arbiter.db",
		SheetPathTemplate: "round_%d.txt",
		Rated:             true,
		Clock: Clock{
			LimitSec:     600,
			IncrementSec: 2,
		},
		Retry: Retry{
			MaxAttempts: 5,
			BaseDelay:   5 * time.Second,
			MaxDelay:    80 * time.Second,
		},
	}

	cfg.Token = strings.TrimSpace(os.Getenv("TOKEN"))

	if v := strings.TrimSpace(os.Getenv("BASE_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("SHEET_PATH_TEMPLATE")); v != "" {
		if !strings.Contains(v, "%d") {
			return nil, fmt.Errorf("SHEET_PATH_TEMPLATE %q must contain a %%d verb", v)
		}
		cfg.SheetPathTemplate = v
	}
	if v := strings.TrimSpace(os.Getenv("RATED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATED value %q: %w", v, err)
		}
		cfg.Rated = b
	}
	if v := strings.TrimSpace(os.Getenv("CLOCK_LIMIT_SEC")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid CLOCK_LIMIT_SEC value %q", v)
		}
		cfg.Clock.LimitSec = n
	}
	if v := strings.TrimSpace(os.Getenv("CLOCK_INCREMENT_SEC")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CLOCK_INCREMENT_SEC value %q", v)
		}
		cfg.Clock.IncrementSec = n
	}
	if v := strings.TrimSpace(os.Getenv("RETRY_MAX_ATTEMPTS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RETRY_MAX_ATTEMPTS value %q", v)
		}
		cfg.Retry.MaxAttempts = n
	}
	if v := strings.TrimSpace(os.Getenv("RETRY_BASE_DELAY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RETRY_BASE_DELAY value %q", v)
		}
		cfg.Retry.BaseDelay = d
	}

	return cfg, nil
}

// RequireToken fails when no bearer credential is configured. Commands that
// talk to the game host call this; purely local commands do not.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("TOKEN is required for this command")
	}
	return nil
}

// SheetPath returns the pairing-sheet path for a round.
func (c *Config) SheetPath(round int) string {
	return fmt.Sprintf(c.SheetPathTemplate, round)
}
