// Package config loads delivery-date-service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings. Store delivery rules live in the
// database; these only shape how the service evaluates them.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Timezone     string `env:"DELIVERY_TIMEZONE" envDefault:"Asia/Jerusalem"`
	FastCategory string `env:"DELIVERY_FAST_CATEGORY" envDefault:"271"`
	CutoffHour   int    `env:"DELIVERY_CUTOFF_HOUR" envDefault:"15"`

	TokenSecret string        `env:"DELIVERY_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"DELIVERY_TOKEN_TTL" envDefault:"12h"`

	// InternalAPIKey guards the order and admin routes.
	InternalAPIKey string `env:"INTERNAL_API_KEY"`

	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"1h"`
	RedisURL         string        `env:"REDIS_URL"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("DELIVERY_TOKEN_SECRET is required")
	}
	if c.InternalAPIKey == "" {
		return errors.New("INTERNAL_API_KEY is required")
	}
	if c.CutoffHour < 0 || c.CutoffHour > 23 {
		return fmt.Errorf("DELIVERY_CUTOFF_HOUR must be 0-23, got %d", c.CutoffHour)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("DELIVERY_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the store timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
