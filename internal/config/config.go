// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-sourced service configuration.
type Config struct {
	// DBPath is the SQLite database file location.
	DBPath string `env:"DB_PATH" envDefault:"./data/policyexpert.db"`

	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8000"`

	// RootPath is the path prefix the service is mounted under when
	// deployed behind a reverse proxy, e.g. "/policyexpert".
	RootPath string `env:"ROOT_PATH"`

	// Environment tags the deployment (development/production); it is
	// reported by the health endpoint.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SeedSampleData inserts demo customer_info rows at startup.
	SeedSampleData bool `env:"SEED_SAMPLE_DATA"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
