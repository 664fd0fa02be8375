// Package config provides application configuration loaded from
// environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	App    AppConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	ReadTimeout  int    `envconfig:"SERVER_READ_TIMEOUT" default:"15"`
	WriteTimeout int    `envconfig:"SERVER_WRITE_TIMEOUT" default:"30"`
	IdleTimeout  int    `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	// DatabaseDSN is an sqlite file path, or a postgres URL / key=value DSN.
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"invoices.db"`
	// ExportDir is where generated artifacts are written.
	ExportDir string `envconfig:"EXPORT_DIR" default:"exports"`
	// DefaultLanguage is used when a request carries no usable
	// Accept-Language header.
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"es"`
	DBDebug         bool   `envconfig:"DB_DEBUG" default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads configuration from environment variables with sensible
// defaults for local use.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
