// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/rpslsgame/internal/locale"
)

// Server holds the server process settings
type Server struct {
	Host            string        `env:"RPSLS_HOST"`
	Port            int           `env:"RPSLS_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"RPSLS_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"RPSLS_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"RPSLS_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Locale   string `env:"RPSLS_LOCALE" envDefault:"en"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set take precedence over the file.
func Load() (Server, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a validated Server
func Parse() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks settings that depend on each other
func (c Server) Validate() error {
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory or redis", c.StorageType)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid RPSLS_PORT %d", c.Port)
	}
	if _, err := locale.ByName(c.Locale); err != nil {
		return fmt.Errorf("invalid RPSLS_LOCALE: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level
func (c Server) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
