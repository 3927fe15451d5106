package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"BRACKET_ADDR"             envDefault:":8080"`
	LogLevel        string        `env:"BRACKET_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"BRACKET_LOG_FORMAT"       envDefault:"text"`
	SessionLifetime time.Duration `env:"BRACKET_SESSION_LIFETIME" envDefault:"24h"`
	MaxHistory      int           `env:"BRACKET_MAX_HISTORY"      envDefault:"50"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("BRACKET_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("BRACKET_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}
	if c.MaxHistory <= 0 {
		return fmt.Errorf("BRACKET_MAX_HISTORY must be positive, got %d", c.MaxHistory)
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid BRACKET_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
