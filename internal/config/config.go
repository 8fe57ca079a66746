package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds the process configuration, populated from the environment.
type Config struct {
	Port        string `env:"SQUEAKY_PORT" envDefault:"8080"`
	DBPath      string `env:"SQUEAKY_DB_PATH" envDefault:"squeaky.db"`
	LogLevel    string `env:"SQUEAKY_LOG_LEVEL" envDefault:"info"`
	JobInterval string `env:"SQUEAKY_JOB_INTERVAL" envDefault:"1h"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
