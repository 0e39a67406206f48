package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, loaded from the environment
type Config struct {
	// HTTP server
	Host string `env:"HTTP_HOST" envDefault:""`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`

	// Storage backend: "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// Analytics event stream; empty disables publishing
	AnalyticsRedisURL string `env:"ANALYTICS_REDIS_URL"`

	// Lifecycle timings
	PairingTimeout time.Duration `env:"PAIRING_TIMEOUT" envDefault:"10s"`
	AbandonGrace   time.Duration `env:"ABANDON_GRACE" envDefault:"30s"`
	AIMoveDelay    time.Duration `env:"AI_MOVE_DELAY" envDefault:"500ms"`

	// AI opponent search depth (plies)
	AISearchDepth int `env:"AI_SEARCH_DEPTH" envDefault:"5"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config from environment: %w", err)
	}
	return cfg, nil
}
