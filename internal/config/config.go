package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the service configuration, read from environment variables
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// RedisURL enables statistics caching when set, e.g. redis://localhost:6379/0
	RedisURL string `env:"REDIS_URL"`

	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`

	// LogLevel is a zap level name: debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
