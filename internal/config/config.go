package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds every runtime knob, loaded from the environment. With no
// DATABASE_URL set the server runs entirely in memory, which is enough for
// local development and tests.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BinanceWS   string        `env:"BINANCE_WS_URL" envDefault:"wss://stream.binance.com:9443/ws"`
	CORSOrigin  string        `env:"CORS_ORIGIN" envDefault:"*"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	SeedAssets  bool          `env:"SEED_ASSETS" envDefault:"true"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
