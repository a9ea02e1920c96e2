package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// devFallbackSecret signs tokens when no JWT_SECRET is set outside
// production. Validate rejects it for production-like environments so
// the known default can never guard real sessions.
const devFallbackSecret = "dev-only-insecure-secret"

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	URL     string        `env:"DATABASE_URL, default=postgres://localhost:5432/marketplace"`
	Timeout time.Duration `env:"DATABASE_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the environment is production-like.
func (c *Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate fails fast on configurations that must never reach serving:
// a production deployment without an explicit signing secret would
// otherwise silently fall back to a publicly known value.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Production() {
			return errors.New("config: JWT_SECRET is required in production")
		}
		c.JWTSecret = devFallbackSecret
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

// UsingFallbackSecret reports whether the insecure development secret is
// active, so startup can log it loudly.
func (c *Config) UsingFallbackSecret() bool {
	return c.JWTSecret == devFallbackSecret
}
