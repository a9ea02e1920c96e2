package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khadamat/marketplace-api/internal/api"
	"github.com/khadamat/marketplace-api/internal/infrastructure/config"
	"github.com/khadamat/marketplace-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/khadamat/marketplace-api/internal/infrastructure/db/redis"
	"github.com/khadamat/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Khadamat Marketplace API
// @version         1.0
// @description     Session authentication and marketplace operations for the Khadamat digital services platform.
// @BasePath        /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.UsingFallbackSecret() {
		log.Warn().Msg("JWT_SECRET not set, signing sessions with the insecure development secret")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, Timeout: cfg.Postgres.Timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		// The throttle backed by Redis fails open, so a missing Redis
		// degrades brute-force protection but must not block serving.
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, pool, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
