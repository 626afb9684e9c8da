package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/podomall/mall-ui-api/config"
	"github.com/podomall/mall-ui-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting mall-ui-api",
		"addr", cfg.HTTP.Addr,
		"upstream", cfg.Upstream.BaseURL,
		"auth_mode", cfg.Auth.Mode,
		"dev", cfg.IsDev,
	)

	redisClient, err := connectRedis(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, &bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

// connectRedis tolerates a missing Redis in dev mode, where the in-memory
// session store takes over.
//
//nolint:ireturn // returning redis.UniversalClient keeps the client type swappable.
func connectRedis(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		if cfg.IsDev {
			logger.WarnContext(ctx, "redis unavailable, continuing with in-memory sessions", "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
