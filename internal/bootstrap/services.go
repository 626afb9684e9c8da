package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/podomall/mall-ui-api/config"
	"github.com/podomall/mall-ui-api/internal/observability/statsd"
	"github.com/podomall/mall-ui-api/internal/service"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Backend *upstream.Client
	Codec   *token.Codec
	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the token codec, backend client, and auth service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	metrics := buildMetrics(cfg.Observability.Metrics, logger)

	codec, err := token.NewCodec(token.WithExpiryMargin(cfg.Auth.ExpiryMargin))
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token codec: %w", err)
	}

	backend, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Codec:   codec,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build backend client: %w", err)
	}

	auth := BuildAuthService(AuthDeps{
		Auth:        cfg.Auth,
		Backend:     backend,
		Codec:       codec,
		RedisClient: deps.RedisClient,
		IsDev:       cfg.IsDev,
		Logger:      logger,
	})

	return ServiceContainer{
		Auth:    auth,
		Backend: backend,
		Codec:   codec,
		Metrics: metrics,
	}, nil
}

// buildMetrics constructs the StatsD sink. A disabled or failed sink yields
// a no-op client so callers never branch on metrics availability.
func buildMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  "mall",
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		noop, _ := statsd.NewClient(statsd.Config{Enabled: false})
		return noop
	}
	return client
}

// RunConfig groups dependencies for the run loop.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then shuts the server down gracefully.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	<-signalCtx.Done()
	logger.Info("shutdown signal received")

	// Detach from the signal context so shutdown gets its own deadline.
	return ShutdownHTTPServer(context.WithoutCancel(signalCtx), server, logger)
}
