package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/podomall/mall-ui-api/config"
	httpx "github.com/podomall/mall-ui-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Backend:      cfg.Services.Backend,
		Codec:        cfg.Services.Codec,
		CookieDomain: sanitizeCookieDomain(appCfg.HTTP.CookieDomain, logger),
		Logger:       logger,
		Metrics:      cfg.Services.Metrics,
	})

	return startServer(logger, router, appCfg.HTTP.Addr)
}

// sanitizeCookieDomain rejects a cookie domain that is a bare public suffix
// ("com", "co.kr"). Browsers drop such cookies, and scoping a session cookie
// that wide would be a bug even if they did not.
func sanitizeCookieDomain(domain string, logger *slog.Logger) string {
	if domain == "" {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	if suffix == domain {
		logger.Warn("cookie domain is a public suffix, falling back to host-only cookies", "domain", domain)
		return ""
	}
	return domain
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
