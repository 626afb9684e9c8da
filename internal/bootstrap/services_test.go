package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podomall/mall-ui-api/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServices_RequiresConfig(t *testing.T) {
	_, err := NewServices(nil)
	assert.Error(t, err)

	_, err = NewServices(&ServiceDeps{})
	assert.Error(t, err)
}

func TestNewServices_WiresDevAuth(t *testing.T) {
	cfg := config.AppConfig{
		IsDev: true,
		Auth: config.AuthConfig{
			Mode:    config.AuthModeMock,
			DevAuth: config.DevAuthConfig{DisplayName: "Dev Shopper", Roles: []string{"USER"}},
		},
		Upstream: config.UpstreamConfig{BaseURL: "http://localhost:9090"},
	}
	cfg.Sanitize()

	services, err := NewServices(&ServiceDeps{Config: &cfg, Logger: discardLogger()})
	require.NoError(t, err)
	require.NotNil(t, services.Auth)
	require.NotNil(t, services.Backend)
	require.NotNil(t, services.Codec)
	require.NotNil(t, services.Metrics)

	// Mock mode wires a social-login provider.
	result, err := services.Auth.BeginLogin(context.Background(), "/")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthURL)
}

func TestNewServices_OAuthUnconfiguredDegradesToPasswordOnly(t *testing.T) {
	cfg := config.AppConfig{
		IsDev:    true,
		Auth:     config.AuthConfig{Mode: config.AuthModeOAuth},
		Upstream: config.UpstreamConfig{BaseURL: "http://localhost:9090"},
	}
	cfg.Sanitize()

	services, err := NewServices(&ServiceDeps{Config: &cfg, Logger: discardLogger()})
	require.NoError(t, err)

	_, err = services.Auth.BeginLogin(context.Background(), "/")
	assert.ErrorContains(t, err, "not configured")
}

func TestSanitizeCookieDomain(t *testing.T) {
	logger := discardLogger()

	assert.Equal(t, "", sanitizeCookieDomain("", logger))
	assert.Equal(t, "shop.example.com", sanitizeCookieDomain("shop.example.com", logger))
	assert.Equal(t, "", sanitizeCookieDomain("com", logger), "bare public suffix rejected")
	assert.Equal(t, "", sanitizeCookieDomain("co.kr", logger), "multi-label public suffix rejected")
}
