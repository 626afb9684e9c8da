package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/podomall/mall-ui-api/config"
	"github.com/podomall/mall-ui-api/internal/adapters/devauth"
	"github.com/podomall/mall-ui-api/internal/adapters/memory"
	"github.com/podomall/mall-ui-api/internal/adapters/oidc"
	redisadapter "github.com/podomall/mall-ui-api/internal/adapters/redis"
	"github.com/podomall/mall-ui-api/internal/ports"
	"github.com/podomall/mall-ui-api/internal/service"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// AuthDeps contains dependencies for the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	Backend     *upstream.Client
	Codec       *token.Codec
	RedisClient redis.UniversalClient
	IsDev       bool
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service. Password login always works;
// social login is wired only when the configured provider can be built, and
// a misconfigured provider degrades to password-only rather than failing
// startup.
func BuildAuthService(deps AuthDeps) *service.AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: buildProvider(deps, logger),
		Sessions: buildSessionStore(deps, logger),
		Backend:  deps.Backend,
		Codec:    deps.Codec,
	})
}

//nolint:ireturn // provider selection happens at runtime.
func buildSessionStore(deps AuthDeps, logger *slog.Logger) ports.SessionStore {
	if deps.RedisClient != nil {
		return redisadapter.NewSessionStoreWithOptions(deps.RedisClient, "session:", deps.Auth.SessionTTL)
	}
	if deps.IsDev {
		logger.Warn("redis not configured, using in-memory session store", "mode", "dev")
		return memory.NewSessionStore()
	}
	// Production without Redis is a misconfiguration, but a process that
	// serves public pages beats one that refuses to start.
	logger.Error("redis not configured outside dev mode, sessions will not survive restarts")
	return memory.NewSessionStore()
}

//nolint:ireturn // provider selection happens at runtime.
func buildProvider(deps AuthDeps, logger *slog.Logger) ports.AuthProvider {
	switch deps.Auth.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			DisplayName: deps.Auth.DevAuth.DisplayName,
			Roles:       deps.Auth.DevAuth.Roles,
		})
		if err != nil {
			logger.Warn("failed to create dev auth provider, social login disabled", "error", err)
			return nil
		}
		return prov

	case config.AuthModeOAuth:
		oauth := deps.Auth.OAuth
		if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
			logger.Warn("oauth mode selected but required config missing, social login disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
			return nil
		}

		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
			Backend:      deps.Backend,
		})
		if err != nil {
			logger.Warn("failed to create oidc provider, social login disabled", "error", err)
			return nil
		}
		return prov

	default:
		return nil
	}
}
