package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the social-login mode for the application. Password
// login against the commerce backend works in every mode.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for social login.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev social login (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for social login.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"mall-ui-api"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the identity minted by mock social login.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	DisplayName string   `env:"DISPLAY_NAME" envDefault:"Dev Shopper"`
	Roles       []string `env:"ROLES"        envDefault:"USER"        envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which social-login provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL bounds how long a server-side session record lives.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// ExpiryMargin is the safety margin applied when checking credential
	// expiry, absorbing clock skew against the backend.
	ExpiryMargin time.Duration `env:"AUTH_EXPIRY_MARGIN" envDefault:"300s"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.ExpiryMargin < 0 {
		a.ExpiryMargin = 0
	}
}
