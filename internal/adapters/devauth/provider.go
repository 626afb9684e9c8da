package devauth

// Package devauth provides a config-driven AuthProvider for local
// development. It short-circuits the OAuth dance and mints a locally signed
// bearer token so the rest of the stack behaves exactly as in production.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	DisplayName string
	Roles       []string
	TokenTTL    time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development. Begin
// redirects straight back to our own callback with locally generated state
// and nonce; Exchange mints a signed token carrying the configured roles.
type Provider struct {
	displayName string
	roles       []string
	tokenTTL    time.Duration
	signingKey  []byte
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.DisplayName == "" {
		return nil, errors.New("dev auth: DisplayName is required")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 8 * time.Hour
	}

	// Fresh per-process key. Dev tokens never outlive the process anyway.
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("dev auth: generate signing key: %w", err)
	}

	return &Provider{
		displayName: cfg.DisplayName,
		roles:       append([]string(nil), cfg.Roles...),
		tokenTTL:    ttl,
		signingKey:  key,
	}, nil
}

// Begin returns a local callback URL and cryptographically secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	authURL := "/auth/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange ignores the code (the handler validates state and nonce) and
// mints a fresh token for the configured dev identity.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   p.displayName,
		"roles": p.roles,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.signingKey)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("sign dev token: %w", err)
	}

	return domainauth.Identity{
		Credential:  token,
		DisplayName: p.displayName,
	}, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
