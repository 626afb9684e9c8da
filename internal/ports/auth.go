package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating a social-login flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes a social-login flow against an
// external identity provider. The exchanged identity carries the commerce
// backend bearer credential for the signed-in shopper.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves shopper sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ErrSessionNotFound is returned by SessionStore.Get when no session exists
// under the given ID.
type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

var ErrSessionNotFound error = sessionNotFoundError{}
