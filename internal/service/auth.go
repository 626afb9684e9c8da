package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/ports"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Backend  *upstream.Client
	Codec    *token.Codec
}

// AuthService owns the shopper's server-side session: creating it on login,
// reading and policing the stored credential, and destroying it on logout or
// expiry. Social login is delegated to an AuthProvider; password login goes
// straight to the commerce backend.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	backend  *upstream.Client
	codec    *token.Codec
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		backend:  opts.Backend,
		codec:    opts.Codec,
	}
}

// BeginLoginResult contains the result of beginning a social-login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates a social-login flow and returns the provider auth URL
// with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("social login is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a social-login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin finishes a social-login flow by exchanging the code for an
// identity and persisting a fresh session around its credential.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if s.provider == nil {
		return domainauth.Session{}, errors.New("social login is not configured")
	}
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	if input.State == "" {
		return domainauth.Session{}, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.createSession(ctx, identity)
}

// PasswordLogin trades shopper credentials for a backend bearer token and
// persists a session around it.
func (s *AuthService) PasswordLogin(ctx context.Context, req model.LoginRequest) (domainauth.Session, error) {
	if req.Email == "" || req.Password == "" {
		return domainauth.Session{}, errors.New("email and password are required")
	}

	result, err := s.backend.Login(ctx, req)
	if err != nil {
		return domainauth.Session{}, err
	}

	return s.createSession(ctx, domainauth.Identity{
		Credential:  result.AccessToken,
		DisplayName: result.Name,
	})
}

func (s *AuthService) createSession(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	if domainauth.IsPoisonedCredential(identity.Credential) {
		return domainauth.Session{}, errors.New("login produced no usable credential")
	}

	session := domainauth.Session{
		ID:          uuid.NewString(),
		Credential:  identity.Credential,
		DisplayName: identity.DisplayName,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID. Sessions holding a poisoned
// credential value are purged on sight and reported as missing.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, err
	}

	if !session.HasCredential() {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("purge poisoned session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return session, nil
}

// IsAuthenticated reports whether a usable session exists under the ID. Pure
// presence check: the credential's expiry is not consulted here.
func (s *AuthService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	_, err := s.GetSession(ctx, sessionID)
	return err == nil
}

// PeekRoles extracts role names from the session's credential without any
// session side effects. An undecodable credential yields no roles.
func (s *AuthService) PeekRoles(session domainauth.Session) []string {
	return s.codec.Roles(session.Credential)
}

// EvictIfExpired deletes the session when its credential is expired or
// undecodable, and reports whether it did.
func (s *AuthService) EvictIfExpired(ctx context.Context, session domainauth.Session) (bool, error) {
	if !s.codec.IsExpired(session.Credential) {
		return false, nil
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return true, fmt.Errorf("delete expired session: %w", err)
	}
	return true, nil
}

// GrantFor wraps the session as an upstream grant, so the backend transport
// can attach the credential and destroy the session when it is rejected.
func (s *AuthService) GrantFor(session domainauth.Session) *upstream.Grant {
	sessionID := session.ID
	return &upstream.Grant{
		Credential: session.Credential,
		Invalidate: func(ctx context.Context) error {
			return s.sessions.Delete(ctx, sessionID)
		},
	}
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
