package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/podomall/mall-ui-api/internal/adapters/memory"
	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/domain/model"
	"github.com/podomall/mall-ui-api/internal/mocks"
	"github.com/podomall/mall-ui-api/internal/ports"
	"github.com/podomall/mall-ui-api/internal/testutil"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

func newBackendClient(t *testing.T, baseURL string) *upstream.Client {
	t.Helper()
	client, err := upstream.NewClient(upstream.Config{
		BaseURL: baseURL,
		Codec:   token.MustNewCodec(),
	})
	require.NoError(t, err)
	return client
}

func TestAuthService_PasswordLogin_Success(t *testing.T) {
	backend := testutil.NewFakeUpstream(t)
	tok := testutil.FreshToken(t, "USER")
	backend.On("POST", "/api/v1/auth/login", testutil.UpstreamResponse{
		Data: map[string]any{"accessToken": tok, "name": "Alice"},
	})

	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Backend:  newBackendClient(t, backend.URL()),
		Codec:    token.MustNewCodec(),
	})

	session, err := svc.PasswordLogin(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, tok, session.Credential)
	assert.Equal(t, "Alice", session.DisplayName)

	stored, err := sessions.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session, stored)
}

func TestAuthService_PasswordLogin_Validation(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Sessions: memory.NewSessionStore(),
		Codec:    token.MustNewCodec(),
	})

	_, err := svc.PasswordLogin(context.Background(), model.LoginRequest{Email: "a@b.c"})
	assert.Error(t, err)
}

func TestAuthService_PasswordLogin_PoisonedCredentialRejected(t *testing.T) {
	backend := testutil.NewFakeUpstream(t)
	backend.On("POST", "/api/v1/auth/login", testutil.UpstreamResponse{
		Data: map[string]any{"accessToken": "null", "name": "Ghost"},
	})

	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Backend:  newBackendClient(t, backend.URL()),
		Codec:    token.MustNewCodec(),
	})

	_, err := svc.PasswordLogin(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})
	assert.Error(t, err)
	assert.Zero(t, sessions.Len(), "no session may be created around a poisoned credential")
}

func TestAuthService_SocialLogin_Flow(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockAuthProvider(ctrl)
	sessions := memory.NewSessionStore()

	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	provider.EXPECT().
		Begin(gomock.Any(), ports.BeginInput{RedirectURL: "http://localhost:8080/auth/callback"}).
		Return("https://idp/auth?x=1", "state-1", "nonce-1", nil)

	begin, err := svc.BeginLogin(ctx, "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://idp/auth?x=1", begin.AuthURL)

	tok := testutil.FreshToken(t, "USER")
	provider.EXPECT().
		Exchange(gomock.Any(), ports.ExchangeInput{Code: "code-1", State: "state-1", Nonce: "nonce-1"}).
		Return(domainauth.Identity{Credential: tok, DisplayName: "Alice"}, nil)

	session, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code-1", State: "state-1", Nonce: "nonce-1"})
	require.NoError(t, err)
	assert.Equal(t, tok, session.Credential)
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthService_CompleteLogin_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(ctrl),
		Sessions: memory.NewSessionStore(),
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{State: "s", Nonce: "n"})
	assert.Error(t, err, "code is required")

	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", Nonce: "n"})
	assert.Error(t, err, "state is required")

	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s"})
	assert.Error(t, err, "nonce is required")
}

func TestAuthService_BeginLogin_WithoutProvider(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Sessions: memory.NewSessionStore(),
		Codec:    token.MustNewCodec(),
	})

	_, err := svc.BeginLogin(context.Background(), "http://localhost/cb")
	assert.Error(t, err)
}

func TestAuthService_GetSession_PurgesPoisonedCredential(t *testing.T) {
	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{ID: "sid", Credential: "undefined"}))

	_, err := svc.GetSession(ctx, "sid")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Zero(t, sessions.Len(), "poisoned session must be deleted, not just hidden")
}

func TestAuthService_IsAuthenticated(t *testing.T) {
	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	assert.False(t, svc.IsAuthenticated(ctx, ""))
	assert.False(t, svc.IsAuthenticated(ctx, "missing"))

	// Presence is enough: even an expired credential counts as signed in
	// until something observes the expiry.
	require.NoError(t, sessions.Save(ctx, domainauth.Session{ID: "sid", Credential: testutil.ExpiredToken(t)}))
	assert.True(t, svc.IsAuthenticated(ctx, "sid"))
}

func TestAuthService_PeekRoles(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Sessions: memory.NewSessionStore(),
		Codec:    token.MustNewCodec(),
	})

	sess := domainauth.Session{Credential: testutil.FreshToken(t, "seller", "USER")}
	assert.Equal(t, []string{"SELLER", "USER"}, svc.PeekRoles(sess))

	assert.Empty(t, svc.PeekRoles(domainauth.Session{Credential: "garbage"}))
}

func TestAuthService_EvictIfExpired(t *testing.T) {
	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	fresh := domainauth.Session{ID: "fresh", Credential: testutil.FreshToken(t, "USER")}
	stale := domainauth.Session{ID: "stale", Credential: testutil.ExpiredToken(t)}
	require.NoError(t, sessions.Save(ctx, fresh))
	require.NoError(t, sessions.Save(ctx, stale))

	evicted, err := svc.EvictIfExpired(ctx, fresh)
	require.NoError(t, err)
	assert.False(t, evicted)

	evicted, err = svc.EvictIfExpired(ctx, stale)
	require.NoError(t, err)
	assert.True(t, evicted)
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthService_GrantFor_InvalidateDeletesSession(t *testing.T) {
	sessions := memory.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	sess := domainauth.Session{ID: "sid", Credential: testutil.FreshToken(t, "USER")}
	require.NoError(t, sessions.Save(ctx, sess))

	grant := svc.GrantFor(sess)
	assert.Equal(t, sess.Credential, grant.Credential)
	require.NoError(t, grant.Invalidate(ctx))
	assert.Zero(t, sessions.Len())
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	svc := NewAuthService(AuthServiceOptions{
		Sessions: store,
		Codec:    token.MustNewCodec(),
	})
	ctx := context.Background()

	// Empty ID is a no-op, no store call expected.
	require.NoError(t, svc.Logout(ctx, ""))

	store.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
	require.NoError(t, svc.Logout(ctx, "sid"))

	// An already-missing session is not an error.
	store.EXPECT().Delete(gomock.Any(), "gone").Return(ports.ErrSessionNotFound)
	require.NoError(t, svc.Logout(ctx, "gone"))

	store.EXPECT().Delete(gomock.Any(), "sid").Return(errors.New("redis down"))
	assert.Error(t, svc.Logout(ctx, "sid"))
}
