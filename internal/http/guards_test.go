package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podomall/mall-ui-api/internal/adapters/memory"
	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/service"
	"github.com/podomall/mall-ui-api/internal/testutil"
	"github.com/podomall/mall-ui-api/internal/token"
)

// guardHarness wires a real auth service over an in-memory store so guard
// tests exercise the full session resolution path.
type guardHarness struct {
	svc    *service.AuthService
	store  *memory.SessionStore
	guards *Guards
	seq    int
}

func newGuardHarness(t *testing.T) *guardHarness {
	t.Helper()
	store := memory.NewSessionStore()
	codec := token.MustNewCodec()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Sessions: store,
		Codec:    codec,
	})
	return &guardHarness{
		svc:   svc,
		store: store,
		guards: &Guards{
			Auth:  svc,
			Codec: codec,
		},
	}
}

// saveSession persists a session and returns its ID.
func (h *guardHarness) saveSession(t *testing.T, credential string) string {
	t.Helper()
	h.seq++
	sess := domainauth.Session{ID: fmt.Sprintf("sid-%d", h.seq), Credential: credential}
	require.NoError(t, h.store.Save(context.Background(), sess))
	return sess.ID
}

// serve runs a request through session resolution plus the given guard.
func (h *guardHarness) serve(guard func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	OptionalSession(h.svc)(guard(next)).ServeHTTP(rec, req)
	return rec, reached
}

func browserRequest(path, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func apiRequest(path, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func TestRequireSession_AnonymousBrowserRedirectsToLogin(t *testing.T) {
	h := newGuardHarness(t)

	rec, reached := h.serve(h.guards.RequireSession, browserRequest("/orders", ""))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")
	assert.Contains(t, rec.Header().Get("Location"), "redirect_uri=%2Forders")
}

func TestRequireSession_AnonymousAPIGets401(t *testing.T) {
	h := newGuardHarness(t)

	rec, reached := h.serve(h.guards.RequireSession, apiRequest("/api/orders", ""))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_PresenceOnly(t *testing.T) {
	h := newGuardHarness(t)

	// Even an expired credential passes the presence check; expiry is the
	// backend transport's concern on first use.
	sid := h.saveSession(t, testutil.ExpiredToken(t))
	rec, reached := h.serve(h.guards.RequireSession, browserRequest("/orders", sid))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_MissingRolesRedirectsToLogin(t *testing.T) {
	h := newGuardHarness(t)

	// Signed in, but the token carries no role claim at all: treated the same
	// as not signed in.
	sid := h.saveSession(t, testutil.FreshToken(t))
	guard := h.guards.RequireRoles([]string{"ADMIN"}, false)
	rec, reached := h.serve(guard, browserRequest("/admin", sid))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")
}

func TestRequireRoles_WrongRoleRedirectsToUnauthorized(t *testing.T) {
	h := newGuardHarness(t)

	sid := h.saveSession(t, testutil.FreshToken(t, "USER"))
	guard := h.guards.RequireRoles([]string{"ADMIN"}, false)

	rec, reached := h.serve(guard, browserRequest("/admin", sid))
	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))

	// API callers get a plain 403.
	rec, reached = h.serve(guard, apiRequest("/api/admin", sid))
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoles_ToleratesPrefixAndCase(t *testing.T) {
	h := newGuardHarness(t)

	sid := h.saveSession(t, testutil.FreshToken(t, "role_admin"))
	guard := h.guards.RequireRoles([]string{"Admin"}, false)

	rec, reached := h.serve(guard, browserRequest("/admin", sid))
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_RequireAll(t *testing.T) {
	h := newGuardHarness(t)
	guard := h.guards.RequireRoles([]string{"SELLER", "ADMIN"}, true)

	partial := h.saveSession(t, testutil.FreshToken(t, "SELLER"))
	_, reached := h.serve(guard, browserRequest("/ops", partial))
	assert.False(t, reached)

	full := h.saveSession(t, testutil.FreshToken(t, "SELLER", "ADMIN"))
	_, reached = h.serve(guard, browserRequest("/ops", full))
	assert.True(t, reached)
}

func TestRequireSeller_AdmitsSeller(t *testing.T) {
	h := newGuardHarness(t)

	sid := h.saveSession(t, testutil.FreshToken(t, "SELLER"))
	rec, reached := h.serve(h.guards.RequireSeller, browserRequest("/seller", sid))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSeller_AdmitsLegacyScalarClaim(t *testing.T) {
	h := newGuardHarness(t)

	// Older tokens carry a single "auth" string instead of a roles list.
	tok := testutil.SignToken(t, map[string]any{"sub": "s", "auth": "ROLE_SELLER"})
	sid := h.saveSession(t, tok)

	_, reached := h.serve(h.guards.RequireSeller, browserRequest("/seller", sid))
	assert.True(t, reached)
}

func TestRequireSeller_NonSellerSentToAccountPage(t *testing.T) {
	h := newGuardHarness(t)

	sid := h.saveSession(t, testutil.FreshToken(t, "USER"))
	rec, reached := h.serve(h.guards.RequireSeller, browserRequest("/seller", sid))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account?notice=seller_only", rec.Header().Get("Location"))

	// The session survives: lacking the seller role is not an auth failure.
	assert.Equal(t, 1, h.store.Len())
}

func TestRequireSeller_UndecodableCredentialEvictsSession(t *testing.T) {
	h := newGuardHarness(t)

	sess := domainauth.Session{ID: "sid-garbage", Credential: "not-a-jwt"}
	require.NoError(t, h.store.Save(context.Background(), sess))

	rec, reached := h.serve(h.guards.RequireSeller, browserRequest("/seller", sess.ID))

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")
	assert.Zero(t, h.store.Len(), "a session whose credential no longer decodes must be evicted")
}
