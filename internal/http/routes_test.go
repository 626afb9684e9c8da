package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podomall/mall-ui-api/internal/adapters/memory"
	"github.com/podomall/mall-ui-api/internal/service"
	"github.com/podomall/mall-ui-api/internal/testutil"
	"github.com/podomall/mall-ui-api/internal/token"
	"github.com/podomall/mall-ui-api/internal/upstream"
)

// routerHarness runs the full stack against a scripted commerce backend.
type routerHarness struct {
	backend *testutil.FakeUpstream
	store   *memory.SessionStore
	handler http.Handler
}

func newRouterHarness(t *testing.T) *routerHarness {
	t.Helper()

	backend := testutil.NewFakeUpstream(t)
	codec := token.MustNewCodec()

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: backend.URL(),
		Codec:   codec,
	})
	require.NoError(t, err)

	store := memory.NewSessionStore()
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Sessions: store,
		Backend:  client,
		Codec:    codec,
	})

	handler := NewRouter(RouterServices{
		Auth:    authSvc,
		Backend: client,
		Codec:   codec,
	})

	return &routerHarness{backend: backend, store: store, handler: handler}
}

func (h *routerHarness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// login performs a password login and returns the session cookie.
func (h *routerHarness) login(t *testing.T, tok string) *http.Cookie {
	t.Helper()

	h.backend.On(http.MethodPost, "/api/v1/auth/login", testutil.UpstreamResponse{
		Data: map[string]any{"accessToken": tok, "name": "Alice"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := h.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRouter_PasswordLoginCreatesSession(t *testing.T) {
	h := newRouterHarness(t)
	cookie := h.login(t, testutil.FreshToken(t, "USER"))

	assert.Equal(t, 1, h.store.Len())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"Alice"`)
}

func TestRouter_PublicCatalogNeedsNoSession(t *testing.T) {
	h := newRouterHarness(t)
	h.backend.On(http.MethodGet, "/api/v1/products", testutil.UpstreamResponse{
		Data: map[string]any{"products": []any{}, "totalCount": 0},
	})

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, h.backend.LastRequest().Header.Get("Authorization"))
}

func TestRouter_SignedInRequestCarriesBearer(t *testing.T) {
	h := newRouterHarness(t)
	tok := testutil.FreshToken(t, "USER")
	cookie := h.login(t, tok)

	h.backend.On(http.MethodGet, "/api/v1/carts", testutil.UpstreamResponse{
		Data: map[string]any{"items": []any{}, "totalPrice": 0},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+tok, h.backend.LastRequest().Header.Get("Authorization"))
}

func TestRouter_GuardedRouteWithoutSession(t *testing.T) {
	h := newRouterHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, h.backend.Requests, "guard must reject before any backend call")
}

func TestRouter_BackendUnauthorizedDestroysSession(t *testing.T) {
	h := newRouterHarness(t)
	cookie := h.login(t, testutil.FreshToken(t, "USER"))
	require.Equal(t, 1, h.store.Len())

	h.backend.On(http.MethodGet, "/api/v1/orders", testutil.UpstreamResponse{
		Status:     http.StatusUnauthorized,
		ResultCode: "F-401",
		Message:    "JWT expired",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.store.Len(), "backend 401 must destroy the session")

	// The response also clears the cookie.
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestRouter_BackendForbiddenKeepsSession(t *testing.T) {
	h := newRouterHarness(t)
	cookie := h.login(t, testutil.FreshToken(t, "USER"))

	h.backend.On(http.MethodGet, "/api/v1/orders", testutil.UpstreamResponse{
		Status:     http.StatusForbidden,
		ResultCode: "F-403",
		Message:    "토큰 만료",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, h.store.Len(), "403 must leave the session intact")
}

func TestRouter_StatusEvictsExpiredSession(t *testing.T) {
	h := newRouterHarness(t)
	cookie := h.login(t, testutil.ExpiredToken(t))
	require.Equal(t, 1, h.store.Len())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	assert.Zero(t, h.store.Len())
}

func TestRouter_Logout(t *testing.T) {
	h := newRouterHarness(t)
	cookie := h.login(t, testutil.FreshToken(t, "USER"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, h.store.Len())
}

func TestRouter_AdminGuard(t *testing.T) {
	h := newRouterHarness(t)
	h.backend.On(http.MethodGet, "/api/v1/admin/seller-requests", testutil.UpstreamResponse{
		Data: []any{},
	})

	shopper := h.login(t, testutil.FreshToken(t, "USER"))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/seller-requests", nil)
	req.AddCookie(shopper)
	assert.Equal(t, http.StatusForbidden, h.do(req).Code)

	admin := h.login(t, testutil.FreshToken(t, "ROLE_ADMIN"))
	req = httptest.NewRequest(http.MethodGet, "/api/admin/seller-requests", nil)
	req.AddCookie(admin)
	assert.Equal(t, http.StatusOK, h.do(req).Code)
}

func TestRouter_SellerGuard(t *testing.T) {
	h := newRouterHarness(t)
	h.backend.On(http.MethodGet, "/api/v1/seller/dashboard", testutil.UpstreamResponse{
		Data: map[string]any{"productCount": 3},
	})

	shopper := h.login(t, testutil.FreshToken(t, "USER"))
	req := httptest.NewRequest(http.MethodGet, "/api/seller/dashboard", nil)
	req.AddCookie(shopper)
	assert.Equal(t, http.StatusForbidden, h.do(req).Code)

	seller := h.login(t, testutil.FreshToken(t, "SELLER"))
	req = httptest.NewRequest(http.MethodGet, "/api/seller/dashboard", nil)
	req.AddCookie(seller)
	assert.Equal(t, http.StatusOK, h.do(req).Code)
}

func TestRouter_AccountOverviewAggregates(t *testing.T) {
	h := newRouterHarness(t)
	h.backend.On(http.MethodGet, "/api/v1/members/me", testutil.UpstreamResponse{
		Data: map[string]any{"name": "Alice", "email": "alice@example.com"},
	})
	h.backend.On(http.MethodGet, "/api/v1/wallet", testutil.UpstreamResponse{
		Data: map[string]any{"balance": 1200},
	})
	h.backend.On(http.MethodGet, "/api/v1/coupons", testutil.UpstreamResponse{
		Data: []any{map[string]any{"name": "WELCOME10"}},
	})

	cookie := h.login(t, testutil.FreshToken(t, "USER"))
	req := httptest.NewRequest(http.MethodGet, "/api/members/me/overview", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"alice@example.com"`)
	assert.Contains(t, rec.Body.String(), `"WELCOME10"`)
}

func TestRouter_Health(t *testing.T) {
	h := newRouterHarness(t)
	rec := h.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
