package testutil

// Package testutil holds shared helpers for package tests: Redis detection,
// token minting, and fake upstream backends. Nothing here is imported by
// production code.

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB these helpers need. Declared locally
// so non-test packages can pass their own fakes.
type TestingTB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Skip(args ...any)
	Skipf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

// GetTestRedisAddr returns the Redis address for tests and whether one is
// reachable. Defaults to localhost:6379; override with TEST_REDIS_ADDR.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return addr, false
	}
	_ = conn.Close()
	return addr, true
}

// SetupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15, // keep test data away from any local dev database
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)

	return client
}

// SignToken mints a real HS256 token with the given claims. The UI-API never
// verifies signatures, so the key is fixed and irrelevant.
func SignToken(t TestingTB, claims map[string]any) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims)).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return tok
}

// FreshToken mints a token with the given roles, expiring comfortably in the
// future.
func FreshToken(t TestingTB, roles ...string) string {
	t.Helper()
	claims := map[string]any{
		"sub": "shopper-1",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}
	return SignToken(t, claims)
}

// ExpiredToken mints a token whose expiry is already past.
func ExpiredToken(t TestingTB) string {
	t.Helper()
	return SignToken(t, map[string]any{
		"sub": "shopper-1",
		"exp": time.Now().Add(-1 * time.Hour).Unix(),
	})
}

// UpstreamResponse scripts one fake backend answer.
type UpstreamResponse struct {
	Status     int
	ResultCode string
	Message    string
	Data       any
}

// FakeUpstream is a scripted commerce backend for transport and handler
// tests. Responses match on "METHOD path-prefix"; unmatched requests get a
// 404 envelope.
type FakeUpstream struct {
	Server *httptest.Server

	// Requests records every request seen, in order.
	Requests []*http.Request

	responses map[string]UpstreamResponse
}

// NewFakeUpstream starts a scripted backend. The server is shut down via
// t.Cleanup.
func NewFakeUpstream(t TestingTB) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{responses: make(map[string]UpstreamResponse)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// On scripts the response for requests matching method and path prefix.
func (f *FakeUpstream) On(method, pathPrefix string, resp UpstreamResponse) {
	f.responses[method+" "+pathPrefix] = resp
}

// URL returns the fake backend's base URL.
func (f *FakeUpstream) URL() string { return f.Server.URL }

// LastRequest returns the most recent request, or nil.
func (f *FakeUpstream) LastRequest() *http.Request {
	if len(f.Requests) == 0 {
		return nil
	}
	return f.Requests[len(f.Requests)-1]
}

func (f *FakeUpstream) handle(w http.ResponseWriter, r *http.Request) {
	f.Requests = append(f.Requests, r.Clone(r.Context()))

	for key, resp := range f.responses {
		method, prefix, _ := strings.Cut(key, " ")
		if r.Method == method && strings.HasPrefix(r.URL.Path, prefix) {
			writeEnvelope(w, resp)
			return
		}
	}

	writeEnvelope(w, UpstreamResponse{
		Status:     http.StatusNotFound,
		ResultCode: "F-404",
		Message:    "no such endpoint",
	})
}

func writeEnvelope(w http.ResponseWriter, resp UpstreamResponse) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	code := resp.ResultCode
	if code == "" {
		code = "S-200"
	}

	body := map[string]any{"resultCode": code, "msg": resp.Message}
	if resp.Data != nil {
		body["data"] = resp.Data
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
