package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	apperrors "github.com/podomall/mall-ui-api/internal/errors"
	"github.com/podomall/mall-ui-api/internal/observability/statsd"
	"github.com/podomall/mall-ui-api/internal/token"
)

// Sentinel errors returned by the interceptor before or instead of a
// response. Both carry the unauthenticated error code; the HTTP layer turns
// them into a login redirect. By the time either is returned the backing
// session has already been cleared.
var (
	// ErrSessionExpired means the credential was expired locally, or the
	// backend rejected it as expired/unauthorized.
	ErrSessionExpired = apperrors.Unauthenticated("session expired")

	// ErrNoSession means a private request was attempted with no credential.
	ErrNoSession = apperrors.Unauthenticated("no session")
)

// maxErrorBodyPeek bounds how much of an error response body the interceptor
// reads when sniffing for an expiry message.
const maxErrorBodyPeek = 1 << 20

// AuthTransport is the interceptor pipeline applied to every request toward
// the commerce backend.
//
// Request phase: read the caller's grant, normalize poisoned credentials,
// classify the request public/private, reject expired or missing credentials
// before anything is sent, attach the bearer header, and strip boundary-less
// multipart content types.
//
// Response phase: network failures pass through untouched; 401 and non-403
// expiry messages destroy the session; 403 is surfaced without touching the
// session so a permission error on one feature never logs the shopper out.
type AuthTransport struct {
	Base    http.RoundTripper
	Codec   *token.Codec
	Logger  *slog.Logger
	Metrics statsd.Sink
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t *AuthTransport) count(name string, tags map[string]string) {
	if t.Metrics != nil {
		t.Metrics.Count(name, 1, tags)
	}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	grant := GrantFromContext(ctx)

	credential, err := t.usableCredential(req, grant)
	if err != nil {
		return nil, err
	}

	out := req.Clone(ctx)
	if credential != "" {
		out.Header.Set("Authorization", "Bearer "+credential)
	}
	stripBoundarylessMultipart(out)

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		// Network-level failure: no response at all. Not an auth failure,
		// pass it through unchanged.
		return nil, err
	}

	return t.interceptResponse(out, grant, resp)
}

// usableCredential applies the request-phase policy and returns the
// credential to attach, empty for anonymous public requests.
func (t *AuthTransport) usableCredential(req *http.Request, grant *Grant) (string, error) {
	ctx := req.Context()

	credential := ""
	if grant != nil {
		credential = grant.Credential
	}

	// Known poisoned stored values read as absent and are purged on sight.
	if credential != "" && isPoisonedLiteral(credential) {
		if clearErr := grant.invalidate(ctx); clearErr != nil {
			t.logger().WarnContext(ctx, "clear poisoned credential failed", "error", clearErr)
		}
		credential = ""
	}

	public := IsPublic(req.Method, req.URL.Path)

	if credential != "" {
		if t.Codec.IsExpired(credential) {
			if clearErr := grant.invalidate(ctx); clearErr != nil {
				t.logger().WarnContext(ctx, "clear expired session failed", "error", clearErr)
			}
			t.count("upstream.auth.rejected", map[string]string{"reason": "expired_before_send"})
			return "", fmt.Errorf("credential expired before send: %w", ErrSessionExpired)
		}
		return credential, nil
	}

	if !public {
		t.count("upstream.auth.rejected", map[string]string{"reason": "no_session"})
		return "", fmt.Errorf("private request %s %s without credential: %w", req.Method, req.URL.Path, ErrNoSession)
	}

	return "", nil
}

// interceptResponse applies the response-phase policy.
func (t *AuthTransport) interceptResponse(req *http.Request, grant *Grant, resp *http.Response) (*http.Response, error) {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Unauthorized always destroys the session.
		drainAndClose(resp.Body)
		if clearErr := grant.invalidate(req.Context()); clearErr != nil {
			t.logger().WarnContext(req.Context(), "clear session after 401 failed", "error", clearErr)
		}
		t.count("upstream.auth.rejected", map[string]string{"reason": "unauthorized"})
		return nil, fmt.Errorf("backend rejected credential: %w", ErrSessionExpired)

	case resp.StatusCode == http.StatusForbidden:
		// Forbidden means authenticated but not permitted. The session stays
		// intact even when the message mentions expiry.
		return resp, nil

	case resp.StatusCode >= http.StatusBadRequest:
		return t.sniffExpiryMessage(req, grant, resp)

	default:
		return resp, nil
	}
}

// sniffExpiryMessage peeks at a non-403 error body and destroys the session
// when the backend's free-text message claims the token expired. The body is
// restored for downstream envelope decoding otherwise.
func (t *AuthTransport) sniffExpiryMessage(req *http.Request, grant *Grant, resp *http.Response) (*http.Response, error) {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyPeek))
	drainAndClose(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("read error response body: %w", readErr)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var env Envelope
	msg := ""
	if err := json.Unmarshal(body, &env); err == nil {
		msg = env.Message
	}
	if msg == "" {
		msg = string(body)
	}

	if MessageIndicatesExpiry(msg) {
		if clearErr := grant.invalidate(req.Context()); clearErr != nil {
			t.logger().WarnContext(req.Context(), "clear session after expiry message failed", "error", clearErr)
		}
		t.count("upstream.auth.rejected", map[string]string{"reason": "expiry_message"})
		return nil, fmt.Errorf("backend reported expiry (status %d): %w", resp.StatusCode, ErrSessionExpired)
	}

	return resp, nil
}

// isPoisonedLiteral reports whether a credential string is one of the known
// bad serializations of "no token".
func isPoisonedLiteral(credential string) bool {
	switch strings.TrimSpace(credential) {
	case "null", "undefined":
		return true
	}
	return false
}

// stripBoundarylessMultipart removes an explicit multipart content type that
// lacks a boundary parameter, so the correct header set by the body builder
// is not shadowed by a stale literal.
func stripBoundarylessMultipart(req *http.Request) {
	ct := req.Header.Get("Content-Type")
	if ct == "" {
		return
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return
	}
	if mediaType == "multipart/form-data" && params["boundary"] == "" {
		req.Header.Del("Content-Type")
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBodyPeek))
	_ = body.Close()
}
