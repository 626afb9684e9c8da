package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/podomall/mall-ui-api/internal/errors"
	"github.com/podomall/mall-ui-api/internal/observability/statsd"
	"github.com/podomall/mall-ui-api/internal/token"
)

// Config describes how to reach the commerce backend.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.podomall.com".
	BaseURL string

	// Timeout bounds each request end to end. Defaults to 15s.
	Timeout time.Duration

	// Codec decodes bearer tokens for the interceptor. Required.
	Codec *token.Codec

	// Base is the underlying transport. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Client is the typed HTTP client toward the commerce backend. All requests
// pass through the AuthTransport interceptor; resource methods live in the
// sibling files (accounts.go, catalog.go, cart.go, ...).
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a Client with the interceptor transport installed.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("upstream base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse upstream base URL: %w", err)
	}
	if cfg.Codec == nil {
		return nil, errors.New("token codec is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &AuthTransport{
				Base:    cfg.Base,
				Codec:   cfg.Codec,
				Logger:  logger,
				Metrics: cfg.Metrics,
			},
		},
		logger: logger,
	}, nil
}

// do issues a JSON request and decodes the envelope payload into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart issues a multipart request (seller image uploads). The content
// type must come from the multipart writer so it carries the boundary.
func (c *Client) doMultipart(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// The interceptor's typed rejections surface inside *url.Error.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeUnreachable, "%s %s", req.Method, req.URL.Path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyPeek))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "read response for %s", req.URL.Path)
	}

	var env Envelope
	if unmarshalErr := json.Unmarshal(raw, &env); unmarshalErr != nil {
		if resp.StatusCode == http.StatusForbidden {
			return apperrors.Forbidden("permission denied")
		}
		return apperrors.Wrapf(unmarshalErr, apperrors.ErrCodeUpstream, "decode envelope for %s (status %d)", req.URL.Path, resp.StatusCode)
	}

	return c.interpret(req, resp.StatusCode, env, out)
}

// interpret maps an envelope plus status into a typed result. The session
// side effects for auth failures already happened inside the transport; this
// layer only classifies what the caller sees.
func (c *Client) interpret(req *http.Request, status int, env Envelope, out any) error {
	if env.IsSuccess() {
		if err := env.DecodeData(out); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode payload for %s", req.URL.Path)
		}
		return nil
	}

	msg := env.Message
	if msg == "" {
		msg = fmt.Sprintf("backend error (status %d, result %s)", status, env.ResultCode)
	}

	switch status {
	case http.StatusForbidden:
		return apperrors.Forbidden(msg)
	case http.StatusNotFound:
		return apperrors.NotFound(msg)
	default:
		return apperrors.Upstream(msg)
	}
}
