package upstream

// Package upstream is the HTTP client toward the commerce backend. Every
// backend response is wrapped in a uniform envelope; every outbound request
// passes through the interceptor transport in transport.go.

import (
	"encoding/json"
	"strings"
)

// Envelope is the uniform response wrapper used by every backend endpoint.
type Envelope struct {
	ResultCode string          `json:"resultCode"`
	Message    string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

// successPrefixes lists the result-code spellings the backend uses for
// success. Prefixing is inconsistent across endpoints, so all variants are
// tolerated.
var successPrefixes = []string{ //nolint:gochecknoglobals // read-only tolerance table for backend result codes
	"S-200",
	"SUCCESS-200",
	"200",
}

// IsSuccess reports whether the envelope's result code marks a successful
// response.
func (e Envelope) IsSuccess() bool {
	code := strings.TrimSpace(e.ResultCode)
	for _, prefix := range successPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

// DecodeData unmarshals the envelope payload into out. A nil out or empty
// payload is a no-op.
func (e Envelope) DecodeData(out any) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
