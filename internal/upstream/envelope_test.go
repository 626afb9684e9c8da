package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_IsSuccess(t *testing.T) {
	cases := []struct {
		code    string
		success bool
	}{
		{"S-200", true},
		{"S-200-01", true},
		{"200", true},
		{"200 OK", true},
		{"SUCCESS-200", true},
		{" S-200", true}, // stray whitespace tolerated
		{"F-401", false},
		{"E-500", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.success, Envelope{ResultCode: tc.code}.IsSuccess(), "code %q", tc.code)
	}
}

func TestEnvelope_DecodeData(t *testing.T) {
	env := Envelope{Data: json.RawMessage(`{"balance": 1200}`)}

	var out struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, env.DecodeData(&out))
	assert.Equal(t, int64(1200), out.Balance)

	// Empty payload and nil destination are no-ops.
	assert.NoError(t, Envelope{}.DecodeData(&out))
	assert.NoError(t, env.DecodeData(nil))
}

func TestMessageIndicatesExpiry(t *testing.T) {
	assert.True(t, MessageIndicatesExpiry("JWT expired"))
	assert.True(t, MessageIndicatesExpiry("Token Expired at 2025-06-01"))
	assert.True(t, MessageIndicatesExpiry("토큰 만료"))
	assert.False(t, MessageIndicatesExpiry("invalid signature"))
	assert.False(t, MessageIndicatesExpiry(""))
}
