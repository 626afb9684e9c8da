package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken mints a real HS256 token for decode tests. The codec never
// verifies signatures, so the signing key is irrelevant.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func fixedCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(WithNow(func() time.Time { return now }))
	require.NoError(t, err)
	return c
}

func TestCodec_IsExpired_Margin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec(t, now)

	cases := []struct {
		name    string
		exp     time.Time
		expired bool
	}{
		{"already expired", now.Add(-1 * time.Second), true},
		{"inside safety margin", now.Add(1 * time.Second), true},
		{"just past the margin", now.Add(301 * time.Second), false},
		{"well in the future", now.Add(24 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok := signToken(t, jwt.MapClaims{"sub": "u1", "exp": tc.exp.Unix()})
			assert.Equal(t, tc.expired, codec.IsExpired(tok))
		})
	}
}

func TestCodec_IsExpired_NoExpiryClaim(t *testing.T) {
	codec := fixedCodec(t, time.Now())
	tok := signToken(t, jwt.MapClaims{"sub": "u1"})
	assert.False(t, codec.IsExpired(tok), "a token without an expiry claim never expires on its own")
}

func TestCodec_IsExpired_Undecodable(t *testing.T) {
	codec := fixedCodec(t, time.Now())
	assert.True(t, codec.IsExpired("not-a-token"))
	assert.True(t, codec.IsExpired(""))
}

func TestCodec_Roles_AlternateClaimShapes(t *testing.T) {
	codec := MustNewCodec()

	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   []string
	}{
		{"scalar role claim", jwt.MapClaims{"role": "SELLER"}, []string{"SELLER"}},
		{"list roles claim", jwt.MapClaims{"roles": []string{"ROLE_SELLER"}}, []string{"ROLE_SELLER"}},
		{"authorities claim", jwt.MapClaims{"authorities": []string{"admin", "user"}}, []string{"ADMIN", "USER"}},
		{"auth fallback claim", jwt.MapClaims{"auth": "role_user"}, []string{"ROLE_USER"}},
		{"first populated claim wins", jwt.MapClaims{"roles": []string{}, "role": "user"}, []string{"USER"}},
		{"lowercase entries uppercased", jwt.MapClaims{"roles": []string{"seller"}}, []string{"SELLER"}},
		{"null entries dropped", jwt.MapClaims{"roles": []any{nil, "USER"}}, []string{"USER"}},
		{"no role claims", jwt.MapClaims{"sub": "u1"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, codec.Roles(signToken(t, tc.claims)))
		})
	}
}

func TestCodec_Roles_Undecodable(t *testing.T) {
	codec := MustNewCodec()
	assert.Empty(t, codec.Roles("garbage"))
}

func TestCodec_Decode_Subject(t *testing.T) {
	codec := MustNewCodec()
	claims, err := codec.Decode(signToken(t, jwt.MapClaims{"sub": "shopper-42"}))
	require.NoError(t, err)
	assert.Equal(t, "shopper-42", claims.Subject())
}

func TestMatch(t *testing.T) {
	cases := []struct {
		name       string
		granted    []string
		required   []string
		requireAll bool
		want       bool
	}{
		{"seller scalar vs lowercase query", []string{"SELLER"}, []string{"seller"}, false, true},
		{"prefixed list vs lowercase query", []string{"ROLE_SELLER"}, []string{"seller"}, false, true},
		{"any-of with one overlap", []string{"ADMIN"}, []string{"ADMIN", "SELLER"}, false, true},
		{"all-of missing one", []string{"ADMIN"}, []string{"ADMIN", "SELLER"}, true, false},
		{"all-of satisfied", []string{"role_admin", "seller"}, []string{"ADMIN", "SELLER"}, true, true},
		{"no granted roles", nil, []string{"USER"}, false, false},
		{"empty required set", []string{"USER"}, nil, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.granted, tc.required, tc.requireAll))
		})
	}
}
