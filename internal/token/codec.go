package token

// Package token decodes bearer tokens issued by the commerce backend without
// verifying their signature. Verification is the backend's job; the UI-API
// only needs to read claims to gate routes and decide when a credential is
// no longer worth sending. A token that fails to decode is treated as
// maximally invalid: expired, no subject, no roles.

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
)

// DefaultExpiryMargin is the safety margin applied when checking the expiry
// claim, absorbing clock skew between the UI-API and the backend. A token
// expiring inside the margin is already treated as expired.
const DefaultExpiryMargin = 300 * time.Second

// roleClaimExpressions are the alternate claim names under which the backend
// has historically published roles, in lookup order. The first expression
// yielding a populated result wins; adding a new legacy name is a one-line
// change here.
var roleClaimExpressions = []string{ //nolint:gochecknoglobals // read-only lookup order, compiled once at startup
	"roles",
	"role",
	"authorities",
	"auth",
}

// Claims holds the decoded, unverified claims of a bearer token.
type Claims struct {
	raw jwt.MapClaims
}

// Subject returns the user identifier claim, or empty string when absent.
func (c Claims) Subject() string {
	sub, err := c.raw.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// ExpiresAt returns the expiry claim and whether one is present.
func (c Claims) ExpiresAt() (time.Time, bool) {
	exp, err := c.raw.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Get returns the raw value of an arbitrary claim.
func (c Claims) Get(name string) (any, bool) {
	v, ok := c.raw[name]
	return v, ok
}

// Codec decodes tokens and answers expiry and role questions about them.
// It is safe for concurrent use after construction.
type Codec struct {
	margin    time.Duration
	now       func() time.Time
	roleExprs []jmespath.JMESPath
}

// Option customizes a Codec.
type Option func(*Codec)

// WithExpiryMargin overrides the expiry safety margin.
func WithExpiryMargin(margin time.Duration) Option {
	return func(c *Codec) {
		if margin >= 0 {
			c.margin = margin
		}
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a Codec with the role-claim accessors compiled.
func NewCodec(opts ...Option) (*Codec, error) {
	c := &Codec{
		margin: DefaultExpiryMargin,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.roleExprs = make([]jmespath.JMESPath, 0, len(roleClaimExpressions))
	for _, expr := range roleClaimExpressions {
		compiled, err := jmespath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile role claim accessor %q: %w", expr, err)
		}
		c.roleExprs = append(c.roleExprs, compiled)
	}

	return c, nil
}

// MustNewCodec is NewCodec for wiring paths where the accessor table is the
// compiled-in default and cannot fail.
func MustNewCodec(opts ...Option) *Codec {
	c, err := NewCodec(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ErrUndecodable is returned when a token cannot be decoded at all.
var ErrUndecodable = errors.New("token cannot be decoded")

// Decode parses the token into claims without verifying the signature.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrUndecodable
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	return Claims{raw: claims}, nil
}

// IsExpired reports whether the token should be treated as expired:
//   - true when the token cannot be decoded (fail closed)
//   - true when the expiry claim falls before now plus the safety margin
//   - false when no expiry claim is present at all
func (c *Codec) IsExpired(tokenString string) bool {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return true
	}

	exp, ok := claims.ExpiresAt()
	if !ok {
		// No expiry claim: the backend issued a non-expiring token.
		return false
	}

	return exp.Before(c.now().Add(c.margin))
}

// Roles extracts the granted role names from the token: the first populated
// result among the alternate claim accessors, scalars normalized to a
// singleton list, every entry uppercased, null entries dropped. Returns an
// empty list when the token cannot be decoded or no accessor matches.
func (c *Codec) Roles(tokenString string) []string {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil
	}
	return c.RolesFromClaims(claims)
}

// RolesFromClaims is Roles for an already-decoded token.
func (c *Codec) RolesFromClaims(claims Claims) []string {
	for _, expr := range c.roleExprs {
		result, err := expr.Search(map[string]any(claims.raw))
		if err != nil {
			continue
		}
		if roles := normalizeRoleValue(result); len(roles) > 0 {
			return roles
		}
	}
	return nil
}

// normalizeRoleValue coerces a raw claim value into a list of uppercase role
// strings. Scalars become singleton lists; nulls and non-strings are dropped.
func normalizeRoleValue(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{strings.ToUpper(val)}
	case []any:
		roles := make([]string, 0, len(val))
		for _, entry := range val {
			s, ok := entry.(string)
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			roles = append(roles, strings.ToUpper(s))
		}
		return roles
	case []string:
		roles := make([]string, 0, len(val))
		for _, s := range val {
			if strings.TrimSpace(s) == "" {
				continue
			}
			roles = append(roles, strings.ToUpper(s))
		}
		return roles
	default:
		return nil
	}
}

// Match reports whether the granted roles satisfy the required set.
// Matching tolerates case and the conventional "ROLE_" prefix on both sides.
// With requireAll set, every required role must be granted; otherwise any
// single match suffices. An empty required set never matches.
func Match(granted, required []string, requireAll bool) bool {
	if len(required) == 0 || len(granted) == 0 {
		return false
	}

	grantedSet := make(map[domainauth.Role]struct{}, len(granted))
	for _, g := range granted {
		grantedSet[domainauth.Normalize(g)] = struct{}{}
	}

	for _, want := range required {
		_, ok := grantedSet[domainauth.Normalize(want)]
		if requireAll && !ok {
			return false
		}
		if !requireAll && ok {
			return true
		}
	}

	return requireAll
}
