package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "strings"

// Role represents an application authorization role.
// Roles are granted by the commerce backend inside the bearer token; the
// UI-API never mints them. Canonical form is uppercase and unprefixed.
type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

// rolePrefix is the conventional prefix some issuers attach to role names
// ("ROLE_ADMIN" vs "ADMIN"). Matching must tolerate both forms.
const rolePrefix = "ROLE_"

// Normalize maps an arbitrary role spelling to canonical form:
// uppercase with the conventional prefix stripped.
func Normalize(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, rolePrefix)
	return Role(r)
}

// Matches reports whether raw names the same role, tolerating case and the
// conventional prefix on either side.
func (r Role) Matches(raw string) bool {
	return Normalize(string(r)) == Normalize(raw)
}

// Session is the server-side record persisted for a signed-in shopper.
// ID is an opaque session identifier (random URL-safe string). Credential is
// the bearer token issued by the commerce backend; DisplayName is a cached
// human-readable name, optional. These two values are the only client-side
// state the storefront keeps.
type Session struct {
	ID          string `json:"id"`
	Credential  string `json:"credential"`
	DisplayName string `json:"display_name,omitempty"`
}

// HasCredential reports whether the session carries a usable credential
// string. The literal strings "null" and "undefined" are known poisoned
// values from an old serialization bug and are treated as absent.
func (s Session) HasCredential() bool {
	return !IsPoisonedCredential(s.Credential)
}

// IsPoisonedCredential reports whether a stored credential value is absent
// or one of the known poisoned literals.
func IsPoisonedCredential(credential string) bool {
	switch credential {
	case "", "null", "undefined":
		return true
	}
	return false
}

// Identity represents the authenticated principal returned by a login flow.
// Adapters map provider- or backend-specific responses into this shape.
type Identity struct {
	Credential  string // bearer token issued by the commerce backend
	DisplayName string // optional human-readable name
}
