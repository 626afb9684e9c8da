package upstream

import (
	"net/http"
	"strings"
)

// Request classification. A request is public when it needs no credential:
// the authentication/signup endpoints themselves, and read-only browsing of
// the market/product/category namespace. Everything else is private.
// Classification is a pure function of (method, path); nothing is persisted.

// publicPathMarkers are path fragments that mark a request public regardless
// of method.
var publicPathMarkers = []string{ //nolint:gochecknoglobals // read-only classification table
	"/auth/login",
	"/auth/signup",
	"/auth/oauth",
	"/auth/refresh",
}

// publicReadNamespaces are path fragments whose read-only requests are
// public. Writes into these namespaces (seller product management) stay
// private.
var publicReadNamespaces = []string{ //nolint:gochecknoglobals // read-only classification table
	"/products",
	"/categories",
	"/markets",
}

// IsPublic reports whether a request against the backend may be sent without
// a credential.
func IsPublic(method, path string) bool {
	for _, marker := range publicPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}

	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	for _, ns := range publicReadNamespaces {
		if strings.Contains(path, ns) {
			return true
		}
	}

	return false
}
