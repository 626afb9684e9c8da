package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// parseInt64Path returns the integer value of a path parameter, or 0 when it
// does not parse.
func parseInt64Path(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}

// isAuthPage reports whether the path is one of the sign-in surfaces. A
// rejected credential on these pages must not bounce the visitor back to the
// page they are already on.
func isAuthPage(path string) bool {
	return path == "/login" || path == "/signup" ||
		strings.HasPrefix(path, "/auth/login") || strings.HasPrefix(path, "/auth/signup")
}
