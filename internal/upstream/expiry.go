package upstream

import "strings"

// The backend reports token expiry in a free-text message field, in English
// or Korean depending on the endpoint. The substring heuristic lives behind
// this single predicate so it can be updated and tested independently of the
// interceptor; if the backend ever grows a structured error-kind field this
// is the only place to change.

var expiryIndicators = []string{ //nolint:gochecknoglobals // read-only heuristic table
	"token expired",
	"expired",
	"만료", // "expiry" in Korean backend messages
}

// MessageIndicatesExpiry reports whether a backend error message claims the
// bearer token has expired.
func MessageIndicatesExpiry(msg string) bool {
	if msg == "" {
		return false
	}
	lowered := strings.ToLower(msg)
	for _, indicator := range expiryIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}
