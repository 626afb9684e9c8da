package httpx

import (
	"net/http"
	"strings"
	"time"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
)

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "session_id"

// defaultSessionCookieAge matches the server-side session TTL.
const defaultSessionCookieAge = 24 * time.Hour

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie writes the session cookie for a freshly created session.
func setSessionCookie(w http.ResponseWriter, r *http.Request, domain string, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(defaultSessionCookieAge.Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire
// immediately. It mirrors the attributes used when setting the cookie to
// maximize compatibility across browsers during deletion.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
