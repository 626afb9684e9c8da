package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/podomall/mall-ui-api/internal/observability/statsd"
	"github.com/podomall/mall-ui-api/internal/token"
)

// Guards holds the route guards applied in front of protected handlers. They
// expect OptionalSession to have run first, so the session (when any) is
// already on the request context.
//
// The three guards answer different questions:
//   - RequireSession: is anyone signed in at all. A presence check only; an
//     expired credential still passes here and is rejected by the backend
//     transport on first use.
//   - RequireRoles: does the signed-in shopper hold the required roles.
//   - RequireSeller: strictest gate. Decodes the credential itself, evicts
//     sessions whose credential no longer decodes, and points non-sellers at
//     their account page instead of the login page.
type Guards struct {
	Auth         AuthService
	Codec        *token.Codec
	CookieDomain string
	Logger       *slog.Logger
	Metrics      statsd.Sink
}

func (g *Guards) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Guards) count(reason string) {
	if g.Metrics != nil {
		g.Metrics.Count("guard.denied", 1, map[string]string{"reason": reason})
	}
}

// RequireSession admits only requests with a signed-in session.
func (g *Guards) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserSessionFromContext(r.Context()); !ok {
			g.count("no_session")
			g.denyUnauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles admits only sessions whose credential grants the required
// roles. With requireAll set every role must be held, otherwise any one
// suffices. Role matching tolerates case and the conventional "ROLE_" prefix.
// A session without any roles is treated as not signed in.
func (g *Guards) RequireRoles(roles []string, requireAll bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				g.count("no_session")
				g.denyUnauthenticated(w, r)
				return
			}

			granted := g.Auth.PeekRoles(*session)
			if len(granted) == 0 {
				g.count("no_roles")
				g.denyUnauthenticated(w, r)
				return
			}

			if !token.Match(granted, roles, requireAll) {
				g.count("wrong_role")
				g.denyForbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSeller admits only sessions whose credential decodes and grants the
// seller role. Unlike the other guards it decodes the credential itself: a
// credential that no longer decodes means the session record is garbage, so
// it is evicted before the redirect.
func (g *Guards) RequireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			g.count("no_session")
			g.denyUnauthenticated(w, r)
			return
		}

		claims, err := g.Codec.Decode(session.Credential)
		if err != nil {
			if logoutErr := g.Auth.Logout(r.Context(), session.ID); logoutErr != nil {
				g.logger().WarnContext(r.Context(), "evict undecodable session failed", "error", logoutErr)
			}
			g.count("undecodable")
			g.denyUnauthenticated(w, r)
			return
		}

		granted := g.Codec.RolesFromClaims(claims)
		if !token.Match(granted, []string{"SELLER"}, false) {
			g.count("not_seller")
			if IsBrowserRequest(r) {
				http.Redirect(w, r, "/account?notice=seller_only", http.StatusSeeOther)
				return
			}
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: "seller_required",
				Err:     errors.New("seller account required"),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Guards) denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, r, g.CookieDomain)
	if IsBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

func (g *Guards) denyForbidden(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "insufficient_permissions",
		Err:     errors.New("insufficient permissions"),
	})
}
