package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/podomall/mall-ui-api/internal/errors"
)

// ErrorRenderer maps service and upstream errors onto responses. By the time
// an unauthenticated error reaches this point the transport has already
// destroyed the server-side session; this layer only decides what the client
// sees: browsers get bounced to the login page (unless they are already on an
// auth page), API callers get a JSON error.
type ErrorRenderer struct {
	CookieDomain string
	Logger       *slog.Logger
}

func (e *ErrorRenderer) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *ErrorRenderer) cookieDomain() string {
	if e == nil {
		return ""
	}
	return e.CookieDomain
}

// Render writes the response for err.
func (e *ErrorRenderer) Render(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		e.logger().ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal error")})
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeUnauthenticated:
		e.renderUnauthenticated(w, r, appErr)
	case apperrors.ErrCodeForbidden:
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: appErr})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: appErr})
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: appErr})
	case apperrors.ErrCodeUnreachable:
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "backend_unreachable", Err: appErr})
	case apperrors.ErrCodeUpstream:
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "backend_error", Err: appErr})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: appErr})
	}
}

// renderUnauthenticated clears the session cookie and sends the visitor to
// the login page. Requests already on a login or signup page, and API
// requests, get a plain 401 instead of a redirect loop.
func (e *ErrorRenderer) renderUnauthenticated(w http.ResponseWriter, r *http.Request, err error) {
	clearSessionCookie(w, r, e.cookieDomain())

	if !IsBrowserRequest(r) || isAuthPage(r.URL.Path) {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: err})
		return
	}

	redirectToLogin(w, r)
}

// redirectToLogin sends the browser to the login page, preserving the current
// location as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	http.Redirect(w, r, "/login?redirect_uri="+url.QueryEscape(redirectPath), http.StatusSeeOther)
}
