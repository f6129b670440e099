package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/HelaLetsGo/wheelstreet-api/internal/auth"
)

type SessionValidator interface {
	Validate(ctx context.Context, token string) (*auth.ValidateResult, error)
}

// SessionGate protects the administrative surface. Every path under
// AdminPrefix except the login entry point must present a valid session
// cookie. Anything else (missing cookie, unknown token, expired session, a
// storage failure during validation) is a deny. The gate fails closed.
type SessionGate struct {
	Auth        SessionValidator
	AdminPrefix string
	LoginPath   string
}

func NewSessionGate(validator SessionValidator) *SessionGate {
	return &SessionGate{
		Auth:        validator,
		AdminPrefix: "/admin",
		LoginPath:   "/admin/login",
	}
}

// Handler is the router-level middleware. Non-admin paths pass through
// untouched; the login path is never gated, otherwise nobody could log in.
func (g *SessionGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, g.AdminPrefix) || path == g.LoginPath {
			next.ServeHTTP(w, r)
			return
		}
		g.authorize(next, w, r)
	})
}

// RequireSession gates an individual route group (the staff lead API lives
// outside the admin prefix but is still authenticated-only).
func (g *SessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.authorize(next, w, r)
	})
}

func (g *SessionGate) authorize(next http.Handler, w http.ResponseWriter, r *http.Request) {
	result, err := g.Auth.Validate(r.Context(), auth.TokenFromRequest(r))
	if err != nil {
		g.deny(w, r)
		return
	}

	// Re-attach the slid expiry so the session does not quietly die while
	// the admin is navigating.
	if result.Refreshed {
		http.SetCookie(w, auth.SessionCookie(auth.TokenFromRequest(r), result.ExpiresAt))
	}
	next.ServeHTTP(w, r)
}

func (g *SessionGate) deny(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	target := g.LoginPath + "?from=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
