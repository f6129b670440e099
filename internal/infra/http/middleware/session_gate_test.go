package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HelaLetsGo/wheelstreet-api/internal/auth"
	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

type validatorStub struct {
	result *auth.ValidateResult
	err    error
	tokens []string
}

func (v *validatorStub) Validate(_ context.Context, token string) (*auth.ValidateResult, error) {
	v.tokens = append(v.tokens, token)
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

func okHandler() (http.Handler, *bool) {
	reached := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}), &reached
}

func TestGateRedirectsWithoutCredential(t *testing.T) {
	validator := &validatorStub{err: entity.ErrInvalidSession}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/update-section", nil)
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?from=%2Fadmin%2Fupdate-section", rec.Header().Get("Location"))
	assert.False(t, *reached)
}

func TestGateRejectsWithJSONForAPIClients(t *testing.T) {
	validator := &validatorStub{err: entity.ErrInvalidSession}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/get-team-members", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	assert.False(t, *reached)
}

func TestGateNeverGatesLoginPath(t *testing.T) {
	validator := &validatorStub{err: entity.ErrInvalidSession}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.Empty(t, validator.tokens)
}

func TestGateIgnoresPublicPaths(t *testing.T) {
	validator := &validatorStub{err: entity.ErrInvalidSession}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/content/hero", nil)
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.Empty(t, validator.tokens)
}

func TestGateFailsClosedOnStorageError(t *testing.T) {
	validator := &validatorStub{err: entity.ErrBackendUnavailable}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/edit-mode", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestGatePassesValidSessionThrough(t *testing.T) {
	validator := &validatorStub{result: &auth.ValidateResult{
		Session: &entity.Session{UserID: "admin-1"},
	}}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/get-leads", nil)
	req.AddCookie(auth.SessionCookie("raw-token", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.Equal(t, []string{"raw-token"}, validator.tokens)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestGateReattachesRefreshedCookie(t *testing.T) {
	newExpiry := time.Now().UTC().Add(24 * time.Hour)
	validator := &validatorStub{result: &auth.ValidateResult{
		Session:   &entity.Session{UserID: "admin-1"},
		Refreshed: true,
		ExpiresAt: newExpiry,
	}}
	gate := NewSessionGate(validator)
	next, _ := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/get-leads", nil)
	req.AddCookie(auth.SessionCookie("raw-token", time.Now().Add(time.Minute)))
	rec := httptest.NewRecorder()
	gate.Handler(next).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Equal(t, "raw-token", cookies[0].Value)
	assert.WithinDuration(t, newExpiry, cookies[0].Expires, time.Second)
}

func TestRequireSessionGatesOutsideAdminPrefix(t *testing.T) {
	validator := &validatorStub{err: entity.ErrInvalidSession}
	gate := NewSessionGate(validator)
	next, reached := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()
	gate.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}
