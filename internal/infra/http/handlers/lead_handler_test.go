package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other visitors have their own budget.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestGetClientIPPrefersForwardedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/leads", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", getClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))
}

func TestCaptureLeadRejectsMalformedJSON(t *testing.T) {
	h := &LeadHandler{
		capture:     usecase.NewCaptureLeadUseCase(nil, nil),
		rateLimiter: NewRateLimiter(10, time.Minute),
	}

	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	h.CaptureLead(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

func TestCaptureLeadValidationErrorsReported(t *testing.T) {
	h := &LeadHandler{
		capture:     usecase.NewCaptureLeadUseCase(nil, nil),
		rateLimiter: NewRateLimiter(10, time.Minute),
	}

	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(`{"name":"Jonas"}`))
	rec := httptest.NewRecorder()
	h.CaptureLead(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestCaptureLeadRateLimited(t *testing.T) {
	h := &LeadHandler{
		capture:     usecase.NewCaptureLeadUseCase(nil, nil),
		rateLimiter: NewRateLimiter(1, time.Minute),
	}

	body := `{"name":"Jonas"}`
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	req.Header.Set("X-Real-IP", "203.0.113.9")
	h.CaptureLead(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	h.CaptureLead(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
