package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/http/middleware"
	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

type LeadHandler struct {
	capture     *usecase.CaptureLeadUseCase
	update      *usecase.UpdateLeadUseCase
	leadRepo    entity.LeadRepository
	rateLimiter *RateLimiter
}

func NewLeadHandler(capture *usecase.CaptureLeadUseCase, update *usecase.UpdateLeadUseCase, leadRepo entity.LeadRepository) *LeadHandler {
	return &LeadHandler{
		capture:     capture,
		update:      update,
		leadRepo:    leadRepo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// CaptureLead is the only unauthenticated write in the system: a visitor
// submits an inquiry from the public site.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	lead, err := h.capture.Execute(ctx, input)
	if err != nil {
		middleware.RecordLeadCaptured("rejected")
		writeError(w, err)
		return
	}

	middleware.RecordLeadCaptured("accepted")
	writeJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true, ID: lead.ID})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// Update accepts either a full replace or a field-level patch; the
// reconciler decides which from the update_mode flag (or, for old clients,
// the payload shape).
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	lead, err := h.update.Execute(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.leadRepo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
