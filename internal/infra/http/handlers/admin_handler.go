package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HelaLetsGo/wheelstreet-api/internal/auth"
	"github.com/HelaLetsGo/wheelstreet-api/internal/editmode"
	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/http/middleware"
)

// AdminHandler owns the authentication entry point and the edit-mode
// endpoints.
type AdminHandler struct {
	Auth     *auth.Service
	EditMode *editmode.Controller
}

func NewAdminHandler(authSvc *auth.Service, editMode *editmode.Controller) *AdminHandler {
	return &AdminHandler{Auth: authSvc, EditMode: editMode}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	token, expiresAt, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			middleware.RecordLogin("denied")
		} else {
			middleware.RecordLogin("error")
		}
		writeError(w, err)
		return
	}

	middleware.RecordLogin("success")
	http.SetCookie(w, auth.SessionCookie(token, expiresAt))
	writeJSON(w, http.StatusOK, h.EditMode.State())
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), auth.TokenFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, auth.ClearedSessionCookie())
	writeJSON(w, http.StatusOK, h.EditMode.State())
}

func (h *AdminHandler) GetEditMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.EditMode.State())
}

type editModeRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *AdminHandler) SetEditMode(w http.ResponseWriter, r *http.Request) {
	var req editModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	h.EditMode.SetEditMode(req.Enabled)
	writeJSON(w, http.StatusOK, h.EditMode.State())
}
