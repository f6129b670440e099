package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

type TeamHandler struct {
	Members entity.TeamMemberRepository
	Update  *usecase.UpdateTeamMemberUseCase
}

func NewTeamHandler(members entity.TeamMemberRepository, update *usecase.UpdateTeamMemberUseCase) *TeamHandler {
	return &TeamHandler{Members: members, Update: update}
}

// List is the public roster: active members only.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context(), true)
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []*entity.TeamMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *TeamHandler) GetByMemberID(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberId")

	member, err := h.Members.FindByMemberID(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// AdminList includes drafts and deactivated members.
func (h *TeamHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []*entity.TeamMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *TeamHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := h.Update.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *TeamHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, usecase.ValidationError{Field: "id", Message: "is required"})
		return
	}

	if err := h.Members.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
