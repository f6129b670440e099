package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HelaLetsGo/wheelstreet-api/internal/auth"
	"github.com/HelaLetsGo/wheelstreet-api/internal/editmode"
	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

type SectionCache interface {
	Get(ctx context.Context, sectionType string) (*entity.ContentSection, error)
}

type SessionChecker interface {
	Validate(ctx context.Context, token string) (*auth.ValidateResult, error)
}

// ContentHandler serves the editable marketing blocks. Public reads go
// through the stale-while-revalidate cache; admin writes go through the
// reconciler use cases, which invalidate the cache on commit.
type ContentHandler struct {
	Cache         SectionCache
	LegalPages    entity.LegalPageRepository
	UpdateSection *usecase.UpdateSectionUseCase
	UpdateLegal   *usecase.UpdateLegalPageUseCase
	EditMode      *editmode.Controller
	Auth          SessionChecker
}

type sectionResponse struct {
	Section  *entity.ContentSection `json:"section"`
	Editable bool                   `json:"editable"`
}

// GetSection renders one content block. A missing section is an empty block
// for the visitor, never an error; storage trouble on a cold cache is the
// same empty block, logged upstream.
func (h *ContentHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	sectionType := chi.URLParam(r, "sectionType")

	section, err := h.Cache.Get(r.Context(), sectionType)
	if err != nil {
		// Visitors never see raw storage errors, but the failure is ours to
		// know about.
		log.Printf("❌ load section %q: %v", sectionType, err)
		writeJSON(w, http.StatusOK, sectionResponse{Section: nil})
		return
	}

	writeJSON(w, http.StatusOK, sectionResponse{
		Section:  section,
		Editable: h.callerCanEdit(r),
	})
}

// callerCanEdit reports whether this specific caller gets edit affordances:
// the session gate must approve their credential and edit mode must be on.
func (h *ContentHandler) callerCanEdit(r *http.Request) bool {
	token := auth.TokenFromRequest(r)
	if token == "" || h.Auth == nil {
		return false
	}
	if _, err := h.Auth.Validate(r.Context(), token); err != nil {
		return false
	}
	state := h.EditMode.State()
	return state.IsAdmin && state.IsEditMode
}

func (h *ContentHandler) GetLegalPage(w http.ResponseWriter, r *http.Request) {
	pageType := chi.URLParam(r, "pageType")

	page, err := h.LegalPages.FindActiveByType(r.Context(), pageType)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"page": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}

// Admin surface below; the session gate has already approved these callers.

func (h *ContentHandler) AdminListLegalPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.LegalPages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if pages == nil {
		pages = []*entity.LegalPage{}
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *ContentHandler) AdminUpdateLegalPage(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.UpdateLegal.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ContentHandler) AdminUpdateSection(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	section, err := h.UpdateSection.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}
