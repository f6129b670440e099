package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP. Validation problems
// are the caller's fault and carry field messages; infrastructure failures
// are logged and reported without internals.
func writeError(w http.ResponseWriter, err error) {
	var verrs usecase.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, v := range verrs {
			fields[i] = v.Error()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	var verr usecase.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: []string{verr.Error()}})
		return
	}

	switch {
	case errors.Is(err, entity.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, entity.ErrInvalidCredentials), errors.Is(err, entity.ErrInvalidSession):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		log.Printf("❌ internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodePayload(r *http.Request) (usecase.Payload, error) {
	var payload usecase.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, usecase.ValidationError{Field: "body", Message: "invalid JSON"}
	}
	return payload, nil
}
