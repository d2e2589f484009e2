package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RephraseHandler produces alternative phrasings for a selected passage.
type RephraseHandler struct {
	service Service
}

// NewRephraseHandler creates a RephraseHandler.
func NewRephraseHandler(service Service) *RephraseHandler {
	return &RephraseHandler{service: service}
}

// RephraseRequest is the payload for POST /api/projects/{projectID}/rephrase.
type RephraseRequest struct {
	SelectedText  string `json:"selected_text"`
	ContextBefore string `json:"context_before,omitempty"`
	ContextAfter  string `json:"context_after,omitempty"`
}

func (h *RephraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RephraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.SelectedText) == "" {
		writeError(w, http.StatusBadRequest, "Selected text is required")
		return
	}

	suggestions, err := h.service.RephraseText(ctx, chi.URLParam(r, "projectID"),
		req.SelectedText, req.ContextBefore, req.ContextAfter)
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
