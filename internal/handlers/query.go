package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// QueryHandler answers questions about a project.
type QueryHandler struct {
	service Service
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(service Service) *QueryHandler {
	return &QueryHandler{service: service}
}

// QueryRequest is the payload for POST /api/projects/{projectID}/query.
type QueryRequest struct {
	Text string `json:"text"`
}

func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	answer, err := h.service.Query(ctx, chi.URLParam(r, "projectID"), req.Text)
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
