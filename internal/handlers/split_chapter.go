package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SplitChapterHandler proposes a scene breakdown for a chapter's text.
type SplitChapterHandler struct {
	service Service
}

// NewSplitChapterHandler creates a SplitChapterHandler.
func NewSplitChapterHandler(service Service) *SplitChapterHandler {
	return &SplitChapterHandler{service: service}
}

// SplitChapterRequest is the payload for POST /api/projects/{projectID}/split-chapter.
type SplitChapterRequest struct {
	ChapterID   string `json:"chapter_id"`
	ChapterText string `json:"chapter_text"`
}

func (h *SplitChapterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SplitChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ChapterID == "" {
		writeError(w, http.StatusBadRequest, "Chapter ID is required")
		return
	}
	if strings.TrimSpace(req.ChapterText) == "" {
		writeError(w, http.StatusBadRequest, "Chapter text is required")
		return
	}

	scenes, err := h.service.SplitChapterIntoScenes(ctx, chi.URLParam(r, "projectID"),
		req.ChapterID, req.ChapterText)
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}
