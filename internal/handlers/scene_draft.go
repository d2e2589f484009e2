package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SceneDraftHandler drafts the next scene of a chapter.
type SceneDraftHandler struct {
	service Service
}

// NewSceneDraftHandler creates a SceneDraftHandler.
func NewSceneDraftHandler(service Service) *SceneDraftHandler {
	return &SceneDraftHandler{service: service}
}

// SceneDraftRequest is the payload for POST /api/projects/{projectID}/scene-draft.
type SceneDraftRequest struct {
	ChapterID          string `json:"chapter_id"`
	PromptSummary      string `json:"prompt_summary"`
	PreviousSceneCount int    `json:"previous_scene_count,omitempty"`
}

func (h *SceneDraftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SceneDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ChapterID == "" {
		writeError(w, http.StatusBadRequest, "Chapter ID is required")
		return
	}
	if strings.TrimSpace(req.PromptSummary) == "" {
		writeError(w, http.StatusBadRequest, "Prompt summary is required")
		return
	}
	if req.PreviousSceneCount < 0 {
		writeError(w, http.StatusBadRequest, "Previous scene count must not be negative")
		return
	}

	draft, err := h.service.GenerateSceneDraft(ctx, chi.URLParam(r, "projectID"),
		req.ChapterID, req.PromptSummary, req.PreviousSceneCount)
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
