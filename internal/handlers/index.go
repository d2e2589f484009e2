package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RebuildHandler runs a full index rebuild for a project.
type RebuildHandler struct {
	service Service
}

// NewRebuildHandler creates a RebuildHandler.
func NewRebuildHandler(service Service) *RebuildHandler {
	return &RebuildHandler{service: service}
}

func (h *RebuildHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.service.RebuildProjectIndex(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// SyncHandler receives content mutation notifications and keeps the index
// in step with them.
type SyncHandler struct {
	syncer Syncer
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(syncer Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// SyncRequest is the payload for document update and delete notifications.
type SyncRequest struct {
	Path string `json:"path"`
}

// HandleUpdate serves POST /api/projects/{projectID}/index/documents.
func (h *SyncHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.notify(w, r, h.syncer.HandleUpdate)
}

// HandleDelete serves DELETE /api/projects/{projectID}/index/documents.
func (h *SyncHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.notify(w, r, h.syncer.HandleDelete)
}

func (h *SyncHandler) notify(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, projectID, relPath string) error) {
	ctx := r.Context()

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	if err := fn(ctx, chi.URLParam(r, "projectID"), req.Path); err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
