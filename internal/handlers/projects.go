package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storyforge/internal/storage"
)

// ProjectsHandler manages the project registry.
type ProjectsHandler struct {
	projects storage.ProjectStore
}

// NewProjectsHandler creates a ProjectsHandler.
func NewProjectsHandler(projects storage.ProjectStore) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// CreateProjectRequest is the payload for POST /api/projects.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// ProjectResponse describes one registered project.
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Create serves POST /api/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	record := &storage.ProjectRecord{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := h.projects.Create(ctx, record); err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ProjectResponse{ID: record.ID, Name: record.Name})
}

// List serves GET /api/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.projects.ListAll(ctx)
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(records))
	for _, p := range records {
		resp = append(resp, toProjectResponse(&p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get serves GET /api/projects/{projectID}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := h.projects.GetByID(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		handleCoreError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(record))
}

func toProjectResponse(p *storage.ProjectRecord) ProjectResponse {
	resp := ProjectResponse{ID: p.ID, Name: p.Name}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
