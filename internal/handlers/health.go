package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// BackendChecker reports vector backend availability. Implemented by
// vectorstore.QdrantStore; nil when indexing is disabled.
type BackendChecker interface {
	Healthy(ctx context.Context, collection string) error
}

// HealthHandler reports the health of the service and its dependencies.
type HealthHandler struct {
	db         *sql.DB
	backend    BackendChecker
	collection string
	timeout    time.Duration
}

// NewHealthHandler creates a HealthHandler. backend may be nil when the
// index is disabled.
func NewHealthHandler(db *sql.DB, backend BackendChecker, collection string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		backend:    backend,
		collection: collection,
		timeout:    5 * time.Second,
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}

	if err := h.db.PingContext(ctx); err != nil {
		resp.Checks["database"] = "unavailable"
		resp.Status = "unhealthy"
	} else {
		resp.Checks["database"] = "ok"
	}

	if h.backend == nil {
		resp.Checks["index_backend"] = "disabled"
	} else if err := h.backend.Healthy(ctx, h.collection); err != nil {
		resp.Checks["index_backend"] = "unavailable"
		if resp.Status == "healthy" {
			resp.Status = "degraded"
		}
	} else {
		resp.Checks["index_backend"] = "ok"
	}

	status := http.StatusOK
	if resp.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
