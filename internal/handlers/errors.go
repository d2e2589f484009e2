// Package handlers implements the HTTP endpoints. Handlers decode requests,
// call the core, and map the core's error kinds to HTTP statuses; they never
// inspect backend-specific errors.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"storyforge/internal/apperr"
	"storyforge/internal/contextutil"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleCoreError maps core error kinds to HTTP statuses. The timeout check
// runs first because timeouts also carry the generation kind.
func handleCoreError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "request failed", "error", err)

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrIndexBackend):
		writeError(w, http.StatusServiceUnavailable, "Index backend unavailable")
	case errors.Is(err, apperr.ErrModelTimeout):
		writeError(w, http.StatusGatewayTimeout, "Model call timed out")
	case errors.Is(err, apperr.ErrGeneration):
		writeError(w, http.StatusBadGateway, "Generation failed")
	case errors.Is(err, apperr.ErrParse):
		writeError(w, http.StatusBadGateway, "Model reply could not be parsed")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
