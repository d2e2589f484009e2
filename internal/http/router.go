// Package http wires the chi router, middleware, and endpoint handlers.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storyforge/internal/handlers"
	"storyforge/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service        handlers.Service
	Syncer         handlers.Syncer
	ProjectRepo    storage.ProjectStore
	DB             *sql.DB
	BackendChecker handlers.BackendChecker // nil when indexing is disabled
	CollectionName string
}

// NewRouter creates the HTTP router with all endpoints registered.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	queryHandler := handlers.NewQueryHandler(deps.Service)
	sceneDraftHandler := handlers.NewSceneDraftHandler(deps.Service)
	rephraseHandler := handlers.NewRephraseHandler(deps.Service)
	splitHandler := handlers.NewSplitChapterHandler(deps.Service)
	rebuildHandler := handlers.NewRebuildHandler(deps.Service)
	syncHandler := handlers.NewSyncHandler(deps.Syncer)
	projectsHandler := handlers.NewProjectsHandler(deps.ProjectRepo)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.BackendChecker, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectsHandler.Create)
			r.Get("/", projectsHandler.List)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", projectsHandler.Get)
				r.Method(http.MethodPost, "/query", queryHandler)
				r.Method(http.MethodPost, "/scene-draft", sceneDraftHandler)
				r.Method(http.MethodPost, "/rephrase", rephraseHandler)
				r.Method(http.MethodPost, "/split-chapter", splitHandler)
				r.Method(http.MethodPost, "/index/rebuild", rebuildHandler)
				r.Post("/index/documents", syncHandler.HandleUpdate)
				r.Delete("/index/documents", syncHandler.HandleDelete)
			})
		})
	})

	return r
}
