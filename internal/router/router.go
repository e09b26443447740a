// Package router sets up all HTTP routes and middleware chains for the
// slideforge API. Generation endpoints that call paid collaborator APIs
// sit behind a stricter rate limit than plain reads.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"slideforge/internal/handlers"
	"slideforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h *handlers.Handler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Generation endpoints block on collaborator calls; keep their rate
	// limit well below any provider quota.
	generateLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Projects and the status workflow.
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Delete("/{id}", h.DeleteProject)

			r.Put("/{id}/supplement", h.UpdateSupplement)
			r.Post("/{id}/back", h.BackProject)
			r.Put("/{id}/template", h.SelectProjectTemplate)
			r.Get("/{id}/templates/recommend", h.RecommendTemplates)

			r.Group(func(r chi.Router) {
				r.Use(generateLimiter.Middleware)
				r.Post("/{id}/analyze", h.AnalyzeProject)
				r.Post("/{id}/generate", h.GenerateStructure)
			})
		})

		// Slides.
		r.Route("/slides", func(r chi.Router) {
			r.Put("/{slideID}", h.UpdateSlide)
			r.Get("/{slideID}/templates/recommend", h.RecommendSlideTemplates)

			r.Group(func(r chi.Router) {
				r.Use(generateLimiter.Middleware)
				r.Post("/{slideID}/prompt", h.GenerateSlidePrompt)
				r.Post("/{slideID}/image", h.GenerateSlideImage)
			})
		})

		// Template catalog.
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Get("/{id}", h.GetTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)

			r.Group(func(r chi.Router) {
				r.Use(generateLimiter.Middleware)
				r.Post("/{id}/extract", h.ExtractTemplateStructure)
				r.Post("/regenerate-samples", h.RegenerateSampleImages)
			})
		})

		// AI provider administration.
		r.Get("/providers", h.GetProviders)
		r.Put("/providers/active", h.SetProvider)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
