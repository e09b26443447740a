// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: project lifecycle and its
// status transitions, slide editing and prompt/image generation, the
// template catalog with recommendations, and AI provider administration.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slideforge/internal/ai"
	"slideforge/internal/cache"
	"slideforge/internal/models"
	"slideforge/internal/pipeline"
	"slideforge/internal/store"
	"slideforge/internal/workflow"
)

// bulkPacing is the fixed delay between successive collaborator calls in
// bulk loops, skipped before the first item.
const bulkPacing = 1500 * time.Millisecond

// Handler carries the collaborator clients and stores for all API
// endpoints. Constructed once at startup; no hidden globals.
type Handler struct {
	projects  *store.ProjectStore
	slides    *store.SlideStore
	templates *store.TemplateStore
	catalog   *cache.CatalogCache
	registry  *ai.Registry
	pipe      *pipeline.Pipeline

	// pacing is overridable so tests don't sleep.
	pacing time.Duration
}

// New creates the API handler set.
func New(projects *store.ProjectStore, slides *store.SlideStore, templates *store.TemplateStore,
	catalog *cache.CatalogCache, registry *ai.Registry, pipe *pipeline.Pipeline) *Handler {
	return &Handler{
		projects:  projects,
		slides:    slides,
		templates: templates,
		catalog:   catalog,
		registry:  registry,
		pipe:      pipe,
		pacing:    bulkPacing,
	}
}

// --- shared helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStageError maps pipeline/workflow errors onto HTTP statuses. Typed
// stage errors surface their message verbatim; everything else is a 502
// toward the collaborator or a 500.
func writeStageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrIllegalTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, pipeline.ErrMalformedAnalysis),
		errors.Is(err, pipeline.ErrMalformedStructure):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ai.ErrExternalUnavailable),
		errors.Is(err, ai.ErrNoUsableResult):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func urlUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// loadCatalog returns the template catalog, serving from Valkey when hot.
func (h *Handler) loadCatalog(r *http.Request) ([]models.PromptTemplate, error) {
	if catalog, hit := h.catalog.Get(r.Context()); hit {
		return catalog, nil
	}
	catalog, err := h.templates.List()
	if err != nil {
		return nil, err
	}
	h.catalog.Set(r.Context(), catalog)
	return catalog, nil
}

// loadProject fetches a project with its slides, or writes a 404.
func (h *Handler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return nil, false
	}

	p, err := h.projects.FindByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return nil, false
	}

	slides, err := h.slides.ListByProject(p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	p.Slides = slides
	return p, true
}

// transition applies and persists a status change under the project's
// guards. The failed case leaves the stored status untouched.
func (h *Handler) transition(p *models.Project, to workflow.Status) error {
	next, err := workflow.Transition(p.Status, to, p.Guards())
	if err != nil {
		return err
	}
	if next == p.Status {
		return nil
	}
	if err := h.projects.UpdateStatus(p.ID, next); err != nil {
		return err
	}
	p.Status = next
	return nil
}
