// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"slideforge/internal/pipeline"
	"slideforge/internal/workflow"
)

// CreateProject starts a new project in the url_input state.
// POST /api/projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID  uuid.UUID `json:"owner_id"`
		InputURL string    `json:"input_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OwnerID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	if !strings.HasPrefix(req.InputURL, "http://") && !strings.HasPrefix(req.InputURL, "https://") {
		writeError(w, http.StatusBadRequest, "input_url must be an absolute HTTP URL")
		return
	}

	p, err := h.projects.Create(req.OwnerID, req.InputURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListProjects returns an owner's projects, newest first.
// GET /api/projects?owner_id=...
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	projects, err := h.projects.ListByOwner(ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns a project with its slides.
// GET /api/projects/{id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProject removes a project and its slides.
// DELETE /api/projects/{id}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	if err := h.projects.Delete(p.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeProject runs the analysis stage: url_input -> analyzing, then
// analysis_done on success. A failed stage leaves the project in
// analyzing and surfaces the error; there is no silent retry.
// POST /api/projects/{id}/analyze
func (h *Handler) AnalyzeProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageURL string `json:"image_url"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	// Re-analysis re-enters analysis_done from supplement_input or
	// analysis_done without touching slides; the first run starts from
	// url_input.
	if p.Status == workflow.StatusURLInput {
		if err := h.transition(p, workflow.StatusAnalyzing); err != nil {
			writeStageError(w, err)
			return
		}
	} else if p.Status != workflow.StatusAnalyzing &&
		p.Status != workflow.StatusAnalysisDone &&
		p.Status != workflow.StatusSupplementInput {
		writeError(w, http.StatusConflict, "project cannot be analyzed in status "+string(p.Status))
		return
	}

	analysis, err := h.pipe.RunAnalysis(r.Context(), pipeline.Source{
		URL:      p.InputURL,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeStageError(w, err)
		return
	}

	// Persist the stage result before moving the status forward.
	if err := h.projects.UpdateAnalysis(p.ID, analysis); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.Analysis = analysis

	if p.Status != workflow.StatusAnalysisDone {
		target := workflow.StatusAnalysisDone
		if err := h.transition(p, target); err != nil {
			writeStageError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateSupplement saves emphasis points and the requested slide count and
// advances analysis_done -> supplement_input. Calling it again while
// already in supplement_input just re-saves the settings.
// PUT /api/projects/{id}/supplement
func (h *Handler) UpdateSupplement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmphasisPoints []string `json:"emphasis_points"`
		SlideCount     *int     `json:"slide_count"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SlideCount != nil && (*req.SlideCount < 1 || *req.SlideCount > 20) {
		writeError(w, http.StatusBadRequest, "slide_count out of range")
		return
	}

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if p.Status != workflow.StatusSupplementInput {
		if err := h.transition(p, workflow.StatusSupplementInput); err != nil {
			writeStageError(w, err)
			return
		}
	}

	if err := h.projects.UpdateSupplement(p.ID, req.EmphasisPoints, req.SlideCount); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.EmphasisPoints = req.EmphasisPoints
	p.SlideCount = req.SlideCount
	writeJSON(w, http.StatusOK, p)
}

// BackProject steps the project one status back: slides_ready ->
// supplement_input or supplement_input -> analysis_done. Neither direction
// discards persisted analysis or slides.
// POST /api/projects/{id}/back
func (h *Handler) BackProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	var target workflow.Status
	switch p.Status {
	case workflow.StatusSlidesReady, workflow.StatusPromptsReady:
		target = workflow.StatusSupplementInput
	case workflow.StatusSupplementInput:
		target = workflow.StatusAnalysisDone
	default:
		writeError(w, http.StatusConflict, "no back transition from status "+string(p.Status))
		return
	}

	if err := h.transition(p, target); err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GenerateStructure runs enrichment (best effort) and structure
// generation, replaces the project's slides and advances supplement_input
// -> slides_ready. A failed generation leaves both the status and any
// previously generated slides untouched.
// POST /api/projects/{id}/generate
func (h *Handler) GenerateStructure(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	if p.Status != workflow.StatusSupplementInput {
		writeError(w, http.StatusConflict, "structure generation requires status supplement_input")
		return
	}
	if p.Analysis == nil {
		writeError(w, http.StatusConflict, "project has no analysis")
		return
	}

	enrichment, err := h.pipe.RunEnrichment(r.Context(), p.Analysis)
	if err != nil {
		slog.Warn("enrichment failed, continuing without it", "project", p.ID, "error", err)
		enrichment = nil
	}

	slides, err := h.pipe.RunStructureGeneration(r.Context(), p.Analysis, pipeline.StructureOptions{
		SlideCount:     p.SlideCount,
		EmphasisPoints: p.EmphasisPoints,
	}, enrichment)
	if err != nil {
		writeStageError(w, err)
		return
	}

	inserted, err := h.slides.ReplaceForProject(p.ID, slides)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.Slides = inserted

	if err := h.transition(p, workflow.StatusSlidesReady); err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SelectProjectTemplate sets or clears the project-level default template.
// PUT /api/projects/{id}/template
func (h *Handler) SelectProjectTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID *uuid.UUID `json:"template_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if req.TemplateID != nil {
		tpl, err := h.templates.FindByID(*req.TemplateID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tpl == nil {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
	}

	if err := h.projects.UpdateSelectedTemplate(p.ID, req.TemplateID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.SelectedTemplateID = req.TemplateID
	writeJSON(w, http.StatusOK, p)
}
