// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"slideforge/internal/ai"
	"slideforge/internal/models"
	"slideforge/internal/prompt"
)

// ListTemplates returns the whole catalog, most recent first.
// GET /api/templates
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// GetTemplate returns one template.
// GET /api/templates/{id}
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.loadTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// CreateTemplate adds a template to the catalog.
// POST /api/templates
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.PromptTemplate
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.templates.Create(&req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.catalog.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTemplate edits a template's metadata and legacy prompt.
// PUT /api/templates/{id}
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.loadTemplate(w, r)
	if !ok {
		return
	}

	var req struct {
		Name           *string  `json:"name"`
		Category       *string  `json:"category"`
		Subcategory    *string  `json:"subcategory"`
		SampleImageURL *string  `json:"sample_image_url"`
		ImageURLs      []string `json:"image_urls"`
		BasePrompt     *string  `json:"base_prompt"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Category != nil {
		tpl.Category = *req.Category
	}
	if req.Subcategory != nil {
		tpl.Subcategory = *req.Subcategory
	}
	if req.SampleImageURL != nil {
		tpl.SampleImageURL = *req.SampleImageURL
	}
	if req.ImageURLs != nil {
		tpl.ImageURLs = req.ImageURLs
	}
	if req.BasePrompt != nil {
		tpl.BasePrompt = *req.BasePrompt
	}

	if err := h.templates.Update(tpl); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.catalog.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, tpl)
}

// DeleteTemplate removes a template from the catalog.
// DELETE /api/templates/{id}
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.loadTemplate(w, r)
	if !ok {
		return
	}
	if err := h.templates.Delete(tpl.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.catalog.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ExtractTemplateStructure decomposes a free-text template description
// into structured style + slots and persists both together.
// POST /api/templates/{id}/extract
func (h *Handler) ExtractTemplateStructure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	tpl, ok := h.loadTemplate(w, r)
	if !ok {
		return
	}

	style, slots, err := h.pipe.ExtractTemplateStructure(r.Context(), req.Description, tpl.SampleImageURL)
	if err != nil {
		writeStageError(w, err)
		return
	}

	if err := h.templates.UpdateStructure(tpl.ID, style, slots); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tpl.Style = style
	tpl.Slots = slots
	h.catalog.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, tpl)
}

// bulkResult is one item of the bulk-regeneration aggregate. The order of
// results matches the order of the requested ids regardless of outcome.
type bulkResult struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error,omitempty"`
}

// bulkResponse is the aggregate outcome of a bulk regeneration. Per-item
// failures never abort the remaining items.
type bulkResponse struct {
	SuccessCount int          `json:"successCount"`
	FailCount    int          `json:"failCount"`
	Results      []bulkResult `json:"results"`
}

// RegenerateSampleImages regenerates the sample image for each requested
// template, pacing successive collaborator calls and tallying per-item
// outcomes independently.
// POST /api/templates/regenerate-samples
func (h *Handler) RegenerateSampleImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateIDs []uuid.UUID `json:"template_ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.TemplateIDs) == 0 {
		writeError(w, http.StatusBadRequest, "template_ids is required")
		return
	}

	resp := bulkResponse{Results: make([]bulkResult, 0, len(req.TemplateIDs))}
	calls := 0

	for _, id := range req.TemplateIDs {
		errMsg := h.regenerateSample(r, id, &calls)
		if errMsg == "" {
			resp.SuccessCount++
			resp.Results = append(resp.Results, bulkResult{ID: id})
		} else {
			resp.FailCount++
			resp.Results = append(resp.Results, bulkResult{ID: id, Error: errMsg})
		}
	}

	if resp.SuccessCount > 0 {
		h.catalog.Invalidate(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}

// regenerateSample handles one bulk item. The returned string is the
// user-facing per-item error, empty on success. calls counts collaborator
// invocations so the fixed delay is skipped before the first one.
func (h *Handler) regenerateSample(r *http.Request, id uuid.UUID, calls *int) string {
	tpl, err := h.templates.FindByID(id)
	if err != nil {
		return err.Error()
	}
	if tpl == nil {
		return "テンプレートが見つかりません"
	}

	ref := tpl.ReferenceImage()
	if ref == "" {
		return "参照画像がありません"
	}

	if *calls > 0 {
		time.Sleep(h.pacing)
	}
	*calls++

	url, err := h.registry.GenerateImageURL(r.Context(), ai.ImageRequest{
		Prompt:          samplePrompt(tpl),
		AspectRatio:     prompt.DefaultAspectRatio,
		ReferenceImages: []string{ref},
	})
	if err != nil {
		slog.Warn("sample regeneration failed", "template", id, "error", err)
		return err.Error()
	}

	if err := h.templates.UpdateSampleImage(id, url); err != nil {
		return err.Error()
	}
	return ""
}

// samplePrompt renders a neutral preview prompt for a template: the legacy
// text as-is, or a style summary for structured templates.
func samplePrompt(tpl *models.PromptTemplate) string {
	if tpl.IsLegacy() {
		return tpl.BasePrompt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Vertical %s ad-creative sample in the following style.\n", prompt.DefaultAspectRatio)
	if tpl.Style != nil {
		fmt.Fprintf(&b, "Design: %s\nLayout: %s\nColors: %s\nMood: %s\n",
			tpl.Style.DesignStyle, tpl.Style.Layout, tpl.Style.Colors, tpl.Style.Mood)
	}
	b.WriteString("Use placeholder Japanese text in every text region.")
	return b.String()
}

func (h *Handler) loadTemplate(w http.ResponseWriter, r *http.Request) (*models.PromptTemplate, bool) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return nil, false
	}

	tpl, err := h.templates.FindByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if tpl == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return nil, false
	}
	return tpl, true
}
