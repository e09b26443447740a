// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"slideforge/internal/ai"
	"slideforge/internal/models"
	"slideforge/internal/prompt"
)

// loadSlide fetches a slide by the {slideID} URL param, or writes a 404.
func (h *Handler) loadSlide(w http.ResponseWriter, r *http.Request) (*models.Slide, bool) {
	id, ok := urlUUID(w, r, "slideID")
	if !ok {
		return nil, false
	}

	sl, err := h.slides.FindByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if sl == nil {
		writeError(w, http.StatusNotFound, "slide not found")
		return nil, false
	}
	return sl, true
}

// UpdateSlide edits a slide's copy fields and template pairing. Slide
// edits never change the project status.
// PUT /api/slides/{slideID}
func (h *Handler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	sl, ok := h.loadSlide(w, r)
	if !ok {
		return
	}

	var req struct {
		Purpose            *models.SlidePurpose `json:"purpose"`
		Message            *string              `json:"message"`
		SubMessage         *string              `json:"sub_message"`
		AdditionalText     []string             `json:"additional_text"`
		CTAButtonText      *string              `json:"cta_button_text"`
		CTAUrgency         *string              `json:"cta_urgency"`
		SelectedTemplateID *uuid.UUID           `json:"selected_template_id"`
		ExcludePerson      *bool                `json:"exclude_person"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Purpose != nil {
		if !models.ValidPurpose(*req.Purpose) {
			writeError(w, http.StatusBadRequest, "unknown slide purpose")
			return
		}
		sl.Purpose = *req.Purpose
	}
	if req.Message != nil {
		if *req.Message == "" {
			writeError(w, http.StatusBadRequest, "message must not be empty")
			return
		}
		sl.Message = *req.Message
	}
	if req.SubMessage != nil {
		sl.SubMessage = *req.SubMessage
	}
	if req.AdditionalText != nil {
		sl.AdditionalText = req.AdditionalText
	}
	if req.CTAButtonText != nil {
		sl.CTAButtonText = *req.CTAButtonText
	}
	if req.CTAUrgency != nil {
		sl.CTAUrgency = *req.CTAUrgency
	}
	if req.SelectedTemplateID != nil {
		sl.SelectedTemplateID = req.SelectedTemplateID
	}
	if req.ExcludePerson != nil {
		sl.ExcludePerson = *req.ExcludePerson
	}

	if err := h.slides.Update(sl); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

// GenerateSlidePrompt assembles (and caches on the slide) the final
// image-generation prompt for a slide and its paired template. Structured
// templates first run the content-fill stage; legacy templates are filled
// from the slide's own copy.
// POST /api/slides/{slideID}/prompt
func (h *Handler) GenerateSlidePrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AspectRatio string `json:"aspect_ratio"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	sl, ok := h.loadSlide(w, r)
	if !ok {
		return
	}

	tpl, ok := h.slideTemplate(w, sl)
	if !ok {
		return
	}

	var content *models.GeneratedContent
	if tpl.IsStructured() {
		var err error
		content, err = h.pipe.RunContentFill(r.Context(), tpl, sl)
		if err != nil {
			writeStageError(w, err)
			return
		}
	}

	rendered, err := prompt.Assemble(tpl, sl, content, prompt.Options{AspectRatio: req.AspectRatio})
	if err != nil {
		if errors.Is(err, prompt.ErrIncompleteTemplate) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.slides.UpdatePrompt(sl.ID, rendered); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sl.Prompt = rendered
	writeJSON(w, http.StatusOK, sl)
}

// GenerateSlideImage sends the slide's cached prompt to the image
// generation collaborator and returns the resolved result URL.
// POST /api/slides/{slideID}/image
func (h *Handler) GenerateSlideImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AspectRatio string `json:"aspect_ratio"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	if req.AspectRatio == "" {
		req.AspectRatio = prompt.DefaultAspectRatio
	}

	sl, ok := h.loadSlide(w, r)
	if !ok {
		return
	}
	if sl.Prompt == "" {
		writeError(w, http.StatusConflict, "slide has no generated prompt")
		return
	}

	var refs []string
	if tpl, ok := h.slideTemplateOptional(sl); ok && tpl.ReferenceImage() != "" {
		refs = append(refs, tpl.ReferenceImage())
	}

	url, err := h.registry.GenerateImageURL(r.Context(), ai.ImageRequest{
		Prompt:          sl.Prompt,
		AspectRatio:     req.AspectRatio,
		ReferenceImages: refs,
	})
	if err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

// slideTemplate resolves the slide's template: the slide-level selection
// first, the project-level default second. A missing pairing is a 409.
func (h *Handler) slideTemplate(w http.ResponseWriter, sl *models.Slide) (*models.PromptTemplate, bool) {
	tpl, found := h.slideTemplateOptional(sl)
	if !found {
		writeError(w, http.StatusConflict, "slide has no template selected")
		return nil, false
	}
	return tpl, true
}

func (h *Handler) slideTemplateOptional(sl *models.Slide) (*models.PromptTemplate, bool) {
	id := sl.SelectedTemplateID
	if id == nil {
		p, err := h.projects.FindByID(sl.ProjectID)
		if err != nil || p == nil {
			return nil, false
		}
		id = p.SelectedTemplateID
	}
	if id == nil {
		return nil, false
	}

	tpl, err := h.templates.FindByID(*id)
	if err != nil || tpl == nil {
		return nil, false
	}
	return tpl, true
}
