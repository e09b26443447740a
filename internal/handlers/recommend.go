// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"slideforge/internal/match"
)

// RecommendTemplates returns the project-level template ranking.
// GET /api/projects/{id}/templates/recommend
func (h *Handler) RecommendTemplates(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	catalog, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, match.Recommend(catalog, p.Analysis))
}

// RecommendSlideTemplates returns the slide-level refinement. The offset
// query parameter pages through further candidates: offset 0 is the
// purpose-refined first page, offset N pages through its remainder.
// GET /api/slides/{slideID}/templates/recommend?offset=N
func (h *Handler) RecommendSlideTemplates(w http.ResponseWriter, r *http.Request) {
	sl, ok := h.loadSlide(w, r)
	if !ok {
		return
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = n
	}

	p, err := h.projects.FindByID(sl.ProjectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	catalog, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, match.RecommendForSlide(catalog, p.Analysis, sl.Purpose, offset))
}
