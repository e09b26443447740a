// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"sort"
)

// GetProviders reports the active provider, the configured alternatives
// and the active provider's optional capabilities.
// GET /api/providers
func (h *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	available := h.registry.Available()
	sort.Strings(available)

	writeJSON(w, http.StatusOK, map[string]any{
		"active":                    h.registry.ActiveName(),
		"available":                 available,
		"supports_vision":           h.registry.SupportsVision(),
		"supports_image_generation": h.registry.SupportsImageGeneration(),
	})
}

// SetProvider switches the active provider at runtime.
// PUT /api/providers/active
func (h *Handler) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.registry.SetActive(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active": h.registry.ActiveName()})
}
