// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// GeneratedContent is the ephemeral AI-produced payload used to fill a
// structured template for one slide. Only the resulting prompt string is
// cached on the slide; this object is never persisted.
type GeneratedContent struct {
	Subject string            `json:"subject"`
	Scene   string            `json:"scene"`
	Texts   map[string]string `json:"texts"` // slot id -> generated text
}

// Covers reports whether the texts map has an entry for every given slot.
func (g *GeneratedContent) Covers(slots []TextSlot) bool {
	for _, s := range slots {
		if _, ok := g.Texts[s.ID]; !ok {
			return false
		}
	}
	return true
}
