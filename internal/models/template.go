// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptTemplate is a reusable design definition from the append-only
// template catalog. A template is either legacy (free-text base prompt with
// 「…」 placeholders) or structured (style + at least one text slot).
// Partial structured data is rejected by consumers, never repaired.
type PromptTemplate struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	SampleImageURL string    `json:"sample_image_url,omitempty"`
	ImageURLs      []string  `json:"image_urls,omitempty"`

	// Legacy path.
	BasePrompt string `json:"base_prompt,omitempty"`

	// Structured path.
	Style *TemplateStyle `json:"style,omitempty"`
	Slots []TextSlot     `json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStructured reports whether the template carries complete structured
// data: a style and at least one slot.
func (t *PromptTemplate) IsStructured() bool {
	return t.Style != nil && len(t.Slots) > 0
}

// IsLegacy reports whether the template carries a legacy free-text prompt.
func (t *PromptTemplate) IsLegacy() bool {
	return t.BasePrompt != ""
}

// ReferenceImage returns the best reference image URL for regeneration:
// the sample image if set, otherwise the first catalog image.
func (t *PromptTemplate) ReferenceImage() string {
	if t.SampleImageURL != "" {
		return t.SampleImageURL
	}
	if len(t.ImageURLs) > 0 {
		return t.ImageURLs[0]
	}
	return ""
}

// TemplateStyle is the structured template's visual description. All fields
// are free text consumed verbatim by the prompt assembler, never parsed
// further (the layout split percentage is the one exception).
type TemplateStyle struct {
	Photography string   `json:"photography"`
	Lighting    string   `json:"lighting"`
	DesignStyle string   `json:"design_style"`
	Layout      string   `json:"layout"`
	Typography  string   `json:"typography"`
	Colors      string   `json:"colors"`
	Mood        string   `json:"mood"`
	Decorations []string `json:"decorations"`
}

// TextSlot is one text region of a structured template. The description is
// a natural-language instruction consumed by the content-generation
// collaborator; the assembler only infers a target label from it.
type TextSlot struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
