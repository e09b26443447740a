// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"

	"slideforge/internal/models"
)

const templateSystemPrompt = `You analyze ad-creative design templates.
Given a designer's free-text description of a template (and optionally its sample image), decompose it into a structured style definition and its text slots.

Respond with a single JSON object, no prose:
{
  "style": {
    "photography": "camera/photographic treatment",
    "lighting": "lighting description",
    "design_style": "overall design language",
    "layout": "layout including the subject/text split, e.g. '被写体は左側 60%、テキストは右側 40%'",
    "typography": "typography treatment",
    "colors": "color palette",
    "mood": "mood keywords",
    "decorations": ["decorative elements"]
  },
  "slots": [
    {"id": "short_snake_case_id", "description": "where this text sits and how it is styled"}
  ]
}

Every distinct text region of the design must become one slot with a unique id.`

// ExtractTemplateStructure decomposes a free-text template description
// into the structured style + slots pair. When a sample image URL is given
// and the active provider supports vision, the image is attached as
// evidence. Validation failure is ErrMalformedStructure; the caller keeps
// the template legacy-only rather than persisting partial structured data.
func (p *Pipeline) ExtractTemplateStructure(ctx context.Context, description, sampleImageURL string) (*models.TemplateStyle, []models.TextSlot, error) {
	userPrompt := "Template description:\n" + description

	var response string
	var err error
	if sampleImageURL != "" && p.gen.SupportsVision() {
		response, err = p.gen.GenerateWithImage(ctx, templateSystemPrompt, userPrompt, sampleImageURL)
	} else {
		response, err = p.gen.Generate(ctx, templateSystemPrompt, userPrompt)
	}
	if err != nil {
		return nil, nil, err
	}

	var out struct {
		Style models.TemplateStyle `json:"style"`
		Slots []models.TextSlot    `json:"slots"`
	}
	if err := decodeValidated(response, templateSchema, &out); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	seen := make(map[string]bool, len(out.Slots))
	for _, slot := range out.Slots {
		if seen[slot.ID] {
			return nil, nil, fmt.Errorf("%w: duplicate slot id %q", ErrMalformedStructure, slot.ID)
		}
		seen[slot.ID] = true
	}

	return &out.Style, out.Slots, nil
}
