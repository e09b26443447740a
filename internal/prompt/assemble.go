// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"errors"
	"fmt"

	"slideforge/internal/models"
)

// ErrIncompleteTemplate is returned when a template carries partial
// structured data (style without slots or slots without style) or no usable
// prompt definition at all. Assembly is rejected before any partial prompt
// is produced.
var ErrIncompleteTemplate = errors.New("prompt: template is missing style or text slots")

// Options configures a single assembly.
type Options struct {
	AspectRatio string // defaults to DefaultAspectRatio
}

// Assemble produces the final prompt string for a slide and its paired
// template. Structured templates additionally need the generated content
// that fills their slots; legacy templates are filled from the slide's own
// copy fields. The overlay transform is applied when the slide's
// exclude-person flag is set, using the variant matching the path that
// produced the base prompt.
func Assemble(tpl *models.PromptTemplate, slide *models.Slide, content *models.GeneratedContent, opts Options) (string, error) {
	hasStyle := tpl.Style != nil
	hasSlots := len(tpl.Slots) > 0
	if hasStyle != hasSlots {
		return "", fmt.Errorf("%w (template %s)", ErrIncompleteTemplate, tpl.ID)
	}

	if tpl.IsStructured() {
		if content == nil {
			return "", fmt.Errorf("prompt: structured template %s requires generated content", tpl.ID)
		}
		doc := BuildStructured(*tpl.Style, tpl.Slots, *content, opts.AspectRatio)
		if slide.ExcludePerson {
			ApplyOverlayStructured(doc)
		}
		return doc.Render(), nil
	}

	if tpl.IsLegacy() {
		body := FillPlaceholdersInOrder(tpl.BasePrompt, SlideReplacements(slide))
		if slide.ExcludePerson {
			body = ApplyOverlayLegacy(body)
		}
		return body, nil
	}

	return "", fmt.Errorf("%w (template %s)", ErrIncompleteTemplate, tpl.ID)
}
