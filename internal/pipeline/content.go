// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"slideforge/internal/models"
)

const contentSystemPrompt = `You are filling a structured ad-creative template for one slide of a Japanese vertical ad.
Given the slide's copy and the template's text slots, produce the visual subject and the final text for every slot.

Rules:
- Provide a "texts" entry for EVERY slot id, keyed exactly by the slot id.
- Slot texts are final Japanese display copy, short enough for the described region.
- The subject describes the photographic/illustrative focus, not the text.

Respond with a single JSON object, no prose:
{
  "subject": "primary visual subject description",
  "scene": "optional scene/background context",
  "texts": {"slot_id": "display text"}
}`

// RunContentFill produces the GeneratedContent that the assembler needs
// to render a structured template for one slide. The response must cover
// every slot id; a gap is a validation failure, not a silent blank region.
func (p *Pipeline) RunContentFill(ctx context.Context, tpl *models.PromptTemplate, slide *models.Slide) (*models.GeneratedContent, error) {
	if !tpl.IsStructured() {
		return nil, fmt.Errorf("%w: template %q has no structured data", ErrMalformedStructure, tpl.Name)
	}

	userPrompt, err := buildContentPrompt(tpl, slide)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	response, err := p.gen.Generate(ctx, contentSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var content models.GeneratedContent
	if err := decodeValidated(response, contentSchema, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	if missing := missingSlots(tpl.Slots, content.Texts); len(missing) > 0 {
		return nil, fmt.Errorf("%w: texts missing for slots %s", ErrMalformedStructure, strings.Join(missing, ", "))
	}

	return &content, nil
}

func buildContentPrompt(tpl *models.PromptTemplate, slide *models.Slide) (string, error) {
	var b strings.Builder

	slidePayload, err := marshalContext(slide)
	if err != nil {
		return "", err
	}
	b.WriteString("Slide copy:\n")
	b.WriteString(slidePayload)
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nTemplate %q style mood: %s\n", tpl.Name, tpl.Style.Mood)
	b.WriteString("\nText slots to fill:\n")
	for _, slot := range tpl.Slots {
		fmt.Fprintf(&b, "- id %q: %s\n", slot.ID, slot.Description)
	}
	if slide.ExcludePerson {
		b.WriteString("\nThe final image will contain no person; describe a subject that works without one.\n")
	}

	return b.String(), nil
}

func missingSlots(slots []models.TextSlot, texts map[string]string) []string {
	var missing []string
	for _, slot := range slots {
		if strings.TrimSpace(texts[slot.ID]) == "" {
			missing = append(missing, slot.ID)
		}
	}
	sort.Strings(missing)
	return missing
}
