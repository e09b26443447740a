// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"slideforge/internal/models"
)

// Slide-count bounds when the caller does not request an exact count.
const (
	minSlides = 6
	maxSlides = 8
)

// StructureOptions carries the user's supplement-stage settings into
// structure generation.
type StructureOptions struct {
	// SlideCount, when non-nil, requests an exact number of slides.
	// Otherwise the generator chooses within [6, 8].
	SlideCount *int

	// EmphasisPoints are user-supplied angles the deck must cover.
	EmphasisPoints []string

	// Tone is an optional free-text tone request.
	Tone string
}

const structureSystemPrompt = `You are a Japanese vertical-ad storyboard writer.
Design an ordered sequence of slide briefs that tells one persuasive story about the analyzed service.

Follow this narrative arc, spending 0-2 slides per beat, in order:
ideal_image -> empathy -> risk -> solution -> benefit -> social_proof -> comparison -> flow -> testimonial -> cta

Rules:
- Every slide's message must be a concrete Japanese headline specific to this service, never a category cliché.
- Reflect the analysis's positioning, benefit_angle and desire_time_horizon in the copy.
- Cover every listed emphasis point on at least one slide.
- The final slide must be purpose "cta" and carry cta_button_text and cta_urgency.

Respond with a single JSON object, no prose:
{
  "slides": [
    {
      "purpose": "one of: ideal_image, empathy, risk, solution, benefit, social_proof, comparison, flow, testimonial, cta",
      "message": "main headline, Japanese",
      "sub_message": "supporting line, Japanese",
      "additional_text": ["extra short texts"],
      "emotion": "emotion this slide evokes",
      "visual_hint": "what the image should show",
      "story_note": "role of this slide in the arc",
      "key_takeaway": "the one thing the viewer should retain",
      "message_alternatives": ["alternative headlines"],
      "narration": "optional voiceover line",
      "cta_button_text": "cta slides only",
      "cta_urgency": "cta slides only"
    }
  ]
}`

// slideBrief is the wire shape of one generated slide before it is
// normalized into models.Slide.
type slideBrief struct {
	Purpose             string   `json:"purpose"`
	Message             string   `json:"message"`
	SubMessage          string   `json:"sub_message"`
	AdditionalText      []string `json:"additional_text"`
	Emotion             string   `json:"emotion"`
	VisualHint          string   `json:"visual_hint"`
	StoryNote           string   `json:"story_note"`
	KeyTakeaway         string   `json:"key_takeaway"`
	MessageAlternatives []string `json:"message_alternatives"`
	Narration           string   `json:"narration"`
	CTAButtonText       string   `json:"cta_button_text"`
	CTAUrgency          string   `json:"cta_urgency"`
}

type slideStructure struct {
	Slides []slideBrief `json:"slides"`
}

// RunStructureGeneration requests the ordered slide briefs for a project.
// enrichment may be nil (the enrichment stage is best-effort). The result
// is validated and normalized: contiguous 1-based order, purposes from the
// fixed taxonomy, non-empty messages, nil optional lists replaced with
// empty ones. Validation failure aborts with ErrMalformedStructure and the
// caller leaves the project's existing slides untouched.
func (p *Pipeline) RunStructureGeneration(ctx context.Context, analysis *models.MarketingAnalysis, opts StructureOptions, enrichment *models.SlideReadyCopy) ([]models.Slide, error) {
	userPrompt, err := buildStructurePrompt(analysis, opts, enrichment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	response, err := p.gen.Generate(ctx, structureSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var structure slideStructure
	if err := decodeValidated(response, structureSchema, &structure); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	if err := validateSlideCount(len(structure.Slides), opts.SlideCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}

	slides := make([]models.Slide, 0, len(structure.Slides))
	for i, b := range structure.Slides {
		purpose := models.SlidePurpose(b.Purpose)
		if !models.ValidPurpose(purpose) {
			return nil, fmt.Errorf("%w: slide %d has unknown purpose %q", ErrMalformedStructure, i+1, b.Purpose)
		}
		if strings.TrimSpace(b.Message) == "" {
			return nil, fmt.Errorf("%w: slide %d has an empty message", ErrMalformedStructure, i+1)
		}
		slides = append(slides, models.Slide{
			Order:               i + 1,
			Purpose:             purpose,
			Message:             b.Message,
			SubMessage:          b.SubMessage,
			AdditionalText:      orEmpty(b.AdditionalText),
			Emotion:             b.Emotion,
			VisualHint:          b.VisualHint,
			StoryNote:           b.StoryNote,
			KeyTakeaway:         b.KeyTakeaway,
			MessageAlternatives: orEmpty(b.MessageAlternatives),
			Narration:           b.Narration,
			CTAButtonText:       b.CTAButtonText,
			CTAUrgency:          b.CTAUrgency,
		})
	}

	return slides, nil
}

func validateSlideCount(got int, want *int) error {
	if want != nil {
		if got != *want {
			return fmt.Errorf("got %d slides, requested exactly %d", got, *want)
		}
		return nil
	}
	if got < minSlides || got > maxSlides {
		return fmt.Errorf("got %d slides, want between %d and %d", got, minSlides, maxSlides)
	}
	return nil
}

func buildStructurePrompt(analysis *models.MarketingAnalysis, opts StructureOptions, enrichment *models.SlideReadyCopy) (string, error) {
	var b strings.Builder

	payload, err := marshalContext(analysis)
	if err != nil {
		return "", err
	}
	b.WriteString("Marketing analysis:\n")
	b.WriteString(payload)
	b.WriteString("\n")

	if enrichment != nil {
		copyPayload, err := marshalContext(enrichment)
		if err != nil {
			return "", err
		}
		b.WriteString("\nSlide-ready copy to lift phrases from (prefer these over inventing new ones):\n")
		b.WriteString(copyPayload)
		b.WriteString("\n")
	}

	if opts.SlideCount != nil {
		fmt.Fprintf(&b, "\nProduce exactly %d slides.\n", *opts.SlideCount)
	} else {
		fmt.Fprintf(&b, "\nProduce between %d and %d slides.\n", minSlides, maxSlides)
	}
	if len(opts.EmphasisPoints) > 0 {
		b.WriteString("\nEmphasis points that must each appear on at least one slide:\n")
		for _, e := range opts.EmphasisPoints {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if opts.Tone != "" {
		fmt.Fprintf(&b, "\nTone: %s\n", opts.Tone)
	}

	return b.String(), nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
