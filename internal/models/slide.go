// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SlidePurpose tags a slide with its role in the narrative arc.
// The taxonomy is fixed; new values require an explicit update of the
// matcher keyword tables, never a silent fallback.
type SlidePurpose string

const (
	PurposeIdealImage  SlidePurpose = "ideal_image"
	PurposeEmpathy     SlidePurpose = "empathy"
	PurposeRisk        SlidePurpose = "risk"
	PurposeSolution    SlidePurpose = "solution"
	PurposeBenefit     SlidePurpose = "benefit"
	PurposeSocialProof SlidePurpose = "social_proof"
	PurposeComparison  SlidePurpose = "comparison"
	PurposeFlow        SlidePurpose = "flow"
	PurposeTestimonial SlidePurpose = "testimonial"
	PurposeCTA         SlidePurpose = "cta"
)

// AllPurposes lists the taxonomy in narrative-arc order.
var AllPurposes = []SlidePurpose{
	PurposeIdealImage, PurposeEmpathy, PurposeRisk, PurposeSolution,
	PurposeBenefit, PurposeSocialProof, PurposeComparison, PurposeFlow,
	PurposeTestimonial, PurposeCTA,
}

// ValidPurpose reports whether p is part of the fixed taxonomy.
func ValidPurpose(p SlidePurpose) bool {
	for _, v := range AllPurposes {
		if v == p {
			return true
		}
	}
	return false
}

// Slide is one ad-creative brief. Created by structure generation, mutated
// by manual edits and by prompt (re)generation; order is 1-based and
// contiguous within a project.
type Slide struct {
	ID                  uuid.UUID    `json:"id"`
	ProjectID           uuid.UUID    `json:"project_id"`
	Order               int          `json:"order"`
	Purpose             SlidePurpose `json:"purpose"`
	Message             string       `json:"message"`
	SubMessage          string       `json:"sub_message,omitempty"`
	AdditionalText      []string     `json:"additional_text"`
	Emotion             string       `json:"emotion,omitempty"`
	VisualHint          string       `json:"visual_hint,omitempty"`
	StoryNote           string       `json:"story_note,omitempty"`
	KeyTakeaway         string       `json:"key_takeaway,omitempty"`
	MessageAlternatives []string     `json:"message_alternatives,omitempty"`
	Narration           string       `json:"narration,omitempty"`

	// CTA-only fields, empty on every other purpose.
	CTAButtonText string `json:"cta_button_text,omitempty"`
	CTAUrgency    string `json:"cta_urgency,omitempty"`

	// Per-slide template pairing and rendering state.
	SelectedTemplateID *uuid.UUID `json:"selected_template_id,omitempty"`
	ExcludePerson      bool       `json:"exclude_person"`
	Prompt             string     `json:"prompt,omitempty"` // cached rendered output

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
