// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persisted domain entities: projects, slides,
// prompt templates, and the structured artifacts produced by the content
// pipeline. Field names and nullability are the persistence contract shared
// with the UI and storage collaborators.
package models

import (
	"time"

	"github.com/google/uuid"

	"slideforge/internal/workflow"
)

// Project is the top-level unit of work: one per input URL or reference
// image. It owns a status, the marketing analysis, and an ordered list of
// slides (loaded separately by the store).
type Project struct {
	ID                 uuid.UUID          `json:"id"`
	OwnerID            uuid.UUID          `json:"owner_id"`
	Status             workflow.Status    `json:"status"`
	InputURL           string             `json:"input_url"`
	Analysis           *MarketingAnalysis `json:"marketing_analysis,omitempty"`
	EmphasisPoints     []string           `json:"emphasis_points"`
	SlideCount         *int               `json:"slide_count,omitempty"` // 6-8, nil = let the generator decide
	SelectedTemplateID *uuid.UUID         `json:"selected_template_id,omitempty"`
	Slides             []Slide            `json:"slides,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// HasAnalysis reports whether the analysis stage has completed for this
// project. Slide generation must not be attempted before it has.
func (p *Project) HasAnalysis() bool {
	return p.Analysis != nil
}

// Guards returns the state machine guard inputs derived from the project's
// current persisted state.
func (p *Project) Guards() workflow.Guards {
	return workflow.Guards{
		HasAnalysis: p.HasAnalysis(),
		HasSlides:   len(p.Slides) > 0,
	}
}
