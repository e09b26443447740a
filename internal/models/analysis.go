// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// MarketingAnalysis is the structured result of the analysis pipeline stage.
// The JSON field names are the schema contract validated against the
// content-generation collaborator's output.
type MarketingAnalysis struct {
	BusinessType      string   `json:"business_type"`
	Target            string   `json:"target"`
	PainPoints        []string `json:"pain_points"`
	Solution          string   `json:"solution"`
	EmotionalTrigger  string   `json:"emotional_trigger"`
	Positioning       string   `json:"positioning"`
	BenefitAngle      string   `json:"benefit_angle"`
	DesireTimeHorizon string   `json:"desire_time_horizon"`
	ThreeC            ThreeC   `json:"three_c"`
	AIDMA             AIDMA    `json:"aidma"`
}

// ThreeC is the 3C (company / customer / competitor) breakdown.
type ThreeC struct {
	Company    string `json:"company"`
	Customer   string `json:"customer"`
	Competitor string `json:"competitor"`
}

// AIDMA is the attention / interest / desire / memory / action breakdown.
type AIDMA struct {
	Attention string `json:"attention"`
	Interest  string `json:"interest"`
	Desire    string `json:"desire"`
	Memory    string `json:"memory"`
	Action    string `json:"action"`
}

// SlideReadyCopy is the optional enrichment artifact: concrete, non-generic
// phrases the structure generator can lift into slides. It is attached
// transiently to the structure-generation call and never persisted on its
// own.
type SlideReadyCopy struct {
	PainPhrases          []string `json:"pain_phrases"`
	RiskPhrases          []string `json:"risk_phrases"`
	BenefitBullets       []string `json:"benefit_bullets"`
	TrustPoints          []string `json:"trust_points"`
	FlowSteps            []string `json:"flow_steps"`
	TestimonialTemplates []string `json:"testimonial_templates"`
	CTAVariants          []string `json:"cta_variants"`
}
