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

// Source identifies what the analysis stage should look at: a landing page
// URL, an uploaded reference image, or both.
type Source struct {
	URL      string
	ImageURL string
}

const analysisSystemPrompt = `You are a direct-response marketing analyst for Japanese vertical-format ad creatives.
Analyze the provided landing page evidence and produce a structured marketing analysis.

Respond with a single JSON object, no prose, matching exactly this shape:
{
  "business_type": "what kind of business this is, in Japanese",
  "target": "the primary target audience, specific, in Japanese",
  "pain_points": ["concrete pains the audience feels, in Japanese"],
  "solution": "how this service resolves those pains, in Japanese",
  "emotional_trigger": "the core emotion the ad should evoke",
  "positioning": "how this service differs from obvious alternatives",
  "benefit_angle": "the single strongest benefit framing",
  "desire_time_horizon": "how soon the audience wants the outcome",
  "three_c": {"company": "...", "customer": "...", "competitor": "..."},
  "aidma": {"attention": "...", "interest": "...", "desire": "...", "memory": "...", "action": "..."}
}

Ground every field in the evidence. Do not invent offerings the page does not make.`

// RunAnalysis extracts evidence from the source and requests a structured
// marketing analysis. Evidence extraction is best-effort: a failed fetch
// reduces the evidence to the URL itself. A response that fails schema
// validation aborts the stage with ErrMalformedAnalysis.
func (p *Pipeline) RunAnalysis(ctx context.Context, src Source) (*models.MarketingAnalysis, error) {
	userPrompt := p.buildAnalysisEvidence(ctx, src)

	var response string
	var err error
	if src.ImageURL != "" && p.gen.SupportsVision() {
		response, err = p.gen.GenerateWithImage(ctx, analysisSystemPrompt, userPrompt, src.ImageURL)
	} else {
		response, err = p.gen.Generate(ctx, analysisSystemPrompt, userPrompt)
	}
	if err != nil {
		return nil, err
	}

	var analysis models.MarketingAnalysis
	if err := decodeValidated(response, analysisSchema, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnalysis, err)
	}
	return &analysis, nil
}

// buildAnalysisEvidence assembles the user prompt from whatever evidence
// is reachable.
func (p *Pipeline) buildAnalysisEvidence(ctx context.Context, src Source) string {
	var b strings.Builder

	if src.URL != "" {
		fmt.Fprintf(&b, "Landing page URL: %s\n", src.URL)
		if p.fetcher != nil {
			page, err := p.fetcher.Fetch(ctx, src.URL)
			if err != nil {
				p.log.Warn("landing page extraction failed, proceeding with reduced evidence",
					"url", src.URL, "error", err)
			} else if !page.Empty() {
				b.WriteString("\nExtracted page content:\n")
				b.WriteString(page.Evidence())
			}
		}
	}
	if src.ImageURL != "" {
		b.WriteString("\nA reference image of the service's creative is attached; use it as additional evidence.\n")
	}
	if b.Len() == 0 {
		b.WriteString("No page evidence available; analyze from the attached image only.\n")
	}
	return b.String()
}

const enrichmentSystemPrompt = `You are a Japanese direct-response copywriter.
Given a marketing analysis, produce concrete, non-generic slide-ready phrases in Japanese.
Every phrase must be specific to this service; reject category clichés.

Respond with a single JSON object, no prose:
{
  "pain_phrases": ["short first-person pain statements"],
  "risk_phrases": ["what staying as-is will cost"],
  "benefit_bullets": ["concrete outcome bullets"],
  "trust_points": ["proof and credibility items"],
  "flow_steps": ["step-by-step usage flow"],
  "testimonial_templates": ["voice-of-customer phrasings"],
  "cta_variants": ["call-to-action button texts"]
}`

// RunEnrichment translates the analysis into slide-ready copy. The stage
// is best-effort: any failure is wrapped in ErrEnrichmentFailed and the
// caller logs it and proceeds without enrichment.
func (p *Pipeline) RunEnrichment(ctx context.Context, analysis *models.MarketingAnalysis) (*models.SlideReadyCopy, error) {
	payload, err := marshalContext(analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}

	response, err := p.gen.Generate(ctx, enrichmentSystemPrompt, "Marketing analysis:\n"+payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}

	var copyOut models.SlideReadyCopy
	if err := decodeValidated(response, copySchema, &copyOut); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}
	return &copyOut, nil
}
