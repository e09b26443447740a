// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline orchestrates the content-generation stages that turn a
// landing page into slide briefs: analysis, optional enrichment, structure
// generation and per-slide content filling. Each stage is a synchronous
// call into the content-generation collaborator whose JSON output is
// validated against an embedded schema before it is trusted.
//
// Stages are non-idempotent: callers persist a stage's result before
// invoking the next one, and a failed stage never partially mutates
// anything the caller already persisted.
package pipeline

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"slideforge/internal/extract"
)

// Stage errors. Malformed* mean the collaborator answered but its output
// failed schema validation; the stage aborts and project status is left
// unchanged by the caller.
var (
	ErrMalformedAnalysis  = errors.New("pipeline: analysis output failed validation")
	ErrMalformedStructure = errors.New("pipeline: structure output failed validation")
	ErrEnrichmentFailed   = errors.New("pipeline: enrichment failed")
)

// Generator is the content-generation collaborator. Satisfied by
// *ai.Registry; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateWithImage(ctx context.Context, systemPrompt, userPrompt, imageURL string) (string, error)
	SupportsVision() bool
}

// PageFetcher is the landing-page extraction collaborator. Satisfied by
// *extract.Client.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (extract.Page, error)
}

// Pipeline holds the collaborator clients, constructed once at process
// start and passed in explicitly.
type Pipeline struct {
	gen     Generator
	fetcher PageFetcher
	log     *slog.Logger
}

// New creates a pipeline. fetcher may be nil, in which case analysis runs
// on the URL alone (reduced evidence).
func New(gen Generator, fetcher PageFetcher, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{gen: gen, fetcher: fetcher, log: log}
}

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	analysisSchema  = mustSchema("analysis.schema.json")
	copySchema      = mustSchema("copy.schema.json")
	structureSchema = mustSchema("structure.schema.json")
	contentSchema   = mustSchema("content.schema.json")
	templateSchema  = mustSchema("template.schema.json")
)

func mustSchema(name string) *jsonschema.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(err)
	}
	return jsonschema.MustCompileString(name, string(data))
}

// decodeValidated extracts the JSON object from a model response, checks
// it against the schema and unmarshals it into out.
func decodeValidated(response string, schema *jsonschema.Schema, out any) error {
	raw := extractJSON(response)
	if raw == "" {
		return errors.New("no JSON object in response")
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// marshalContext renders a context object as indented JSON for inclusion
// in a user prompt.
func marshalContext(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractJSON strips markdown code fences and surrounding prose, returning
// the outermost JSON object in the response. Models wrap JSON in ```json
// fences or lead with a sentence often enough that this is the norm, not
// the exception.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
