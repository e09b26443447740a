// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the external content- and
// image-generation collaborators (OpenAI, Gemini, Claude, Mistral). Each
// provider implements the Provider interface and handles its own HTTP
// communication; the Registry selects the active one by name. Optional
// capabilities (image generation, image-aware analysis) are expressed as
// separate interfaces a provider may additionally implement.
package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrExternalUnavailable marks a transport-level failure of a collaborator
// call. It is surfaced with the underlying message and never retried here.
var ErrExternalUnavailable = errors.New("ai: collaborator unavailable")

// Provider defines the interface that all AI providers must implement.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// VisionGenerator is an optional interface for providers that can include
// a reference image in a text-generation request. Used by the analysis
// stage when the project input is an image rather than a URL.
type VisionGenerator interface {
	GenerateWithImage(ctx context.Context, systemPrompt, userPrompt, imageURL string) (string, error)
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ModelImage string
	BaseURL    string
}

// Registry manages available AI providers and selects the active one.
// It supports runtime switching by changing the active provider name.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}

	return r
}

// Generate calls the active provider's Generate method. Transport errors
// are wrapped as ErrExternalUnavailable with the underlying message kept.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	out, err := p.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	return out, nil
}

// GenerateWithImage calls the active provider with a reference image if it
// supports vision input. Callers treat the unsupported case as reduced
// evidence and fall back to text-only generation.
func (r *Registry) GenerateWithImage(ctx context.Context, systemPrompt, userPrompt, imageURL string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	vg, ok := p.(VisionGenerator)
	if !ok {
		return "", fmt.Errorf("ai: provider %q does not support image input", p.Name())
	}
	out, err := vg.GenerateWithImage(ctx, systemPrompt, userPrompt, imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	return out, nil
}

// SupportsVision returns true if the active provider accepts image input.
func (r *Registry) SupportsVision() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(VisionGenerator)
	return ok
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. fakes in tests).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
