// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoUsableResult is returned when an image-generation envelope contains
// no resolvable result URL. Callers surface it as a retryable "could not
// retrieve generated result" failure, never a crash.
var ErrNoUsableResult = errors.New("ai: no usable result URL in response")

// ImageRequest describes one image-generation call.
type ImageRequest struct {
	Prompt          string
	AspectRatio     string   // e.g. "9:16", "1:1"
	ReferenceImages []string // URLs of reference images, may be empty
}

// ImageGenerator is an optional interface that AI providers can implement
// to support image generation. The return value is the provider's response
// envelope, decoded but deliberately untyped: shapes differ per provider
// and are resolved by ResolveResultURL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (any, error)
}

// GenerateImageURL calls the active provider's image generation if
// supported and resolves the response envelope to a single result URL.
func (r *Registry) GenerateImageURL(ctx context.Context, req ImageRequest) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}

	ig, ok := p.(ImageGenerator)
	if !ok {
		return "", fmt.Errorf("ai: provider %q does not support image generation", p.Name())
	}

	envelope, err := ig.GenerateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}

	url, ok := ResolveResultURL(envelope)
	if !ok {
		return "", ErrNoUsableResult
	}
	return url, nil
}

// SupportsImageGeneration returns true if the active provider can generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}
