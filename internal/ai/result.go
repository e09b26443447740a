// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "strings"

// URLResolver is implemented by typed response envelopes that can surface
// their result URL directly.
type URLResolver interface {
	ResultURL() string
}

// ResolveResultURL locates the first usable resource URL inside a
// loosely-typed image-generation response. The known shapes are tried in
// order, recursively:
//
//  1. a bare string starting with an HTTP scheme
//  2. a sequence: first element that resolves
//  3. an object: a URLResolver accessor, then an "output" field
//     (recursed), then a "urls" map whose "get" entry is a URL string
//
// The boolean is false when nothing matches; that is an expected outcome,
// not an error.
func ResolveResultURL(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if isHTTPURL(t) {
			return t, true
		}

	case []any:
		for _, item := range t {
			if url, ok := ResolveResultURL(item); ok {
				return url, true
			}
		}

	case []string:
		for _, item := range t {
			if isHTTPURL(item) {
				return item, true
			}
		}

	case URLResolver:
		if url := t.ResultURL(); isHTTPURL(url) {
			return url, true
		}

	case map[string]any:
		if out, ok := t["output"]; ok {
			if url, ok := ResolveResultURL(out); ok {
				return url, true
			}
		}
		if urls, ok := t["urls"].(map[string]any); ok {
			if get, ok := urls["get"].(string); ok && isHTTPURL(get) {
				return get, true
			}
		}
	}

	return "", false
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
