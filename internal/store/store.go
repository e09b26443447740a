// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Each entity has
// its own store type wrapping a shared *sql.DB pool. Structured payloads
// (marketing analysis, template style and slots, text lists) are persisted
// as JSONB columns and round-tripped through the models' JSON tags.
package store

import (
	"encoding/json"
	"fmt"
)

// jsonbValue marshals v for a JSONB column. nil-able pointers map to SQL
// NULL so that "absent" and "empty object" stay distinguishable.
func jsonbValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return data, nil
}

// scanJSONB unmarshals a nullable JSONB column into out. A NULL column
// leaves out untouched.
func scanJSONB(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}
	return nil
}

// nullString maps the empty string to SQL NULL for nullable text columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
