// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"slideforge/internal/models"
)

// TemplateStore handles the prompt-template catalog. The catalog is listed
// most recent first; that order is the ranking baseline the matcher builds
// on.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `
	id, name, category, subcategory, sample_image_url, image_urls,
	base_prompt, style, slots, created_at, updated_at`

// List returns the whole catalog, most recent first.
func (s *TemplateStore) List() ([]models.PromptTemplate, error) {
	rows, err := s.db.Query(`
		SELECT` + templateColumns + `
		FROM prompt_templates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var items []models.PromptTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.PromptTemplate, error) {
	row := s.db.QueryRow(`SELECT`+templateColumns+` FROM prompt_templates WHERE id = $1`, id)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(t *models.PromptTemplate) (*models.PromptTemplate, error) {
	imageURLs, err := jsonbValue(t.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	style, err := jsonbValue(t.Style)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	slots, err := jsonbValue(t.Slots)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO prompt_templates (name, category, subcategory, sample_image_url,
		                              image_urls, base_prompt, style, slots)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING`+templateColumns,
		t.Name, t.Category, t.Subcategory, nullString(t.SampleImageURL),
		imageURLs, t.BasePrompt, style, slots,
	)

	out, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return out, nil
}

// Update modifies a template's metadata and legacy prompt text.
func (s *TemplateStore) Update(t *models.PromptTemplate) error {
	imageURLs, err := jsonbValue(t.ImageURLs)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE prompt_templates SET
			name = $1, category = $2, subcategory = $3, sample_image_url = $4,
			image_urls = $5, base_prompt = $6, updated_at = NOW()
		WHERE id = $7
	`, t.Name, t.Category, t.Subcategory, nullString(t.SampleImageURL),
		imageURLs, t.BasePrompt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// UpdateStructure persists extracted structured data. Both parts are
// written together; a template never ends up with style but no slots.
func (s *TemplateStore) UpdateStructure(id uuid.UUID, style *models.TemplateStyle, slots []models.TextSlot) error {
	stylePayload, err := jsonbValue(style)
	if err != nil {
		return fmt.Errorf("update template structure: %w", err)
	}
	slotsPayload, err := jsonbValue(slots)
	if err != nil {
		return fmt.Errorf("update template structure: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE prompt_templates SET style = $1, slots = $2, updated_at = NOW()
		WHERE id = $3
	`, stylePayload, slotsPayload, id)
	if err != nil {
		return fmt.Errorf("update template structure: %w", err)
	}
	return nil
}

// UpdateSampleImage replaces the template's sample image URL, typically
// after a bulk regeneration.
func (s *TemplateStore) UpdateSampleImage(id uuid.UUID, url string) error {
	_, err := s.db.Exec(`
		UPDATE prompt_templates SET sample_image_url = $1, updated_at = NOW()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return fmt.Errorf("update template sample image: %w", err)
	}
	return nil
}

// Delete removes a template. Slides referencing it keep their id; lookups
// treat a dangling selected_template_id as "no template chosen".
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM prompt_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func scanTemplate(row scanner) (*models.PromptTemplate, error) {
	t := &models.PromptTemplate{}
	var sampleURL sql.NullString
	var imageURLsRaw, styleRaw, slotsRaw []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.Category, &t.Subcategory, &sampleURL, &imageURLsRaw,
		&t.BasePrompt, &styleRaw, &slotsRaw, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.SampleImageURL = sampleURL.String
	if err := scanJSONB(imageURLsRaw, &t.ImageURLs); err != nil {
		return nil, err
	}
	if len(styleRaw) > 0 {
		t.Style = &models.TemplateStyle{}
		if err := scanJSONB(styleRaw, t.Style); err != nil {
			return nil, err
		}
	}
	if err := scanJSONB(slotsRaw, &t.Slots); err != nil {
		return nil, err
	}
	return t, nil
}
