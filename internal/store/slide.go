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

// SlideStore handles all slide-related database operations. Slide order is
// 1-based and contiguous within a project; ReplaceForProject is the only
// write that changes the set of slides, so the contiguity invariant holds
// as long as its input does.
type SlideStore struct {
	db *sql.DB
}

// NewSlideStore creates a new SlideStore with the given database connection.
func NewSlideStore(db *sql.DB) *SlideStore {
	return &SlideStore{db: db}
}

const slideColumns = `
	id, project_id, slide_order, purpose, message, sub_message,
	additional_text, emotion, visual_hint, story_note, key_takeaway,
	message_alternatives, narration, cta_button_text, cta_urgency,
	selected_template_id, exclude_person, prompt, created_at, updated_at`

// ListByProject returns a project's slides in deck order.
func (s *SlideStore) ListByProject(projectID uuid.UUID) ([]models.Slide, error) {
	rows, err := s.db.Query(`
		SELECT`+slideColumns+`
		FROM slides
		WHERE project_id = $1
		ORDER BY slide_order
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var items []models.Slide
	for rows.Next() {
		sl, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		items = append(items, *sl)
	}
	return items, rows.Err()
}

// FindByID retrieves a slide by its UUID. Returns nil if not found.
func (s *SlideStore) FindByID(id uuid.UUID) (*models.Slide, error) {
	row := s.db.QueryRow(`SELECT`+slideColumns+` FROM slides WHERE id = $1`, id)

	sl, err := scanSlide(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find slide by id: %w", err)
	}
	return sl, nil
}

// ReplaceForProject atomically swaps a project's slides for a freshly
// generated set. Used after structure generation; a failed transaction
// leaves the previous deck untouched.
func (s *SlideStore) ReplaceForProject(projectID uuid.UUID, slides []models.Slide) ([]models.Slide, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("replace slides: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM slides WHERE project_id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("replace slides delete: %w", err)
	}

	inserted := make([]models.Slide, 0, len(slides))
	for _, sl := range slides {
		additional, err := jsonbValue(sl.AdditionalText)
		if err != nil {
			return nil, fmt.Errorf("replace slides: %w", err)
		}
		alternatives, err := jsonbValue(sl.MessageAlternatives)
		if err != nil {
			return nil, fmt.Errorf("replace slides: %w", err)
		}

		row := tx.QueryRow(`
			INSERT INTO slides (project_id, slide_order, purpose, message, sub_message,
			                    additional_text, emotion, visual_hint, story_note,
			                    key_takeaway, message_alternatives, narration,
			                    cta_button_text, cta_urgency, selected_template_id,
			                    exclude_person, prompt)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING`+slideColumns,
			projectID, sl.Order, sl.Purpose, sl.Message, sl.SubMessage,
			additional, sl.Emotion, sl.VisualHint, sl.StoryNote,
			sl.KeyTakeaway, alternatives, sl.Narration,
			sl.CTAButtonText, sl.CTAUrgency, sl.SelectedTemplateID,
			sl.ExcludePerson, sl.Prompt,
		)

		out, err := scanSlide(row)
		if err != nil {
			return nil, fmt.Errorf("replace slides insert: %w", err)
		}
		inserted = append(inserted, *out)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace slides commit: %w", err)
	}
	return inserted, nil
}

// Update modifies a slide's copy fields and template pairing. The slide's
// order and project are immutable here.
func (s *SlideStore) Update(sl *models.Slide) error {
	additional, err := jsonbValue(sl.AdditionalText)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	alternatives, err := jsonbValue(sl.MessageAlternatives)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE slides SET
			purpose = $1, message = $2, sub_message = $3, additional_text = $4,
			emotion = $5, visual_hint = $6, story_note = $7, key_takeaway = $8,
			message_alternatives = $9, narration = $10, cta_button_text = $11,
			cta_urgency = $12, selected_template_id = $13, exclude_person = $14,
			updated_at = NOW()
		WHERE id = $15
	`, sl.Purpose, sl.Message, sl.SubMessage, additional,
		sl.Emotion, sl.VisualHint, sl.StoryNote, sl.KeyTakeaway,
		alternatives, sl.Narration, sl.CTAButtonText,
		sl.CTAUrgency, sl.SelectedTemplateID, sl.ExcludePerson, sl.ID,
	)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	return nil
}

// UpdatePrompt caches a rendered prompt on the slide.
func (s *SlideStore) UpdatePrompt(id uuid.UUID, prompt string) error {
	_, err := s.db.Exec(`
		UPDATE slides SET prompt = $1, updated_at = NOW() WHERE id = $2
	`, prompt, id)
	if err != nil {
		return fmt.Errorf("update slide prompt: %w", err)
	}
	return nil
}

func scanSlide(row scanner) (*models.Slide, error) {
	sl := &models.Slide{}
	var additionalRaw, alternativesRaw []byte

	err := row.Scan(
		&sl.ID, &sl.ProjectID, &sl.Order, &sl.Purpose, &sl.Message, &sl.SubMessage,
		&additionalRaw, &sl.Emotion, &sl.VisualHint, &sl.StoryNote, &sl.KeyTakeaway,
		&alternativesRaw, &sl.Narration, &sl.CTAButtonText, &sl.CTAUrgency,
		&sl.SelectedTemplateID, &sl.ExcludePerson, &sl.Prompt, &sl.CreatedAt, &sl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := scanJSONB(additionalRaw, &sl.AdditionalText); err != nil {
		return nil, err
	}
	if err := scanJSONB(alternativesRaw, &sl.MessageAlternatives); err != nil {
		return nil, err
	}
	return sl, nil
}
