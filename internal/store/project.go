// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"slideforge/internal/models"
	"slideforge/internal/workflow"
)

// ProjectStore handles all project-related database operations. Slides are
// owned by SlideStore; callers compose the two when a full project view is
// needed.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `
	id, owner_id, status, input_url, analysis, emphasis_points,
	slide_count, selected_template_id, created_at, updated_at`

// Create inserts a new project in the url_input state and returns it.
func (s *ProjectStore) Create(ownerID uuid.UUID, inputURL string) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (owner_id, status, input_url)
		VALUES ($1, $2, $3)
		RETURNING`+projectColumns, ownerID, workflow.StatusURLInput, inputURL)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT`+projectColumns+` FROM projects WHERE id = $1`, id)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// ListByOwner returns all projects for an owner, newest first.
func (s *ProjectStore) ListByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT`+projectColumns+`
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// UpdateStatus persists a status change. The legality of the transition is
// the workflow package's concern; the store writes what it is given.
func (s *ProjectStore) UpdateStatus(id uuid.UUID, status workflow.Status) error {
	_, err := s.db.Exec(`
		UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return nil
}

// UpdateAnalysis persists the analysis stage result.
func (s *ProjectStore) UpdateAnalysis(id uuid.UUID, analysis *models.MarketingAnalysis) error {
	payload, err := jsonbValue(analysis)
	if err != nil {
		return fmt.Errorf("update project analysis: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE projects SET analysis = $1, updated_at = NOW() WHERE id = $2
	`, payload, id)
	if err != nil {
		return fmt.Errorf("update project analysis: %w", err)
	}
	return nil
}

// UpdateSupplement persists the supplement-stage settings (emphasis points
// and requested slide count).
func (s *ProjectStore) UpdateSupplement(id uuid.UUID, emphasisPoints []string, slideCount *int) error {
	payload, err := jsonbValue(emphasisPoints)
	if err != nil {
		return fmt.Errorf("update project supplement: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE projects SET emphasis_points = $1, slide_count = $2, updated_at = NOW()
		WHERE id = $3
	`, payload, slideCount, id)
	if err != nil {
		return fmt.Errorf("update project supplement: %w", err)
	}
	return nil
}

// UpdateSelectedTemplate sets or clears the project-level default template.
func (s *ProjectStore) UpdateSelectedTemplate(id uuid.UUID, templateID *uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE projects SET selected_template_id = $1, updated_at = NOW() WHERE id = $2
	`, templateID, id)
	if err != nil {
		return fmt.Errorf("update project template: %w", err)
	}
	return nil
}

// Delete removes a project. Slides cascade at the schema level.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*models.Project, error) {
	p := &models.Project{}
	var analysisRaw, emphasisRaw []byte

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Status, &p.InputURL, &analysisRaw, &emphasisRaw,
		&p.SlideCount, &p.SelectedTemplateID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(analysisRaw) > 0 {
		p.Analysis = &models.MarketingAnalysis{}
		if err := scanJSONB(analysisRaw, p.Analysis); err != nil {
			return nil, err
		}
	}
	if err := scanJSONB(emphasisRaw, &p.EmphasisPoints); err != nil {
		return nil, err
	}
	return p, nil
}
