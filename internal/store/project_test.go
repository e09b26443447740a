// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store_test

import (
	"testing"

	"github.com/google/uuid"

	"slideforge/internal/models"
	"slideforge/internal/store"
	"slideforge/internal/workflow"
)

func TestProjectLifecycle(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)

	const url = "https://example.com/store-test-lp"
	t.Cleanup(func() { cleanProjects(t, db, url) })

	owner := uuid.New()
	p, err := s.Create(owner, url)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != workflow.StatusURLInput {
		t.Errorf("new project status = %s", p.Status)
	}
	if p.Analysis != nil {
		t.Errorf("new project should have no analysis")
	}

	if err := s.UpdateStatus(p.ID, workflow.StatusAnalyzing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	analysis := &models.MarketingAnalysis{
		BusinessType: "婚活",
		Target:       "30代女性",
		PainPoints:   []string{"出会いがない"},
		Solution:     "伴走型サポート",
	}
	if err := s.UpdateAnalysis(p.ID, analysis); err != nil {
		t.Fatalf("UpdateAnalysis: %v", err)
	}

	count := 7
	if err := s.UpdateSupplement(p.ID, []string{"返金保証"}, &count); err != nil {
		t.Fatalf("UpdateSupplement: %v", err)
	}

	got, err := s.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != workflow.StatusAnalyzing {
		t.Errorf("status = %s", got.Status)
	}
	if got.Analysis == nil || got.Analysis.BusinessType != "婚活" {
		t.Errorf("analysis did not round-trip: %+v", got.Analysis)
	}
	if len(got.EmphasisPoints) != 1 || got.SlideCount == nil || *got.SlideCount != 7 {
		t.Errorf("supplement did not round-trip: %+v", got)
	}

	list, err := s.ListByOwner(owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListByOwner returned %d projects", len(list))
	}

	if err := s.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(p.ID)
	if err != nil || gone != nil {
		t.Errorf("deleted project still found: %v, %v", gone, err)
	}
}

func TestProjectFindMissing(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)

	p, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing project, got %+v", p)
	}
}
