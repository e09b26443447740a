// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store_test

import (
	"testing"

	"github.com/google/uuid"

	"slideforge/internal/models"
	"slideforge/internal/store"
)

func testSlides(n int) []models.Slide {
	slides := make([]models.Slide, 0, n)
	for i := 0; i < n; i++ {
		slides = append(slides, models.Slide{
			Order:          i + 1,
			Purpose:        models.PurposeBenefit,
			Message:        "メッセージ",
			AdditionalText: []string{},
		})
	}
	if n > 0 {
		slides[n-1].Purpose = models.PurposeCTA
		slides[n-1].CTAButtonText = "無料相談はこちら"
	}
	return slides
}

func TestSlideReplaceAndList(t *testing.T) {
	db := testDB(t)
	projects := store.NewProjectStore(db)
	slides := store.NewSlideStore(db)

	const url = "https://example.com/slide-store-test"
	t.Cleanup(func() { cleanProjects(t, db, url) })

	p, err := projects.Create(uuid.New(), url)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	first, err := slides.ReplaceForProject(p.ID, testSlides(6))
	if err != nil {
		t.Fatalf("ReplaceForProject: %v", err)
	}
	if len(first) != 6 {
		t.Fatalf("inserted %d slides", len(first))
	}

	// Regeneration replaces the deck wholesale.
	second, err := slides.ReplaceForProject(p.ID, testSlides(7))
	if err != nil {
		t.Fatalf("ReplaceForProject again: %v", err)
	}
	if len(second) != 7 {
		t.Fatalf("replacement kept %d slides", len(second))
	}

	listed, err := slides.ListByProject(p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(listed) != 7 {
		t.Fatalf("listed %d slides", len(listed))
	}
	for i, sl := range listed {
		if sl.Order != i+1 {
			t.Errorf("slide %d order = %d", i, sl.Order)
		}
	}
	if listed[6].CTAButtonText != "無料相談はこちら" {
		t.Errorf("cta fields did not round-trip: %+v", listed[6])
	}
}

func TestSlideUpdateAndPromptCache(t *testing.T) {
	db := testDB(t)
	projects := store.NewProjectStore(db)
	slides := store.NewSlideStore(db)

	const url = "https://example.com/slide-update-test"
	t.Cleanup(func() { cleanProjects(t, db, url) })

	p, err := projects.Create(uuid.New(), url)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	inserted, err := slides.ReplaceForProject(p.ID, testSlides(6))
	if err != nil {
		t.Fatalf("ReplaceForProject: %v", err)
	}

	sl := inserted[0]
	sl.Message = "新しい見出し"
	sl.ExcludePerson = true
	sl.AdditionalText = []string{"追加テキスト"}
	if err := slides.Update(&sl); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := slides.UpdatePrompt(sl.ID, "rendered prompt"); err != nil {
		t.Fatalf("UpdatePrompt: %v", err)
	}

	got, err := slides.FindByID(sl.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Message != "新しい見出し" || !got.ExcludePerson {
		t.Errorf("update did not round-trip: %+v", got)
	}
	if len(got.AdditionalText) != 1 || got.Prompt != "rendered prompt" {
		t.Errorf("fields did not round-trip: %+v", got)
	}
	if got.Order != 1 {
		t.Errorf("update must not change order, got %d", got.Order)
	}
}

func TestSlidesCascadeWithProject(t *testing.T) {
	db := testDB(t)
	projects := store.NewProjectStore(db)
	slides := store.NewSlideStore(db)

	const url = "https://example.com/slide-cascade-test"
	t.Cleanup(func() { cleanProjects(t, db, url) })

	p, err := projects.Create(uuid.New(), url)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := slides.ReplaceForProject(p.ID, testSlides(6)); err != nil {
		t.Fatalf("ReplaceForProject: %v", err)
	}

	if err := projects.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	left, err := slides.ListByProject(p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("slides survived project deletion: %d", len(left))
	}
}
