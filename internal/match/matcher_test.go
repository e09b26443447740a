// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package match

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"slideforge/internal/models"
)

// tpl builds a catalog entry. Catalogs are ordered most recent first, so
// index 0 is the newest template.
func tpl(name, category string) models.PromptTemplate {
	return models.PromptTemplate{ID: uuid.New(), Name: name, Category: category}
}

func catalogIDs(ts []models.PromptTemplate) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool, len(ts))
	for _, t := range ts {
		ids[t.ID] = true
	}
	return ids
}

func TestCategoryHint(t *testing.T) {
	tests := []struct {
		businessType string
		want         string
	}{
		{"婚活マッチングサービス", "婚活"},
		{"ITエンジニア向け転職エージェント", "転職"},
		{"健康食品のEC通販", "EC"},
		{"脱毛サロン", "美容"},
		{"プログラミングスクール", "スクール"},
		{"地域の工務店", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CategoryHint(tt.businessType); got != tt.want {
			t.Errorf("CategoryHint(%q) = %q, want %q", tt.businessType, got, tt.want)
		}
	}
}

// Scenario: 10 templates, 3 tagged 婚活, hint resolves to 婚活. The three
// category matches lead in recency order, then the three most recent
// generic/empty-category templates.
func TestRecommendCategoryRanking(t *testing.T) {
	catalog := []models.PromptTemplate{
		tpl("kon-1", "婚活"),
		tpl("gen-1", "汎用"),
		tpl("ec-1", "EC"),
		tpl("kon-2", "婚活"),
		tpl("empty-1", ""),
		tpl("ec-2", "EC"),
		tpl("gen-2", "汎用"),
		tpl("kon-3", "婚活"),
		tpl("empty-2", ""),
		tpl("ec-3", "EC"),
	}
	analysis := &models.MarketingAnalysis{BusinessType: "婚活マッチングサービス"}

	res := Recommend(catalog, analysis)

	if len(res.Recommended) != PageSize {
		t.Fatalf("recommended size = %d, want %d", len(res.Recommended), PageSize)
	}
	wantOrder := []string{"kon-1", "kon-2", "kon-3", "gen-1", "empty-1", "gen-2"}
	for i, want := range wantOrder {
		if res.Recommended[i].Name != want {
			t.Errorf("recommended[%d] = %s, want %s", i, res.Recommended[i].Name, want)
		}
	}
	if len(res.Others) != 4 {
		t.Errorf("others size = %d, want 4", len(res.Others))
	}
}

func TestRecommendNoHintFallsBackToGenericThenRecent(t *testing.T) {
	catalog := []models.PromptTemplate{
		tpl("ec-1", "EC"),
		tpl("gen-1", "汎用"),
		tpl("ec-2", "EC"),
	}
	res := Recommend(catalog, &models.MarketingAnalysis{BusinessType: "整体院"})

	if res.Recommended[0].Name != "gen-1" {
		t.Errorf("generic template should lead, got %s", res.Recommended[0].Name)
	}
	if len(res.Recommended) != 3 || len(res.Others) != 0 {
		t.Errorf("small catalog should be fully recommended: %d/%d", len(res.Recommended), len(res.Others))
	}
}

// Recommendation bound: recommended never exceeds PageSize and the union
// with others is exactly the catalog, duplicate-free.
func TestRecommendBoundAndPartition(t *testing.T) {
	var catalog []models.PromptTemplate
	for i := 0; i < 23; i++ {
		catalog = append(catalog, tpl(fmt.Sprintf("t-%d", i), []string{"婚活", "汎用", "", "EC"}[i%4]))
	}

	for _, analysis := range []*models.MarketingAnalysis{
		nil,
		{BusinessType: "婚活"},
		{BusinessType: "something unknown"},
	} {
		res := Recommend(catalog, analysis)
		if len(res.Recommended) > PageSize {
			t.Errorf("recommended exceeds page size: %d", len(res.Recommended))
		}
		if len(res.Recommended)+len(res.Others) != len(catalog) {
			t.Errorf("partition size mismatch: %d + %d != %d",
				len(res.Recommended), len(res.Others), len(catalog))
		}
		seen := make(map[uuid.UUID]bool)
		for _, t2 := range append(append([]models.PromptTemplate{}, res.Recommended...), res.Others...) {
			if seen[t2.ID] {
				t.Errorf("duplicate template %s in result", t2.Name)
			}
			seen[t2.ID] = true
		}
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	res := Recommend(nil, &models.MarketingAnalysis{BusinessType: "婚活"})
	if len(res.Recommended) != 0 || len(res.Others) != 0 {
		t.Errorf("empty catalog should yield empty lists")
	}

	res = RecommendForSlide(nil, nil, models.PurposeCTA, 0)
	if len(res.Recommended) != 0 || len(res.Others) != 0 {
		t.Errorf("empty catalog should yield empty lists at slide level")
	}
}

func TestRecommendForSlidePurposeRefinement(t *testing.T) {
	catalog := []models.PromptTemplate{
		tpl("plain-1", "汎用"),
		tpl("体験談デザイン", "汎用"),
		tpl("plain-2", ""),
		tpl("お客様の声テンプレ", "EC"),
	}

	res := RecommendForSlide(catalog, nil, models.PurposeTestimonial, 0)
	if len(res.Recommended) < 2 {
		t.Fatalf("expected matched templates to lead, got %d", len(res.Recommended))
	}
	if res.Recommended[0].Name != "体験談デザイン" && res.Recommended[1].Name != "体験談デザイン" {
		t.Errorf("testimonial template not in recommended: %v", res.Recommended)
	}

	// No keyword matches: fall back to the project-level ranking.
	fallback := RecommendForSlide(catalog, nil, models.PurposeComparison, 0)
	base := Recommend(catalog, nil)
	if len(fallback.Recommended) != len(base.Recommended) {
		t.Errorf("fallback should equal project-level ranking")
	}
}

// Pagination exhaustion: increasing offsets page through others without
// ever repeating an id, until the catalog is exhausted.
func TestRecommendForSlidePagination(t *testing.T) {
	var catalog []models.PromptTemplate
	for i := 0; i < 20; i++ {
		catalog = append(catalog, tpl(fmt.Sprintf("t-%d", i), "汎用"))
	}

	seen := make(map[uuid.UUID]bool)
	first := RecommendForSlide(catalog, nil, models.PurposeBenefit, 0)
	for _, x := range first.Recommended {
		seen[x.ID] = true
	}

	total := len(first.Recommended)
	for offset := 1; ; offset++ {
		res := RecommendForSlide(catalog, nil, models.PurposeBenefit, offset)
		if len(res.Recommended) == 0 {
			if len(res.Others) != 0 {
				t.Errorf("exhausted page should have empty others")
			}
			break
		}
		if len(res.Recommended) > PageSize {
			t.Errorf("offset %d recommended exceeds page size", offset)
		}
		for _, x := range res.Recommended {
			if seen[x.ID] {
				t.Errorf("template %s repeated at offset %d", x.Name, offset)
			}
			seen[x.ID] = true
		}
		total += len(res.Recommended)
		if offset > 10 {
			t.Fatal("pagination did not terminate")
		}
	}

	if total != len(catalog) {
		t.Errorf("pagination returned %d of %d templates", total, len(catalog))
	}

	if ids := catalogIDs(catalog); len(ids) != len(seen) {
		t.Errorf("seen %d distinct ids, want %d", len(seen), len(ids))
	}
}
