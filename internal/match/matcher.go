// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package match

import (
	"strings"

	"github.com/google/uuid"

	"slideforge/internal/models"
)

// Result is a ranked split of the catalog. Recommended is bounded by
// PageSize; Recommended and Others together are exactly the input catalog
// with no duplicates. An empty catalog yields two empty lists.
type Result struct {
	Recommended []models.PromptTemplate `json:"recommended"`
	Others      []models.PromptTemplate `json:"others"`
}

// Recommend ranks the catalog for a project. The catalog is expected in
// recency order (most recent first), which the ranking preserves within
// each pass:
//
//  1. templates whose category contains the business-type hint
//  2. generic or uncategorized templates
//  3. anything else, most recent first
func Recommend(catalog []models.PromptTemplate, analysis *models.MarketingAnalysis) Result {
	hint := ""
	if analysis != nil {
		hint = CategoryHint(analysis.BusinessType)
	}

	selected := make(map[uuid.UUID]bool, PageSize)
	recommended := make([]models.PromptTemplate, 0, PageSize)

	if hint != "" {
		for _, t := range catalog {
			if len(recommended) >= PageSize {
				break
			}
			if containsFold(t.Category, hint) {
				recommended = append(recommended, t)
				selected[t.ID] = true
			}
		}
	}

	for _, t := range catalog {
		if len(recommended) >= PageSize {
			break
		}
		if selected[t.ID] {
			continue
		}
		if t.Category == "" || t.Category == GenericCategory {
			recommended = append(recommended, t)
			selected[t.ID] = true
		}
	}

	for _, t := range catalog {
		if len(recommended) >= PageSize {
			break
		}
		if selected[t.ID] {
			continue
		}
		recommended = append(recommended, t)
		selected[t.ID] = true
	}

	others := make([]models.PromptTemplate, 0, len(catalog)-len(recommended))
	for _, t := range catalog {
		if !selected[t.ID] {
			others = append(others, t)
		}
	}

	return Result{Recommended: recommended, Others: others}
}

// RecommendForSlide refines the project-level ranking for one slide.
//
// At offset 0, the project-level recommended+others concatenation is
// partitioned by the purpose keyword table: if any template's category or
// name matches a keyword, the matched templates lead and the rest follow;
// otherwise the unrefined project ranking is returned.
//
// At offset > 0 ("more candidates"), the result pages strictly through the
// offset-0 others list: page `offset` becomes Recommended, pages below the
// offset are excluded, and everything after the page stays in Others. Ids
// returned at a lower offset are never repeated.
func RecommendForSlide(catalog []models.PromptTemplate, analysis *models.MarketingAnalysis, purpose models.SlidePurpose, offset int) Result {
	base := recommendForSlideFirstPage(catalog, analysis, purpose)
	if offset <= 0 {
		return base
	}

	pool := base.Others
	start := (offset - 1) * PageSize
	if start >= len(pool) {
		return Result{
			Recommended: []models.PromptTemplate{},
			Others:      []models.PromptTemplate{},
		}
	}
	end := start + PageSize
	if end > len(pool) {
		end = len(pool)
	}
	return Result{Recommended: pool[start:end], Others: pool[end:]}
}

// recommendForSlideFirstPage computes the offset-0 slide-level ranking.
func recommendForSlideFirstPage(catalog []models.PromptTemplate, analysis *models.MarketingAnalysis, purpose models.SlidePurpose) Result {
	base := Recommend(catalog, analysis)

	keywords, ok := KeywordsForPurpose(purpose)
	if !ok {
		return base
	}

	combined := make([]models.PromptTemplate, 0, len(base.Recommended)+len(base.Others))
	combined = append(combined, base.Recommended...)
	combined = append(combined, base.Others...)

	var matched, unmatched []models.PromptTemplate
	for _, t := range combined {
		if matchesAnyKeyword(t, keywords) {
			matched = append(matched, t)
		} else {
			unmatched = append(unmatched, t)
		}
	}

	if len(matched) == 0 {
		return base
	}

	n := len(matched)
	if n > PageSize {
		n = PageSize
	}
	others := make([]models.PromptTemplate, 0, len(combined)-n)
	others = append(others, matched[n:]...)
	others = append(others, unmatched...)

	return Result{Recommended: matched[:n], Others: others}
}

// matchesAnyKeyword checks a template's category and name against the
// purpose keyword list.
func matchesAnyKeyword(t models.PromptTemplate, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(t.Category, kw) || containsFold(t.Name, kw) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
