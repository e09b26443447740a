// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package match ranks the design-template catalog against a project or a
// single slide. The category-hint and purpose-keyword tables below are the
// matching contract: new business types or slide purposes require an
// explicit table entry, never a silent fallback.
package match

import (
	"strings"

	"slideforge/internal/models"
)

// PageSize bounds the recommended list.
const PageSize = 6

// GenericCategory marks general-purpose templates that fill recommendation
// slots when no category-specific template matches.
const GenericCategory = "汎用"

// categoryHints maps business-type substrings to a template category.
var categoryHints = []struct {
	keywords []string
	category string
}{
	{[]string{"婚活", "マッチング", "恋愛", "出会い"}, "婚活"},
	{[]string{"転職", "求人", "採用", "キャリア"}, "転職"},
	{[]string{"EC", "通販", "物販", "ショップ"}, "EC"},
	{[]string{"美容", "エステ", "脱毛", "サロン"}, "美容"},
	{[]string{"スクール", "講座", "教育", "学習"}, "スクール"},
}

// CategoryHint derives a coarse template-category hint from the analyzed
// business type. Returns "" when nothing in the table matches.
func CategoryHint(businessType string) string {
	for _, h := range categoryHints {
		for _, kw := range h.keywords {
			if strings.Contains(businessType, kw) {
				return h.category
			}
		}
	}
	return ""
}

// purposeKeywords maps each slide purpose to the substrings looked up in a
// template's category or name during slide-level refinement.
var purposeKeywords = map[models.SlidePurpose][]string{
	models.PurposeIdealImage:  {"理想", "憧れ", "ビフォーアフター"},
	models.PurposeEmpathy:     {"共感", "悩み", "あるある"},
	models.PurposeRisk:        {"リスク", "警告", "注意"},
	models.PurposeSolution:    {"解決", "提案", "サービス"},
	models.PurposeBenefit:     {"ベネフィット", "メリット", "効果"},
	models.PurposeSocialProof: {"実績", "証拠", "データ"},
	models.PurposeComparison:  {"比較", "他社"},
	models.PurposeFlow:        {"流れ", "ステップ", "手順"},
	models.PurposeTestimonial: {"体験談", "口コミ", "お客様の声"},
	models.PurposeCTA:         {"CTA", "行動", "申込", "登録"},
}

// KeywordsForPurpose returns the keyword list for a purpose. The second
// return is false for purposes missing from the table, which callers treat
// as "no refinement", not an error.
func KeywordsForPurpose(p models.SlidePurpose) ([]string, bool) {
	kws, ok := purposeKeywords[p]
	return kws, ok
}
