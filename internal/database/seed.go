package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"slideforge/internal/models"
	"slideforge/internal/store"
)

// Seed populates the database with initial development data: a small
// template catalog with both legacy and structured entries so the matcher
// and both assembler paths are exercisable out of the box.
func Seed(db *sql.DB) error {
	// Check if any templates exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompt_templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	templates := store.NewTemplateStore(db)
	for _, tpl := range seedTemplates() {
		created, err := templates.Create(&tpl)
		if err != nil {
			return fmt.Errorf("seed insert template %q: %w", tpl.Name, err)
		}
		if tpl.Style != nil {
			if err := templates.UpdateStructure(created.ID, tpl.Style, tpl.Slots); err != nil {
				return fmt.Errorf("seed template structure %q: %w", tpl.Name, err)
			}
		}
	}

	slog.Info("database seeded with template catalog", "templates", len(seedTemplates()))
	return nil
}

func seedTemplates() []models.PromptTemplate {
	return []models.PromptTemplate{
		{
			Name:     "シンプル見出し型",
			Category: "汎用",
			BasePrompt: "Vertical 9:16 ad creative, clean white background. " +
				"Large bold headline 「メインコピーをここに」 at the top, " +
				"supporting line 「サブコピーをここに」 below it in a smaller weight.",
		},
		{
			Name:     "婚活・寄り添い型",
			Category: "婚活",
			BasePrompt: "Vertical 9:16 ad, warm soft-focus photo of a smiling woman in a cafe. " +
				"Emotional headline 「共感コピーをここに」 across the upper third, " +
				"reassuring line 「安心コピーをここに」 near the bottom.",
		},
		{
			Name:     "転職・実績訴求型",
			Category: "転職",
			BasePrompt: "Vertical 9:16 ad, confident businessperson against a city skyline. " +
				"Achievement headline 「実績コピーをここに」 in bold condensed type.",
		},
		{
			Name:     "比較・チェックリスト型",
			Category: "汎用",
			Style: &models.TemplateStyle{
				Photography: "studio product photography, shallow depth of field",
				Lighting:    "soft diffused key light from the upper left",
				DesignStyle: "flat comparison layout with rounded boxes",
				Layout:      "被写体は左側 55%、テキストは右側 45%",
				Typography:  "bold gothic headings, medium weight body",
				Colors:      "navy, white and a single accent of orange",
				Mood:        "trustworthy, decisive",
				Decorations: []string{"check marks", "rounded comparison boxes"},
			},
			Slots: []models.TextSlot{
				{ID: "headline", Description: "上部の見出し。サービス名と比較の切り口"},
				{ID: "check_list", Description: "中段のチェックリスト。3項目の箇条書き"},
				{ID: "bottom_note", Description: "下部の注意書き。小さめの補足テキスト"},
			},
		},
		{
			Name:     "美容・ビフォーアフター型",
			Category: "美容",
			Style: &models.TemplateStyle{
				Photography: "bright beauty photography, clean skin tones",
				Lighting:    "high-key ring light",
				DesignStyle: "split before/after composition",
				Layout:      "被写体は右側 60%、テキストは左側 40%",
				Typography:  "elegant mincho headings",
				Colors:      "blush pink and ivory",
				Mood:        "aspirational, gentle",
				Decorations: []string{"sparkle accents"},
			},
			Slots: []models.TextSlot{
				{ID: "top_copy", Description: "上部のキャッチコピー"},
				{ID: "center_emphasis", Description: "中央の強調テキスト。警告や数字の訴求"},
			},
		},
	}
}
