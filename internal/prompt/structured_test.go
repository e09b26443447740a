// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"
	"testing"

	"slideforge/internal/models"
)

func testStyle() models.TemplateStyle {
	return models.TemplateStyle{
		Photography: "studio portrait, 85mm lens, shallow depth of field",
		Lighting:    "soft key light from the upper left",
		DesignStyle: "clean modern flat design",
		Layout:      "subject on the left 65%, text column on the right",
		Typography:  "bold rounded gothic typeface",
		Colors:      "warm coral background with cream accents",
		Mood:        "hopeful and energetic",
		Decorations: []string{"confetti dots", "thin ribbon banner"},
	}
}

func TestParseLayoutSplit(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		subject int
		text    int
	}{
		{"explicit percentage", "subject on the left 65%, text right", 65, 35},
		{"full-width percent sign", "被写体は左側 70％", 70, 30},
		{"no percentage defaults", "subject left, text right", 60, 40},
		{"empty defaults", "", 60, 40},
		{"zero is rejected", "0% subject", 60, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, x := parseLayoutSplit(tt.layout)
			if s != tt.subject || x != tt.text {
				t.Errorf("parseLayoutSplit(%q) = %d/%d, want %d/%d", tt.layout, s, x, tt.subject, tt.text)
			}
		})
	}
}

func TestStripAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a smiling woman in her 30s, on the left side of the frame", "a smiling woman in her 30s"},
		{"businessman, left-aligned, holding a phone", "businessman, holding a phone"},
		{"30代の女性、左寄せ", "30代の女性、"},
		{"plain subject with no alignment", "plain subject with no alignment"},
	}
	for _, tt := range tests {
		if got := StripAlignment(tt.in); got != tt.want {
			t.Errorf("StripAlignment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchSlotsToLabels(t *testing.T) {
	slots := []models.TextSlot{
		{ID: "headline", Description: "main catch copy at the top of the image"},
		{ID: "warning", Description: "center warning text"},
		{ID: "symptoms", Description: "bottom row of symptom icons"},
		{ID: "note", Description: "small supplementary remark"},
	}
	labels := MatchSlotsToLabels(slots)
	want := []string{"TOP TEXT", "CENTER TEXT", "BOTTOM TEXT", "TEXT SECTION"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		description string
		want        slotKind
	}{
		{"checklist of benefits, one item per line", slotList},
		{"箇条書きで3点", slotList},
		{"center warning message", slotGlow},
		{"注意喚起のテキスト", slotGlow},
		{"bottom icons for each symptom", slotIcons},
		{"headline at the top", slotPlain},
	}
	for _, tt := range tests {
		if got := classifySlot(tt.description); got != tt.want {
			t.Errorf("classifySlot(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}
}

// Structured assembly completeness: every covered slot id produces a
// rendered section containing its generated text.
func TestBuildStructuredCompleteness(t *testing.T) {
	style := testStyle()
	slots := []models.TextSlot{
		{ID: "headline", Description: "top catch copy"},
		{ID: "benefits", Description: "list of three benefits"},
		{ID: "cta", Description: "bottom call to action icon row"},
	}
	content := models.GeneratedContent{
		Subject: "a confident woman in her 30s, on the left side",
		Scene:   "bright morning kitchen",
		Texts: map[string]string{
			"headline": "朝の5分で変わる",
			"benefits": "時短\n節約\n健康",
			"cta":      "今すぐ無料体験",
		},
	}

	doc := BuildStructured(style, slots, content, "")
	out := doc.Render()

	for id, text := range content.Texts {
		if !strings.Contains(out, text) {
			t.Errorf("rendered prompt missing text for slot %q", id)
		}
	}

	if !strings.Contains(out, DefaultAspectRatio) {
		t.Error("aspect ratio missing from opening sentence")
	}
	if !strings.Contains(out, style.Mood) {
		t.Error("mood missing from opening sentence")
	}
	if doc.SplitSubject != 65 || doc.SplitText != 35 {
		t.Errorf("split = %d/%d, want 65/35", doc.SplitSubject, doc.SplitText)
	}
	if !strings.Contains(out, "65% of the frame") {
		t.Error("subject section missing layout percentage")
	}
	if strings.Contains(out, "on the left side") {
		t.Error("alignment phrase survived in subject description")
	}

	for _, label := range []string{
		SectionBackground, SectionMainSubject, SectionOverall, SectionTechnical,
		SectionLighting, SectionTypography, SectionColor, SectionComposition,
	} {
		if !doc.Has(label) {
			t.Errorf("missing section %s", label)
		}
	}

	// Every style block restates the split.
	if n := strings.Count(out, "65/35 subject/text split"); n < 6 {
		t.Errorf("split restated %d times, want at least 6", n)
	}
}

func TestBuildStructuredDefaultsAspect(t *testing.T) {
	doc := BuildStructured(testStyle(), []models.TextSlot{{ID: "a", Description: "top"}},
		models.GeneratedContent{Subject: "s", Texts: map[string]string{"a": "x"}}, "1:1")
	if !strings.Contains(doc.Render(), "1:1") {
		t.Error("explicit aspect ratio not used")
	}
}
