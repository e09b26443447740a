// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"slideforge/internal/models"
)

// DefaultAspectRatio is used when the caller does not specify one.
// Ad slides are rendered as vertical creatives.
const DefaultAspectRatio = "9:16"

// slotKind classifies a text slot by its rendering treatment.
type slotKind int

const (
	slotPlain slotKind = iota
	slotList           // rounded boxes with check marks
	slotGlow           // large emphasized text with glow
	slotIcons          // horizontal row of circular icons
)

// BuildStructured assembles the section list for a structured template.
// The texts map of content must cover every slot id; coverage is validated
// upstream by the content-fill stage.
func BuildStructured(style models.TemplateStyle, slots []models.TextSlot, content models.GeneratedContent, aspectRatio string) *Doc {
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	d := &Doc{}
	d.SplitSubject, d.SplitText = parseLayoutSplit(style.Layout)
	split := d.splitLine()

	d.Append("", fmt.Sprintf(
		"Create a %s advertisement slide image with a %s mood, reproducing the reference design exactly with the text and subject described below.",
		aspectRatio, style.Mood,
	))

	bg := style.Colors
	if len(style.Decorations) > 0 {
		bg += "\nDecorative elements: " + strings.Join(style.Decorations, ", ") + "."
	}
	d.Append(SectionBackground, bg)

	subject := StripAlignment(content.Subject)
	body := fmt.Sprintf("Primary subject occupying %d%% of the frame: %s", d.SplitSubject, subject)
	if content.Scene != "" {
		body += "\nScene: " + content.Scene
	}
	d.Append(SectionMainSubject, body)

	labels := MatchSlotsToLabels(slots)
	for i, slot := range slots {
		d.Append(labels[i], renderSlotBody(slot, content.Texts[slot.ID]))
	}

	d.Append(SectionOverall, style.DesignStyle+"\n"+split)
	d.Append(SectionTechnical, style.Photography+"\n"+split)
	d.Append(SectionLighting, style.Lighting+"\n"+split)
	d.Append(SectionTypography, style.Typography+"\n"+split)
	d.Append(SectionColor, style.Colors+"\n"+split)
	d.Append(SectionComposition, style.Layout+"\n"+split)

	return d
}

// splitLine restates the subject/text split; every style block ends with it
// so the generator cannot drift from the layout.
func (d *Doc) splitLine() string {
	return fmt.Sprintf("Maintain the %d/%d subject/text split of the layout.", d.SplitSubject, d.SplitText)
}

// layoutPercent matches the first percentage in a layout description,
// e.g. "subject on the left 60%, text column right".
var layoutPercent = regexp.MustCompile(`([0-9]{1,2})\s*[%％]`)

// parseLayoutSplit extracts the primary-subject share from the free-text
// layout description. Defaults to 60/40 when no percentage is present.
func parseLayoutSplit(layout string) (subject, text int) {
	m := layoutPercent.FindStringSubmatch(layout)
	if m == nil {
		return 60, 40
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 || n >= 100 {
		return 60, 40
	}
	return n, 100 - n
}

// alignmentPhrase matches left/right alignment wording inside a subject
// description. Alignment is owned by the composition section; leftover
// phrases in the subject would contradict it.
var alignmentPhrase = regexp.MustCompile(`(?i)(,\s*)?\b(aligned to the (left|right)|(left|right)-aligned|(placed |positioned )?on the (left|right)( side)?( of the (frame|image))?)\b|[左右]寄せ|[左右]側に配置`)

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)

// StripAlignment removes alignment phrases from a subject description.
func StripAlignment(subject string) string {
	s := alignmentPhrase.ReplaceAllString(subject, "")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " .", ".")
	s = strings.ReplaceAll(s, " ,", ",")
	return strings.TrimSpace(s)
}

// Slot label keyword tables. A slot description names the region it fills;
// anything unrecognized gets the generic section label.
var slotLabelKeywords = []struct {
	label    string
	keywords []string
}{
	{"TOP TEXT", []string{"top", "header", "上部", "ヘッダー"}},
	{"MIDDLE TEXT", []string{"middle", "中段"}},
	{"CENTER TEXT", []string{"center", "centre", "中央"}},
	{"BOTTOM TEXT", []string{"bottom", "footer", "下部", "フッター"}},
}

// MatchSlotsToLabels infers the target label for each slot from keyword
// matches against its description. The result is positional: labels[i]
// belongs to slots[i].
func MatchSlotsToLabels(slots []models.TextSlot) []string {
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = inferSlotLabel(slot.Description)
	}
	return labels
}

func inferSlotLabel(description string) string {
	desc := strings.ToLower(description)
	for _, entry := range slotLabelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(desc, kw) {
				return entry.label
			}
		}
	}
	return "TEXT SECTION"
}

// classifySlot picks the decorative treatment for a slot. Checked in
// order: list-like, warning/center-like, bottom/symptom/icon-like, plain.
func classifySlot(description string) slotKind {
	desc := strings.ToLower(description)
	switch {
	case containsAny(desc, "list", "items", "checklist", "リスト", "箇条書き"):
		return slotList
	case containsAny(desc, "warning", "caution", "center", "centre", "警告", "注意", "中央"):
		return slotGlow
	case containsAny(desc, "bottom", "symptom", "icon", "下部", "症状", "アイコン"):
		return slotIcons
	default:
		return slotPlain
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// renderSlotBody renders one slot's text with its decorative instructions.
func renderSlotBody(slot models.TextSlot, text string) string {
	switch classifySlot(slot.Description) {
	case slotList:
		return fmt.Sprintf(
			"Render as a vertical list of rounded boxes, one item per line, each preceded by a check mark:\n「%s」", text)
	case slotGlow:
		return fmt.Sprintf(
			"Display as large emphasized text with a soft glow effect:\n「%s」", text)
	case slotIcons:
		return fmt.Sprintf(
			"Render as a horizontal row of circular icons, each captioned with one item:\n「%s」", text)
	default:
		return fmt.Sprintf("Display the text exactly as written:\n「%s」", text)
	}
}
