// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt assembles the final prompt string consumed by the
// image-generation collaborator. Structured prompts are built as an ordered
// list of labeled sections; the overlay transform edits that list before
// rendering, so no transform ever rewrites an already-rendered string.
package prompt

import "strings"

// Section labels used by the structured builder and the overlay transform.
const (
	SectionBackground  = "BACKGROUND"
	SectionMainSubject = "MAIN SUBJECT"
	SectionOverall     = "OVERALL STYLE"
	SectionTechnical   = "TECHNICAL"
	SectionLighting    = "LIGHTING"
	SectionTypography  = "TYPOGRAPHY"
	SectionColor       = "COLOR"
	SectionComposition = "COMPOSITION"
	SectionChecklist   = "FINAL CHECKLIST"
)

// Section is one labeled block of a structured prompt. An empty label
// renders the body bare (used for the opening sentence and disclaimers).
type Section struct {
	Label string
	Body  string
}

// Doc is an ordered list of sections plus the subject/text split parsed
// from the template layout. It is the unit the overlay transform operates
// on.
type Doc struct {
	SplitSubject int // percentage of the frame owned by the primary subject
	SplitText    int

	sections []Section
}

// Append adds a section at the end.
func (d *Doc) Append(label, body string) {
	d.sections = append(d.sections, Section{Label: label, Body: body})
}

// Prepend adds a section at the front.
func (d *Doc) Prepend(label, body string) {
	d.sections = append([]Section{{Label: label, Body: body}}, d.sections...)
}

// Replace swaps the body of the first section with the given label.
// Reports whether a section was found.
func (d *Doc) Replace(label, body string) bool {
	for i := range d.sections {
		if d.sections[i].Label == label {
			d.sections[i].Body = body
			return true
		}
	}
	return false
}

// Remove deletes every section with the given label. Reports whether at
// least one was removed.
func (d *Doc) Remove(label string) bool {
	kept := d.sections[:0]
	removed := false
	for _, s := range d.sections {
		if s.Label == label {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	d.sections = kept
	return removed
}

// Has reports whether a section with the given label exists.
func (d *Doc) Has(label string) bool {
	for _, s := range d.sections {
		if s.Label == label {
			return true
		}
	}
	return false
}

// Body returns the body of the first section with the given label.
func (d *Doc) Body(label string) (string, bool) {
	for _, s := range d.sections {
		if s.Label == label {
			return s.Body, true
		}
	}
	return "", false
}

// Render concatenates all sections into the final prompt string.
func (d *Doc) Render() string {
	var sb strings.Builder
	for i, s := range d.sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if s.Label != "" {
			sb.WriteString(s.Label)
			sb.WriteString(":\n")
		}
		sb.WriteString(s.Body)
	}
	return sb.String()
}
