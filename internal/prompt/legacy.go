// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"regexp"

	"slideforge/internal/models"
)

// Legacy templates mark replaceable text with corner-bracket quoting:
// 「sample headline」. The Nth quoted segment is paired with the Nth
// replacement value; segments beyond the supplied values pass through
// verbatim.
var quotedSegment = regexp.MustCompile(`「[^」]*」`)

// FindQuotedSegments returns the quoted segments of a legacy template in
// left-to-right order, brackets included.
func FindQuotedSegments(text string) []string {
	return quotedSegment.FindAllString(text, -1)
}

// FillPlaceholdersInOrder replaces the first len(replacements) quoted
// segments of text with the replacement values, keeping the brackets.
// Extra segments are returned unchanged; extra replacements are ignored.
func FillPlaceholdersInOrder(text string, replacements []string) string {
	i := 0
	return quotedSegment.ReplaceAllStringFunc(text, func(match string) string {
		if i >= len(replacements) {
			return match
		}
		r := replacements[i]
		i++
		return "「" + r + "」"
	})
}

// SlideReplacements builds the ordered replacement list for a slide:
// message, sub-message, then each additional text, with empty strings
// filtered out.
func SlideReplacements(s *models.Slide) []string {
	candidates := make([]string, 0, 2+len(s.AdditionalText))
	candidates = append(candidates, s.Message, s.SubMessage)
	candidates = append(candidates, s.AdditionalText...)

	out := candidates[:0]
	for _, c := range candidates {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
