// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import "fmt"

// overlayDisclaimer is prepended by both overlay variants. It instructs the
// generator to omit the photographic subject entirely so the result can be
// composited over a separately generated portrait.
const overlayDisclaimer = `IMPORTANT — OVERLAY MODE:
Do not render any person, model, or photographic subject in this image.
Use a fully transparent background, or solid white if transparency is not supported.`

// legacyNoText is the trailing instruction of the legacy overlay variant:
// the graphics-only output receives its captions externally.
const legacyNoText = "Do not render any text in the image. All captions are composited externally."

// ApplyOverlayStructured transforms a structured prompt document for
// overlay mode. It edits the section list in place: the background is
// rewritten to mandate transparency, the primary-subject region is declared
// reserved, and the photography and lighting instructions are removed since
// no photographic subject is generated. A trailing checklist restates the
// constraints.
//
// Removing TECHNICAL and LIGHTING here is what keeps the transform stable:
// re-rendering the document can never reintroduce an instruction whose
// section no longer exists.
func ApplyOverlayStructured(d *Doc) {
	d.Replace(SectionBackground,
		"Fully transparent background (solid white if transparency is unsupported). No background colors, gradients, or decorative elements.")
	d.Replace(SectionMainSubject, fmt.Sprintf(
		"The %d%% of the frame reserved for the primary subject must be left empty and transparent. Do not place anything in it.",
		d.SplitSubject))
	d.Remove(SectionTechnical)
	d.Remove(SectionLighting)

	d.Prepend("", overlayDisclaimer)

	d.Append(SectionChecklist,
		"- No person or photographic subject anywhere in the image\n"+
			"- Background fully transparent or solid white\n"+
			"- The reserved subject region is empty\n"+
			"- Every text region rendered exactly as specified")
}

// ApplyOverlayLegacy wraps a legacy base prompt for overlay mode. The
// legacy variant is lighter than the structured one and the two are not
// interchangeable: this one serves the inverse "graphics only, caption
// supplied externally" case, so it suppresses in-image text instead of
// rewriting sections.
func ApplyOverlayLegacy(body string) string {
	return overlayDisclaimer + "\n\n" + body + "\n\n" + legacyNoText
}
