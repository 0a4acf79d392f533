// Package sink assembles highlighted, laid-out lines into a vector document
// and serializes it.
//
// # Document
//
// [Assemble] builds a [Document]: one background rectangle covering the
// canvas, one group carrying the default font family, size and foreground,
// one line node per source line, and one run node per styled run. Run text
// is escaped exactly once, during assembly. Run nodes only carry a fill or
// font flag when it differs from the group default, so a run styled like
// the plain text has no attributes at all besides its position.
//
// Lines are placed at an em-relative baseline, (index+1) × lineHeight/fontSize,
// so the output does not depend on how a renderer interprets pixel units.
//
// # Output Formats
//
//   - SVG: [Document.SVG] and [RenderSVG], byte-identical for equal input
//   - PNG: [RenderPNG] (requires rsvg-convert)
//   - PDF: [RenderPDF] (requires rsvg-convert)
//   - JSON: [RenderJSON], geometry and styling for external tools
package sink
