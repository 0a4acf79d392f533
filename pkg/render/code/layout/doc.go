// Package layout positions highlighted runs and sizes the canvas.
//
// [Compute] walks every [highlight.StyledLine] left to right, recording
// each run's x offset and the line's total advance width. The canvas is
// as wide as the widest line (rounded up) and one padding line taller
// than the text:
//
//	width  = ceil(max line width)
//	height = lineHeight × (TextLines + 1)
//
// Widths are measured exactly by default, summing per-rune glyph advances.
// [WithApproximation] selects the cheaper reference-glyph estimate for the
// whole render; the two modes are never mixed.
//
// [WithOverride] replaces the derived size with a caller-supplied one,
// both sides at once. Offsets are still computed because the document
// assembler needs them.
package layout
