// Package fonts loads font faces and answers the metric queries the layout
// engine and the SVG assembler need.
//
// # Metrics
//
// A [Face] wraps one parsed font at one pixel size. It exposes per-glyph
// advance widths ([Face.Advance], [Face.Width]) and vertical metrics
// ([Face.VerticalMetrics], [Face.LineHeight]). Faces are created unhinted so
// advances keep their fractional part and repeated renders are identical.
//
// [Face.ApproxWidth] offers the reference-glyph approximation (one glyph's
// advance times the rune count). It is a separate mode, selected explicitly
// by the caller; the layout engine never mixes it with exact summation.
//
// # Default Font
//
// [Default] loads Go Mono from golang.org/x/image/font/gofont, which is
// compiled into the binary. No font discovery is needed to render.
//
// # Sizes
//
// [ParseSize] accepts either a pixel value ("16") or a percentage of the
// canvas width ("8%"). Relative sizes need an explicit canvas width.
package fonts
