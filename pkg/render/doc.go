// Package render holds the rendering back ends for sia previews.
//
// # Overview
//
// Rendering a code sample is split across subpackages:
//
//   - [code/layout]: run offsets and canvas size from font metrics
//   - [code/sink]: the vector document and its SVG, PNG, PDF and JSON forms
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). A missing tool is reported
// with the UNSUPPORTED error code; [Available] checks for it up front.
//
//	svg := sink.RenderSVG(lines, layout, params)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [code/layout]: github.com/matzehuels/sia/pkg/render/code/layout
// [code/sink]: github.com/matzehuels/sia/pkg/render/code/sink
package render
