// Package pkg provides the libraries behind sia, a code-to-vector preview
// renderer.
//
// # Overview
//
// sia turns a code sample (or any text) into an image: syntax-aware colours,
// glyph-exact layout from real font metrics, and a deterministic SVG that
// can be rasterized to PNG or PDF.
//
// # Architecture
//
// The data flow through sia:
//
//	text + syntax
//	     ↓
//	[highlight] (chroma lexer + [theme] → styled runs per line)
//	     ↓
//	[render/code/layout] ([fonts] metrics → run offsets + canvas size)
//	     ↓
//	[render/code/sink] (vector document → SVG / PNG / PDF / JSON)
//
// [pipeline] runs the stages in order. [source] reads input text and
// guesses its syntax. [cache] keeps rasterized artifacts between runs.
// [errors] defines the error codes every stage reports.
//
// # Quick Start
//
//	face, _ := fonts.Default(16)
//	res, err := pipeline.Render(ctx, pipeline.SourceDocument{
//	    Text:   "package main\n",
//	    Syntax: "go",
//	}, pipeline.Options{Face: face})
//	os.WriteFile("out.svg", res.Document.SVG(), 0o644)
//
// [highlight]: github.com/matzehuels/sia/pkg/highlight
// [theme]: github.com/matzehuels/sia/pkg/theme
// [fonts]: github.com/matzehuels/sia/pkg/fonts
// [render/code/layout]: github.com/matzehuels/sia/pkg/render/code/layout
// [render/code/sink]: github.com/matzehuels/sia/pkg/render/code/sink
// [pipeline]: github.com/matzehuels/sia/pkg/pipeline
// [source]: github.com/matzehuels/sia/pkg/source
// [cache]: github.com/matzehuels/sia/pkg/cache
// [errors]: github.com/matzehuels/sia/pkg/errors
package pkg
