package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sia/pkg/highlight"
	"github.com/matzehuels/sia/pkg/observability"
	"github.com/matzehuels/sia/pkg/render/code/layout"
	"github.com/matzehuels/sia/pkg/render/code/sink"
)

// Render runs highlight → layout → assemble. It returns nothing but the
// error when any stage fails.
func Render(ctx context.Context, doc SourceDocument, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Highlight
	start := time.Now()
	h := highlight.New(doc.Syntax, opts.Theme)
	result.Language = h.Language()
	hooks.OnHighlightStart(ctx, result.Language)

	lines, err := h.Lines(doc.Text)
	result.Stats.HighlightTime = time.Since(start)
	hooks.OnHighlightComplete(ctx, result.Language, len(lines), result.Stats.HighlightTime, err)
	if err != nil {
		return nil, err
	}
	result.Lines = lines
	result.Stats.LineCount = len(lines)
	for _, l := range lines {
		result.Stats.RunCount += len(l)
	}
	if !h.Resolved() && doc.Syntax != "" {
		logger.Debug("syntax not recognised, using plain text", "syntax", doc.Syntax)
	}
	logger.Debug("highlighted source",
		"language", result.Language,
		"lines", result.Stats.LineCount,
		"runs", result.Stats.RunCount,
		"duration", result.Stats.HighlightTime)

	// Stage 2: Layout
	start = time.Now()
	hooks.OnLayoutStart(ctx, opts.Mode.String(), len(lines))
	result.Layout = layout.Compute(lines, opts.Face, opts.layoutOptions()...)
	result.Stats.LayoutTime = time.Since(start)
	dims := result.Layout.Dimensions
	hooks.OnLayoutComplete(ctx, opts.Mode.String(), dims.Width, dims.Height, result.Stats.LayoutTime)

	logger.Debug("computed layout",
		"mode", result.Layout.Mode,
		"size", dims,
		"override", result.Layout.Overridden,
		"line_height", result.Layout.LineHeight,
		"duration", result.Stats.LayoutTime)
	if result.Layout.Overridden && result.Layout.MaxWidth > float64(dims.Width) {
		logger.Warn("text is wider than the requested size and will be clipped",
			"text_width", result.Layout.MaxWidth, "size", dims)
	}

	// Stage 3: Assemble
	start = time.Now()
	params := sink.Params{
		Theme:        opts.Theme,
		FontFamily:   opts.FontFamily,
		FontSize:     opts.Face.Size(),
		LineHeight:   result.Layout.LineHeight,
		CornerRadius: opts.CornerRadius,
	}
	if opts.EmbedFont {
		params.FontData = opts.Face.Base64()
	}
	result.Document = sink.Assemble(lines, result.Layout, params)
	result.Stats.AssembleTime = time.Since(start)
	hooks.OnAssembleComplete(ctx, result.Stats.RunCount, result.Stats.AssembleTime)

	return result, nil
}

// Execute renders doc and exports it in every format in opts.Formats
// (SVG when none is set).
func Execute(ctx context.Context, doc SourceDocument, opts Options) (*Result, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := Render(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifacts, err := Export(ctx, result.Document, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(start)

	opts.Logger.Debug("exported outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)
	return result, nil
}
