// Package pipeline provides the render pipeline for sia.
//
// This package implements the complete highlight → layout → assemble
// pipeline used by the CLI. Every render is one straight pass over the whole
// input and shares no state with other renders, so independent renders may
// run concurrently. Only exported PNG and PDF artifacts are reused, through
// Options.Cache.
//
// # Architecture
//
// The pipeline consists of three stages and an optional export step:
//
//  1. Highlight: split the text into lines of styled runs (pkg/highlight)
//  2. Layout: measure runs with the font and size the canvas (layout)
//  3. Assemble: build the vector document (sink)
//  4. Export: serialize the document as SVG, PNG, PDF or JSON
//
// # Usage
//
//	face, _ := fonts.Default(16)
//	res, err := pipeline.Render(ctx, pipeline.SourceDocument{Text: src, Syntax: "go"},
//	    pipeline.Options{Face: face})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := res.Document.SVG()
//
// Render and export in one call:
//
//	opts.Formats = []string{"svg", "png"}
//	res, err := pipeline.Execute(ctx, doc, opts)
//	png := res.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sia/pkg/cache"
	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/fonts"
	"github.com/matzehuels/sia/pkg/highlight"
	"github.com/matzehuels/sia/pkg/render/code/layout"
	"github.com/matzehuels/sia/pkg/render/code/sink"
	"github.com/matzehuels/sia/pkg/theme"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFontSize is the font size in pixels when none is configured.
	DefaultFontSize = 16.0

	// DefaultPNGScale is the PNG resolution multiplier.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// SourceDocument is the text to render and its syntax (a language name,
// alias or file extension; empty for plain text).
type SourceDocument struct {
	Text   string
	Syntax string
}

// Options contains all configuration for one render.
type Options struct {
	// Theme supplies colours. The zero value selects theme.DefaultName.
	Theme theme.Theme
	// Face supplies metrics. Required.
	Face *fonts.Face
	// FontFamily is written to the document; defaults to Face.Family().
	FontFamily string
	// EmbedFont embeds the face as an @font-face rule.
	EmbedFont bool

	// Layout options
	Mode         layout.Mode
	ApproxRef    rune // reference glyph for layout.Approximate; 0 means layout.DefaultReference
	Override     *layout.Dimensions
	CornerRadius float64

	// Export options
	Formats  []string
	PNGScale float64
	// Cache holds rasterized PNG and PDF artifacts. Nil disables caching.
	Cache cache.Cache

	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Language is the resolved highlighter language, or highlight.PlainText.
	Language string

	// Lines are the highlighted source lines.
	Lines []highlight.StyledLine

	// Layout holds run offsets and the canvas size.
	Layout layout.Result

	// Document is the assembled vector document.
	Document sink.Document

	// Artifacts contains exported outputs keyed by format. Only Execute
	// fills it.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Dimensions returns the canvas size of the document.
func (r *Result) Dimensions() layout.Dimensions { return r.Layout.Dimensions }

// Stats contains pipeline execution statistics.
type Stats struct {
	LineCount     int
	RunCount      int
	HighlightTime time.Duration
	LayoutTime    time.Duration
	AssembleTime  time.Duration
	ExportTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Face == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "a font face is required")
	}
	if o.Theme == (theme.Theme{}) {
		th, err := DefaultTheme()
		if err != nil {
			return err
		}
		o.Theme = th
	}
	if o.FontFamily == "" {
		o.FontFamily = o.Face.Family()
	}
	if o.Mode == layout.Approximate && o.ApproxRef == 0 {
		o.ApproxRef = layout.DefaultReference
	}
	if o.Override != nil {
		if err := errors.ValidateDimensions(int(o.Override.Width), int(o.Override.Height)); err != nil {
			return err
		}
	}
	if o.CornerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "corner radius must not be negative, got %v", o.CornerRadius)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.setExportDefaults()
	o.validated = true
	return nil
}

// setExportDefaults fills the fields Export needs. Export can run on its
// own, without a face.
func (o *Options) setExportDefaults() {
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// layoutOptions translates the options into layout.Compute options.
func (o *Options) layoutOptions() []layout.Option {
	var opts []layout.Option
	if o.Mode == layout.Approximate {
		opts = append(opts, layout.WithApproximation(o.ApproxRef))
	}
	if o.Override != nil {
		opts = append(opts, layout.WithOverride(*o.Override))
	}
	return opts
}

// DefaultTheme returns theme.DefaultName with no overrides.
func DefaultTheme() (theme.Theme, error) {
	set, err := theme.NewSet(nil)
	if err != nil {
		return theme.Theme{}, err
	}
	style, ok := set.Lookup(theme.DefaultName)
	if !ok {
		return theme.Theme{}, errors.New(errors.ErrCodeUnknownTheme, "unknown theme %q", theme.DefaultName)
	}
	return theme.FromStyle(style, theme.Overrides{})
}
