package fonts

import (
	"encoding/base64"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/sia/pkg/errors"
)

// DefaultFamily is the family name reported by the embedded default face.
const DefaultFamily = "Go Mono"

// fallbackFamily is used when a font has no family entry in its name table.
const fallbackFamily = "monospace"

// dpi makes one point equal one pixel.
const dpi = 72

// VMetrics holds the vertical metrics of a face in pixels.
// Descent is negative: it is measured downwards from the baseline.
type VMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Face answers glyph-advance and vertical-metric queries for one font at
// one pixel size. A Face is not safe for concurrent use; each render loads
// its own.
type Face struct {
	data   []byte
	font   *sfnt.Font
	face   font.Face
	size   float64
	family string
	vm     VMetrics
}

// Load parses TrueType or OpenType bytes and prepares a face of the given
// pixel size. Identical bytes and size always produce identical metrics.
func Load(data []byte, size float64) (*Face, error) {
	if err := errors.ValidateFontSize(size); err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "create face at %.2fpx", size)
	}

	m := face.Metrics()
	ascent, descent := toPixels(m.Ascent), toPixels(m.Descent)
	gap := toPixels(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}

	return &Face{
		data:   data,
		font:   f,
		face:   face,
		size:   size,
		family: familyName(f),
		vm:     VMetrics{Ascent: ascent, Descent: -descent, LineGap: gap},
	}, nil
}

// Default loads the embedded Go Mono face.
func Default(size float64) (*Face, error) {
	return Load(gomono.TTF, size)
}

// ReadFile loads a face from a font file on disk.
func ReadFile(path string, size float64) (*Face, error) {
	if err := errors.ValidateFontPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
	}
	return Load(data, size)
}

// Advance returns the horizontal advance of r in pixels. Runes the font has
// no glyph for map to the notdef glyph; a lookup failure yields 0.
func (f *Face) Advance(r rune) float64 {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return toPixels(adv)
}

// Width sums the advances of every rune in s. This is the exact measure.
func (f *Face) Width(s string) float64 {
	var w float64
	for _, r := range s {
		w += f.Advance(r)
	}
	return w
}

// ApproxWidth estimates the width of s as the advance of a single reference
// glyph times the rune count. It is only accurate for monospaced fonts and
// must not be mixed with Width inside one render.
func (f *Face) ApproxWidth(s string, ref rune) float64 {
	var n int
	for range s {
		n++
	}
	return f.Advance(ref) * float64(n)
}

// VerticalMetrics returns ascent, descent and line gap in pixels.
func (f *Face) VerticalMetrics() VMetrics { return f.vm }

// LineHeight returns the whole-pixel distance between two baselines:
// ceil(ascent - descent + lineGap).
func (f *Face) LineHeight() float64 {
	return math.Ceil(f.vm.Ascent - f.vm.Descent + f.vm.LineGap)
}

// Size returns the pixel size the face was loaded at.
func (f *Face) Size() float64 { return f.size }

// Family returns the font family from the font's name table.
func (f *Face) Family() string { return f.family }

// Base64 returns the raw font bytes base64-encoded, for embedding in an
// SVG @font-face rule.
func (f *Face) Base64() string {
	return base64.StdEncoding.EncodeToString(f.data)
}

// Close releases the underlying face.
func (f *Face) Close() error {
	return f.face.Close()
}

func familyName(f *sfnt.Font) string {
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || name == "" {
		return fallbackFamily
	}
	return name
}

func toPixels(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
