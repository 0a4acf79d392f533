package layout

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/sia/pkg/highlight"
)

// Measurer answers the font queries layout needs. *fonts.Face satisfies it.
type Measurer interface {
	Advance(r rune) float64
	LineHeight() float64
}

// Mode selects how run widths are measured. One mode applies to a whole
// render.
type Mode int

const (
	// Exact sums the advance of every rune.
	Exact Mode = iota
	// Approximate multiplies the advance of one reference rune by the rune
	// count. Only accurate for monospaced fonts.
	Approximate
)

func (m Mode) String() string {
	if m == Approximate {
		return "approximate"
	}
	return "exact"
}

// DefaultReference is the reference rune for approximate measurement.
const DefaultReference = 'M'

// LineLayout holds the x offset of every run on a line and the line width.
// Offsets[j] is the sum of the widths of runs 0..j-1.
type LineLayout struct {
	Offsets []float64
	Width   float64
}

// Result is the computed layout for one document.
type Result struct {
	Lines      []LineLayout
	Dimensions Dimensions
	LineHeight float64
	MaxWidth   float64 // unrounded widest line
	Mode       Mode
	Overridden bool
}

type options struct {
	mode     Mode
	ref      rune
	override *Dimensions
}

// Option configures Compute.
type Option func(*options)

// WithApproximation switches measurement to Approximate using ref as the
// reference glyph.
func WithApproximation(ref rune) Option {
	return func(o *options) {
		o.mode = Approximate
		o.ref = ref
	}
}

// WithMode sets the measurement mode. Approximate uses DefaultReference
// unless WithApproximation supplied another rune.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithOverride uses d as the canvas size verbatim. Run offsets are still
// computed.
func WithOverride(d Dimensions) Option {
	return func(o *options) { o.override = &d }
}

// Compute lays out lines left to right and derives the canvas size.
//
// Without an override the canvas is ceil(widest line) wide and
// LineHeight × (TextLines(lines)+1) tall, the extra line being bottom
// padding for descenders. An empty document is 0 wide and one line tall.
func Compute(lines []highlight.StyledLine, m Measurer, opts ...Option) Result {
	o := options{ref: DefaultReference}
	for _, opt := range opts {
		opt(&o)
	}

	measure := func(s string) float64 {
		var w float64
		for _, r := range s {
			w += m.Advance(r)
		}
		return w
	}
	if o.mode == Approximate {
		adv := m.Advance(o.ref)
		measure = func(s string) float64 {
			return adv * float64(utf8.RuneCountInString(s))
		}
	}

	res := Result{
		Lines:      make([]LineLayout, len(lines)),
		LineHeight: m.LineHeight(),
		Mode:       o.mode,
	}
	for i, line := range lines {
		ll := LineLayout{Offsets: make([]float64, len(line))}
		for j, run := range line {
			ll.Offsets[j] = ll.Width
			ll.Width += measure(run.Text)
		}
		res.Lines[i] = ll
		res.MaxWidth = max(res.MaxWidth, ll.Width)
	}

	if o.override != nil {
		res.Dimensions = *o.override
		res.Overridden = true
		return res
	}
	res.Dimensions = Dimensions{
		Width:  uint32(math.Ceil(res.MaxWidth)),
		Height: uint32(math.Ceil(res.LineHeight * float64(TextLines(lines)+1))),
	}
	return res
}

// TextLines returns the number of text lines in lines. A trailing newline
// ends the last line instead of starting a new one, so the empty line it
// produces is not counted.
func TextLines(lines []highlight.StyledLine) int {
	n := len(lines)
	if n > 0 && len(lines[n-1]) == 0 {
		n--
	}
	return n
}
