package theme

import (
	"github.com/alecthomas/chroma/v2"

	"github.com/matzehuels/sia/pkg/errors"
)

// Theme carries the document-wide colours of a render and the per-token
// style table used by the highlighter.
type Theme struct {
	Name            string
	Background      RGB
	Foreground      RGB
	BackgroundAlpha float64
	ForegroundAlpha float64

	style      *chroma.Style
	declaredFg chroma.Colour
	overrideFg bool
}

// Overrides replace theme colours. Nil fields keep the theme's value.
type Overrides struct {
	Background      *RGB
	Foreground      *RGB
	BackgroundAlpha *float64
	ForegroundAlpha *float64
}

// FromStyle builds a Theme from a chroma style. The style's Background entry
// must declare both a background and a foreground colour unless overrides
// supply them; nothing is guessed.
func FromStyle(style *chroma.Style, ov Overrides) (Theme, error) {
	if style == nil {
		return Theme{}, errors.New(errors.ErrCodeInvalidConfig, "theme is nil")
	}
	entry := style.Get(chroma.Background)

	t := Theme{
		Name:            style.Name,
		BackgroundAlpha: 1,
		ForegroundAlpha: 1,
		style:           style,
		declaredFg:      entry.Colour,
	}

	switch {
	case ov.Background != nil:
		t.Background = *ov.Background
	case entry.Background.IsSet():
		t.Background = FromChroma(entry.Background)
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidConfig, "theme %q declares no background color", style.Name)
	}

	switch {
	case ov.Foreground != nil:
		t.Foreground = *ov.Foreground
		t.overrideFg = true
	case entry.Colour.IsSet():
		t.Foreground = FromChroma(entry.Colour)
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidConfig, "theme %q declares no foreground color", style.Name)
	}

	if ov.BackgroundAlpha != nil {
		t.BackgroundAlpha = Clamp(*ov.BackgroundAlpha)
	}
	if ov.ForegroundAlpha != nil {
		t.ForegroundAlpha = Clamp(*ov.ForegroundAlpha)
	}
	return t, nil
}

// TokenStyle resolves the colour and font flags for a token type. Tokens
// without their own colour, or whose colour is the declared default, take
// the theme foreground.
func (t Theme) TokenStyle(tt chroma.TokenType) (fg RGB, bold, italic bool) {
	fg = t.Foreground
	if t.style == nil {
		return fg, false, false
	}
	e := t.style.Get(tt)
	if e.Colour.IsSet() && !(t.overrideFg && e.Colour == t.declaredFg) {
		fg = FromChroma(e.Colour)
	}
	return fg, e.Bold == chroma.Yes, e.Italic == chroma.Yes
}

// IsDefault reports whether a style equals the theme's default text style:
// the foreground colour with no font flags.
func (t Theme) IsDefault(fg RGB, bold, italic bool) bool {
	return fg == t.Foreground && !bold && !italic
}
