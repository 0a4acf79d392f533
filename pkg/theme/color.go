package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sia/pkg/errors"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as upper-case #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// FromChroma converts a chroma colour. The colour must be set.
func FromChroma(c chroma.Colour) RGB {
	return RGB{R: c.Red(), G: c.Green(), B: c.Blue()}
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional)
// and returns the colour with its alpha in [0, 1].
func ParseColor(s string) (RGB, float64, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := 1.0

	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return RGB{}, 0, errors.New(errors.ErrCodeInvalidConfig, "invalid color %q, expected #RRGGBB or #RRGGBBAA", s)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return RGB{}, 0, errors.New(errors.ErrCodeInvalidConfig, "invalid color %q, expected #RRGGBB or #RRGGBBAA", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGB{}, 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, alpha, nil
}

// ParseAlpha parses an opacity and clamps it to [0, 1].
func ParseAlpha(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid alpha %q", s)
	}
	return Clamp(v), nil
}

// Clamp limits an opacity to [0, 1].
func Clamp(a float64) float64 {
	return max(0, min(1, a))
}
