package fonts

import (
	"strconv"
	"strings"

	"github.com/matzehuels/sia/pkg/errors"
)

// Size is a font size as the user wrote it: absolute pixels, or a fraction
// of the canvas width.
type Size struct {
	Value    float64
	Relative bool
}

// ParseSize parses "16", "16px" or "8%".
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		pct, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || pct <= 0 {
			return Size{}, errors.New(errors.ErrCodeInvalidConfig, "bad percent font size %q", s)
		}
		return Size{Value: pct / 100, Relative: true}, nil
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return Size{}, errors.New(errors.ErrCodeInvalidConfig, "bad pixel font size %q", s)
	}
	if err := errors.ValidateFontSize(px); err != nil {
		return Size{}, err
	}
	return Size{Value: px}, nil
}

// Pixels resolves the size against a canvas width. A relative size with no
// canvas width is a configuration error.
func (s Size) Pixels(canvasWidth uint32) (float64, error) {
	if !s.Relative {
		return s.Value, nil
	}
	if canvasWidth == 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "relative font size needs an explicit canvas size")
	}
	px := float64(canvasWidth) * s.Value
	if err := errors.ValidateFontSize(px); err != nil {
		return 0, err
	}
	return px, nil
}

// String formats the size the way ParseSize reads it.
func (s Size) String() string {
	if s.Relative {
		return strconv.FormatFloat(s.Value*100, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}
