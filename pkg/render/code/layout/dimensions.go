package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/sia/pkg/errors"
)

// Dimensions is a canvas size in whole pixels.
type Dimensions struct {
	Width  uint32
	Height uint32
}

// String returns the WxH form accepted by ParseDimensions.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// IsZero reports whether both sides are zero.
func (d Dimensions) IsZero() bool { return d.Width == 0 && d.Height == 0 }

// ParseDimensions parses "WxH" (case-insensitive separator). Both sides
// must be positive integers.
func ParseDimensions(s string) (Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Dimensions{}, errors.New(errors.ErrCodeInvalidConfig, "size %q must look like WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Dimensions{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid width in size %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Dimensions{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid height in size %q", s)
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: uint32(width), Height: uint32(height)}, nil
}
