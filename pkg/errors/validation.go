package errors

import (
	"math"
	"unicode"
)

// Limits for user-supplied render parameters.
const (
	MaxCanvasSide = 16384 // pixels per axis
	MinFontSize   = 1.0   // pixels
	MaxFontSize   = 1024.0
)

// ValidateDimensions validates an explicit canvas override.
//
// Validation rules:
//   - Both sides must be positive
//   - Neither side may exceed MaxCanvasSide
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "size must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidConfig, "size %dx%d exceeds %d pixels per side", width, height, MaxCanvasSide)
	}
	return nil
}

// ValidateFontSize validates a pixel font size.
func ValidateFontSize(px float64) error {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return New(ErrCodeInvalidConfig, "font size must be a finite number")
	}
	if px < MinFontSize || px > MaxFontSize {
		return New(ErrCodeInvalidConfig, "font size %.2f out of range [%.0f, %.0f]", px, MinFontSize, MaxFontSize)
	}
	return nil
}

// ValidateFontPath validates a font file path before it is read.
// It rejects empty paths and paths carrying control characters.
func ValidateFontPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "font path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "font path contains invalid characters")
		}
	}
	return nil
}
