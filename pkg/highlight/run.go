package highlight

import "github.com/matzehuels/sia/pkg/theme"

// StyledRun is a maximal span of text on one line sharing one style.
// Text is never empty and never contains a newline.
type StyledRun struct {
	Text       string
	Foreground theme.RGB
	Bold       bool
	Italic     bool
}

// SameStyle reports whether two runs would render identically apart from
// their text.
func (r StyledRun) SameStyle(o StyledRun) bool {
	return r.Foreground == o.Foreground && r.Bold == o.Bold && r.Italic == o.Italic
}

// IsDefault reports whether the run matches the theme's default text style,
// which makes it eligible for attribute omission.
func (r StyledRun) IsDefault(th theme.Theme) bool {
	return th.IsDefault(r.Foreground, r.Bold, r.Italic)
}

// StyledLine is one source line as runs in left-to-right order. Empty lines
// have no runs.
type StyledLine []StyledRun

// Text concatenates the line's runs.
func (l StyledLine) Text() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Text
	}
	n := 0
	for _, r := range l {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range l {
		b = append(b, r.Text...)
	}
	return string(b)
}
