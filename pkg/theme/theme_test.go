package theme

import (
	"testing"

	"github.com/alecthomas/chroma/v2"

	"github.com/matzehuels/sia/pkg/errors"
)

func mustStyle(t *testing.T, name string, entries chroma.StyleEntries) *chroma.Style {
	t.Helper()
	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		t.Fatalf("NewStyle(%s) error: %v", name, err)
	}
	return s
}

func oceanTheme(t *testing.T) Theme {
	t.Helper()
	set, err := NewSet(nil)
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}
	style, ok := set.Lookup(DefaultName)
	if !ok {
		t.Fatalf("default theme %q missing", DefaultName)
	}
	th, err := FromStyle(style, Overrides{})
	if err != nil {
		t.Fatalf("FromStyle() error: %v", err)
	}
	return th
}

func TestFromStyleDefault(t *testing.T) {
	th := oceanTheme(t)

	if got := th.Background.Hex(); got != "#2B303B" {
		t.Errorf("Background = %s, want #2B303B", got)
	}
	if got := th.Foreground.Hex(); got != "#C0C5CE" {
		t.Errorf("Foreground = %s, want #C0C5CE", got)
	}
	if th.BackgroundAlpha != 1 || th.ForegroundAlpha != 1 {
		t.Errorf("alphas = %v/%v, want 1/1", th.BackgroundAlpha, th.ForegroundAlpha)
	}
}

func TestFromStyleIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		entries chroma.StyleEntries
	}{
		{"no background", chroma.StyleEntries{chroma.Background: "#ffffff"}},
		{"no foreground", chroma.StyleEntries{chroma.Background: "bg:#000000"}},
		{"nothing", chroma.StyleEntries{chroma.Keyword: "bold"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromStyle(mustStyle(t, tt.name, tt.entries), Overrides{})
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("FromStyle() error = %v, want %v", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestFromStyleOverrides(t *testing.T) {
	style := mustStyle(t, "half", chroma.StyleEntries{
		chroma.Background: "bg:#000000",
		chroma.Keyword:    "#ff0000",
	})
	fg := RGB{R: 0xEE, G: 0xEE, B: 0xEE}
	alpha := 1.7

	th, err := FromStyle(style, Overrides{Foreground: &fg, BackgroundAlpha: &alpha})
	if err != nil {
		t.Fatalf("FromStyle() error: %v", err)
	}
	if th.Foreground != fg {
		t.Errorf("Foreground = %v, want %v", th.Foreground, fg)
	}
	if th.BackgroundAlpha != 1 {
		t.Errorf("BackgroundAlpha = %v, want clamped 1", th.BackgroundAlpha)
	}

	kw, _, _ := th.TokenStyle(chroma.Keyword)
	if kw.Hex() != "#FF0000" {
		t.Errorf("Keyword color = %s, want #FF0000", kw.Hex())
	}
	txt, _, _ := th.TokenStyle(chroma.Text)
	if txt != fg {
		t.Errorf("Text color = %v, want overridden foreground %v", txt, fg)
	}
}

func TestTokenStyle(t *testing.T) {
	th := oceanTheme(t)

	tests := []struct {
		name       string
		tt         chroma.TokenType
		wantHex    string
		wantBold   bool
		wantItalic bool
	}{
		{"comment is italic", chroma.Comment, "#65737E", false, true},
		{"single-line comment inherits", chroma.CommentSingle, "#65737E", false, true},
		{"keyword", chroma.Keyword, "#B48EAD", false, false},
		{"string", chroma.LiteralString, "#A3BE8C", false, false},
		{"plain text", chroma.Text, "#C0C5CE", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg, bold, italic := th.TokenStyle(tt.tt)
			if fg.Hex() != tt.wantHex || bold != tt.wantBold || italic != tt.wantItalic {
				t.Errorf("TokenStyle(%v) = %s/%v/%v, want %s/%v/%v",
					tt.tt, fg.Hex(), bold, italic, tt.wantHex, tt.wantBold, tt.wantItalic)
			}
		})
	}
}

func TestIsDefault(t *testing.T) {
	th := oceanTheme(t)

	if !th.IsDefault(th.Foreground, false, false) {
		t.Error("foreground without flags should be default")
	}
	if th.IsDefault(th.Foreground, true, false) {
		t.Error("bold foreground should not be default")
	}
	if th.IsDefault(RGB{R: 0xBF, G: 0x61, B: 0x6A}, false, false) {
		t.Error("other colors should not be default")
	}
}
