package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sia/pkg/cache"
	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/fonts"
	"github.com/matzehuels/sia/pkg/observability"
	"github.com/matzehuels/sia/pkg/render/code/layout"
	"github.com/matzehuels/sia/pkg/theme"
)

func testFace(t *testing.T) *fonts.Face {
	t.Helper()
	face, err := fonts.Default(DefaultFontSize)
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	face := testFace(t)

	t.Run("requires face", func(t *testing.T) {
		opts := Options{}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		opts := Options{Face: face, Mode: layout.Approximate}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error: %v", err)
		}
		if opts.Theme.Name != theme.DefaultName {
			t.Errorf("Theme = %q, want %q", opts.Theme.Name, theme.DefaultName)
		}
		if opts.FontFamily != face.Family() {
			t.Errorf("FontFamily = %q, want %q", opts.FontFamily, face.Family())
		}
		if opts.ApproxRef != layout.DefaultReference {
			t.Errorf("ApproxRef = %q, want %q", opts.ApproxRef, layout.DefaultReference)
		}
		if opts.Logger == nil || opts.PNGScale != DefaultPNGScale {
			t.Error("logger and PNG scale should be defaulted")
		}
		// Idempotent
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Errorf("second call error: %v", err)
		}
	})

	invalid := []struct {
		name string
		opts Options
	}{
		{"zero override", Options{Face: face, Override: &layout.Dimensions{Width: 0, Height: 10}}},
		{"negative radius", Options{Face: face, CornerRadius: -1}},
		{"bad format", Options{Face: face, Formats: []string{"gif"}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestRenderUnresolvedSyntax(t *testing.T) {
	face := testFace(t)
	res, err := Render(context.Background(), SourceDocument{Text: "fn main() {}\n", Syntax: "unknown-lang"}, Options{Face: face})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if len(res.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(res.Lines))
	}
	if len(res.Lines[0]) != 1 || res.Lines[0][0].Text != "fn main() {}" {
		t.Errorf("line 0 = %+v, want one run with the literal text", res.Lines[0])
	}
	if len(res.Lines[1]) != 0 {
		t.Errorf("line 1 = %+v, want empty", res.Lines[1])
	}
	if want := uint32(2 * face.LineHeight()); res.Dimensions().Height != want {
		t.Errorf("Height = %d, want %d", res.Dimensions().Height, want)
	}
	if res.Language != "plaintext" {
		t.Errorf("Language = %q", res.Language)
	}
	if strings.Contains(string(res.Document.SVG()), "<tspan fill=") {
		t.Error("plain text runs should not carry a fill")
	}
}

func TestRenderHeightFormula(t *testing.T) {
	face := testFace(t)
	lh := face.LineHeight()

	tests := []struct {
		text      string
		textLines int
	}{
		{"", 0},
		{"x", 1},
		{"a\nb\nc", 3},
		{"a\nb\nc\n", 3},
		{"\n\n\n", 3},
		{"    ", 1},
	}

	for _, tt := range tests {
		res, err := Render(context.Background(), SourceDocument{Text: tt.text, Syntax: "go"}, Options{Face: face})
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.text, err)
		}
		if want := uint32(lh * float64(tt.textLines+1)); res.Dimensions().Height != want {
			t.Errorf("Render(%q) height = %d, want %d", tt.text, res.Dimensions().Height, want)
		}
		for i, l := range res.Layout.Lines {
			if float64(res.Dimensions().Width) < l.Width {
				t.Errorf("Render(%q) width %d < line %d width %v", tt.text, res.Dimensions().Width, i, l.Width)
			}
		}
		if (res.Dimensions().Width == 0) != (tt.text == "" || strings.Trim(tt.text, "\n") == "") {
			t.Errorf("Render(%q) width = %d", tt.text, res.Dimensions().Width)
		}
	}
}

func TestRenderOverride(t *testing.T) {
	face := testFace(t)
	override := layout.Dimensions{Width: 320, Height: 200}
	text := strings.Repeat("a very long line of code that does not fit\n", 40)

	res, err := Render(context.Background(), SourceDocument{Text: text, Syntax: "go"}, Options{Face: face, Override: &override})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Dimensions() != override {
		t.Errorf("Dimensions = %v, want %v", res.Dimensions(), override)
	}
	if res.Document.Width != 320 || res.Document.Height != 200 {
		t.Errorf("Document size = %dx%d", res.Document.Width, res.Document.Height)
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := SourceDocument{Text: "package main\n\n/* block\ncomment */\nfunc main() {\n\tprintln(\"<hi>\")\n}\n", Syntax: "go"}

	var (
		wg   sync.WaitGroup
		outs = make([][]byte, 4)
		errs = make([]error, 4)
	)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Faces are not shared between concurrent renders.
			face, err := fonts.Default(DefaultFontSize)
			if err != nil {
				errs[i] = err
				return
			}
			defer face.Close()
			res, err := Render(context.Background(), src, Options{Face: face})
			if err != nil {
				errs[i] = err
				return
			}
			outs[i] = res.Document.SVG()
		}(i)
	}
	wg.Wait()

	for i := range outs {
		if errs[i] != nil {
			t.Fatalf("Render() error: %v", errs[i])
		}
		if !bytes.Equal(outs[0], outs[i]) {
			t.Errorf("render %d differs from render 0", i)
		}
	}
}

func TestRenderIncompleteTheme(t *testing.T) {
	set, err := theme.NewSet(map[string]theme.Definition{
		"nobg": {Foreground: "#FFFFFF"},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}
	style, _ := set.Lookup("nobg")
	if _, err := theme.FromStyle(style, theme.Overrides{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("FromStyle() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, SourceDocument{Text: "x"}, Options{Face: testFace(t)}); err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestRenderEmbedFont(t *testing.T) {
	face := testFace(t)
	res, err := Render(context.Background(), SourceDocument{Text: "x"}, Options{Face: face, EmbedFont: true, CornerRadius: 8})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	svg := string(res.Document.SVG())
	if !strings.Contains(svg, "@font-face") || !strings.Contains(svg, `rx="8"`) {
		t.Errorf("embedded font or radius missing:\n%.300s", svg)
	}
}

func TestExecute(t *testing.T) {
	face := testFace(t)
	res, err := Execute(context.Background(), SourceDocument{Text: "x := 1", Syntax: "go"},
		Options{Face: face, Formats: []string{FormatSVG, FormatJSON, FormatSVG}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("len(Artifacts) = %d, want 2", len(res.Artifacts))
	}
	if !bytes.Equal(res.Artifacts[FormatSVG], res.Document.SVG()) {
		t.Error("svg artifact differs from document")
	}
	var out map[string]any
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &out); err != nil {
		t.Errorf("json artifact invalid: %v", err)
	}
}

func TestExecuteDefaultsToSVG(t *testing.T) {
	res, err := Execute(context.Background(), SourceDocument{Text: "x"}, Options{Face: testFace(t)})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, ok := res.Artifacts[FormatSVG]; !ok || len(res.Artifacts) != 1 {
		t.Errorf("Artifacts = %v, want svg only", res.Artifacts)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (r *recordingHooks) record(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingHooks) OnHighlightStart(context.Context, string) { r.record("highlight") }
func (r *recordingHooks) OnLayoutComplete(_ context.Context, mode string, _, _ uint32, _ time.Duration) {
	r.record("layout:" + mode)
}
func (r *recordingHooks) OnAssembleComplete(context.Context, int, time.Duration) {
	r.record("assemble")
}

func TestRenderHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	_, err := Render(context.Background(), SourceDocument{Text: "x"}, Options{Face: testFace(t), Mode: layout.Approximate})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := "highlight layout:approximate assemble"
	if got := strings.Join(rec.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

// mapCache is an in-memory cache.Cache.
type mapCache struct {
	entries map[string][]byte
	sets    int
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := m.entries[key]
	return data, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.entries[key] = data
	m.sets++
	return nil
}

func (m *mapCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *mapCache) Close() error { return nil }

func TestExportServesRasterFromCache(t *testing.T) {
	res, err := Render(context.Background(), SourceDocument{Text: "cached\n"}, Options{Face: testFace(t)})
	if err != nil {
		t.Fatal(err)
	}

	mc := &mapCache{entries: map[string][]byte{
		cache.Key(FormatPNG, cache.Hash(res.Document.SVG()), DefaultPNGScale): []byte("png bytes"),
	}}
	artifacts, err := Export(context.Background(), res.Document, Options{Formats: []string{FormatPNG, FormatSVG}, Cache: mc})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(artifacts[FormatPNG]) != "png bytes" {
		t.Errorf("png = %q, want cached bytes", artifacts[FormatPNG])
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg not exported")
	}
	if mc.sets != 0 {
		t.Errorf("cache written %d times on a hit", mc.sets)
	}
}

func TestExportWithoutFace(t *testing.T) {
	res, err := Render(context.Background(), SourceDocument{Text: "x"}, Options{Face: testFace(t)})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Export(context.Background(), res.Document, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !json.Valid(artifacts[FormatJSON]) {
		t.Errorf("json artifact invalid: %s", artifacts[FormatJSON])
	}
}
