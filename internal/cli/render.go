package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sia/pkg/cache"
	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/fonts"
	"github.com/matzehuels/sia/pkg/pipeline"
	"github.com/matzehuels/sia/pkg/render"
	"github.com/matzehuels/sia/pkg/render/code/layout"
	"github.com/matzehuels/sia/pkg/source"
	"github.com/matzehuels/sia/pkg/theme"
)

const (
	defaultFontSize = "16"     // pixels
	defaultOutput   = "output" // base name when no output path is given
	stdioPath       = "-"
)

// renderOpts holds the command-line flags for the render command. After
// resolve it holds the effective settings from all configuration sources.
type renderOpts struct {
	input       string  // file path, literal text, "-" for stdin, or empty for the preview
	font        string  // font file; empty for the embedded Go Mono
	output      string  // output file, base path for several formats, or "-"
	size        string  // WxH canvas override
	fontSize    string  // pixels or N% of the override width
	theme       string  // theme name
	bgColor     string  // #RRGGBB or #RRGGBBAA
	fgColor     string  // #RRGGBB or #RRGGBBAA
	bgAlpha     string  // 0..1
	fgAlpha     string  // 0..1
	syntax      string  // language name, alias or extension
	formats     string  // comma-separated output formats
	approximate bool    // reference-glyph width estimate
	embedFont   bool    // embed the font in the SVG
	noCache     bool    // rasterize even when a cached artifact exists
	radius      float64 // background corner radius
	scale       float64 // PNG resolution multiplier
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render code or text to SVG, PNG, PDF or JSON",
		Long: `Render a code sample into a highlighted preview image.

The input is a path to a text file, literal text, or "-" for stdin. Without
input a sample of letters, digits and punctuation is rendered, which makes
the command double as a font preview.

The syntax is taken from --syntax, else guessed from the file name, else
from the content. Unknown syntaxes fall back to plain text.`,
		Example: `  sia render main.go
  sia render main.go --theme dracula --format svg,png -O preview
  sia render 'fn main() {}' --syntax rust --size 1200x630 --font-size 4%
  sia render -F ~/.fonts/Hack-Regular.ttf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("input") {
					return errors.New(errors.ErrCodeInvalidConfig, "give the input either as an argument or with --input, not both")
				}
				opts.input = args[0]
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts.resolve(cmd.Flags(), cfg), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "I", "", "text or file to render (\"-\" for stdin)")
	f.StringVarP(&opts.font, "font", "F", "", "font file (default: embedded Go Mono) [$"+envFont+"]")
	f.StringVarP(&opts.output, "output", "O", "", "output file, or base path for several formats [$"+envOutput+"]")
	f.StringVar(&opts.size, "size", "", "canvas size WxH (default: fit the text) [$"+envDimensions+"]")
	f.StringVar(&opts.fontSize, "font-size", "", "font size in px, or N% of the --size width (default 16) [$"+envFontSize+"]")
	f.StringVar(&opts.theme, "theme", "", "colour theme (default "+theme.DefaultName+") [$"+envTheme+"]")
	f.StringVar(&opts.bgColor, "bg-color", "", "background colour #RRGGBB[AA] [$"+envBgColor+"]")
	f.StringVar(&opts.fgColor, "fg-color", "", "text colour #RRGGBB[AA] [$"+envFgColor+"]")
	f.StringVar(&opts.bgAlpha, "bg-alpha", "", "background alpha 0..1 [$"+envBgAlpha+"]")
	f.StringVar(&opts.fgAlpha, "fg-alpha", "", "text alpha 0..1 [$"+envFgAlpha+"]")
	f.StringVar(&opts.syntax, "syntax", "", "language name, alias or extension (default: detect)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.BoolVar(&opts.approximate, "approximate", false, "estimate widths from one reference glyph (monospaced fonts only)")
	f.BoolVar(&opts.embedFont, "embed-font", false, "embed the font file in the SVG")
	f.Float64Var(&opts.radius, "radius", 0, "background corner radius in px")
	f.Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	f.BoolVar(&opts.noCache, "no-cache", false, "always run the rasterizer instead of reusing cached PNG/PDF output")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		cfg, _ := loadConfig(c.configPath)
		set, err := cfg.themeSet()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return set.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// resolve applies flag > environment > config file > default.
func (o renderOpts) resolve(flags *pflag.FlagSet, cfg Config) renderOpts {
	r := resolver{flags: flags}
	out := o
	out.font = r.str("font", o.font, envFont, cfg.Font, "")
	out.output = r.str("output", o.output, envOutput, cfg.Output, "")
	out.size = r.str("size", o.size, envDimensions, cfg.Size, "")
	out.fontSize = r.str("font-size", o.fontSize, envFontSize, cfg.FontSize, defaultFontSize)
	out.theme = r.str("theme", o.theme, envTheme, cfg.Theme, theme.DefaultName)
	out.bgColor = r.str("bg-color", o.bgColor, envBgColor, cfg.BgColor, "")
	out.fgColor = r.str("fg-color", o.fgColor, envFgColor, cfg.FgColor, "")
	out.bgAlpha = r.float("bg-alpha", o.bgAlpha, envBgAlpha, cfg.BgAlpha)
	out.fgAlpha = r.float("fg-alpha", o.fgAlpha, envFgAlpha, cfg.FgAlpha)
	out.syntax = r.str("syntax", o.syntax, "", cfg.Syntax, "")
	out.formats = r.str("format", o.formats, "", strings.Join(cfg.Formats, ","), pipeline.FormatSVG)
	out.approximate = r.boolean("approximate", o.approximate, cfg.Approximate)
	out.embedFont = r.boolean("embed-font", o.embedFont, cfg.EmbedFont)
	out.noCache = r.boolean("no-cache", o.noCache, cfg.NoCache)
	if !(flags != nil && flags.Changed("radius")) && cfg.Radius > 0 {
		out.radius = cfg.Radius
	}
	return out
}

// runRender reads the input, renders it and writes every requested format.
func (c *CLI) runRender(ctx context.Context, opts renderOpts, cfg Config) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := readInput(opts.input)
	if err != nil {
		return err
	}
	doc := pipeline.SourceDocument{Text: in.Text, Syntax: source.DetectSyntax(opts.syntax, in)}

	popts, err := buildOptions(opts, cfg)
	if err != nil {
		return err
	}
	defer popts.Face.Close()
	popts.Logger = logger

	logger.Debug("render settings",
		"font", popts.Face.Family(),
		"font_size", popts.Face.Size(),
		"theme", popts.Theme.Name,
		"syntax", doc.Syntax,
		"formats", popts.Formats)

	if ok, missing := popts.Face.Covers(fonts.LatinSample()); !ok {
		msg := fmt.Sprintf("%s has no glyphs for %d Latin characters (e.g. %q); the preview may show boxes",
			popts.Face.Family(), len(missing), string(missing[:min(len(missing), 5)]))
		if opts.output == stdioPath {
			logger.Warn(msg)
		} else {
			printWarning("%s", msg)
		}
	}

	paths, err := outputPaths(opts.output, popts.Formats)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if needsRasterizer(popts.Formats) {
		if !render.Available() {
			return errors.New(errors.ErrCodeUnsupported,
				"png and pdf output need %s. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", render.Rasterizer)
		}
		if !opts.noCache {
			if popts.Cache = openRasterCache(logger); popts.Cache != nil {
				defer popts.Cache.Close()
			}
		}
		s := newSpinnerWithContext(ctx, "Rasterizing...")
		s.Start()
		res, err = pipeline.Execute(ctx, doc, popts)
		switch {
		case opts.output == stdioPath || s.Cancelled():
			s.Stop()
		case err != nil:
			s.StopWithError("Rasterizing failed")
		default:
			s.StopWithSuccess("Rasterized " + strings.Join(rasterFormats(popts.Formats), ", "))
		}
	} else {
		res, err = pipeline.Execute(ctx, doc, popts)
	}
	if err != nil {
		return err
	}

	if opts.output == stdioPath {
		_, err := os.Stdout.Write(res.Artifacts[popts.Formats[0]])
		return err
	}

	for _, format := range uniqueFormats(popts.Formats) {
		path := paths[format]
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
	}

	prog.done("render complete")
	dims := res.Dimensions()
	printSuccess("Rendered %s", describeInput(in))
	printStats(res.Language, res.Stats.LineCount, res.Stats.RunCount, dims.Width, dims.Height)
	for _, format := range uniqueFormats(popts.Formats) {
		printFile(paths[format])
	}
	return nil
}

// openRasterCache opens the on-disk raster cache. A cache that cannot be
// opened only costs speed, so the error is logged and nil returned.
func openRasterCache(logger *log.Logger) cache.Cache {
	dir, err := cacheDir()
	if err == nil {
		var c cache.Cache
		if c, err = cache.NewFileCache(filepath.Join(dir, "raster")); err == nil {
			return c
		}
	}
	logger.Debug("raster cache disabled", "error", err)
	return nil
}

// readInput resolves the input argument, reading stdin for "-".
func readInput(arg string) (source.Input, error) {
	if arg == stdioPath {
		return source.ReadFrom(os.Stdin, "stdin")
	}
	return source.Read(arg)
}

func describeInput(in source.Input) string {
	if in.IsFile() {
		return filepath.Base(in.Path)
	}
	if in.Text == source.PreviewText {
		return "font preview"
	}
	return "text"
}

// buildOptions turns resolved settings into pipeline options. The caller
// closes the returned face.
func buildOptions(opts renderOpts, cfg Config) (pipeline.Options, error) {
	var popts pipeline.Options

	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return popts, err
	}
	popts.Formats = formats
	popts.PNGScale = opts.scale

	var canvasWidth uint32
	if opts.size != "" {
		dims, err := layout.ParseDimensions(opts.size)
		if err != nil {
			return popts, err
		}
		popts.Override = &dims
		canvasWidth = dims.Width
	}

	size, err := fonts.ParseSize(opts.fontSize)
	if err != nil {
		return popts, err
	}
	px, err := size.Pixels(canvasWidth)
	if err != nil {
		return popts, err
	}

	th, err := resolveTheme(opts, cfg)
	if err != nil {
		return popts, err
	}
	popts.Theme = th

	if opts.approximate {
		popts.Mode = layout.Approximate
	}
	popts.EmbedFont = opts.embedFont
	popts.CornerRadius = opts.radius

	if opts.font == "" {
		popts.Face, err = fonts.Default(px)
	} else {
		popts.Face, err = fonts.ReadFile(opts.font, px)
	}
	if err != nil {
		return popts, err
	}
	return popts, nil
}

// resolveTheme looks the theme up and applies colour overrides. A colour
// given as #RRGGBBAA sets the alpha unless an explicit alpha is also given.
func resolveTheme(opts renderOpts, cfg Config) (theme.Theme, error) {
	set, err := cfg.themeSet()
	if err != nil {
		return theme.Theme{}, err
	}
	style, ok := set.Lookup(opts.theme)
	if !ok {
		return theme.Theme{}, errors.New(errors.ErrCodeUnknownTheme, "unknown theme %q (run '%s themes' to list them)", opts.theme, appName)
	}

	var ov theme.Overrides
	if opts.bgColor != "" {
		c, a, err := theme.ParseColor(opts.bgColor)
		if err != nil {
			return theme.Theme{}, err
		}
		ov.Background = &c
		if a < 1 {
			ov.BackgroundAlpha = &a
		}
	}
	if opts.fgColor != "" {
		c, a, err := theme.ParseColor(opts.fgColor)
		if err != nil {
			return theme.Theme{}, err
		}
		ov.Foreground = &c
		if a < 1 {
			ov.ForegroundAlpha = &a
		}
	}
	if opts.bgAlpha != "" {
		a, err := theme.ParseAlpha(opts.bgAlpha)
		if err != nil {
			return theme.Theme{}, err
		}
		ov.BackgroundAlpha = &a
	}
	if opts.fgAlpha != "" {
		a, err := theme.ParseAlpha(opts.fgAlpha)
		if err != nil {
			return theme.Theme{}, err
		}
		ov.ForegroundAlpha = &a
	}
	return theme.FromStyle(style, ov)
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func uniqueFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func needsRasterizer(formats []string) bool {
	return len(rasterFormats(formats)) > 0
}

func rasterFormats(formats []string) []string {
	var out []string
	for _, f := range uniqueFormats(formats) {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			out = append(out, f)
		}
	}
	return out
}

// outputPaths maps each format to its output file. With one format the
// output path is used as is; with several it is a base path that gets the
// format as extension. An empty output means "output.<format>".
func outputPaths(output string, formats []string) (map[string]string, error) {
	formats = uniqueFormats(formats)
	if output == stdioPath {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "writing to stdout needs exactly one format, got %d", len(formats))
		}
		return map[string]string{formats[0]: stdioPath}, nil
	}

	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = fmt.Sprintf("%s.%s", base, f)
	}
	return paths, nil
}

// basePath strips a known format extension from output, or returns the
// default base name for an empty output.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
