package cli

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/fonts"
)

// fontCommand creates the font command.
func (c *CLI) fontCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "font [path]",
		Short: "Show metrics and Latin coverage of a font",
		Long: `Show the family name, vertical metrics, line height and glyph advances of a
font at a pixel size, and whether it covers the basic Latin letters and digits.

Without a path the embedded Go Mono font is inspected. Render the font with
'sia render -F <path>' to see a preview.`,
		Example: `  sia font
  sia font ~/.fonts/Hack-Regular.ttf --font-size 24`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			px, err := fonts.ParseSize(size)
			if err != nil {
				return err
			}
			if px.Relative {
				return errors.New(errors.ErrCodeInvalidConfig, "font inspection needs an absolute size, got %s", px)
			}
			face, err := openFace(path, px.Value)
			if err != nil {
				return err
			}
			defer face.Close()
			describeFace(face, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "font-size", defaultFontSize, "font size in px")
	return cmd
}

// openFace loads the font at path, or the embedded default for an empty
// path. Files that are not fonts are rejected before parsing.
func openFace(path string, size float64) (*fonts.Face, error) {
	if path == "" {
		return fonts.Default(size)
	}
	if err := errors.ValidateFontPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
	}
	if !filetype.IsFont(data) {
		kind, _ := filetype.Match(data)
		if kind != filetype.Unknown {
			return nil, errors.New(errors.ErrCodeFontLoad, "%s is a %s file, not a font", path, kind.Extension)
		}
	}
	return fonts.Load(data, size)
}

func describeFace(face *fonts.Face, path string) {
	vm := face.VerticalMetrics()
	if path == "" {
		path = "(embedded)"
	}

	printKeyValue("Family", face.Family())
	printKeyValue("File", path)
	printKeyValue("Size", fmt.Sprintf("%gpx", face.Size()))
	printKeyValue("Ascent", fmt.Sprintf("%.2f", vm.Ascent))
	printKeyValue("Descent", fmt.Sprintf("%.2f", vm.Descent))
	printKeyValue("Line gap", fmt.Sprintf("%.2f", vm.LineGap))
	printKeyValue("Line height", fmt.Sprintf("%.2f", face.LineHeight()))
	printKeyValue("Advance M", fmt.Sprintf("%.2f", face.Advance('M')))
	printKeyValue("Advance i", fmt.Sprintf("%.2f", face.Advance('i')))
	if face.Advance('M') == face.Advance('i') {
		printKeyValue("Spacing", "monospaced")
	} else {
		printKeyValue("Spacing", "proportional (--approximate will misplace runs)")
	}

	fmt.Fprintln(stdout)
	if ok, missing := face.Covers(fonts.LatinSample()); ok {
		printSuccess("Covers Latin letters and digits")
	} else {
		printWarning("Missing %d Latin glyphs: %s", len(missing), string(missing))
	}
}
