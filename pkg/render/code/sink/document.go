package sink

import (
	"github.com/matzehuels/sia/pkg/highlight"
	"github.com/matzehuels/sia/pkg/render/code/layout"
	"github.com/matzehuels/sia/pkg/theme"
)

// Document is an assembled vector image. It is built once by Assemble and
// not modified afterwards.
type Document struct {
	Width      uint32
	Height     uint32
	Background Background
	Group      Group
	// FontData is the base64 font embedded as an @font-face rule, if any.
	FontData string
}

// Background is the rectangle covering the whole canvas.
type Background struct {
	Fill    string
	Opacity float64 // 1 means opaque; only values below 1 are written
	Radius  float64 // corner radius, 0 for square corners
}

// Group carries the defaults inherited by every line and run.
type Group struct {
	FontFamily  string
	FontSize    float64
	Fill        string
	FillOpacity float64
	Lines       []LineNode
}

// LineNode is one source line. Its baseline sits BaselineEm ems below the
// top of the canvas.
type LineNode struct {
	BaselineEm float64
	Runs       []RunNode
}

// RunNode is one styled run. Text is already escaped. Fill is empty when the
// run uses the group fill; Bold and Italic are only set when they apply.
type RunNode struct {
	X      float64
	Text   string
	Fill   string
	Bold   bool
	Italic bool
}

// Params are the document-wide inputs to Assemble.
type Params struct {
	Theme        theme.Theme
	FontFamily   string
	FontSize     float64
	LineHeight   float64
	CornerRadius float64
	FontData     string
}

// Assemble builds the document for lines laid out by l. Run text is escaped
// here and nowhere else.
func Assemble(lines []highlight.StyledLine, l layout.Result, p Params) Document {
	th := p.Theme
	doc := Document{
		Width:  l.Dimensions.Width,
		Height: l.Dimensions.Height,
		Background: Background{
			Fill:    th.Background.Hex(),
			Opacity: th.BackgroundAlpha,
			Radius:  p.CornerRadius,
		},
		Group: Group{
			FontFamily:  p.FontFamily,
			FontSize:    p.FontSize,
			Fill:        th.Foreground.Hex(),
			FillOpacity: th.ForegroundAlpha,
			Lines:       make([]LineNode, len(lines)),
		},
		FontData: p.FontData,
	}

	em := 0.0
	if p.FontSize > 0 {
		em = p.LineHeight / p.FontSize
	}

	for i, line := range lines {
		node := LineNode{
			BaselineEm: float64(i+1) * em,
			Runs:       make([]RunNode, len(line)),
		}
		var offsets []float64
		if i < len(l.Lines) {
			offsets = l.Lines[i].Offsets
		}
		for j, run := range line {
			rn := RunNode{Text: EscapeText(run.Text)}
			if j < len(offsets) {
				rn.X = offsets[j]
			}
			if !run.IsDefault(th) {
				if run.Foreground != th.Foreground {
					rn.Fill = run.Foreground.Hex()
				}
				rn.Bold = run.Bold
				rn.Italic = run.Italic
			}
			node.Runs[j] = rn
		}
		doc.Group.Lines[i] = node
	}
	return doc
}
