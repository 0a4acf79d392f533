package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/sia/pkg/highlight"
	"github.com/matzehuels/sia/pkg/render/code/layout"
)

// RenderSVG assembles and serializes lines in one step.
func RenderSVG(lines []highlight.StyledLine, l layout.Result, p Params) []byte {
	return Assemble(lines, l, p).SVG()
}

// SVG serializes the document. Attribute order and number formatting are
// fixed, so equal documents produce identical bytes.
func (d Document) SVG() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		d.Width, d.Height, d.Width, d.Height)

	if d.FontData != "" {
		fmt.Fprintf(&buf, "  <defs><style>@font-face{font-family:\"%s\";src:url(data:font/ttf;base64,%s)}</style></defs>\n",
			cssFamily.Replace(d.Group.FontFamily), d.FontData)
	}

	renderBackground(&buf, d.Background)
	renderGroup(&buf, d.Group)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBackground(buf *bytes.Buffer, bg Background) {
	fmt.Fprintf(buf, `  <rect width="100%%" height="100%%" fill="%s"`, bg.Fill)
	if bg.Opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(bg.Opacity))
	}
	if bg.Radius > 0 {
		r := num(bg.Radius)
		fmt.Fprintf(buf, ` rx="%s" ry="%s"`, r, r)
	}
	buf.WriteString("/>\n")
}

func renderGroup(buf *bytes.Buffer, g Group) {
	fmt.Fprintf(buf, `  <g font-family="%s" font-size="%s" fill="%s"`,
		attrEscaper.Replace(g.FontFamily), num(g.FontSize), g.Fill)
	if g.FillOpacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(g.FillOpacity))
	}
	buf.WriteString(` xml:space="preserve">` + "\n")

	for _, line := range g.Lines {
		fmt.Fprintf(buf, `    <text x="0" y="%sem">`, num(line.BaselineEm))
		for j, run := range line.Runs {
			renderRun(buf, run, j > 0)
		}
		buf.WriteString("</text>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderRun(buf *bytes.Buffer, run RunNode, positioned bool) {
	buf.WriteString("<tspan")
	if positioned {
		fmt.Fprintf(buf, ` x="%s"`, num(run.X))
	}
	if run.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, run.Fill)
	}
	if run.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if run.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	buf.WriteByte('>')
	buf.WriteString(run.Text)
	buf.WriteString("</tspan>")
}

// num formats v with at most four decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
