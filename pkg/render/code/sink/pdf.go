package sink

import "github.com/matzehuels/sia/pkg/render"

// RenderPDF converts the document to PDF via its SVG form.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d Document) ([]byte, error) {
	return render.ToPDF(d.SVG())
}
