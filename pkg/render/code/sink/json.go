package sink

import "encoding/json"

type jsonOutput struct {
	Width      uint32     `json:"width"`
	Height     uint32     `json:"height"`
	Background string     `json:"background"`
	Opacity    float64    `json:"background_opacity"`
	Radius     float64    `json:"radius,omitempty"`
	FontFamily string     `json:"font_family"`
	FontSize   float64    `json:"font_size"`
	Foreground string     `json:"foreground"`
	Lines      []jsonLine `json:"lines"`
}

type jsonLine struct {
	BaselineEm float64   `json:"baseline_em"`
	Runs       []jsonRun `json:"runs"`
}

type jsonRun struct {
	X      float64 `json:"x"`
	Text   string  `json:"text"`
	Fill   string  `json:"fill,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// RenderJSON exports the document's geometry and styling. Run text is
// written unescaped.
func RenderJSON(d Document) ([]byte, error) {
	out := jsonOutput{
		Width:      d.Width,
		Height:     d.Height,
		Background: d.Background.Fill,
		Opacity:    d.Background.Opacity,
		Radius:     d.Background.Radius,
		FontFamily: d.Group.FontFamily,
		FontSize:   d.Group.FontSize,
		Foreground: d.Group.Fill,
		Lines:      make([]jsonLine, len(d.Group.Lines)),
	}
	for i, line := range d.Group.Lines {
		jl := jsonLine{BaselineEm: line.BaselineEm, Runs: make([]jsonRun, len(line.Runs))}
		for j, run := range line.Runs {
			jl.Runs[j] = jsonRun{
				X:      run.X,
				Text:   UnescapeText(run.Text),
				Fill:   run.Fill,
				Bold:   run.Bold,
				Italic: run.Italic,
			}
		}
		out.Lines[i] = jl
	}
	return json.MarshalIndent(out, "", "  ")
}
