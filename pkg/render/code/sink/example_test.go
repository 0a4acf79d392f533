package sink_test

import (
	"fmt"

	"github.com/matzehuels/sia/pkg/render/code/sink"
)

func ExampleEscapeText() {
	fmt.Println(sink.EscapeText(`if a < b {`))
	// Output:
	// if&#32;a&#32;&lt;&#32;b&#32;{
}

func ExampleDocument_SVG() {
	doc := sink.Document{
		Width:      40,
		Height:     38,
		Background: sink.Background{Fill: "#2B303B", Opacity: 1},
		Group: sink.Group{
			FontFamily:  "Go Mono",
			FontSize:    16,
			Fill:        "#C0C5CE",
			FillOpacity: 1,
			Lines: []sink.LineNode{{
				BaselineEm: 1.1875,
				Runs: []sink.RunNode{
					{Text: "fn"},
					{X: 19.2, Text: "&#32;main", Fill: "#BF616A", Bold: true},
				},
			}},
		},
	}
	fmt.Print(string(doc.SVG()))
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" width="40" height="38" viewBox="0 0 40 38">
	//   <rect width="100%" height="100%" fill="#2B303B"/>
	//   <g font-family="Go Mono" font-size="16" fill="#C0C5CE" xml:space="preserve">
	//     <text x="0" y="1.1875em"><tspan>fn</tspan><tspan x="19.2" fill="#BF616A" font-weight="bold">&#32;main</tspan></text>
	//   </g>
	// </svg>
}
