// Package highlight splits source text into lines of styled runs.
//
// A [Highlighter] pairs one chroma lexer with one [theme.Theme]. Highlighting
// is a fold over the document: [Highlighter.Start] produces the initial
// [State], and each [Highlighter.Next] call consumes one line and returns
// the state for the following one. Constructs that span lines, such as block
// comments and raw strings, are carried in the state, so a line's styling
// depends only on the state it was stepped from.
//
//	h := highlight.New("go", th)
//	lines, err := h.Lines(src)
//
// Adjacent tokens with the same resolved style are merged into one
// [StyledRun]. Runs never contain newlines and are never empty; an empty
// source line is a [StyledLine] with no runs.
//
// When the syntax does not resolve to a lexer the highlighter falls back to
// plain text: every line becomes a single run in the theme foreground.
package highlight
