package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/theme"
)

// PlainText is the language reported when no lexer matches the syntax.
const PlainText = "plaintext"

// Highlighter turns source text into styled lines using one chroma lexer
// and one theme. It holds no per-document state and may be shared.
type Highlighter struct {
	lexer chroma.Lexer // nil in plain-text mode
	theme theme.Theme
}

// New resolves syntax (a language name, alias or file extension) to a
// lexer. An empty or unknown syntax selects plain-text mode, where every
// line becomes a single run in the theme foreground.
func New(syntax string, th theme.Theme) *Highlighter {
	h := &Highlighter{theme: th}
	if syntax = strings.TrimPrefix(strings.TrimSpace(syntax), "."); syntax == "" {
		return h
	}
	lexer := lexers.Get(syntax)
	if lexer == nil || strings.EqualFold(lexer.Config().Name, PlainText) {
		return h
	}
	h.lexer = chroma.Coalesce(lexer)
	return h
}

// Resolved reports whether a lexer was found for the syntax.
func (h *Highlighter) Resolved() bool { return h.lexer != nil }

// Language returns the lexer name, or PlainText.
func (h *Highlighter) Language() string {
	if h.lexer == nil {
		return PlainText
	}
	return h.lexer.Config().Name
}

// State is the scan position between two lines: the tokens not yet
// consumed, plus the unconsumed tail of a token that spans a line break
// (an open block comment or string). States are values; stepping from the
// same State always yields the same line.
type State struct {
	tokens  []chroma.Token
	pending chroma.Token
}

// Done reports whether the state has no text left.
func (s State) Done() bool {
	return s.pending.Value == "" && len(s.tokens) == 0
}

func (s State) take() (chroma.Token, State, bool) {
	if s.pending.Value != "" {
		return s.pending, State{tokens: s.tokens}, true
	}
	if len(s.tokens) == 0 {
		return chroma.Token{}, s, false
	}
	return s.tokens[0], State{tokens: s.tokens[1:]}, true
}

// Start tokenises the whole document once and returns the state before its
// first line. Lexer state that spans lines is resolved here; Next only
// walks the resulting stream.
func (h *Highlighter) Start(text string) (State, error) {
	text = normalizeNewlines(text)
	if text == "" {
		return State{}, nil
	}
	if h.lexer == nil {
		return State{tokens: []chroma.Token{{Type: chroma.Text, Value: text}}}, nil
	}
	it, err := h.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInternal, err, "tokenise %s", h.Language())
	}
	return State{tokens: it.Tokens()}, nil
}

// Next consumes one line from st and returns it with the state after it.
// Calling Next on an exhausted state returns an empty line.
func (h *Highlighter) Next(st State) (StyledLine, State) {
	var line StyledLine
	for {
		tok, rest, ok := st.take()
		if !ok {
			return line, rest
		}
		if i := strings.IndexByte(tok.Value, '\n'); i >= 0 {
			line = h.appendRun(line, tok.Type, tok.Value[:i])
			rest.pending = chroma.Token{Type: tok.Type, Value: tok.Value[i+1:]}
			return line, rest
		}
		line = h.appendRun(line, tok.Type, tok.Value)
		st = rest
	}
}

// Lines highlights every line of text in order. Empty text has zero lines;
// otherwise there is one line per newline plus one, so a trailing newline
// yields a final empty line.
func (h *Highlighter) Lines(text string) ([]StyledLine, error) {
	text = normalizeNewlines(text)
	st, err := h.Start(text)
	if err != nil {
		return nil, err
	}
	n := LineCount(text)
	lines := make([]StyledLine, 0, n)
	for range n {
		var line StyledLine
		line, st = h.Next(st)
		lines = append(lines, line)
	}
	return lines, nil
}

func (h *Highlighter) appendRun(line StyledLine, tt chroma.TokenType, text string) StyledLine {
	if text == "" {
		return line
	}
	run := StyledRun{Text: text, Foreground: h.theme.Foreground}
	if h.lexer != nil {
		run.Foreground, run.Bold, run.Italic = h.theme.TokenStyle(tt)
	}
	if n := len(line); n > 0 && line[n-1].SameStyle(run) {
		line[n-1].Text += text
		return line
	}
	return append(line, run)
}

// LineCount returns how many lines Lines produces for text.
func LineCount(text string) int {
	text = normalizeNewlines(text)
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
