package theme

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/matzehuels/sia/pkg/errors"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "base16-ocean.dark"

// builtinTOML holds the themes sia ships on top of chroma's registry.
const builtinTOML = `
[themes."base16-ocean.dark"]
background = "#2B303B"
foreground = "#C0C5CE"

[themes."base16-ocean.dark".tokens]
Comment = "italic #65737E"
CommentPreproc = "#B48EAD"
Keyword = "#B48EAD"
KeywordType = "#EBCB8B"
KeywordConstant = "#D08770"
Name = "#C0C5CE"
NameFunction = "#8FA1B3"
NameClass = "#EBCB8B"
NameBuiltin = "#96B5B4"
NameTag = "#BF616A"
NameAttribute = "#D08770"
NameVariable = "#BF616A"
LiteralString = "#A3BE8C"
LiteralStringEscape = "#96B5B4"
LiteralNumber = "#D08770"
Operator = "#C0C5CE"
Punctuation = "#C0C5CE"
GenericDeleted = "#BF616A"
GenericInserted = "#A3BE8C"
GenericStrong = "bold"
GenericEmph = "italic"
`

// Definition describes a theme in a TOML file.
//
//	[themes.mine]
//	background = "#1D1F21"
//	foreground = "#C5C8C6"
//	[themes.mine.tokens]
//	Keyword = "bold #B294BB"
type Definition struct {
	Background string            `toml:"background"`
	Foreground string            `toml:"foreground"`
	Tokens     map[string]string `toml:"tokens"`
}

// File is the TOML layout of a theme file.
type File struct {
	Themes map[string]Definition `toml:"themes"`
}

// Style compiles the definition into a chroma style. Token keys are chroma
// token type names (Keyword, LiteralString, ...); values are chroma style
// strings ("bold italic #RRGGBB").
func (d Definition) Style(name string) (*chroma.Style, error) {
	var bg []string
	if d.Background != "" {
		c, _, err := ParseColor(d.Background)
		if err != nil {
			return nil, err
		}
		bg = append(bg, "bg:"+c.Hex())
	}
	if d.Foreground != "" {
		c, _, err := ParseColor(d.Foreground)
		if err != nil {
			return nil, err
		}
		bg = append(bg, c.Hex())
	}

	entries := chroma.StyleEntries{}
	if len(bg) > 0 {
		entries[chroma.Background] = strings.Join(bg, " ")
	}

	keys := make([]string, 0, len(d.Tokens))
	for k := range d.Tokens {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		tt, err := chroma.TokenTypeString(k)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "theme %q: unknown token type %q", name, k)
		}
		entries[tt] = d.Tokens[k]
	}

	style, err := chroma.NewStyle(name, entries)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme %q", name)
	}
	return style, nil
}

// Set resolves theme names against custom definitions first and chroma's
// built-in registry second. A Set is read-only after construction.
type Set struct {
	custom map[string]*chroma.Style
}

// ParseFile decodes TOML theme definitions.
func ParseFile(data []byte) (map[string]Definition, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode themes")
	}
	return f.Themes, nil
}

// NewSet compiles custom definitions on top of the built-in themes.
func NewSet(defs map[string]Definition) (*Set, error) {
	s := &Set{custom: make(map[string]*chroma.Style, len(defs)+len(builtins()))}
	for name, style := range builtins() {
		s.custom[name] = style
	}
	for name, def := range defs {
		style, err := def.Style(name)
		if err != nil {
			return nil, err
		}
		s.custom[strings.ToLower(name)] = style
	}
	return s, nil
}

// Lookup returns the style registered under name (case-insensitive).
func (s *Set) Lookup(name string) (*chroma.Style, bool) {
	key := strings.ToLower(name)
	if st, ok := s.custom[key]; ok {
		return st, true
	}
	st, ok := styles.Registry[key]
	return st, ok
}

// Names lists every theme name, sorted.
func (s *Set) Names() []string {
	names := styles.Names()
	for name := range s.custom {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Built-in definitions (compiled once on first access).
var (
	builtinStyles     map[string]*chroma.Style
	builtinStylesOnce sync.Once
)

func builtins() map[string]*chroma.Style {
	builtinStylesOnce.Do(func() {
		defs, err := ParseFile([]byte(builtinTOML))
		if err != nil {
			panic(fmt.Sprintf("theme: built-in themes: %v", err))
		}
		builtinStyles = make(map[string]*chroma.Style, len(defs))
		for name, def := range defs {
			style, err := def.Style(name)
			if err != nil {
				panic(fmt.Sprintf("theme: built-in theme %s: %v", name, err))
			}
			builtinStyles[name] = style
		}
	})
	return builtinStyles
}
