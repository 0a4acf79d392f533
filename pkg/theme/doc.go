// Package theme resolves the colours of a render: the document background
// and foreground, and the per-token style table the highlighter consults.
//
// Themes are chroma styles. A [Set] combines chroma's built-in registry with
// themes defined in TOML (see [Definition]); sia ships base16-ocean.dark as
// its default. [FromStyle] turns a style into a [Theme] and rejects styles
// that declare no background or no foreground colour, unless [Overrides]
// provide them.
package theme
