// Package source reads the text to render and guesses its syntax.
//
// [Read] accepts the command-line input argument: a path to an existing
// file, literal text, or nothing for [PreviewText]. File content is checked
// with h2non/filetype so images, archives and other binary formats are
// rejected with INVALID_INPUT instead of being rendered as garbage.
// Invalid UTF-8 sequences in text files are replaced.
//
// [DetectSyntax] picks the chroma language name for the highlighter.
package source
