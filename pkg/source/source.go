package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/h2non/filetype"

	"github.com/matzehuels/sia/pkg/errors"
)

// PreviewText is rendered when no input is given.
const PreviewText = `ABCDEFGHIJKLM
NOPQRSTUVWXYZ
abcdefghijklm
nopqrstuvwxyz
1234567890
!@$%(){}[]`

// sniffLen is how many leading bytes are inspected for binary content.
const sniffLen = 8192

// Input is text to render together with where it came from.
type Input struct {
	Text string
	Path string // empty for literal text and the preview
}

// IsFile reports whether the input was read from a file.
func (in Input) IsFile() bool { return in.Path != "" }

// Read resolves arg the way the command line does: an existing regular
// file is read, anything else is taken as literal text, and an empty
// argument yields PreviewText.
func Read(arg string) (Input, error) {
	if arg == "" {
		return Input{Text: PreviewText}, nil
	}
	if fi, err := os.Stat(arg); err == nil && fi.Mode().IsRegular() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", arg)
		}
		return fromBytes(data, arg)
	}
	return Input{Text: arg}, nil
}

// ReadFrom reads all of r, naming the input name for syntax detection.
func ReadFrom(r io.Reader, name string) (Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	in, err := fromBytes(data, name)
	in.Path = ""
	return in, err
}

func fromBytes(data []byte, name string) (Input, error) {
	if err := CheckText(data); err != nil {
		return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s is not text", name)
	}
	return Input{Text: toValidUTF8(data), Path: name}, nil
}

// CheckText rejects content that is recognisably binary: a known binary
// file signature or a NUL byte near the start.
func CheckText(data []byte) error {
	head := data[:min(len(data), sniffLen)]
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return errors.New(errors.ErrCodeInvalidInput, "detected %s content", kind.MIME.Value)
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "detected binary content")
	}
	return nil
}

func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// DetectSyntax guesses the syntax of an input. An explicit syntax wins,
// then the file name, then chroma's content analysis. It returns "" when
// nothing matches, which the highlighter treats as plain text.
func DetectSyntax(explicit string, in Input) string {
	if explicit != "" {
		return explicit
	}
	if in.Path != "" {
		if l := lexers.Match(filepath.Base(in.Path)); l != nil {
			return l.Config().Name
		}
	}
	if in.Text == PreviewText {
		return ""
	}
	if l := lexers.Analyse(in.Text); l != nil {
		return l.Config().Name
	}
	return ""
}
