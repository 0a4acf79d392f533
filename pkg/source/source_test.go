package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sia/pkg/errors"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	goFile := filepath.Join(dir, "main.go")
	if err := os.WriteFile(goFile, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		arg      string
		wantText string
		wantFile bool
	}{
		{"empty uses preview", "", PreviewText, false},
		{"literal text", "fn main() {}", "fn main() {}", false},
		{"missing path is literal", filepath.Join(dir, "nope.rs"), filepath.Join(dir, "nope.rs"), false},
		{"directory is literal", dir, dir, false},
		{"file", goFile, "package main\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Read(tt.arg)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if in.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", in.Text, tt.wantText)
			}
			if in.IsFile() != tt.wantFile {
				t.Errorf("IsFile() = %v, want %v", in.IsFile(), tt.wantFile)
			}
		})
	}
}

func TestReadBinary(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "image.txt")
	sig := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	if err := os.WriteFile(png, sig, 0o644); err != nil {
		t.Fatal(err)
	}
	nul := filepath.Join(dir, "blob.c")
	if err := os.WriteFile(nul, []byte("int x;\x00\x01\x02"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{png, nul} {
		_, err := Read(path)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Read(%s) error = %v, want %s", filepath.Base(path), err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestReadInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	if err := os.WriteFile(path, []byte("caf\xe9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if in.Text != "caf�\n" {
		t.Errorf("Text = %q, want replacement character", in.Text)
	}
}

func TestReadFrom(t *testing.T) {
	in, err := ReadFrom(strings.NewReader("x = 1\n"), "stdin")
	if err != nil {
		t.Fatalf("ReadFrom() error: %v", err)
	}
	if in.Text != "x = 1\n" || in.IsFile() {
		t.Errorf("ReadFrom() = %+v", in)
	}
}

func TestDetectSyntax(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		in       Input
		want     string
	}{
		{"explicit wins", "rust", Input{Text: "package main", Path: "main.go"}, "rust"},
		{"by filename", "", Input{Text: "x", Path: "/tmp/main.go"}, "Go"},
		{"by extension", "", Input{Text: "x", Path: "lib.rs"}, "Rust"},
		{"preview is plain", "", Input{Text: PreviewText}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSyntax(tt.explicit, tt.in); got != tt.want {
				t.Errorf("DetectSyntax() = %q, want %q", got, tt.want)
			}
		})
	}

	// Content analysis may pick any Python variant for a shebang.
	got := DetectSyntax("", Input{Text: "#!/usr/bin/env python\nprint(1)\n"})
	if !strings.HasPrefix(got, "Python") {
		t.Errorf("DetectSyntax(shebang) = %q, want a Python lexer", got)
	}
}
