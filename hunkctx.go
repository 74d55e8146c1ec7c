// Package hunkctx provides domain types for expanding unified-diff hunks with
// surrounding context lines.
package hunkctx

import (
	"context"
	"io"
)

// Hunk is a single unified-diff hunk with its header fields.
type Hunk struct {
	Diff     string // Header and body, newline-terminated
	OldStart uint32 // From @@ -X,...
	OldLines uint32 // From @@ -X,Y ...
	NewStart uint32 // From @@ ... +X
	NewLines uint32 // From @@ ... +X,Y
	Binary   bool
	Lines    []Line // Body lines in output order, header excluded
}

// Line represents a single body line within a hunk.
type Line struct {
	Kind    LineKind
	Content string // Text without the leading marker
}

// LineKind represents the type of a diff line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// String returns the diff marker for the line kind.
func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// ParseLine classifies a raw hunk body line by its first character.
// Anything that is not a '-' or '+' is context.
func ParseLine(raw string) Line {
	if raw == "" {
		return Line{Kind: LineContext}
	}
	switch raw[0] {
	case '-':
		return Line{Kind: LineRemoved, Content: raw[1:]}
	case '+':
		return Line{Kind: LineAdded, Content: raw[1:]}
	default:
		return Line{Kind: LineContext, Content: raw[1:]}
	}
}

// Request holds the inputs of a single expansion.
type Request struct {
	Path      string   // Informational; used for rendering
	HunkDiff  string   // Minimal hunk, header first
	StartLine int      // 1-based start line in the old file
	Binary    bool
	Context   int      // Number of context lines wanted on each side
	Before    []string // Pre-change file content, one entry per line
}

// Expand expands the request's hunk with context.
func (r Request) Expand() (Hunk, error) {
	return Expand(r.HunkDiff, r.StartLine, r.Binary, r.Context, r.Before)
}

// ContentProvider supplies the pre-change content of a file.
type ContentProvider interface {
	// Lines returns the file content split into lines.
	Lines(ctx context.Context, path string) ([]string, error)
}

// HunkReader reads a single minimal hunk produced by an upstream diff tool.
type HunkReader interface {
	// Read parses r and returns a request with HunkDiff, StartLine, Binary
	// and Path populated.
	Read(r io.Reader) (*Request, error)
}

// Renderer formats a hunk for terminal display.
type Renderer interface {
	Render(h Hunk, path string) string
}

// Viewer displays hunks to the user.
type Viewer interface {
	// View displays the hunks and blocks until the user exits.
	View(ctx context.Context, hunks []Hunk, path string) error
}

// Token is a piece of syntax-highlighted source text.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token is drawn.
type Style struct {
	Foreground string // Hex color, empty for default
	Bold       bool
}

// Tokenizer splits source code into styled tokens.
type Tokenizer interface {
	// Tokenize returns nil when the language is not supported.
	Tokenize(language, source string) []Token
	// TokenizeLines tokenizes source and returns one slice per line.
	TokenizeLines(language, source string) [][]Token
}

// LanguageDetector maps file paths to tokenizer language names.
type LanguageDetector interface {
	// DetectFromPath returns an empty string for unknown files.
	DetectFromPath(path string) string
}
