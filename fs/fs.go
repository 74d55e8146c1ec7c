// Package fs reads pre-change file content from disk.
package fs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/hunkctx"
)

// Compile-time interface verification.
var _ hunkctx.ContentProvider = (*ContentProvider)(nil)

// ContentProvider reads files relative to Root.
type ContentProvider struct {
	// Root is joined with relative paths. Empty means the working directory.
	Root string
}

// NewContentProvider creates a content provider rooted at root.
func NewContentProvider(root string) *ContentProvider {
	return &ContentProvider{Root: root}
}

// Lines returns the lines of the file at path.
func (p *ContentProvider) Lines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// ReadLines splits r into lines. Line terminators ("\n" or "\r\n") are
// removed and a final newline does not produce an empty trailing line.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = trimEOL(line)
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}
