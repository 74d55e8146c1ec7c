// Package gitdiff reads and checks unified-diff hunks using go-gitdiff.
package gitdiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/hunkctx"
)

// Compile-time interface verification.
var _ hunkctx.HunkReader = (*HunkReader)(nil)

// Errors returned by HunkReader.
var (
	ErrNoHunk        = errors.New("input contains no hunk")
	ErrMultipleHunks = errors.New("input contains more than one hunk")
	ErrBinary        = errors.New("binary file has no text hunk")
)

// syntheticName names bare hunks in the headers handed to go-gitdiff.
const syntheticName = "file"

// HunkReader reads a single minimal hunk, either bare (starting with "@@")
// or preceded by git or traditional file headers.
type HunkReader struct {
	// Name is the path reported for bare hunks. It may be empty.
	Name string
}

// NewHunkReader creates a reader that reports bare hunks as name.
func NewHunkReader(name string) *HunkReader {
	return &HunkReader{Name: name}
}

// Read parses r and returns a request describing its only hunk.
//
// Pure insertions and pure deletions are renumbered so that the empty side
// of the range points at the first line after the change, which is where
// context starts in that file.
func (hr *HunkReader) Read(r io.Reader) (*hunkctx.Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hunk: %w", err)
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	bare := isBareHunk(data)
	if bare {
		data = append(syntheticHeaders(syntheticName), data...)
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing hunk: %w", err)
	}
	switch {
	case len(files) == 0:
		return nil, ErrNoHunk
	case len(files) > 1:
		return nil, ErrMultipleHunks
	}

	f := files[0]
	switch {
	case len(f.TextFragments) == 0 && f.IsBinary:
		return nil, ErrBinary
	case len(f.TextFragments) == 0:
		return nil, ErrNoHunk
	case len(f.TextFragments) > 1:
		return nil, ErrMultipleHunks
	}
	frag := f.TextFragments[0]

	oldStart := frag.OldPosition
	if frag.OldLines == 0 && oldStart > 0 {
		oldStart++
	}
	newStart := frag.NewPosition
	if frag.NewLines == 0 && newStart > 0 {
		newStart++
	}

	path := hr.Name
	if !bare {
		path = filePath(f)
	}
	return &hunkctx.Request{
		Path:      path,
		HunkDiff:  formatFragment(frag, oldStart, newStart),
		StartLine: int(oldStart),
		Binary:    f.IsBinary,
	}, nil
}

// Verify re-parses the hunk text and checks that it is a valid fragment
// whose header agrees with the hunk's fields.
func Verify(h hunkctx.Hunk) error {
	data := append(syntheticHeaders(syntheticName), h.Diff...)
	files, _, err := gitdiff.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing expanded hunk: %w", err)
	}
	switch {
	case len(files) == 0 || len(files[0].TextFragments) == 0:
		return ErrNoHunk
	case len(files) > 1 || len(files[0].TextFragments) > 1:
		return ErrMultipleHunks
	}
	frag := files[0].TextFragments[0]
	if err := frag.Validate(); err != nil {
		return fmt.Errorf("invalid expanded hunk: %w", err)
	}

	got := [4]int64{frag.OldPosition, frag.OldLines, frag.NewPosition, frag.NewLines}
	want := [4]int64{int64(h.OldStart), int64(h.OldLines), int64(h.NewStart), int64(h.NewLines)}
	if got != want {
		return fmt.Errorf("header mismatch: parsed %v, hunk has %v", got, want)
	}
	return nil
}

func isBareHunk(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, "\r\n"), []byte("@@"))
}

func syntheticHeaders(name string) []byte {
	return []byte("--- a/" + name + "\n+++ b/" + name + "\n")
}

func filePath(f *gitdiff.File) string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// formatFragment writes frag as a hunk with the given start lines.
func formatFragment(frag *gitdiff.TextFragment, oldStart, newStart int64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@", oldStart, frag.OldLines, newStart, frag.NewLines)
	if frag.Comment != "" {
		sb.WriteString(" " + frag.Comment)
	}
	sb.WriteByte('\n')
	for _, line := range frag.Lines {
		switch line.Op {
		case gitdiff.OpAdd:
			sb.WriteByte('+')
		case gitdiff.OpDelete:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSuffix(line.Line, "\n"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
