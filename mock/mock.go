// Package mock provides function-field implementations of the hunkctx
// interfaces for tests.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/hunkctx"
)

var _ hunkctx.ContentProvider = (*ContentProvider)(nil)

type ContentProvider struct {
	LinesFn func(ctx context.Context, path string) ([]string, error)
}

func (m *ContentProvider) Lines(ctx context.Context, path string) ([]string, error) {
	return m.LinesFn(ctx, path)
}

var _ hunkctx.HunkReader = (*HunkReader)(nil)

type HunkReader struct {
	ReadFn func(r io.Reader) (*hunkctx.Request, error)
}

func (m *HunkReader) Read(r io.Reader) (*hunkctx.Request, error) {
	return m.ReadFn(r)
}

var _ hunkctx.Renderer = (*Renderer)(nil)

type Renderer struct {
	RenderFn func(h hunkctx.Hunk, path string) string
}

func (m *Renderer) Render(h hunkctx.Hunk, path string) string {
	return m.RenderFn(h, path)
}

var _ hunkctx.Viewer = (*Viewer)(nil)

type Viewer struct {
	ViewFn func(ctx context.Context, hunks []hunkctx.Hunk, path string) error
}

func (m *Viewer) View(ctx context.Context, hunks []hunkctx.Hunk, path string) error {
	return m.ViewFn(ctx, hunks, path)
}

var _ hunkctx.Tokenizer = (*Tokenizer)(nil)

type Tokenizer struct {
	TokenizeFn      func(language, source string) []hunkctx.Token
	TokenizeLinesFn func(language, source string) [][]hunkctx.Token
}

func (m *Tokenizer) Tokenize(language, source string) []hunkctx.Token {
	return m.TokenizeFn(language, source)
}

func (m *Tokenizer) TokenizeLines(language, source string) [][]hunkctx.Token {
	return m.TokenizeLinesFn(language, source)
}

var _ hunkctx.LanguageDetector = (*LanguageDetector)(nil)

type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (m *LanguageDetector) DetectFromPath(path string) string {
	return m.DetectFromPathFn(path)
}
