package lipgloss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/hunkctx"
)

// Compile-time interface verification.
var _ hunkctx.Renderer = (*Renderer)(nil)

// Renderer draws a hunk with a line-number gutter and colored markers.
type Renderer struct {
	theme     Theme
	renderer  *lipgloss.Renderer
	tokenizer hunkctx.Tokenizer
	detector  hunkctx.LanguageDetector
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSyntax enables syntax highlighting of line content.
func WithSyntax(tokenizer hunkctx.Tokenizer, detector hunkctx.LanguageDetector) Option {
	return func(r *Renderer) {
		r.tokenizer = tokenizer
		r.detector = detector
	}
}

// NewRenderer creates a renderer. If renderer is nil, the default lipgloss
// renderer is used.
func NewRenderer(renderer *lipgloss.Renderer, theme Theme, opts ...Option) *Renderer {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	r := &Renderer{theme: theme, renderer: renderer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the hunk header followed by one line per body line, each
// prefixed with its old and new line numbers.
func (r *Renderer) Render(h hunkctx.Hunk, path string) string {
	header, _, _ := strings.Cut(h.Diff, "\n")

	oldSide, newSide := r.highlight(h, path)
	width := len(strconv.Itoa(int(max(h.OldStart+h.OldLines, h.NewStart+h.NewLines))))

	gutter := r.style(r.theme.Gutter)
	var sb strings.Builder
	sb.WriteString(r.style(r.theme.Header).Bold(true).Render(header))
	sb.WriteByte('\n')

	oldNum, newNum := int(h.OldStart), int(h.NewStart)
	var oldIdx, newIdx int
	for _, line := range h.Lines {
		var oldCol, newCol string
		var tokens []hunkctx.Token
		var color string
		switch line.Kind {
		case hunkctx.LineRemoved:
			oldCol = strconv.Itoa(oldNum)
			tokens = at(oldSide, oldIdx)
			color = r.theme.Removed
			oldNum++
			oldIdx++
		case hunkctx.LineAdded:
			newCol = strconv.Itoa(newNum)
			tokens = at(newSide, newIdx)
			color = r.theme.Added
			newNum++
			newIdx++
		default:
			oldCol, newCol = strconv.Itoa(oldNum), strconv.Itoa(newNum)
			tokens = at(oldSide, oldIdx)
			color = r.theme.Context
			oldNum++
			newNum++
			oldIdx++
			newIdx++
		}

		sb.WriteString(gutter.Render(fmt.Sprintf("%*s %*s ", width, oldCol, width, newCol)))
		sb.WriteString(r.style(color).Render(line.Kind.String()))
		sb.WriteString(r.content(line.Content, tokens, color))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// highlight tokenizes the old and new side of the hunk separately so that
// each side is lexed as contiguous source.
func (r *Renderer) highlight(h hunkctx.Hunk, path string) (oldSide, newSide [][]hunkctx.Token) {
	if r.tokenizer == nil || r.detector == nil {
		return nil, nil
	}
	language := r.detector.DetectFromPath(path)
	if language == "" {
		return nil, nil
	}

	var oldSrc, newSrc []string
	for _, line := range h.Lines {
		if line.Kind != hunkctx.LineAdded {
			oldSrc = append(oldSrc, line.Content)
		}
		if line.Kind != hunkctx.LineRemoved {
			newSrc = append(newSrc, line.Content)
		}
	}
	oldSide = r.tokenizer.TokenizeLines(language, strings.Join(oldSrc, "\n"))
	newSide = r.tokenizer.TokenizeLines(language, strings.Join(newSrc, "\n"))
	return oldSide, newSide
}

func (r *Renderer) content(text string, tokens []hunkctx.Token, color string) string {
	if tokens == nil {
		return r.style(color).Render(text)
	}
	var sb strings.Builder
	for _, tok := range tokens {
		s := r.style(tok.Style.Foreground).Bold(tok.Style.Bold)
		if tok.Style.Foreground == "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		sb.WriteString(s.Render(tok.Text))
	}
	return sb.String()
}

func (r *Renderer) style(color string) lipgloss.Style {
	s := r.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	return s
}

func at(lines [][]hunkctx.Token, i int) []hunkctx.Token {
	if i < len(lines) {
		return lines[i]
	}
	return nil
}
