// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/hunkctx"
)

// Compile-time interface verification.
var (
	_ hunkctx.Tokenizer        = (*Tokenizer)(nil)
	_ hunkctx.LanguageDetector = (*Detector)(nil)
)

// Palette holds the foreground colors used for each token class.
type Palette struct {
	Keyword  string
	Comment  string
	String   string
	Number   string
	Operator string
	Builtin  string
	Function string
	Name     string
}

// DefaultPalette is loosely based on the One Dark theme.
var DefaultPalette = Palette{
	Keyword:  "#c678dd",
	Comment:  "#5c6370",
	String:   "#98c379",
	Number:   "#d19a66",
	Operator: "#56b6c2",
	Builtin:  "#e5c07b",
	Function: "#61afef",
	Name:     "#e06c75",
}

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	palette Palette
}

// NewTokenizer creates a new chroma-based tokenizer using palette.
func NewTokenizer(palette Palette) *Tokenizer {
	return &Tokenizer{palette: palette}
}

// Tokenize splits source code into syntax-highlighted tokens for the given language.
// Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source (valid input, no tokens).
func (t *Tokenizer) Tokenize(language, source string) []hunkctx.Token {
	if source == "" {
		return []hunkctx.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []hunkctx.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, hunkctx.Token{
			Text:  token.Value,
			Style: t.palette.style(token.Type),
		})
	}
	return tokens
}

// TokenizeLines tokenizes source as a whole and splits the result into one
// token slice per source line, so constructs spanning lines (block comments,
// raw strings) keep their style on every line.
// Returns nil if the language is not supported.
func (t *Tokenizer) TokenizeLines(language, source string) [][]hunkctx.Token {
	if source == "" {
		return [][]hunkctx.Token{}
	}
	tokens := t.Tokenize(language, source)
	if tokens == nil {
		return nil
	}

	want := strings.Count(source, "\n") + 1
	lines := make([][]hunkctx.Token, 1, want)
	for _, tok := range tokens {
		for i, part := range strings.Split(tok.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], hunkctx.Token{Text: part, Style: tok.Style})
			}
		}
	}

	// Lexers may append a final newline to the source.
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines[:want]
}

// style returns the visual style for a chroma token type.
// Specific names are checked before the broad Name category.
func (p Palette) style(tt chroma.TokenType) hunkctx.Style {
	switch tt {
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return hunkctx.Style{Foreground: p.Builtin}
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return hunkctx.Style{Foreground: p.Function}
	}

	switch {
	case tt.InCategory(chroma.Keyword):
		return hunkctx.Style{Foreground: p.Keyword, Bold: true}
	case tt.InCategory(chroma.Comment):
		return hunkctx.Style{Foreground: p.Comment}
	case tt.InSubCategory(chroma.LiteralString):
		return hunkctx.Style{Foreground: p.String}
	case tt.InSubCategory(chroma.LiteralNumber):
		return hunkctx.Style{Foreground: p.Number}
	case tt.InCategory(chroma.Operator):
		return hunkctx.Style{Foreground: p.Operator}
	case tt.InCategory(chroma.Name):
		return hunkctx.Style{Foreground: p.Name}
	default:
		return hunkctx.Style{}
	}
}

// Detector maps file names to chroma lexer names.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the lexer name for path, or "" if none matches.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
