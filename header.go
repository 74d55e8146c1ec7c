package hunkctx

import (
	"fmt"
	"strconv"
	"strings"
)

// Header holds the fields of a unified-diff hunk header.
type Header struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Section  string // Optional text after the closing @@
}

// String renders the header in comma form, without the section.
func (h Header) String() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Header fields reported by HeaderParseError.
const (
	FieldHeader   = "header"
	FieldOldStart = "start line before"
	FieldNewStart = "start line after"
)

// HeaderParseError is returned when a hunk header cannot be parsed.
type HeaderParseError struct {
	Field string // One of the Field* constants
	Value string // Offending text
	Err   error
}

func (e *HeaderParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to parse unidiff %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("failed to parse unidiff header value for %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *HeaderParseError) Unwrap() error {
	return e.Err
}

// ParseHeader parses a hunk header of the form "@@ -a[,b] +c[,d] @@ section".
//
// Only the leading numbers of the two ranges can fail to parse. A leading
// sign is tolerated and dropped. Counts default to 1 and malformed counts
// are ignored, since they are always recomputed from the body.
func ParseHeader(line string) (Header, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '@'
	})
	if len(fields) < 2 {
		return Header{}, &HeaderParseError{Field: FieldHeader, Value: line}
	}

	var h Header
	var err error
	if h.OldStart, h.OldLines, err = parseRange(fields[0]); err != nil {
		return Header{}, &HeaderParseError{Field: FieldOldStart, Value: fields[0], Err: err}
	}
	if h.NewStart, h.NewLines, err = parseRange(fields[1]); err != nil {
		return Header{}, &HeaderParseError{Field: FieldNewStart, Value: fields[1], Err: err}
	}

	if rest, ok := strings.CutPrefix(line, "@@"); ok {
		if _, section, ok := strings.Cut(rest, "@@"); ok {
			h.Section = strings.TrimSpace(section)
		}
	}
	return h, nil
}

// parseRange parses "start" or "start,count".
func parseRange(s string) (start, count int, err error) {
	head, tail, hasCount := strings.Cut(s, ",")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		n = -n
	}
	count = 1
	if hasCount {
		if c, cerr := strconv.Atoi(strings.TrimSpace(tail)); cerr == nil && c >= 0 {
			count = c
		}
	}
	return n, count, nil
}
