package hunkctx

import (
	"slices"
	"strings"
)

// Expand returns hunkDiff with up to width unchanged lines of context taken
// from before on each side of the change.
//
// startLine is the 1-based line in the old file where the hunk starts. Context
// is clamped at both ends of the file, so each side may hold fewer than width
// lines. The header is rewritten in "@@ -a,b +c,d @@" form with counts
// recomputed from the body; any section text after the original header is
// dropped. A width of zero leaves the body unchanged.
//
// The only error is a *HeaderParseError for a malformed header.
func Expand(hunkDiff string, startLine int, binary bool, width int, before []string) (Hunk, error) {
	raw := splitLines(hunkDiff)
	if len(raw) == 0 {
		return Hunk{}, &HeaderParseError{Field: FieldHeader}
	}
	header, err := ParseHeader(raw[0])
	if err != nil {
		return Hunk{}, err
	}
	body := raw[1:]
	width = max(width, 0)

	lines := make([]Line, 0, len(body))
	var removed, added int
	for _, r := range body {
		l := ParseLine(r)
		switch l.Kind {
		case LineRemoved:
			removed++
		case LineAdded:
			added++
		}
		lines = append(lines, l)
	}

	var ctxBefore []string
	for i := 1; i <= width && startLine > i; i++ {
		if idx := startLine - i - 1; idx < len(before) {
			ctxBefore = append(ctxBefore, before[idx])
		}
	}
	slices.Reverse(ctxBefore)

	var ctxAfter []string
	for i := range width {
		if idx := startLine + removed + i - 1; idx >= 0 && idx < len(before) {
			ctxAfter = append(ctxAfter, before[idx])
		}
	}

	nctx := len(ctxBefore) + len(ctxAfter)
	out := Header{
		OldStart: saturatingSub(header.OldStart, len(ctxBefore)),
		OldLines: removed + nctx,
		NewStart: saturatingSub(header.NewStart, len(ctxBefore)),
		NewLines: added + nctx,
	}

	var sb strings.Builder
	sb.WriteString(out.String())
	sb.WriteByte('\n')
	all := make([]Line, 0, len(lines)+nctx)
	for _, c := range ctxBefore {
		writeContext(&sb, c)
		all = append(all, Line{Kind: LineContext, Content: c})
	}
	for _, r := range body {
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	all = append(all, lines...)
	for _, c := range ctxAfter {
		writeContext(&sb, c)
		all = append(all, Line{Kind: LineContext, Content: c})
	}

	return Hunk{
		Diff:     sb.String(),
		OldStart: uint32(out.OldStart),
		OldLines: uint32(out.OldLines),
		NewStart: uint32(out.NewStart),
		NewLines: uint32(out.NewLines),
		Binary:   binary,
		Lines:    all,
	}, nil
}

func writeContext(sb *strings.Builder, content string) {
	sb.WriteByte(' ')
	sb.WriteString(content)
	sb.WriteByte('\n')
}

func saturatingSub(a, b int) int {
	return max(a-b, 0)
}

// splitLines splits s into lines. A final newline does not start a new line
// and a trailing carriage return is removed from each line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
