package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the standard terminal tab stop interval.
const tabWidth = 8

// DisplayWidth calculates the display width of a string, correctly handling
// tab characters which expand to the next 8-column boundary.
// This fixes the issue where lipgloss.Width returns 0 for tabs.
func DisplayWidth(s string) int {
	col := 0
	for _, r := range s {
		col = advance(col, r)
	}
	return col
}

// ExpandTabs replaces each tab with spaces up to the next tab stop so the
// viewport measures lines the same way the terminal draws them. ANSI escape
// sequences are copied through and take no columns.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var sb strings.Builder
	col := 0
	escape, csi := false, false
	for _, r := range s {
		switch {
		case escape:
			sb.WriteRune(r)
			if r == '[' && !csi {
				csi = true
			} else if r >= 0x40 && r <= 0x7e {
				escape, csi = false, false
			}
		case r == '\x1b':
			escape = true
			sb.WriteRune(r)
		case r == '\n':
			col = 0
			sb.WriteRune(r)
		case r == '\t':
			next := advance(col, r)
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
		default:
			col = advance(col, r)
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// advance returns the column after drawing r at col.
func advance(col int, r rune) int {
	if r == '\t' {
		return ((col / tabWidth) + 1) * tabWidth
	}
	return col + lipgloss.Width(string(r))
}
