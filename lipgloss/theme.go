// Package lipgloss renders hunks for the terminal using lipgloss styles.
package lipgloss

// Theme holds the colors used to draw a hunk. Colors are hex strings or
// ANSI color numbers as accepted by lipgloss.Color.
type Theme struct {
	Header  string
	Added   string
	Removed string
	Context string
	Gutter  string
}

// DefaultTheme returns the theme used by the command line tool.
func DefaultTheme() Theme {
	return Theme{
		Header:  "#61afef",
		Added:   "#98c379",
		Removed: "#e06c75",
		Context: "#abb2bf",
		Gutter:  "#5c6370",
	}
}
