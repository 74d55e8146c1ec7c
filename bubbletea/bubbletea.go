// Package bubbletea provides an interactive pager for expanded hunks.
package bubbletea

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/hunkctx"
)

// Compile-time interface verification.
var _ hunkctx.Viewer = (*Viewer)(nil)

// Viewer shows rendered hunks in a full-screen scrollable pager.
type Viewer struct {
	Renderer hunkctx.Renderer

	// Input and Output default to the program's stdin and stdout.
	Input  io.Reader
	Output io.Writer
}

// NewViewer creates a viewer that draws hunks with renderer.
func NewViewer(renderer hunkctx.Renderer) *Viewer {
	return &Viewer{Renderer: renderer}
}

// View displays the hunks and blocks until the user quits or ctx is done.
func (v *Viewer) View(ctx context.Context, hunks []hunkctx.Hunk, path string) error {
	var sb strings.Builder
	for i, h := range hunks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(v.Renderer.Render(h, path))
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if v.Input != nil {
		opts = append(opts, tea.WithInput(v.Input))
	}
	if v.Output != nil {
		opts = append(opts, tea.WithOutput(v.Output))
	}

	_, err := tea.NewProgram(NewModel(path, sb.String()), opts...).Run()
	if err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// Model is the bubbletea model behind Viewer.
type Model struct {
	title    string
	content  string
	viewport viewport.Model
	width    int
	ready    bool
}

// NewModel creates a pager over content. The title is shown in the footer.
func NewModel(title, content string) Model {
	return Model{
		title:    title,
		content:  ExpandTabs(strings.TrimSuffix(content, "\n")),
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-1, 0)
		m.viewport.SetContent(m.content)
		m.ready = true
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + m.footer()
}

// footer shows the title on the left and the scroll position on the right.
func (m Model) footer() string {
	percent := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	gap := m.width - DisplayWidth(m.title) - DisplayWidth(percent)
	if gap < 1 {
		return percent
	}
	return m.title + strings.Repeat(" ", gap) + percent
}
