package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/canonical/bugit-v2/internal/report"
)

// confirmModel shows the rendered report before anything is filed.
type confirmModel struct {
	styles   appStyles
	viewport viewport.Model
	ready    bool
	copied   bool
	width    int
	height   int
}

func newConfirmModel(styles appStyles) confirmModel {
	return confirmModel{styles: styles, viewport: viewport.New(0, 0)}
}

func (c *confirmModel) setSize(width, height int) {
	c.width = width
	c.height = height
	c.viewport.Width = width - 4
	c.viewport.Height = height - 8
}

type previewMsg struct {
	rendered string
	err      error
}

// renderCmd renders the report markdown off the update loop.
func (c *confirmModel) renderCmd(r *report.BugReport) tea.Cmd {
	width := c.width - 6
	if width < 40 {
		width = 80
	}
	markdown := r.Markdown()
	return func() tea.Msg {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return previewMsg{rendered: markdown, err: err}
		}
		rendered, err := renderer.Render(markdown)
		if err != nil {
			return previewMsg{rendered: markdown, err: err}
		}
		return previewMsg{rendered: rendered}
	}
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		m.confirm.ready = true
		m.confirm.copied = false
		m.confirm.viewport.SetContent(msg.rendered)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e", "esc":
			m.screen = screenForm
			return m, m.form.focusCmd()
		case "c":
			// best effort, a headless DUT has no clipboard
			if err := clipboard.WriteAll(m.report.Markdown()); err == nil {
				m.confirm.copied = true
			}
			return m, nil
		case "y", "enter":
			m.screen = screenProgress
			m.progress.begin(m.opts.Submitter.Name())
			return m, tea.Batch(
				m.progress.spinner.Tick,
				m.submitCmd(),
				m.progress.waitCmd(),
			)
		}
	}

	var cmd tea.Cmd
	m.confirm.viewport, cmd = m.confirm.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewConfirm() string {
	header := m.styles.title.Render("Review bug report") + "\n\n"
	if !m.confirm.ready {
		return m.styles.frame.Render(header + m.styles.muted.Render("rendering preview..."))
	}

	help := "y submit · e edit · c copy to clipboard · esc back"
	if m.confirm.copied {
		help = "copied! · " + help
	}
	return m.styles.frame.Render(header + m.confirm.viewport.View() + "\n" + m.styles.help.Render(help))
}
