package tui

import (
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canonical/bugit-v2/internal/visual"
)

// themePicker is the tiny standalone model behind `bugit visual-config`.
type themePicker struct {
	names    []string
	cursor   int
	chosen   string
	canceled bool
}

// RunThemePicker lets the user pick a theme interactively and returns the
// chosen name. A canceled picker returns current.
func RunThemePicker(current string) (string, error) {
	p := themePicker{names: visual.ThemeNames(), chosen: current}
	for i, name := range p.names {
		if name == current {
			p.cursor = i
		}
	}

	final, err := tea.NewProgram(p).Run()
	if err != nil {
		return current, err
	}
	picker := final.(themePicker)
	if picker.canceled {
		return current, nil
	}
	return picker.chosen, nil
}

func (p themePicker) Init() tea.Cmd { return nil }

func (p themePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter":
		p.chosen = p.names[p.cursor]
		return p, tea.Quit
	case "q", "esc", "ctrl+c":
		p.canceled = true
		return p, tea.Quit
	}
	return p, nil
}

func (p themePicker) View() string {
	out := lipgloss.NewStyle().Bold(true).Render("Pick a theme") + "\n\n"
	for i, name := range p.names {
		palette, _ := visual.Theme(name)
		swatch := lipgloss.NewStyle().Foreground(palette.Accent).Render("■ ")
		line := "  " + swatch + name
		if i == p.cursor {
			line = "> " + swatch + lipgloss.NewStyle().Bold(true).Render(name)
		}
		out += line + "\n"
	}
	out += "\n" + lipgloss.NewStyle().Faint(true).Render("enter select · esc keep current")
	return out
}
