package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/canonical/bugit-v2/internal/visual"
)

type appStyles struct {
	palette visual.Palette

	frame   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	focused lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	help    lipgloss.Style
	toggle  lipgloss.Style
	chosen  lipgloss.Style
}

func newAppStyles(p visual.Palette) appStyles {
	return appStyles{
		palette: p,
		frame:   lipgloss.NewStyle().Padding(1, 2),
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		label:   lipgloss.NewStyle().Foreground(p.Secondary),
		value:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		focused: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		errText: lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		help:    lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		toggle:  lipgloss.NewStyle().Foreground(p.Muted),
		chosen:  lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
	}
}
