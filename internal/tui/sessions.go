package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/canonical/bugit-v2/internal/checkbox"
	"github.com/dustin/go-humanize"
)

// sessionItem is a list entry for one valid Checkbox session.
type sessionItem struct {
	noSession bool
	session   *checkbox.Session
	modTime   time.Time
}

func (i sessionItem) Title() string {
	if i.noSession {
		return "No Session"
	}
	return filepath.Base(i.session.Path)
}

func (i sessionItem) Description() string {
	if i.noSession {
		return "File a bug without attaching a Checkbox session"
	}
	desc := i.session.TestplanID
	if i.session.Description != "" {
		desc = i.session.Description + " · " + desc
	}
	return fmt.Sprintf("%s · %s", desc, humanize.Time(i.modTime))
}

func (i sessionItem) FilterValue() string {
	if i.noSession {
		return "no session"
	}
	return i.session.Path + " " + i.session.TestplanID
}

type sessionsModel struct {
	list   list.Model
	styles appStyles
	loaded bool
}

func newSessionsModel(styles appStyles) sessionsModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.palette.Accent).
		BorderForeground(styles.palette.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.palette.Muted).
		BorderForeground(styles.palette.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Select a Checkbox session"
	l.SetShowStatusBar(false)
	l.Styles.Title = styles.title

	return sessionsModel{list: l, styles: styles}
}

func (s *sessionsModel) setSize(width, height int) {
	s.list.SetSize(width-4, height-4)
}

type sessionsMsg struct {
	items []list.Item
}

// sessionsChangedMsg is emitted by the fsnotify watcher.
type sessionsChangedMsg struct{}

// loadSessionsCmd discovers and parses the valid sessions under root.
// Sessions that fail to parse are dropped from the list.
func loadSessionsCmd(root string) tea.Cmd {
	return func() tea.Msg {
		items := []list.Item{sessionItem{noSession: true}}
		for _, dir := range checkbox.ValidSessions(root) {
			session, err := checkbox.OpenSession(dir)
			if err != nil {
				continue
			}
			modTime := time.Now()
			if stat, err := os.Stat(dir); err == nil {
				modTime = stat.ModTime()
			}
			items = append(items, sessionItem{session: session, modTime: modTime})
		}
		return sessionsMsg{items: items}
	}
}

func (m Model) updateSessions(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsMsg:
		m.sessions.loaded = true
		cmd := m.sessions.list.SetItems(msg.items)
		return m, cmd

	case tea.KeyMsg:
		// don't steal keys from the list's filter input
		if m.sessions.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			item, ok := m.sessions.list.SelectedItem().(sessionItem)
			if !ok {
				return m, nil
			}
			if item.noSession {
				m.session = nil
				m.jobID = ""
				m.screen = screenForm
				m.form.prepare(nil, "")
				return m, m.form.focusCmd()
			}
			m.session = item.session
			m.jobs.load(item.session)
			m.screen = screenJobs
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.sessions.list, cmd = m.sessions.list.Update(msg)
	return m, cmd
}

func (m Model) viewSessions() string {
	if !m.sessions.loaded {
		return m.styles.frame.Render(m.styles.muted.Render("Scanning for Checkbox sessions..."))
	}
	return m.styles.frame.Render(m.sessions.list.View())
}
