// Package tui is the interactive bug report editor: pick a Checkbox
// session, pick a failed job, compose the report, confirm and submit.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/archive"
	"github.com/canonical/bugit-v2/internal/checkbox"
	"github.com/canonical/bugit-v2/internal/dut"
	"github.com/canonical/bugit-v2/internal/report"
	"github.com/canonical/bugit-v2/internal/submit"
	"github.com/canonical/bugit-v2/internal/visual"
)

type screen int

const (
	screenSessions screen = iota
	screenJobs
	screenForm
	screenConfirm
	screenProgress
	screenDone
)

// Options configures a TUI run.
type Options struct {
	Tracker     string // "jira" or "lp"
	Logger      *zap.Logger
	Prefill     dut.Info
	SessionRoot string
	Archive     *archive.Manager
	Palette     visual.Palette
	Submitter   submit.Submitter
}

// Model is the single bubbletea model driving all screens.
type Model struct {
	opts   Options
	styles appStyles

	screen screen
	width  int
	height int
	err    error

	// session selection
	sessions sessionsModel
	watcher  *sessionWatcher

	// job selection
	jobs jobsModel

	// report composition
	form formModel

	// confirm + submit
	confirm  confirmModel
	progress progressModel

	// selections carried across screens
	session *checkbox.Session // nil = explicit "No Session"
	jobID   string            // "" = explicit "No Job"
	report  *report.BugReport

	ticketKey string
}

// Run starts the TUI and blocks until the user quits or the report is
// filed.
func Run(ctx context.Context, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SessionRoot == "" {
		opts.SessionRoot = checkbox.DefaultSessionRoot
	}

	m := newModel(opts)
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func newModel(opts Options) Model {
	watcher, err := newSessionWatcher(opts.SessionRoot)
	if err != nil {
		// no watcher just means no live refresh
		opts.Logger.Warn("session watcher unavailable", zap.Error(err))
		watcher = nil
	}

	styles := newAppStyles(opts.Palette)
	return Model{
		opts:     opts,
		styles:   styles,
		screen:   screenSessions,
		sessions: newSessionsModel(styles),
		jobs:     newJobsModel(styles),
		form:     newFormModel(opts, styles),
		confirm:  newConfirmModel(styles),
		progress: newProgressModel(styles),
		watcher:  watcher,
	}
}

// Close releases resources owned by the model.
func (m Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSessionsCmd(m.opts.SessionRoot)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.waitCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessions.setSize(msg.Width, msg.Height)
		m.jobs.setSize(msg.Width, msg.Height)
		m.form.setSize(msg.Width, msg.Height)
		m.confirm.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case sessionsChangedMsg:
		cmds := []tea.Cmd{loadSessionsCmd(m.opts.SessionRoot)}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.waitCmd())
		}
		return m, tea.Batch(cmds...)

	case fatalErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	switch m.screen {
	case screenSessions:
		return m.updateSessions(msg)
	case screenJobs:
		return m.updateJobs(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirm:
		return m.updateConfirm(msg)
	case screenProgress:
		return m.updateProgress(msg)
	case screenDone:
		return m.updateDone(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenSessions:
		return m.viewSessions()
	case screenJobs:
		return m.viewJobs()
	case screenForm:
		return m.viewForm()
	case screenConfirm:
		return m.viewConfirm()
	case screenProgress:
		return m.viewProgress()
	case screenDone:
		return m.viewDone()
	}
	return ""
}

func (m Model) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) viewDone() string {
	body := m.styles.title.Render("Bug report filed") + "\n\n"
	body += fmt.Sprintf("%s %s\n\n",
		m.styles.label.Render("Ticket:"),
		m.styles.value.Render(m.ticketKey))
	body += m.styles.help.Render("press q to exit")
	return m.styles.frame.Render(body)
}

// fatalErrMsg aborts the program with an error.
type fatalErrMsg struct{ err error }
