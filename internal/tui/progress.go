package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/submit"
)

// progressModel streams submitter events onto the screen.
type progressModel struct {
	styles   appStyles
	spinner  spinner.Model
	tracker  string
	messages []string
	events   chan tea.Msg
	running  bool
}

func newProgressModel(styles appStyles) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return progressModel{styles: styles, spinner: s}
}

func (p *progressModel) begin(tracker string) {
	p.tracker = tracker
	p.messages = nil
	p.events = make(chan tea.Msg, 16)
	p.running = true
}

type progressEventMsg submit.Event

type submitDoneMsg struct{ ticketKey string }

type submitErrMsg struct{ err error }

// submitCmd runs the submission and forwards progress through the event
// channel; the cmd's own return value is the terminal message.
func (m Model) submitCmd() tea.Cmd {
	events := m.progress.events
	submitter := m.opts.Submitter
	r := m.report
	return func() tea.Msg {
		key, err := submitter.Submit(context.Background(), r, func(e submit.Event) {
			events <- progressEventMsg(e)
		})
		if err != nil {
			return submitErrMsg{err: err}
		}
		return submitDoneMsg{ticketKey: key}
	}
}

// waitCmd delivers the next buffered progress event.
func (p *progressModel) waitCmd() tea.Cmd {
	events := p.events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressEventMsg:
		m.progress.messages = append(m.progress.messages,
			fmt.Sprintf("[%d/%d] %s", msg.Step, msg.Total, msg.Message))
		return m, m.progress.waitCmd()

	case submitDoneMsg:
		m.progress.running = false
		m.ticketKey = msg.ticketKey
		if m.opts.Archive != nil {
			if _, err := m.opts.Archive.Record(m.report, m.opts.Tracker, msg.ticketKey); err != nil {
				m.opts.Logger.Warn("failed to archive report", zap.Error(err))
			}
		}
		m.opts.Logger.Info("report submitted",
			zap.String("tracker", m.opts.Tracker),
			zap.String("ticket", msg.ticketKey))
		m.screen = screenDone
		return m, nil

	case submitErrMsg:
		m.progress.running = false
		m.err = fmt.Errorf("submission failed: %w", msg.err)
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.progress.spinner, cmd = m.progress.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) viewProgress() string {
	p := m.progress

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Submitting to "+p.tracker) + "\n\n")
	for _, message := range p.messages {
		b.WriteString("  " + message + "\n")
	}
	if p.running {
		b.WriteString("\n" + p.spinner.View() + m.styles.muted.Render(" working..."))
	}
	return m.styles.frame.Render(b.String())
}
