package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"

	"github.com/canonical/bugit-v2/internal/checkbox"
)

// jobsModel lets the operator pick the failed job the bug is about.
type jobsModel struct {
	styles  appStyles
	session *checkbox.Session
	jobs    []string

	filter   textinput.Model
	matches  []string
	cursor   int
	preview  string
	width    int
	height   int
}

func newJobsModel(styles appStyles) jobsModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter failed jobs"
	filter.Prompt = "/ "
	return jobsModel{styles: styles, filter: filter}
}

func (j *jobsModel) setSize(width, height int) {
	j.width = width
	j.height = height
	j.filter.Width = width - 8
}

func (j *jobsModel) load(session *checkbox.Session) {
	j.session = session
	j.jobs = session.FailedJobs
	j.filter.SetValue("")
	j.filter.Focus()
	j.refilter()
}

// refilter recomputes the visible jobs from the filter input.
func (j *jobsModel) refilter() {
	pattern := strings.TrimSpace(j.filter.Value())
	if pattern == "" {
		j.matches = j.jobs
	} else {
		j.matches = nil
		for _, match := range fuzzy.Find(pattern, j.jobs) {
			j.matches = append(j.matches, match.Str)
		}
	}
	if j.cursor >= len(j.matches) {
		j.cursor = 0
	}
	j.updatePreview()
}

func (j *jobsModel) updatePreview() {
	j.preview = ""
	if j.cursor >= len(j.matches) {
		return
	}
	output, err := j.session.JobOutput(j.matches[j.cursor])
	if err != nil {
		j.preview = j.styles.errText.Render(err.Error())
		return
	}

	var b strings.Builder
	if output.Stdout != "" {
		b.WriteString(j.styles.label.Render("stdout") + "\n")
		b.WriteString(tail(output.Stdout, 6) + "\n")
	}
	if output.Stderr != "" {
		b.WriteString(j.styles.label.Render("stderr") + "\n")
		b.WriteString(tail(output.Stderr, 6) + "\n")
	}
	if output.Comments != "" {
		b.WriteString(j.styles.label.Render("comments") + "\n")
		b.WriteString(output.Comments + "\n")
	}
	width := j.width - 8
	if width < 20 {
		width = 20
	}
	j.preview = wordwrap.String(b.String(), width)
}

func (m Model) updateJobs(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.screen = screenSessions
		return m, nil
	case "up":
		if m.jobs.cursor > 0 {
			m.jobs.cursor--
			m.jobs.updatePreview()
		}
		return m, nil
	case "down":
		if m.jobs.cursor < len(m.jobs.matches)-1 {
			m.jobs.cursor++
			m.jobs.updatePreview()
		}
		return m, nil
	case "enter":
		if m.jobs.cursor < len(m.jobs.matches) {
			m.jobID = m.jobs.matches[m.jobs.cursor]
		} else {
			m.jobID = ""
		}
		m.screen = screenForm
		m.form.prepare(m.session, m.jobID)
		return m, m.form.focusCmd()
	case "ctrl+n":
		// explicit "No Job"
		m.jobID = ""
		m.screen = screenForm
		m.form.prepare(m.session, "")
		return m, m.form.focusCmd()
	}

	var cmd tea.Cmd
	m.jobs.filter, cmd = m.jobs.filter.Update(msg)
	m.jobs.refilter()
	return m, cmd
}

func (m Model) viewJobs() string {
	j := m.jobs

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Select the failed job to report") + "\n\n")
	b.WriteString(j.filter.View() + "\n\n")

	if len(j.matches) == 0 {
		b.WriteString(m.styles.muted.Render("no failed jobs match") + "\n")
	}
	maxWidth := j.width - 6
	if maxWidth < 20 {
		maxWidth = 60
	}
	for i, job := range j.matches {
		line := truncate(job, maxWidth)
		if i == j.cursor {
			b.WriteString(m.styles.focused.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if j.preview != "" {
		b.WriteString("\n" + j.preview)
	}

	b.WriteString("\n" + m.styles.help.Render(
		fmt.Sprintf("%d failed job(s) · enter select · ctrl+n no job · esc back", len(j.jobs))))
	return m.styles.frame.Render(b.String())
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
