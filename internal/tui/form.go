package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"

	"github.com/canonical/bugit-v2/internal/checkbox"
	"github.com/canonical/bugit-v2/internal/report"
)

type fieldID int

const (
	fieldTitle fieldID = iota
	fieldDescription
	fieldProject
	fieldAssignee
	fieldPlatformTags
	fieldAdditionalTags
	fieldSeverity
	fieldFileTime
	fieldStatus
	fieldSeries
	fieldLogs
	fieldFeatures
	fieldVendors
)

// descriptionTemplate seeds the editor the way the certification team
// expects reports to be structured.
const descriptionTemplate = `[Summary]

[Steps to reproduce]

[Expected result]

[Actual result]

[Failure rate]
`

type multiSelect struct {
	options  []string
	selected map[int]bool
	cursor   int
}

func newMultiSelect(options []string) multiSelect {
	return multiSelect{options: options, selected: make(map[int]bool)}
}

func (ms *multiSelect) toggle()    { ms.selected[ms.cursor] = !ms.selected[ms.cursor] }
func (ms *multiSelect) left()      { ms.cursor = max(0, ms.cursor-1) }
func (ms *multiSelect) right()     { ms.cursor = min(len(ms.options)-1, ms.cursor+1) }
func (ms *multiSelect) chosen() []string {
	var out []string
	for i, option := range ms.options {
		if ms.selected[i] {
			out = append(out, option)
		}
	}
	return out
}

type formModel struct {
	styles  appStyles
	tracker string

	title          textinput.Model
	description    textarea.Model
	project        textinput.Model
	assignee       textinput.Model
	platformTags   textinput.Model
	additionalTags textinput.Model
	series         textinput.Model

	severityIdx int
	fileTimeIdx int
	statusIdx   int

	logs     multiSelect
	features multiSelect
	vendors  multiSelect

	fields []fieldID
	focus  int

	session *checkbox.Session
	jobID   string

	errMsg string
	width  int
	height int
}

func newFormModel(opts Options, styles appStyles) formModel {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		return ti
	}

	f := formModel{
		styles:  styles,
		tracker: opts.Tracker,

		title:          newInput("one-line summary of the problem"),
		project:        newInput("e.g. STELLA"),
		assignee:       newInput("leave empty for unassigned"),
		platformTags:   newInput("comma separated, e.g. stella-cmit"),
		additionalTags: newInput("comma separated"),
		series:         newInput("e.g. jammy (Launchpad only)"),

		severityIdx: lo.IndexOf(report.Severities, report.SeverityMedium),
		fileTimeIdx: 0,
		statusIdx:   lo.IndexOf(report.BugStatuses, report.StatusConfirmed),

		logs: newMultiSelect(lo.Map(report.LogNames, func(l report.LogName, _ int) string {
			return string(l)
		})),
		features: newMultiSelect(report.Features()),
		vendors:  newMultiSelect(report.Vendors()),
	}

	f.description = textarea.New()
	f.description.Placeholder = "describe the problem"
	f.description.SetValue(descriptionTemplate + prefillFooter(opts))
	f.description.SetHeight(8)

	f.project.SetValue(opts.Prefill.Project)
	f.platformTags.SetValue(strings.Join(opts.Prefill.PlatformTags, ", "))
	f.additionalTags.SetValue(strings.Join(opts.Prefill.Tags, ", "))
	if opts.Tracker == "jira" {
		f.assignee.SetValue(opts.Prefill.JiraAssignee)
	} else {
		f.assignee.SetValue(opts.Prefill.LPAssignee)
	}

	f.fields = []fieldID{
		fieldTitle, fieldDescription, fieldProject, fieldAssignee,
		fieldPlatformTags, fieldAdditionalTags, fieldSeverity, fieldFileTime,
	}
	if opts.Tracker == "lp" {
		f.fields = append(f.fields, fieldStatus, fieldSeries)
	}
	f.fields = append(f.fields, fieldLogs, fieldFeatures, fieldVendors)

	return f
}

// prefillFooter appends the DUT identity to the description so it lands
// in the report body.
func prefillFooter(opts Options) string {
	var b strings.Builder
	if opts.Prefill.CID != "" {
		b.WriteString("\nCID: " + opts.Prefill.CID)
	}
	if opts.Prefill.SKU != "" {
		b.WriteString("\nSKU: " + opts.Prefill.SKU)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (f *formModel) setSize(width, height int) {
	f.width = width
	f.height = height
	inner := width - 8
	if inner < 20 {
		inner = 60
	}
	f.title.Width = inner
	f.project.Width = inner
	f.assignee.Width = inner
	f.platformTags.Width = inner
	f.additionalTags.Width = inner
	f.series.Width = inner
	f.description.SetWidth(inner)
}

func (f *formModel) prepare(session *checkbox.Session, jobID string) {
	f.session = session
	f.jobID = jobID
	f.errMsg = ""
	f.focus = 0
	f.applyFocus()
	// a failed job's id makes a good starting title
	if f.title.Value() == "" && jobID != "" {
		f.title.SetValue("[" + jobID + "] ")
	}
}

func (f *formModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *formModel) current() fieldID {
	return f.fields[f.focus]
}

func (f *formModel) applyFocus() {
	f.title.Blur()
	f.description.Blur()
	f.project.Blur()
	f.assignee.Blur()
	f.platformTags.Blur()
	f.additionalTags.Blur()
	f.series.Blur()

	switch f.current() {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldProject:
		f.project.Focus()
	case fieldAssignee:
		f.assignee.Focus()
	case fieldPlatformTags:
		f.platformTags.Focus()
	case fieldAdditionalTags:
		f.additionalTags.Focus()
	case fieldSeries:
		f.series.Focus()
	}
}

func (f *formModel) next() {
	f.focus = (f.focus + 1) % len(f.fields)
	f.applyFocus()
}

func (f *formModel) prev() {
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.applyFocus()
}

// buildReport assembles the report from the current form state.
func (f *formModel) buildReport() *report.BugReport {
	status := report.BugStatus("")
	series := ""
	if f.tracker == "lp" {
		status = report.BugStatuses[f.statusIdx]
		series = strings.TrimSpace(f.series.Value())
	}

	return &report.BugReport{
		Title:          strings.TrimSpace(f.title.Value()),
		Description:    strings.TrimSpace(f.description.Value()),
		Project:        strings.TrimSpace(f.project.Value()),
		Severity:       report.Severities[f.severityIdx],
		IssueFileTime:  report.IssueFileTimes[f.fileTimeIdx],
		Session:        f.session,
		JobID:          f.jobID,
		Assignee:       strings.TrimSpace(f.assignee.Value()),
		PlatformTags:   splitTags(f.platformTags.Value()),
		AdditionalTags: splitTags(f.additionalTags.Value()),
		Status:         status,
		Series:         series,
		LogsToInclude: lo.Map(f.logs.chosen(), func(l string, _ int) report.LogName {
			return report.LogName(l)
		}),
		ImpactedFeatures: f.features.chosen(),
		ImpactedVendors:  f.vendors.chosen(),
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.form

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if m.session != nil {
				m.screen = screenJobs
			} else {
				m.screen = screenSessions
			}
			return m, nil
		case "tab":
			f.next()
			return m, f.focusCmd()
		case "shift+tab":
			f.prev()
			return m, f.focusCmd()
		case "ctrl+s":
			r := f.buildReport()
			if err := r.Validate(); err != nil {
				f.errMsg = err.Error()
				return m, nil
			}
			f.errMsg = ""
			m.report = r
			m.screen = screenConfirm
			return m, m.confirm.renderCmd(r)
		}

		// choice and toggle fields consume arrows and space
		switch f.current() {
		case fieldSeverity:
			if handled := cycle(&f.severityIdx, len(report.Severities), key); handled {
				return m, nil
			}
		case fieldFileTime:
			if handled := cycle(&f.fileTimeIdx, len(report.IssueFileTimes), key); handled {
				return m, nil
			}
		case fieldStatus:
			if handled := cycle(&f.statusIdx, len(report.BugStatuses), key); handled {
				return m, nil
			}
		case fieldLogs:
			if handled := toggleKeys(&f.logs, key); handled {
				return m, nil
			}
		case fieldFeatures:
			if handled := toggleKeys(&f.features, key); handled {
				return m, nil
			}
		case fieldVendors:
			if handled := toggleKeys(&f.vendors, key); handled {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.current() {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldProject:
		f.project, cmd = f.project.Update(msg)
	case fieldAssignee:
		f.assignee, cmd = f.assignee.Update(msg)
	case fieldPlatformTags:
		f.platformTags, cmd = f.platformTags.Update(msg)
	case fieldAdditionalTags:
		f.additionalTags, cmd = f.additionalTags.Update(msg)
	case fieldSeries:
		f.series, cmd = f.series.Update(msg)
	}
	return m, cmd
}

func cycle(idx *int, length int, key tea.KeyMsg) bool {
	switch key.String() {
	case "left":
		*idx = (*idx - 1 + length) % length
		return true
	case "right":
		*idx = (*idx + 1) % length
		return true
	}
	return false
}

func toggleKeys(ms *multiSelect, key tea.KeyMsg) bool {
	switch key.String() {
	case "left":
		ms.left()
		return true
	case "right":
		ms.right()
		return true
	case " ":
		ms.toggle()
		return true
	}
	return false
}

func (m Model) viewForm() string {
	f := m.form

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Compose bug report · "+m.opts.Submitter.Name()) + "\n")
	if f.errMsg != "" {
		b.WriteString(m.styles.errText.Render(f.errMsg) + "\n")
	}
	b.WriteString("\n")

	label := func(id fieldID, text string) string {
		if f.current() == id {
			return m.styles.focused.Render("▸ " + text)
		}
		return m.styles.label.Render("  " + text)
	}

	b.WriteString(label(fieldTitle, "Title") + "\n" + f.title.View() + "\n\n")
	b.WriteString(label(fieldDescription, "Description") + "\n" + f.description.View() + "\n\n")
	b.WriteString(label(fieldProject, "Project") + "\n" + f.project.View() + "\n\n")
	b.WriteString(label(fieldAssignee, "Assignee") + "\n" + f.assignee.View() + "\n\n")
	b.WriteString(label(fieldPlatformTags, "Platform Tags") + "\n" + f.platformTags.View() + "\n\n")
	b.WriteString(label(fieldAdditionalTags, "Additional Tags") + "\n" + f.additionalTags.View() + "\n\n")

	b.WriteString(label(fieldSeverity, "Severity") + "  " +
		m.styles.value.Render("◀ "+report.Severities[f.severityIdx].Display()+" ▶") + "\n\n")
	b.WriteString(label(fieldFileTime, "When was this filed?") + "  " +
		m.styles.value.Render("◀ "+report.IssueFileTimes[f.fileTimeIdx].Display()+" ▶") + "\n\n")

	if f.tracker == "lp" {
		b.WriteString(label(fieldStatus, "Initial Status") + "  " +
			m.styles.value.Render("◀ "+string(report.BugStatuses[f.statusIdx])+" ▶") + "\n\n")
		b.WriteString(label(fieldSeries, "Series") + "\n" + f.series.View() + "\n\n")
	}

	b.WriteString(label(fieldLogs, "Logs to include") + "\n" +
		m.renderMultiSelect(f.logs, f.current() == fieldLogs) + "\n\n")
	b.WriteString(label(fieldFeatures, "Impacted features") + "\n" +
		m.renderMultiSelect(f.features, f.current() == fieldFeatures) + "\n\n")
	b.WriteString(label(fieldVendors, "Impacted vendors") + "\n" +
		m.renderMultiSelect(f.vendors, f.current() == fieldVendors) + "\n\n")

	b.WriteString(m.styles.help.Render("tab next field · space toggle · ctrl+s review · esc back"))
	return m.styles.frame.Render(b.String())
}

func (m Model) renderMultiSelect(ms multiSelect, focused bool) string {
	tokens := make([]string, len(ms.options))
	for i, option := range ms.options {
		mark := "[ ]"
		if ms.selected[i] {
			mark = "[x]"
		}
		token := mark + " " + option
		switch {
		case focused && i == ms.cursor:
			token = m.styles.focused.Render(token)
		case ms.selected[i]:
			token = m.styles.chosen.Render(token)
		default:
			token = m.styles.toggle.Render(token)
		}
		tokens[i] = token
	}

	width := m.form.width - 8
	if width < 20 {
		width = 80
	}
	return wordwrap.String(strings.Join(tokens, "   "), width)
}
