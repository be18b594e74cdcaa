package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/bugit-v2/internal/dut"
	"github.com/canonical/bugit-v2/internal/report"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitTags("a, b"))
	assert.Equal(t, []string{"a", "b"}, splitTags(" a ,, b ,"))
	assert.Nil(t, splitTags(""))
	assert.Nil(t, splitTags(" , "))
}

func TestMultiSelect(t *testing.T) {
	ms := newMultiSelect([]string{"a", "b", "c"})
	assert.Empty(t, ms.chosen())

	ms.toggle()
	ms.right()
	ms.right()
	ms.toggle()
	assert.Equal(t, []string{"a", "c"}, ms.chosen())

	// toggling again deselects
	ms.toggle()
	assert.Equal(t, []string{"a"}, ms.chosen())

	// cursor clamps at both ends
	ms.right()
	assert.Equal(t, 2, ms.cursor)
	ms.left()
	ms.left()
	ms.left()
	assert.Equal(t, 0, ms.cursor)
}

func TestFormPrefill(t *testing.T) {
	f := newFormModel(Options{
		Tracker: "jira",
		Prefill: dut.Info{
			CID:          "202408-12345",
			SKU:          "some-sku",
			Project:      "STELLA",
			PlatformTags: []string{"stella-rock", "stella-cmit"},
			JiraAssignee: "someone@canonical.com",
			LPAssignee:   "someonelp",
		},
	}, appStyles{})

	assert.Equal(t, "STELLA", f.project.Value())
	assert.Equal(t, "stella-rock, stella-cmit", f.platformTags.Value())
	assert.Equal(t, "someone@canonical.com", f.assignee.Value())
	assert.Contains(t, f.description.Value(), "[Steps to reproduce]")
	assert.Contains(t, f.description.Value(), "CID: 202408-12345")
	assert.Contains(t, f.description.Value(), "SKU: some-sku")
}

func TestFormFieldsPerTracker(t *testing.T) {
	jira := newFormModel(Options{Tracker: "jira"}, appStyles{})
	assert.NotContains(t, jira.fields, fieldStatus)
	assert.NotContains(t, jira.fields, fieldSeries)

	lp := newFormModel(Options{Tracker: "lp"}, appStyles{})
	assert.Contains(t, lp.fields, fieldStatus)
	assert.Contains(t, lp.fields, fieldSeries)
}

func TestPrepareSeedsTitleFromJob(t *testing.T) {
	f := newFormModel(Options{Tracker: "jira"}, appStyles{})
	f.prepare(nil, "wifi/connect")
	assert.Equal(t, "[wifi/connect] ", f.title.Value())

	// a title the operator already typed is left alone
	f.title.SetValue("custom title")
	f.prepare(nil, "audio/speaker")
	assert.Equal(t, "custom title", f.title.Value())
}

func TestBuildReport(t *testing.T) {
	f := newFormModel(Options{Tracker: "lp"}, appStyles{})
	f.title.SetValue("  [wifi/connect] no AP found  ")
	f.description.SetValue("details")
	f.project.SetValue("STELLA")
	f.platformTags.SetValue("stella-rock, stella-cmit")
	f.additionalTags.SetValue("regression")
	f.series.SetValue("noble")
	f.jobID = "wifi/connect"
	f.logs.toggle() // first log option

	r := f.buildReport()
	require.NoError(t, r.Validate())

	assert.Equal(t, "[wifi/connect] no AP found", r.Title)
	assert.Equal(t, "STELLA", r.Project)
	assert.Equal(t, report.SeverityMedium, r.Severity)
	assert.Equal(t, report.FileTimeImmediate, r.IssueFileTime)
	assert.Equal(t, report.StatusConfirmed, r.Status)
	assert.Equal(t, "noble", r.Series)
	assert.Equal(t, []string{"stella-rock", "stella-cmit"}, r.PlatformTags)
	assert.Equal(t, []string{"regression"}, r.AdditionalTags)
	assert.Equal(t, []report.LogName{report.LogSosReport}, r.LogsToInclude)
}

func TestBuildReportJiraSkipsLaunchpadFields(t *testing.T) {
	f := newFormModel(Options{Tracker: "jira"}, appStyles{})
	f.series.SetValue("noble") // typed but not part of the jira form

	r := f.buildReport()
	assert.Empty(t, r.Status)
	assert.Empty(t, r.Series)
}
