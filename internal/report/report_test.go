package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReport() *BugReport {
	return &BugReport{
		Title:         "[wifi/connect] fails to reconnect after suspend",
		Description:   "steps...",
		Project:       "STELLA",
		Severity:      SeverityMedium,
		IssueFileTime: FileTimeImmediate,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validReport().Validate())

	r := validReport()
	r.Title = "  "
	assert.ErrorIs(t, r.Validate(), ErrEmptyTitle)

	r = validReport()
	r.Description = ""
	assert.ErrorIs(t, r.Validate(), ErrEmptyDescription)

	r = validReport()
	r.Project = ""
	assert.ErrorIs(t, r.Validate(), ErrEmptyProject)

	r = validReport()
	r.Severity = "catastrophic"
	assert.ErrorContains(t, r.Validate(), "unknown severity")

	r = validReport()
	r.IssueFileTime = "yesterday"
	assert.ErrorContains(t, r.Validate(), "unknown issue file time")

	r = validReport()
	r.Status = "Closed"
	assert.ErrorContains(t, r.Validate(), "unknown bug status")

	// status is optional
	r = validReport()
	r.Status = ""
	assert.NoError(t, r.Validate())
}

func TestTags(t *testing.T) {
	r := validReport()
	r.PlatformTags = []string{"stella-rock", "oem-networking"}
	r.AdditionalTags = []string{"regression"}
	r.ImpactedFeatures = []string{"Networking (wifi)", "Audio"}
	r.ImpactedVendors = []string{"Intel"}

	tags := r.Tags()
	assert.ElementsMatch(t, []string{
		"stella-rock",
		"oem-networking", // duplicated by the wifi feature, kept once
		"regression",
		"hwe-networking-wifi",
		"hwe-audio",
		"ihv-intel",
	}, tags)
}

func TestTagsEmpty(t *testing.T) {
	assert.Empty(t, validReport().Tags())
}

func TestMarkdown(t *testing.T) {
	r := validReport()
	r.Assignee = "someone@canonical.com"
	r.JobID = "wifi/connect"
	r.LogsToInclude = []LogName{LogSosReport, LogNvidiaBugReport}

	md := r.Markdown()
	assert.Contains(t, md, "# [wifi/connect] fails to reconnect after suspend\n")
	assert.Contains(t, md, "- **Project**: STELLA\n")
	assert.Contains(t, md, "- **Severity**: Medium\n")
	assert.Contains(t, md, "- **Assignee**: someone@canonical.com\n")
	assert.Contains(t, md, "- **Job**: wifi/connect\n")
	assert.Contains(t, md, "- **Logs**: sos-report, nvidia-bug-report\n")
	assert.NotContains(t, md, "**Status**")
	assert.NotContains(t, md, "**Checkbox Session**")
}

func TestMarkdownUnassigned(t *testing.T) {
	assert.Contains(t, validReport().Markdown(), "- **Assignee**: unassigned\n")
}

func TestSeverityDisplay(t *testing.T) {
	assert.Equal(t, "Critical (LP) / Highest (Jira)", SeverityHighest.Display())
	assert.Equal(t, "Medium", SeverityMedium.Display())
	// unknown values display as-is instead of panicking
	assert.Equal(t, "odd", Severity("odd").Display())
}

func TestFeatureAndVendorCatalogs(t *testing.T) {
	features := Features()
	assert.Contains(t, features, "Networking (wifi)")
	assert.IsIncreasing(t, features)

	vendors := Vendors()
	assert.Contains(t, vendors, "Nvidia")
	assert.IsIncreasing(t, vendors)

	assert.Equal(t, []string{"hwe-networking-wifi", "oem-networking"},
		FeatureTags("Networking (wifi)"))
	assert.Nil(t, FeatureTags("Time Travel"))
}
