// Package report defines the data model for a bug report and the tag
// vocabulary used by the certification trackers.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/canonical/bugit-v2/internal/checkbox"
)

// Severity is the internal representation of bug severity.
type Severity string

const (
	SeverityHighest Severity = "highest"
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityLowest  Severity = "lowest"
)

// Severities lists all severities from most to least severe.
var Severities = []Severity{
	SeverityHighest,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityLowest,
}

// Display returns what appears on screen in the report editor.
func (s Severity) Display() string {
	switch s {
	case SeverityHighest:
		return "Critical (LP) / Highest (Jira)"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	case SeverityLowest:
		return "Lowest"
	}
	return string(s)
}

// IssueFileTime is the internal representation of when the issue was filed
// relative to when it happened.
type IssueFileTime string

const (
	FileTimeImmediate   IssueFileTime = "immediate"
	FileTimeAfterReboot IssueFileTime = "after_reboot"
	FileTimeLater       IssueFileTime = "later"
)

var IssueFileTimes = []IssueFileTime{
	FileTimeImmediate,
	FileTimeAfterReboot,
	FileTimeLater,
}

func (t IssueFileTime) Display() string {
	switch t {
	case FileTimeImmediate:
		return "Right after it happened"
	case FileTimeAfterReboot:
		return "Device froze, reported after a reboot"
	case FileTimeLater:
		return "At a later stage"
	}
	return string(t)
}

// BugStatus is the initial status of the bug. Only used on Launchpad and
// has to be capitalized.
type BugStatus string

const (
	StatusNew       BugStatus = "New"
	StatusConfirmed BugStatus = "Confirmed"
)

var BugStatuses = []BugStatus{StatusNew, StatusConfirmed}

// LogName identifies an attachable log. Collection itself happens outside
// the editor; the report only carries the selection.
type LogName string

const (
	LogSosReport       LogName = "sos-report"
	LogOEMGetLogs      LogName = "oem-get-logs"
	LogCheckboxSession LogName = "checkbox-session"
	LogNvidiaBugReport LogName = "nvidia-bug-report"
)

var LogNames = []LogName{
	LogSosReport,
	LogOEMGetLogs,
	LogCheckboxSession,
	LogNvidiaBugReport,
}

// BugReport is the data model for a bug report.
// Avoid attaching behavior beyond simple derivations.
type BugReport struct {
	// required
	Title         string
	Description   string
	Project       string
	Severity      Severity
	IssueFileTime IssueFileTime
	Session       *checkbox.Session // nil means an explicit "No Session"
	JobID         string            // empty means an explicit "No Job"

	// optionals
	Assignee       string // appears as unassigned if empty
	PlatformTags   []string
	AdditionalTags []string
	Status         BugStatus // only used on Launchpad
	Series         string    // only used on Launchpad

	// selections
	LogsToInclude    []LogName
	ImpactedFeatures []string
	ImpactedVendors  []string
}

var (
	ErrEmptyTitle       = errors.New("bug report title is empty")
	ErrEmptyDescription = errors.New("bug report description is empty")
	ErrEmptyProject     = errors.New("bug report project is empty")
)

// Validate checks that the report is complete enough to submit.
func (r *BugReport) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(r.Project) == "" {
		return ErrEmptyProject
	}
	if !lo.Contains(Severities, r.Severity) {
		return fmt.Errorf("unknown severity %q", r.Severity)
	}
	if !lo.Contains(IssueFileTimes, r.IssueFileTime) {
		return fmt.Errorf("unknown issue file time %q", r.IssueFileTime)
	}
	if r.Status != "" && !lo.Contains(BugStatuses, r.Status) {
		return fmt.Errorf("unknown bug status %q", r.Status)
	}
	return nil
}

// Tags derives the full tracker tag set for the report: platform tags,
// additional tags, and the tags mapped from impacted features and vendors.
func (r *BugReport) Tags() []string {
	tags := make([]string, 0, len(r.PlatformTags)+len(r.AdditionalTags))
	tags = append(tags, r.PlatformTags...)
	tags = append(tags, r.AdditionalTags...)
	for _, feature := range r.ImpactedFeatures {
		tags = append(tags, FeatureTags(feature)...)
	}
	for _, vendor := range r.ImpactedVendors {
		tags = append(tags, VendorTags(vendor)...)
	}
	return lo.Uniq(tags)
}

// Markdown renders the report for previews and clipboard export.
func (r *BugReport) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(r.Title))
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(r.Description))

	fmt.Fprintf(&b, "## Details\n\n")
	fmt.Fprintf(&b, "- **Project**: %s\n", r.Project)
	fmt.Fprintf(&b, "- **Severity**: %s\n", r.Severity.Display())
	fmt.Fprintf(&b, "- **Filed**: %s\n", r.IssueFileTime.Display())
	if r.Assignee != "" {
		fmt.Fprintf(&b, "- **Assignee**: %s\n", r.Assignee)
	} else {
		fmt.Fprintf(&b, "- **Assignee**: unassigned\n")
	}
	if r.Status != "" {
		fmt.Fprintf(&b, "- **Status**: %s\n", r.Status)
	}
	if r.Series != "" {
		fmt.Fprintf(&b, "- **Series**: %s\n", r.Series)
	}
	if r.Session != nil {
		fmt.Fprintf(&b, "- **Checkbox Session**: %s\n", r.Session.Path)
		fmt.Fprintf(&b, "- **Test Plan**: %s\n", r.Session.TestplanID)
	}
	if r.JobID != "" {
		fmt.Fprintf(&b, "- **Job**: %s\n", r.JobID)
	}
	if tags := r.Tags(); len(tags) > 0 {
		fmt.Fprintf(&b, "- **Tags**: %s\n", strings.Join(tags, ", "))
	}
	if len(r.LogsToInclude) > 0 {
		logs := lo.Map(r.LogsToInclude, func(l LogName, _ int) string { return string(l) })
		fmt.Fprintf(&b, "- **Logs**: %s\n", strings.Join(logs, ", "))
	}
	return b.String()
}
