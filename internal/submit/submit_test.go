package submit

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/report"
)

func init() {
	// no need to watch the progress screen in tests
	stepDelay = time.Millisecond
}

func sampleReport() *report.BugReport {
	return &report.BugReport{
		Title:         "[wifi/connect] no AP found after suspend",
		Description:   "steps...",
		Project:       "STELLA",
		Severity:      report.SeverityHigh,
		IssueFileTime: report.FileTimeImmediate,
	}
}

func TestForTracker(t *testing.T) {
	jira, err := ForTracker("jira", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jira (dry run)", jira.Name())

	lp, err := ForTracker("lp", nil)
	require.NoError(t, err)
	assert.Equal(t, "Launchpad (dry run)", lp.Name())

	_, err = ForTracker("bugzilla", nil)
	assert.ErrorContains(t, err, "unknown tracker")
}

func TestJiraSubmit(t *testing.T) {
	var events []Event
	key, err := NewDryRunJira(zap.NewNop()).Submit(
		context.Background(), sampleReport(),
		func(e Event) { events = append(events, e) })
	require.NoError(t, err)

	// keys look like PROJ-00042, minted from the first 4 project letters
	assert.Regexp(t, regexp.MustCompile(`^STEL-\d{5}$`), key)

	require.Len(t, events, 5)
	assert.Equal(t, 1, events[0].Step)
	assert.Equal(t, 5, events[0].Total)
	assert.Equal(t, "Validating bug report", events[0].Message)
	assert.Equal(t, 5, events[4].Step)
}

func TestLaunchpadSubmit(t *testing.T) {
	r := sampleReport()
	r.Status = report.StatusNew
	key, err := NewDryRunLaunchpad(zap.NewNop()).Submit(context.Background(), r, nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^LP: #\d{7}$`), key)
}

func TestSubmitInvalidReport(t *testing.T) {
	r := sampleReport()
	r.Title = ""

	_, err := NewDryRunJira(zap.NewNop()).Submit(context.Background(), r, nil)
	assert.ErrorIs(t, err, report.ErrEmptyTitle)
}

func TestSubmitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDryRunJira(zap.NewNop()).Submit(ctx, sampleReport(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJiraServerFromEnv(t *testing.T) {
	t.Setenv("JIRA_SERVER", "https://staging.example.com")
	assert.Equal(t, "https://staging.example.com", NewDryRunJira(zap.NewNop()).server)

	t.Setenv("JIRA_SERVER", "")
	assert.Equal(t, defaultJiraServer, NewDryRunJira(zap.NewNop()).server)
}

func TestLaunchpadInstanceFromEnv(t *testing.T) {
	t.Setenv("APPORT_LAUNCHPAD_INSTANCE", "staging")
	assert.Equal(t, "staging", NewDryRunLaunchpad(zap.NewNop()).instance)

	t.Setenv("APPORT_LAUNCHPAD_INSTANCE", "")
	assert.Equal(t, defaultLPInstance, NewDryRunLaunchpad(zap.NewNop()).instance)
}
