// Package submit hands finished bug reports to a tracker backend.
// Only dry-run backends live here; they validate the report and walk the
// same steps a real submission would, without talking to any service.
package submit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/report"
)

// Event is one progress update from a running submission.
type Event struct {
	Message string
	Step    int
	Total   int
}

// Submitter files a bug report with a tracker.
type Submitter interface {
	// Name identifies the tracker on screen.
	Name() string
	// Submit files the report and returns the ticket key. progress may be
	// nil when the caller does not care about step updates.
	Submit(ctx context.Context, r *report.BugReport, progress func(Event)) (string, error)
}

// ForTracker returns the submitter for a tracker selector as used on the
// command line ("jira" or "lp").
func ForTracker(tracker string, logger *zap.Logger) (Submitter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch tracker {
	case "jira":
		return NewDryRunJira(logger), nil
	case "lp":
		return NewDryRunLaunchpad(logger), nil
	}
	return nil, fmt.Errorf("unknown tracker %q", tracker)
}

func emit(progress func(Event), step, total int, format string, args ...any) {
	if progress != nil {
		progress(Event{Message: fmt.Sprintf(format, args...), Step: step, Total: total})
	}
}
