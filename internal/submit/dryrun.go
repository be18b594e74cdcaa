package submit

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/report"
)

// Endpoints come from the environment so staging instances can be
// exercised without code changes.
const (
	defaultJiraServer = "https://warthogs.atlassian.net"
	defaultLPInstance = "production"
)

// stepDelay makes the progress screen observable. Dry runs only.
var stepDelay = 300 * time.Millisecond

// DryRunJira walks the Jira submission steps without creating anything.
type DryRunJira struct {
	server string
	logger *zap.Logger
}

func NewDryRunJira(logger *zap.Logger) *DryRunJira {
	server := os.Getenv("JIRA_SERVER")
	if server == "" {
		server = defaultJiraServer
	}
	return &DryRunJira{server: server, logger: logger}
}

func (s *DryRunJira) Name() string { return "Jira (dry run)" }

func (s *DryRunJira) Submit(ctx context.Context, r *report.BugReport, progress func(Event)) (string, error) {
	const total = 5

	emit(progress, 1, total, "Validating bug report")
	if err := r.Validate(); err != nil {
		return "", err
	}
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 2, total, "Connecting to %s", s.server)
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 3, total, "Creating issue in project %s", r.Project)
	key := mintJiraKey(r.Project)
	s.logger.Info("dry-run jira issue created",
		zap.String("key", key),
		zap.String("title", r.Title),
		zap.String("severity", string(r.Severity)))
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 4, total, "Applying %d tags", len(r.Tags()))
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 5, total, "Marking %d logs for attachment", len(r.LogsToInclude))
	if err := pause(ctx); err != nil {
		return "", err
	}

	return key, nil
}

// DryRunLaunchpad walks the Launchpad submission steps without filing.
type DryRunLaunchpad struct {
	instance string
	logger   *zap.Logger
}

func NewDryRunLaunchpad(logger *zap.Logger) *DryRunLaunchpad {
	instance := os.Getenv("APPORT_LAUNCHPAD_INSTANCE")
	if instance == "" {
		instance = defaultLPInstance
	}
	return &DryRunLaunchpad{instance: instance, logger: logger}
}

func (s *DryRunLaunchpad) Name() string { return "Launchpad (dry run)" }

func (s *DryRunLaunchpad) Submit(ctx context.Context, r *report.BugReport, progress func(Event)) (string, error) {
	const total = 5

	emit(progress, 1, total, "Validating bug report")
	if err := r.Validate(); err != nil {
		return "", err
	}
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 2, total, "Connecting to Launchpad (%s)", s.instance)
	if err := pause(ctx); err != nil {
		return "", err
	}

	status := r.Status
	if status == "" {
		status = report.StatusConfirmed
	}
	emit(progress, 3, total, "Filing bug against %s with status %s", strings.ToLower(r.Project), status)
	key := mintLPNumber()
	s.logger.Info("dry-run launchpad bug filed",
		zap.String("bug", key),
		zap.String("title", r.Title),
		zap.String("series", r.Series))
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 4, total, "Applying %d tags", len(r.Tags()))
	if err := pause(ctx); err != nil {
		return "", err
	}

	emit(progress, 5, total, "Marking %d logs for attachment", len(r.LogsToInclude))
	if err := pause(ctx); err != nil {
		return "", err
	}

	return "LP: #" + key, nil
}

func mintJiraKey(project string) string {
	prefix := "VS"
	if p := strings.ToUpper(strings.TrimSpace(project)); p != "" {
		if len(p) > 4 {
			p = p[:4]
		}
		prefix = p
	}
	return fmt.Sprintf("%s-%05d", prefix, rand.Intn(100000))
}

func mintLPNumber() string {
	return fmt.Sprintf("%07d", 1000000+rand.Intn(9000000))
}

func pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(stepDelay):
		return nil
	}
}
