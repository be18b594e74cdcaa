// Package checkbox reads Checkbox test sessions and submission archives
// from the device under test.
package checkbox

import (
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSessionRoot is where checkbox-ng keeps its sessions.
const DefaultSessionRoot = "/var/tmp/checkbox-ng/sessions"

// JobOutcome is the recorded outcome of a single job run.
type JobOutcome string

const (
	OutcomePass           JobOutcome = "pass"
	OutcomeFail           JobOutcome = "fail"
	OutcomeSkip           JobOutcome = "skip"
	OutcomeNotSupported   JobOutcome = "not-supported"
	OutcomeNotImplemented JobOutcome = "not-implemented"
	OutcomeUndecided      JobOutcome = "undecided"
	OutcomeCrash          JobOutcome = "crash"
)

// JobOutput holds the captured output of a job run.
type JobOutput struct {
	Stdout   string
	Stderr   string
	Comments string
}

type jobResult struct {
	Comments          string     `json:"comments"`
	ExecutionDuration float64    `json:"execution_duration"`
	IOLogFilename     string     `json:"io_log_filename"`
	Outcome           JobOutcome `json:"outcome"`
	ReturnCode        int        `json:"return_code"`
}

type sessionFile struct {
	Session struct {
		Metadata struct {
			AppBlob string `json:"app_blob"`
		} `json:"metadata"`
		Results map[string][]jobResult `json:"results"`
	} `json:"session"`
}

type appBlob struct {
	Description string `json:"description"`
	TestplanID  string `json:"testplan_id"`
}

var (
	ErrNoSessionFile = errors.New("session file not found")
	ErrInvalidBlob   = errors.New("session does not contain valid app information")
	ErrNoSuchJob     = errors.New("session does not have this job")
)

// Session is a parsed Checkbox session.
type Session struct {
	Path        string
	Description string
	TestplanID  string
	FailedJobs  []string

	results map[string][]jobResult
}

// OpenSession parses the gzipped session file inside dir.
func OpenSession(dir string) (*Session, error) {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("directory %q does not exist", dir)
	}

	f, err := os.Open(filepath.Join(dir, "session"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %q", ErrNoSessionFile, dir)
		}
		return nil, err
	}
	defer f.Close()

	arc, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read session archive: %w", err)
	}
	defer arc.Close()

	var raw sessionFile
	if err := json.NewDecoder(arc).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode session json: %w", err)
	}

	if raw.Session.Metadata.AppBlob == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBlob, dir)
	}
	blobBytes, err := base64.StdEncoding.DecodeString(raw.Session.Metadata.AppBlob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	var blob appBlob
	if err := json.Unmarshal(blobBytes, &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	if blob.TestplanID == "" {
		return nil, fmt.Errorf("%w: missing testplan_id", ErrInvalidBlob)
	}

	s := &Session{
		Path:        dir,
		Description: blob.Description,
		TestplanID:  blob.TestplanID,
		results:     raw.Session.Results,
	}
	s.FailedJobs = s.RunJobs()
	return s, nil
}

// RunJobs returns the ids of jobs whose last retry ended with one of the
// given outcomes. With no arguments it selects failed and crashed jobs.
func (s *Session) RunJobs(outcomes ...JobOutcome) []string {
	if len(outcomes) == 0 {
		outcomes = []JobOutcome{OutcomeFail, OutcomeCrash}
	}

	var jobs []string
	for id, retries := range s.results {
		if len(retries) == 0 {
			continue
		}
		// a job can be retried; the last retry decides
		last := retries[len(retries)-1].Outcome
		for _, outcome := range outcomes {
			if last == outcome {
				jobs = append(jobs, id)
				break
			}
		}
	}
	sort.Strings(jobs)
	return jobs
}

// HasFailedJobs reports whether any job's last retry failed.
func (s *Session) HasFailedJobs() bool {
	for _, retries := range s.results {
		if len(retries) > 0 && retries[len(retries)-1].Outcome == OutcomeFail {
			return true
		}
	}
	return false
}

// JobOutput returns the stdout, stderr and operator comments of a job.
// A job without log records yields empty output rather than an error.
func (s *Session) JobOutput(jobID string) (*JobOutput, error) {
	retries, ok := s.results[jobID]
	if !ok || len(retries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchJob, jobID)
	}

	// the io-logs filename is stable across retries, so the last retry
	// is as good as any
	last := retries[len(retries)-1]
	out := &JobOutput{Comments: last.Comments}
	if last.IOLogFilename == "" {
		return out, nil
	}

	stdoutName := strings.Replace(last.IOLogFilename, "record.gz", "stdout", 1)
	stderrName := strings.Replace(last.IOLogFilename, "record.gz", "stderr", 1)

	stdout, err := os.ReadFile(filepath.Join(s.Path, stdoutName))
	if err != nil {
		return nil, fmt.Errorf("corrupted session, missing log file: %w", err)
	}
	stderr, err := os.ReadFile(filepath.Join(s.Path, stderrName))
	if err != nil {
		return nil, fmt.Errorf("corrupted session, missing log file: %w", err)
	}

	out.Stdout = strings.TrimSpace(string(stdout))
	out.Stderr = strings.TrimSpace(string(stderr))
	return out, nil
}
