package checkbox

import (
	"archive/tar"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// CertificationStatus marks whether a failed job blocks certification.
type CertificationStatus string

const (
	CertNonBlocker CertificationStatus = "non-blocker"
	CertBlocker    CertificationStatus = "blocker"
)

// JobResultSummary is a single job result inside a submission archive.
type JobResultSummary struct {
	Category            string              `json:"category"`
	CategoryID          string              `json:"category_id"`
	CertificationStatus CertificationStatus `json:"certification_status"`
	Comments            string              `json:"comments"`
	FullID              string              `json:"full_id"`
	Name                string              `json:"name"`
	Outcome             JobOutcome          `json:"outcome"`
	Project             string              `json:"project"`
	Status              string              `json:"status"`
}

// Submission is the parsed content of a checkbox submission tarball.
type Submission struct {
	Path       string
	TestplanID string
	Results    []JobResultSummary
}

type submissionJSON struct {
	Results    []JobResultSummary `json:"results"`
	TestplanID string             `json:"testplan_id"`
}

var ErrNoSubmissionJSON = errors.New("submission.json not found in archive")

// ReadSubmission extracts submission.json from a .tar.xz submission archive.
func ReadSubmission(path string) (*Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	xzReader, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open submission archive: %w", err)
	}

	tarReader := tar.NewReader(xzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read submission archive: %w", err)
		}
		if header.Name != "submission.json" {
			continue
		}

		var raw submissionJSON
		if err := json.NewDecoder(tarReader).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode submission.json: %w", err)
		}
		return &Submission{
			Path:       path,
			TestplanID: raw.TestplanID,
			Results:    raw.Results,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNoSubmissionJSON, path)
}
