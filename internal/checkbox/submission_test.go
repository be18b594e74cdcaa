package checkbox

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// writeSubmission builds a minimal .tar.xz submission archive.
func writeSubmission(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	xzWriter, err := xz.NewWriter(f)
	require.NoError(t, err)
	tarWriter := tar.NewWriter(xzWriter)

	for name, content := range files {
		require.NoError(t, tarWriter.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(content)),
		}))
		_, err = tarWriter.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tarWriter.Close())
	require.NoError(t, xzWriter.Close())
}

func TestReadSubmission(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.tar.xz")
	writeSubmission(t, path, map[string]string{
		"submission.json": `{
			"testplan_id": "client-cert-24-04",
			"results": [
				{
					"full_id": "com.canonical.certification::wifi/connect",
					"name": "wifi/connect",
					"outcome": "fail",
					"certification_status": "blocker",
					"comments": "no AP found"
				},
				{
					"full_id": "com.canonical.certification::audio/speaker",
					"name": "audio/speaker",
					"outcome": "pass",
					"certification_status": "non-blocker"
				}
			]
		}`,
		"launcher": "[launcher]\napp_id = checkbox\n",
	})

	submission, err := ReadSubmission(path)
	require.NoError(t, err)

	assert.Equal(t, path, submission.Path)
	assert.Equal(t, "client-cert-24-04", submission.TestplanID)
	require.Len(t, submission.Results, 2)
	assert.Equal(t, "wifi/connect", submission.Results[0].Name)
	assert.Equal(t, OutcomeFail, submission.Results[0].Outcome)
	assert.Equal(t, CertBlocker, submission.Results[0].CertificationStatus)
}

func TestReadSubmissionNoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.tar.xz")
	writeSubmission(t, path, map[string]string{"launcher": "x"})

	_, err := ReadSubmission(path)
	assert.ErrorIs(t, err, ErrNoSubmissionJSON)
}

func TestReadSubmissionMissingFile(t *testing.T) {
	_, err := ReadSubmission(filepath.Join(t.TempDir(), "nope.tar.xz"))
	assert.Error(t, err)
}

func TestReadSubmissionNotXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tar.xz")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := ReadSubmission(path)
	assert.ErrorContains(t, err, "failed to open submission archive")
}
