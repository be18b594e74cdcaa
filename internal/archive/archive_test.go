package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/bugit-v2/internal/report"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	m, err := NewManager(
		filepath.Join(dir, "archive.db"),
		filepath.Join(dir, "archive_schema_version"))
	require.NoError(t, err)
	return m
}

func sampleReport(title string) *report.BugReport {
	return &report.BugReport{
		Title:          title,
		Description:    "details",
		Project:        "STELLA",
		Severity:       report.SeverityHigh,
		IssueFileTime:  report.FileTimeImmediate,
		PlatformTags:   []string{"stella-rock"},
		AdditionalTags: []string{"regression"},
	}
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestManager(t)

	entry, err := m.Record(sampleReport("first bug"), "jira", "STELLA-00001")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "stella-rock regression", entry.Tags)

	_, err = m.Record(sampleReport("second bug"), "lp", "LP: #0000002")
	require.NoError(t, err)

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	count, err := m.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRecentRespectsLimit(t *testing.T) {
	m := newTestManager(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := m.Record(sampleReport(title), "jira", "STELLA-1")
		require.NoError(t, err)
	}

	entries, err := m.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSchemaMarkerWritten(t *testing.T) {
	dir := t.TempDir()
	markerPath := filepath.Join(dir, "archive_schema_version")

	_, err := NewManager(filepath.Join(dir, "archive.db"), markerPath)
	require.NoError(t, err)

	content, err := os.ReadFile(markerPath)
	require.NoError(t, err)
	assert.Equal(t, "1", string(content))
}

func TestReopenExistingArchive(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "archive.db")
	markerPath := filepath.Join(dir, "archive_schema_version")

	m, err := NewManager(dbPath, markerPath)
	require.NoError(t, err)
	_, err = m.Record(sampleReport("persisted"), "jira", "STELLA-7")
	require.NoError(t, err)

	// a second manager sees the schema marker and the existing rows
	m2, err := NewManager(dbPath, markerPath)
	require.NoError(t, err)
	count, err := m2.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestStaleMarkerTriggersRemigration(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "archive.db")
	markerPath := filepath.Join(dir, "archive_schema_version")

	_, err := NewManager(dbPath, markerPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(markerPath, []byte("0"), 0644))

	m, err := NewManager(dbPath, markerPath)
	require.NoError(t, err)
	_, err = m.Record(sampleReport("still works"), "jira", "STELLA-8")
	assert.NoError(t, err)

	content, err := os.ReadFile(markerPath)
	require.NoError(t, err)
	assert.Equal(t, "1", string(content))
}
