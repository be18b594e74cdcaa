// Package archive keeps a local record of every report composed on this
// machine, so operators can find the ticket for a DUT they filed against
// weeks ago.
package archive

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/canonical/bugit-v2/internal/report"
)

type Manager struct {
	db         *gorm.DB
	markerPath string
}

// Entry is one archived report.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Tracker   string
	Project   string
	Title     string
	Severity  string
	Tags      string
	TicketKey string
}

const archiveSchemaVersion = 1

// NewManager opens (or creates) the archive database. markerPath stores
// the schema version so migrations only run when needed.
func NewManager(dbFilePath, markerPath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("error checking archive db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening archive db: %w", err)
	}

	m := &Manager{db: db, markerPath: markerPath}
	if m.needsMigration(dbFileExists) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("error migrating archive schema: %w", err)
		}
		if err := m.writeSchemaVersion(); err != nil {
			return nil, fmt.Errorf("error writing archive schema version: %w", err)
		}
	}

	return m, nil
}

func (m *Manager) needsMigration(dbFileExists bool) bool {
	if !dbFileExists {
		return true
	}

	matches, err := m.schemaVersionMatches()
	if err != nil || !matches {
		return true
	}

	// If the marker is present but the table is missing (corruption or
	// manual deletion), re-run migrations to restore the schema.
	return !m.db.Migrator().HasTable(&Entry{})
}

func (m *Manager) writeSchemaVersion() error {
	return os.WriteFile(m.markerPath, []byte(strconv.Itoa(archiveSchemaVersion)), 0644)
}

func (m *Manager) schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(m.markerPath)
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != archiveSchemaVersion {
		return false, fmt.Errorf("archive schema version mismatch: got %d, want %d", version, archiveSchemaVersion)
	}
	return true, nil
}

// Record archives a report after the submission flow finished with it.
func (m *Manager) Record(r *report.BugReport, tracker, ticketKey string) (*Entry, error) {
	entry := Entry{
		Tracker:   tracker,
		Project:   r.Project,
		Title:     r.Title,
		Severity:  string(r.Severity),
		Tags:      strings.Join(r.Tags(), " "),
		TicketKey: ticketKey,
	}

	result := m.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// Recent returns up to limit entries, most recent first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Count returns how many reports have been archived.
func (m *Manager) Count() (int64, error) {
	var count int64
	result := m.db.Model(&Entry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
