package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir          string
	DataDir          string
	LogFile          string
	ArchiveFile      string
	DutInfoFile      string
	VisualConfigFile string
	SchemaMarkerFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".bugit")
		defaultPaths = &Paths{
			HomeDir:          homeDir,
			DataDir:          dataDir,
			LogFile:          filepath.Join(dataDir, "bugit.log"),
			ArchiveFile:      filepath.Join(dataDir, "archive.db"),
			DutInfoFile:      filepath.Join(dataDir, "dut_info.json"),
			VisualConfigFile: filepath.Join(dataDir, "visual.yaml"),
			SchemaMarkerFile: filepath.Join(dataDir, "archive_schema_version"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func ArchiveFile() string {
	ensureDefaultPaths()
	return defaultPaths.ArchiveFile
}

func DutInfoFile() string {
	ensureDefaultPaths()
	return defaultPaths.DutInfoFile
}

func VisualConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.VisualConfigFile
}

func SchemaMarkerFile() string {
	ensureDefaultPaths()
	return defaultPaths.SchemaMarkerFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
