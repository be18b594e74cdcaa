package checkbox

import (
	"os"
	"path/filepath"
	"sort"
)

// ValidSessions returns the session directories under root that have a
// non-empty io-logs directory. An empty io-logs dir means the session was
// either tossed by checkbox or never reached the test case that dumps the
// udev database, so it carries nothing worth attaching.
func ValidSessions(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var valid []string
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		ioLogs, err := os.ReadDir(filepath.Join(dir, "io-logs"))
		if err != nil || len(ioLogs) == 0 {
			continue
		}
		valid = append(valid, dir)
	}
	sort.Strings(valid)
	return valid
}
