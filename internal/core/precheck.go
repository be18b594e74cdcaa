package core

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrNotRoot    = errors.New("please run this app with sudo bugit-v2")
	ErrNotDevmode = errors.New("bugit is not installed in devmode, please reinstall with --devmode specified")
)

// EntryCheck runs the checks necessary for all the commands provided by
// the snap: the tool must run as root, and when snapped it must be
// installed in devmode or it cannot reach the host system.
func EntryCheck() error {
	if os.Getuid() != 0 {
		return ErrNotRoot
	}
	if InSnap() && !inDevmode() {
		return ErrNotDevmode
	}
	return nil
}

// inDevmode scrapes `snap list` for the bugit entry. `snap info` is not
// used because it needs the internet.
func inDevmode() bool {
	out, err := exec.Command("snap", "list").Output()
	if err != nil {
		// can't call the snap command in strict confinement
		return false
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "bugit") && strings.Contains(line, "devmode") {
			return true
		}
	}
	return false
}
