package checkbox

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/canonical/bugit-v2/internal/core"
)

// Checkbox binaries reachable from inside the snap via the hostfs.
const (
	hostfsDebCheckbox  = "/var/lib/snapd/hostfs/usr/bin/checkbox-cli"
	hostfsSnapCheckbox = "/var/lib/snapd/hostfs/snap/bin/checkbox.checkbox-cli"
	hostfsPythonPath   = "/var/lib/snapd/hostfs/usr/lib/python3/dist-packages"
)

// minVersion is the oldest checkbox release whose session format we read.
var minVersion = semver.MustParse("2.9.0")

var ErrNoCheckbox = errors.New("checkbox-cli not found")

// Version returns the version string of the checkbox installation visible
// from this process.
func Version(ctx context.Context) (string, error) {
	if core.InSnap() {
		if _, err := os.Stat(hostfsDebCheckbox); err == nil {
			// host is using debian checkbox
			cmd := exec.CommandContext(ctx, hostfsDebCheckbox, "--version")
			cmd.Env = append(os.Environ(), "PYTHONPATH="+hostfsPythonPath)
			out, err := cmd.Output()
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(out)), nil
		}
		if _, err := os.Stat(hostfsSnapCheckbox); err == nil {
			out, err := exec.CommandContext(ctx, hostfsSnapCheckbox, "--version").Output()
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(out)), nil
		}
		return "", ErrNoCheckbox
	}

	bin, err := exec.LookPath("checkbox-cli")
	if err != nil {
		bin, err = exec.LookPath("checkbox.checkbox-cli")
	}
	if err != nil {
		return "", ErrNoCheckbox
	}

	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Supported reports whether a checkbox version string is at least the
// minimum release bugit knows how to read sessions from.
func Supported(version string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, err
	}
	return !v.LessThan(minVersion), nil
}
