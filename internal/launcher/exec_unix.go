//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// Exec replaces the current process image with argv, preserving the given
// environment. On success it never returns, so the launcher's exit status
// is exactly the wrapped command's.
func Exec(argv []string, env []string) error {
	if len(argv) == 0 {
		return exec.ErrNotFound
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	return syscall.Exec(path, argv, env)
}
