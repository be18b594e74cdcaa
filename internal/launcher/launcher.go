// Package launcher carries the snap launcher plumbing: it maps the snap
// architecture to a GNU triplet, sources optional environment fragments,
// and re-executes the wrapped command with the prepared environment.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// archTriplets maps SNAP_ARCH values to GNU target triplets.
var archTriplets = map[string]string{
	"amd64": "x86_64-linux-gnu",
	"i386":  "i386-linux-gnu",
	"arm64": "aarch64-linux-gnu",
	"armhf": "arm-linux-gnueabihf",
}

// MapArch maps a snap architecture string to its GNU triplet.
func MapArch(snapArch string) (string, bool) {
	triplet, ok := archTriplets[snapArch]
	return triplet, ok
}

// Prepare builds the launch environment from the given one:
//
//   - ARCH is exported per MapArch when SNAP_ARCH is recognized; an
//     unrecognized value emits a diagnostic to warn and leaves ARCH unset
//   - COLORTERM is forced to truecolor so the TUI renders full color
//   - env fragments under $SNAP/env/*.sh are sourced and their exported
//     variables merged in
func Prepare(ctx context.Context, environ []string, warn io.Writer) []string {
	env := append([]string(nil), environ...)

	if snapArch, ok := lookup(env, "SNAP_ARCH"); ok {
		if triplet, known := MapArch(snapArch); known {
			env = set(env, "ARCH", triplet)
		} else {
			fmt.Fprintf(warn, "Unsupported architecture: %s\n", snapArch)
		}
	}

	env = set(env, "COLORTERM", "truecolor")

	if snapDir, ok := lookup(env, "SNAP"); ok {
		fragments, err := SourceFragments(ctx, filepath.Join(snapDir, "env"), env)
		if err != nil {
			fmt.Fprintf(warn, "failed to source env fragments: %v\n", err)
		}
		for name, value := range fragments {
			env = set(env, name, value)
		}
	}

	return env
}

// SourceFragments evaluates every *.sh file in dir, in lexical order, and
// returns the variables they exported. Fragments are plain POSIX shell;
// they run in-process, so they cannot replace the launcher.
func SourceFragments(ctx context.Context, dir string, environ []string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var scripts []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sh") {
			scripts = append(scripts, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(scripts)
	if len(scripts) == 0 {
		return nil, nil
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(nil, io.Discard, os.Stderr),
	)
	if err != nil {
		return nil, err
	}

	for _, script := range scripts {
		if err := runScript(ctx, runner, script); err != nil {
			return nil, fmt.Errorf("failed to source %s: %w", script, err)
		}
	}

	exported := make(map[string]string)
	for name, vr := range runner.Vars {
		if vr.Exported {
			exported[name] = vr.String()
		}
	}
	return exported, nil
}

func runScript(ctx context.Context, runner *interp.Runner, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	prog, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return err
	}
	return runner.Run(ctx, prog)
}

// lookup finds a variable in an environ-style list.
func lookup(environ []string, name string) (string, bool) {
	prefix := name + "="
	for i := len(environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(environ[i], prefix) {
			return environ[i][len(prefix):], true
		}
	}
	return "", false
}

// set overrides or appends a variable in an environ-style list.
func set(environ []string, name, value string) []string {
	prefix := name + "="
	for i, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			environ[i] = prefix + value
			return environ
		}
	}
	return append(environ, prefix+value)
}
