package launcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapArch(t *testing.T) {
	tests := []struct {
		snapArch string
		triplet  string
		known    bool
	}{
		{"amd64", "x86_64-linux-gnu", true},
		{"i386", "i386-linux-gnu", true},
		{"arm64", "aarch64-linux-gnu", true},
		{"armhf", "arm-linux-gnueabihf", true},
		{"riscv64", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		t.Run(test.snapArch, func(t *testing.T) {
			triplet, known := MapArch(test.snapArch)
			assert.Equal(t, test.triplet, triplet)
			assert.Equal(t, test.known, known)
		})
	}
}

func TestPrepareKnownArch(t *testing.T) {
	var warn bytes.Buffer
	env := Prepare(context.Background(), []string{"SNAP_ARCH=arm64"}, &warn)

	value, ok := lookup(env, "ARCH")
	assert.True(t, ok)
	assert.Equal(t, "aarch64-linux-gnu", value)

	value, ok = lookup(env, "COLORTERM")
	assert.True(t, ok)
	assert.Equal(t, "truecolor", value)

	assert.Empty(t, warn.String())
}

func TestPrepareUnknownArch(t *testing.T) {
	var warn bytes.Buffer
	env := Prepare(context.Background(), []string{"SNAP_ARCH=riscv64"}, &warn)

	_, ok := lookup(env, "ARCH")
	assert.False(t, ok)
	assert.Equal(t, "Unsupported architecture: riscv64\n", warn.String())
}

func TestPrepareOutsideSnap(t *testing.T) {
	var warn bytes.Buffer
	env := Prepare(context.Background(), []string{"HOME=/home/u"}, &warn)

	_, ok := lookup(env, "ARCH")
	assert.False(t, ok)
	assert.Empty(t, warn.String())

	// COLORTERM is forced regardless
	value, ok := lookup(env, "COLORTERM")
	assert.True(t, ok)
	assert.Equal(t, "truecolor", value)
}

func TestPrepareKeepsExistingEnv(t *testing.T) {
	var warn bytes.Buffer
	env := Prepare(context.Background(),
		[]string{"SNAP_ARCH=amd64", "COLORTERM=256color", "PATH=/usr/bin"}, &warn)

	value, _ := lookup(env, "COLORTERM")
	assert.Equal(t, "truecolor", value)
	value, _ = lookup(env, "PATH")
	assert.Equal(t, "/usr/bin", value)
}

func TestSourceFragments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "10-base.sh"), []byte("export EDITOR=nano\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "20-extra.sh"), []byte("export EDITOR=vim\nLOCAL_ONLY=1\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "notes.txt"), []byte("not a script"), 0644))

	vars, err := SourceFragments(context.Background(), dir, []string{"PATH=/usr/bin"})
	require.NoError(t, err)

	// fragments run in lexical order, so the later one wins
	assert.Equal(t, "vim", vars["EDITOR"])
	// unexported variables stay local to the fragment
	assert.NotContains(t, vars, "LOCAL_ONLY")
}

func TestSourceFragmentsMissingDir(t *testing.T) {
	vars, err := SourceFragments(context.Background(),
		filepath.Join(t.TempDir(), "nope"), nil)
	assert.NoError(t, err)
	assert.Empty(t, vars)
}

func TestPrepareSourcesSnapEnv(t *testing.T) {
	snapDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(snapDir, "env"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(snapDir, "env", "jira.sh"),
		[]byte("export JIRA_SERVER=https://jira.internal\n"), 0644))

	var warn bytes.Buffer
	env := Prepare(context.Background(), []string{"SNAP=" + snapDir}, &warn)

	value, ok := lookup(env, "JIRA_SERVER")
	assert.True(t, ok)
	assert.Equal(t, "https://jira.internal", value)
}
