package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/canonical/bugit-v2/internal/completion"
	"github.com/canonical/bugit-v2/internal/core"
	"github.com/canonical/bugit-v2/internal/styles"
)

var BUILD_VERSION = "dev"

var rootCmd = &cobra.Command{
	Use:     "bugit",
	Short:   "Bugit is a tool for creating bug reports on Launchpad and Jira",
	Version: "",
	Long: `Bugit is a tool for creating bug reports on Launchpad and Jira.

It discovers Checkbox sessions on the device under test, gathers standard
hardware information, and walks you through composing and filing a bug
report in a terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Completion mode short-circuits everything else: the shell function
	// re-invokes us with the completion env var set and expects only the
	// candidates on stdout.
	if req := completion.Detect(os.Environ()); req != nil {
		completion.Respond(os.Stdout, req, completionCandidates(rootCmd, req))
		return
	}

	rootCmd.Version = BUILD_VERSION
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// getLogger lazily builds the file logger so that commands which never
// log (exec, completion) don't touch the data dir.
func getLogger() *zap.Logger {
	loggerOnce.Do(func() {
		level := zap.NewAtomicLevelAt(zap.InfoLevel)
		if !core.Prod() {
			level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}

		config := zap.NewProductionConfig()
		config.Level = level
		// logs only go to file to avoid interfering with the TUI
		config.OutputPaths = []string{core.LogFile()}

		var err error
		logger, err = config.Build()
		if err != nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// entryCheck gates the commands that need host access. Skipped outside
// production so the tool can be developed without sudo.
func entryCheck(cmd *cobra.Command, args []string) error {
	if !core.Prod() {
		return nil
	}
	return core.EntryCheck()
}
