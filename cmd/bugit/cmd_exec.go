package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/bugit-v2/internal/launcher"
)

// execCmd is the snap launcher trampoline. It prepares the environment
// (ARCH, COLORTERM, $SNAP/env fragments) and then replaces itself with
// the wrapped command, so the child keeps our PID and exit status.
var execCmd = &cobra.Command{
	Use:                "exec -- <command> [args...]",
	Short:              "Run a command with the snap launch environment",
	Hidden:             true,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		if len(args) == 0 {
			return errors.New("exec needs a command to run")
		}

		env := launcher.Prepare(cmd.Context(), os.Environ(), os.Stdout)
		if err := launcher.Exec(args, env); err != nil {
			return fmt.Errorf("failed to exec %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
