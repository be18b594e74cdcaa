package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/canonical/bugit-v2/internal/completion"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Print the bash completion script",
	Long: `Print the bash completion script.

Add this to your ~/.bashrc to enable completion:

    eval "$(` + completion.CommandName + ` completion)"`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(completion.Script())
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completionCandidates resolves the completion request against the
// command tree: subcommand names at each level, flag names once the
// current word looks like a flag.
func completionCandidates(root *cobra.Command, req *completion.Request) []string {
	cmd := root
	// words[0] is the program name; everything before the cursor narrows
	// down the subcommand being completed under.
	upto := max(min(req.CWord, len(req.Words)), 1)
	for _, word := range req.Words[1:upto] {
		next := findSubcommand(cmd, word)
		if next == nil {
			break
		}
		cmd = next
	}

	if strings.HasPrefix(req.Current(), "-") {
		var flags []string
		visit := func(flag *pflag.Flag) {
			if !flag.Hidden {
				flags = append(flags, "--"+flag.Name)
			}
		}
		cmd.Flags().VisitAll(visit)
		cmd.InheritedFlags().VisitAll(visit)
		return flags
	}

	var names []string
	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			names = append(names, sub.Name())
		}
	}
	return names
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}
