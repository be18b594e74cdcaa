// Package completion implements both sides of the bash completion
// protocol: the script that registers the completion function, and the
// in-process responder that turns COMP_WORDS into candidates.
package completion

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CompleteEnvVar triggers completion mode when set to CompleteBash. The
// name is derived from the registered command name, so it carries a dot;
// the completion script passes it through env(1).
const (
	CompleteEnvVar = "_BUGIT.BUGIT_V2_COMPLETE"
	CompleteBash   = "complete_bash"
)

// CommandName is the name the snap exposes the tool under.
const CommandName = "bugit.bugit-v2"

// Script returns the bash completion script to be sourced by the user's
// shell. The registered function re-invokes the program in completion
// mode and splits its newline-delimited output into COMPREPLY.
func Script() string {
	fn := "_" + strings.NewReplacer(".", "_", "-", "_").Replace(CommandName) + "_completion"
	return fmt.Sprintf(`%[1]s() {
    local IFS=$'\n'
    COMPREPLY=( $( env COMP_WORDS="${COMP_WORDS[*]}" \
                   COMP_CWORD=$COMP_CWORD \
                   %[2]s=%[3]s %[4]s ) )
    return 0
}

complete -o default -F %[1]s %[4]s
`, fn, CompleteEnvVar, CompleteBash, CommandName)
}

// Request is a parsed completion invocation.
type Request struct {
	Words []string
	CWord int
}

// Current returns the word being completed, or "" when the cursor is past
// the last word.
func (r *Request) Current() string {
	if r.CWord >= 0 && r.CWord < len(r.Words) {
		return r.Words[r.CWord]
	}
	return ""
}

// Detect parses a completion request out of an environ-style list.
// It returns nil when the process was not invoked for completion.
func Detect(environ []string) *Request {
	var (
		mode  string
		words string
		cword = -1
	)
	for _, kv := range environ {
		name, value, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		switch name {
		case CompleteEnvVar:
			mode = value
		case "COMP_WORDS":
			words = value
		case "COMP_CWORD":
			if n, err := strconv.Atoi(value); err == nil {
				cword = n
			}
		}
	}

	if mode != CompleteBash {
		return nil
	}
	return &Request{Words: strings.Fields(words), CWord: cword}
}

// Respond writes the matching candidates, one per line.
func Respond(w io.Writer, req *Request, candidates []string) {
	current := req.Current()
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, current) {
			fmt.Fprintln(w, candidate)
		}
	}
}
