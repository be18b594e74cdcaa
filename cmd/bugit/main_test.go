package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canonical/bugit-v2/internal/completion"
)

func TestCompletionCandidatesTopLevel(t *testing.T) {
	req := &completion.Request{Words: []string{completion.CommandName}, CWord: 1}
	names := completionCandidates(rootCmd, req)

	assert.Contains(t, names, "jira")
	assert.Contains(t, names, "lp")
	assert.Contains(t, names, "dut-info")
	assert.Contains(t, names, "list-sessions")
	// hidden commands stay out of completion
	assert.NotContains(t, names, "exec")
	assert.NotContains(t, names, "check-commands")
}

func TestCompletionCandidatesSubcommand(t *testing.T) {
	req := &completion.Request{
		Words: []string{completion.CommandName, "dut-info"},
		CWord: 2,
	}
	names := completionCandidates(rootCmd, req)
	assert.ElementsMatch(t, []string{"set", "show", "clear"}, names)
}

func TestCompletionCandidatesFlags(t *testing.T) {
	req := &completion.Request{
		Words: []string{completion.CommandName, "jira", "--c"},
		CWord: 2,
	}
	flags := completionCandidates(rootCmd, req)
	assert.Contains(t, flags, "--cid")
	assert.Contains(t, flags, "--sku")
	assert.Contains(t, flags, "--platform-tags")
}

func TestCompletionCandidatesUnknownWord(t *testing.T) {
	// an unresolvable word falls back to the deepest known command
	req := &completion.Request{
		Words: []string{completion.CommandName, "bogus", "x"},
		CWord: 2,
	}
	names := completionCandidates(rootCmd, req)
	assert.Contains(t, names, "jira")
}
