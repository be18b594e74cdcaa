package completion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectNotCompletionMode(t *testing.T) {
	assert.Nil(t, Detect([]string{"HOME=/home/u", "PATH=/usr/bin"}))
	// wrong mode value
	assert.Nil(t, Detect([]string{CompleteEnvVar + "=complete_zsh"}))
}

func TestDetect(t *testing.T) {
	req := Detect([]string{
		"HOME=/home/u",
		CompleteEnvVar + "=" + CompleteBash,
		"COMP_WORDS=bugit.bugit-v2 dut-info se",
		"COMP_CWORD=2",
	})
	require.NotNil(t, req)
	assert.Equal(t, []string{"bugit.bugit-v2", "dut-info", "se"}, req.Words)
	assert.Equal(t, 2, req.CWord)
	assert.Equal(t, "se", req.Current())
}

func TestCurrentPastLastWord(t *testing.T) {
	// bash passes CWORD == len(words) when the cursor sits after a space
	req := &Request{Words: []string{"bugit.bugit-v2", "jira"}, CWord: 2}
	assert.Equal(t, "", req.Current())
}

func TestRespondFiltersByPrefix(t *testing.T) {
	var out bytes.Buffer
	req := &Request{Words: []string{"bugit.bugit-v2", "li"}, CWord: 1}
	Respond(&out, req, []string{"list-sessions", "list-reports", "jira", "lp"})
	assert.Equal(t, "list-sessions\nlist-reports\n", out.String())
}

func TestRespondEmptyCurrentMatchesAll(t *testing.T) {
	var out bytes.Buffer
	req := &Request{Words: []string{"bugit.bugit-v2"}, CWord: 1}
	Respond(&out, req, []string{"jira", "lp"})
	assert.Equal(t, "jira\nlp\n", out.String())
}

func TestScript(t *testing.T) {
	script := Script()
	assert.Contains(t, script, "complete -o default -F _bugit_bugit_v2_completion "+CommandName)
	// the env var carries a dot, so it has to go through env(1)
	assert.Contains(t, script, `env COMP_WORDS="${COMP_WORDS[*]}"`)
	assert.Contains(t, script, CompleteEnvVar+"="+CompleteBash)
}
