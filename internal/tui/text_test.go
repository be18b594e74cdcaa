package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer text", 5))
	assert.Equal(t, "…", truncate("anything", 1))
	assert.Equal(t, "…", truncate("anything", 0))
}

func TestTruncateGraphemes(t *testing.T) {
	// never cut a grapheme cluster in half
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "hé…", truncate("héllo", 3))
	// wide CJK runes count as two cells
	assert.Equal(t, "日本語", truncate("日本語", 6))
	assert.Equal(t, "日…", truncate("日本語", 4))
}
