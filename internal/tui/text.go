package tui

import "github.com/rivo/uniseg"

// truncate cuts s to at most width display cells, grapheme-aware, adding
// an ellipsis when anything was cut.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}

	var (
		out   []byte
		cells int
	)
	state := -1
	remaining := s
	for len(remaining) > 0 {
		var cluster string
		var w int
		cluster, remaining, w, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		if cells+w > width-1 {
			break
		}
		out = append(out, cluster...)
		cells += w
	}
	return string(out) + "…"
}
