// Package format holds small presentation helpers shared by the renderer,
// detail panel, and status bar: byte-count formatting and unicode-width-aware
// truncation.
package format

import (
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Bytes renders a byte count using decimal (SI, powers of 1000) units, e.g.
// "512 MB" style short form — grounded on JeKaQM-Servicarr_'s use of go-humanize for
// human-readable sizes.
func Bytes(n uint64) string {
	return humanize.Bytes(n)
}

// TruncateUnicode truncates s to at most maxWidth terminal display columns,
// appending an ellipsis when truncation occurs, measuring width with
// go-runewidth rather than rune count (spec.md §4.8 "unicode-width-aware
// truncation").
func TruncateUnicode(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
