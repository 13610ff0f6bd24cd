// Package render implements the seam-based renderer described in spec.md
// §4.8: it writes a frame layout into a cell buffer in four passes
// (background fill, seam computation, labels, selection highlight). There
// is no original_source precedent for seam merging — the Rust
// treemap_widget.rs draws each rect's own border independently, double
// drawing shared edges (an explicit REDESIGN FLAG target) — so this
// package is new code, grounded only in spec prose and in the teacher's
// general preference for building its own presentation layer rather than
// leaning entirely on lipgloss for structured content (internal/ui.go's
// card/gaugeBar helpers hand-assemble strings around lipgloss borders).
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"squaretop/internal/geometry"
)

// Cell is one terminal character position.
type Cell struct {
	Rune rune
	FG   colorful.Color
	BG   colorful.Color
	Bold bool
}

// Buffer is a fixed-size grid of Cells, row-major.
type Buffer struct {
	W, H  int
	cells []Cell
}

// NewBuffer allocates a blank buffer of the given cell dimensions.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{W: w, H: h, cells: make([]Cell, w*h)}
}

// At returns the cell at (x, y), or the zero Cell when out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.W+x]
}

// Set writes a cell at (x, y); out-of-bounds writes are silently dropped,
// matching the clipping-to-bounds behavior the layout pipeline already
// guarantees for rect geometry (spec.md §4.8 pass 1).
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.W+x] = c
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

// Bounds returns the buffer's extent as a CellRect anchored at the origin.
func (b *Buffer) Bounds() geometry.CellRect {
	return geometry.CellRect{X: 0, Y: 0, W: b.W, H: b.H}
}
