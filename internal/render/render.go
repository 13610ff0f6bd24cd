package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"squaretop/internal/colorpolicy"
	"squaretop/internal/format"
	"squaretop/internal/geometry"
	"squaretop/internal/view"
)

// Options carries the rendering preferences that are not already baked
// into the layout itself (spec.md §4.8 input list).
type Options struct {
	Border        view.BorderStyle
	BorderColor   colorful.Color
	HighlightColor colorful.Color
	Selected      uint64 // 0 means no selection; real PIDs and view.OtherID are both > 0
}

// Render writes l into a freshly allocated buffer of the given cell bounds,
// running the four passes in order (spec.md §4.8).
func Render(l view.Layout, bounds geometry.CellRect, opts Options) *Buffer {
	buf := NewBuffer(bounds.W, bounds.H)
	cellBounds := buf.Bounds()

	rects := make([]cellRectEntry, 0, len(l.Rects))
	for _, r := range l.Rects {
		if !r.Visible {
			continue
		}
		cr := r.Rect.ToCellRect(cellBounds)
		if cr.W <= 0 || cr.H <= 0 {
			continue
		}
		rects = append(rects, cellRectEntry{rect: r, cell: cr})
	}

	backgroundFill(buf, rects, opts.Border)
	if opts.Border != view.BorderNone {
		drawSeams(buf, rects, opts)
	}
	drawLabels(buf, rects)
	if opts.Selected != 0 && opts.Border != view.BorderNone {
		highlightSelected(buf, rects, opts)
	}

	return buf
}

type cellRectEntry struct {
	rect view.Rect
	cell geometry.CellRect
}

func backgroundFill(buf *Buffer, rects []cellRectEntry, border view.BorderStyle) {
	for _, e := range rects {
		x0, y0, x1, y1 := e.cell.X, e.cell.Y, e.cell.X+e.cell.W-1, e.cell.Y+e.cell.H-1
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if border != view.BorderNone && onPerimeter(e.cell, x, y) {
					continue
				}
				buf.Set(x, y, Cell{Rune: ' ', BG: e.rect.Color})
			}
		}
	}
}

func onPerimeter(c geometry.CellRect, x, y int) bool {
	return x == c.X || x == c.X+c.W-1 || y == c.Y || y == c.Y+c.H-1
}

func drawSeams(buf *Buffer, rects []cellRectEntry, opts Options) {
	mask := newSeamMask()
	for _, e := range rects {
		mask.addRectPerimeter(e.cell.X, e.cell.Y, e.cell.W, e.cell.H)
	}
	heavy := opts.Border == view.BorderThick
	for p, bits := range mask.bits {
		buf.Set(p.x, p.y, Cell{Rune: glyphFor(bits, heavy), FG: opts.BorderColor})
	}
}

func drawLabels(buf *Buffer, rects []cellRectEntry) {
	for _, e := range rects {
		if e.cell.W < 4 || e.cell.H < 1 {
			continue
		}
		fg := colorpolicy.ContrastText(e.rect.Color)
		nameWidth := e.cell.W - 2
		name := format.TruncateUnicode(e.rect.Label, nameWidth)
		writeString(buf, e.cell.X+1, e.cell.Y, name, fg, e.rect.Color)

		if e.cell.H >= 2 && e.cell.W >= 6 {
			size := format.Bytes(e.rect.Weight)
			size = format.TruncateUnicode(size, nameWidth)
			writeString(buf, e.cell.X+1, e.cell.Y+1, size, fg, e.rect.Color)
		}
	}
}

// writeString advances by each rune's display width, not rune count, so
// wide (e.g. CJK) runes consume the two cells they actually occupy instead
// of underfilling against format.TruncateUnicode's width-aware truncation.
func writeString(buf *Buffer, x, y int, s string, fg, bg colorful.Color) {
	col := 0
	for _, r := range s {
		buf.Set(x+col, y, Cell{Rune: r, FG: fg, BG: bg})
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		col += w
	}
}

func highlightSelected(buf *Buffer, rects []cellRectEntry, opts Options) {
	for _, e := range rects {
		if e.rect.ID != opts.Selected {
			continue
		}
		local := newSeamMask()
		local.addRectPerimeter(e.cell.X, e.cell.Y, e.cell.W, e.cell.H)
		for p, bits := range local.bits {
			buf.Set(p.x, p.y, Cell{Rune: glyphFor(bits, true), FG: opts.HighlightColor, Bold: true})
		}
		return
	}
}
