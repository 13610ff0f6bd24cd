package render

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"squaretop/internal/geometry"
	"squaretop/internal/view"
)

func white() colorful.Color  { return colorful.Color{R: 1, G: 1, B: 1} }
func accent() colorful.Color { return colorful.Color{R: 0.2, G: 0.4, B: 0.8} }

func TestRenderNoBorderFillsEveryCell(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 5}, Label: "solo", Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 10, H: 5}
	buf := Render(l, bounds, Options{Border: view.BorderNone})

	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			c := buf.At(x, y)
			if c.BG != accent() && c.Rune == 0 {
				t.Fatalf("cell (%d,%d) left unset", x, y)
			}
		}
	}
}

func TestRenderBorderLeavesPerimeterForSeamPass(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 5}, Label: "solo", Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 10, H: 5}
	buf := Render(l, bounds, Options{Border: view.BorderThin, BorderColor: white()})

	corner := buf.At(0, 0)
	if corner.Rune != '┌' {
		t.Fatalf("expected top-left corner glyph '┌', got %q", corner.Rune)
	}
	topEdge := buf.At(5, 0)
	if topEdge.Rune != '─' {
		t.Fatalf("expected horizontal seam glyph on top edge, got %q", topEdge.Rune)
	}
	bottomRight := buf.At(9, 4)
	if bottomRight.Rune != '┘' {
		t.Fatalf("expected bottom-right corner glyph '┘', got %q", bottomRight.Rune)
	}
}

func TestRenderSharedBoundaryProducesJunctionNotDoubleLine(t *testing.T) {
	// Rounding (floor origin / ceil far corner) makes rect1 and rect3's
	// right edge column coincide with rect2's left edge column at x=5 —
	// the seam mask must merge these into one junction glyph rather than
	// drawing two independent borders on top of each other.
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 6, H: 3}, Visible: true, Color: accent()},
		{ID: 2, Rect: geometry.Rect{X: 5, Y: 0, W: 5, H: 6}, Visible: true, Color: accent()},
		{ID: 3, Rect: geometry.Rect{X: 0, Y: 3, W: 6, H: 3}, Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 10, H: 6}
	buf := Render(l, bounds, Options{Border: view.BorderThin, BorderColor: white()})

	junction := buf.At(5, 3)
	allowed := map[rune]bool{'┼': true, '├': true, '┤': true, '┬': true, '┴': true}
	if !allowed[junction.Rune] {
		t.Fatalf("expected a single merged junction glyph at shared boundary, got %q", junction.Rune)
	}
}

func TestRenderLabelPlacement(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 20, H: 4}, Label: "chromehelper", Weight: 1 << 20, Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 20, H: 4}
	buf := Render(l, bounds, Options{Border: view.BorderNone})

	if buf.At(1, 0).Rune == 0 || buf.At(1, 0).Rune == ' ' {
		t.Fatalf("expected label text to start at (1,0)")
	}
	if buf.At(1, 1).Rune == 0 {
		t.Fatalf("expected byte-size line at (1,1) for tall-enough rect")
	}
}

func TestRenderSkipsLabelForTooNarrowRect(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 2, H: 2}, Label: "x", Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 2, H: 2}
	buf := Render(l, bounds, Options{Border: view.BorderNone})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if buf.At(x, y).Rune != ' ' {
				t.Fatalf("expected no label glyphs on a 2x2 rect, got %q at (%d,%d)", buf.At(x, y).Rune, x, y)
			}
		}
	}
}

func TestRenderSelectionHighlightUsesHeavyGlyphs(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 6, H: 4}, Visible: true, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 6, H: 4}
	buf := Render(l, bounds, Options{
		Border:         view.BorderThin,
		BorderColor:    white(),
		HighlightColor: accent(),
		Selected:       1,
	})
	corner := buf.At(0, 0)
	if corner.Rune != '┏' {
		t.Fatalf("expected heavy corner glyph on selected rect, got %q", corner.Rune)
	}
}

func TestRenderInvisibleRectSkipped(t *testing.T) {
	l := view.Layout{Rects: []view.Rect{
		{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 6, H: 4}, Visible: false, Color: accent()},
	}}
	bounds := geometry.CellRect{W: 6, H: 4}
	buf := Render(l, bounds, Options{Border: view.BorderNone})
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if buf.At(x, y).Rune != 0 {
				t.Fatalf("expected invisible rect skipped, got glyph %q at (%d,%d)", buf.At(x, y).Rune, x, y)
			}
		}
	}
}
