package app

import (
	"squaretop/internal/view"
	"testing"

	"squaretop/internal/geometry"
)

func layoutWithRects(rects ...view.Rect) view.Layout {
	return view.Layout{Rects: rects}
}

func TestNavigateRightPicksNearestInHalfPlane(t *testing.T) {
	a := wideApp()
	a.toLayout = layoutWithRects(
		view.Rect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 2, Rect: geometry.Rect{X: 10, Y: 0, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 3, Rect: geometry.Rect{X: 40, Y: 0, W: 10, H: 10}, Visible: true},
	)
	pid := uint32(1)
	a.Selection = &pid

	a.navigate(dirRight)
	if a.Selection == nil || *a.Selection != 2 {
		t.Fatalf("expected nearest rect to the right (pid 2), got %+v", a.Selection)
	}
}

func TestNavigateNoCandidateLeavesSelectionUnchanged(t *testing.T) {
	a := wideApp()
	a.toLayout = layoutWithRects(
		view.Rect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}, Visible: true},
	)
	pid := uint32(1)
	a.Selection = &pid

	a.navigate(dirRight)
	if *a.Selection != 1 {
		t.Fatalf("expected selection unchanged with no candidates, got %+v", a.Selection)
	}
}

func TestNavigatePrefersSmallerSecondaryOffset(t *testing.T) {
	a := wideApp()
	// Two candidates below: one directly below (small secondary offset),
	// one diagonally below (larger secondary offset but same primary delta).
	a.toLayout = layoutWithRects(
		view.Rect{ID: 1, Rect: geometry.Rect{X: 10, Y: 0, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 2, Rect: geometry.Rect{X: 10, Y: 20, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 3, Rect: geometry.Rect{X: 30, Y: 20, W: 10, H: 10}, Visible: true},
	)
	pid := uint32(1)
	a.Selection = &pid

	a.navigate(dirDown)
	if a.Selection == nil || *a.Selection != 2 {
		t.Fatalf("expected directly-below rect (pid 2) to win on weighted distance, got %+v", a.Selection)
	}
}

func TestNavigateSkipsOtherAndInvisibleRects(t *testing.T) {
	a := wideApp()
	a.toLayout = layoutWithRects(
		view.Rect{ID: 1, Rect: geometry.Rect{X: 0, Y: 0, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 2, Rect: geometry.Rect{X: 10, Y: 0, W: 10, H: 10}, Visible: false},
		view.Rect{ID: uint64(view.OtherID), Rect: geometry.Rect{X: 20, Y: 0, W: 10, H: 10}, Visible: true},
		view.Rect{ID: 3, Rect: geometry.Rect{X: 30, Y: 0, W: 10, H: 10}, Visible: true},
	)
	pid := uint32(1)
	a.Selection = &pid

	a.navigate(dirRight)
	if a.Selection == nil || *a.Selection != 3 {
		t.Fatalf("expected navigation to skip the invisible rect and the Other bucket and land on pid 3, got %+v", a.Selection)
	}
}
