package app

import (
	"squaretop/internal/geometry"
	"squaretop/internal/view"
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

// navigate implements spec.md §4.7: move selection to the visible rect
// whose centroid lies in the chosen half-plane and minimizes weighted
// distance d = |Δprimary| + 2·|Δsecondary|, ties broken by reading order.
// If no rect qualifies, selection is unchanged.
func (a *App) navigate(dir direction) {
	if a.Mode != ModeNormal || a.Selection == nil {
		return
	}
	cur, ok := centroidOf(a.toLayout, *a.Selection)
	if !ok {
		return
	}

	var best *view.Rect
	var bestDist float64
	for i := range a.toLayout.Rects {
		r := &a.toLayout.Rects[i]
		if r.ID == uint64(*a.Selection) || r.ID == view.OtherID || !r.Visible {
			continue
		}
		cx, cy := centroid(r.Rect)
		if !inHalfPlane(dir, cur, cx, cy) {
			continue
		}
		d := weightedDistance(dir, cur, cx, cy)
		if best == nil || d < bestDist || (d == bestDist && readsBefore(cx, cy, centroidX(best), centroidY(best))) {
			best = r
			bestDist = d
		}
	}
	if best != nil {
		pid := uint32(best.ID)
		a.Selection = &pid
	}
}

type point struct{ x, y float64 }

func centroidOf(l view.Layout, id uint32) (point, bool) {
	for _, r := range l.Rects {
		if r.ID == uint64(id) {
			x, y := centroid(r.Rect)
			return point{x, y}, true
		}
	}
	return point{}, false
}

func centroid(r geometry.Rect) (float64, float64) {
	return r.Centroid()
}

func centroidX(r *view.Rect) float64 { x, _ := r.Rect.Centroid(); return x }
func centroidY(r *view.Rect) float64 { _, y := r.Rect.Centroid(); return y }

func inHalfPlane(dir direction, cur point, cx, cy float64) bool {
	switch dir {
	case dirUp:
		return cy < cur.y
	case dirDown:
		return cy > cur.y
	case dirLeft:
		return cx < cur.x
	default: // dirRight
		return cx > cur.x
	}
}

func weightedDistance(dir direction, cur point, cx, cy float64) float64 {
	switch dir {
	case dirUp, dirDown:
		return absF(cy-cur.y) + 2*absF(cx-cur.x)
	default:
		return absF(cx-cur.x) + 2*absF(cy-cur.y)
	}
}

// readsBefore breaks ties by reading order: left-to-right, top-to-bottom.
func readsBefore(ax, ay, bx, by float64) bool {
	if ay != by {
		return ay < by
	}
	return ax < bx
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
