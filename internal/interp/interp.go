// Package interp implements linear interpolation between two layouts keyed
// by PID, over a fixed frame count, as described in spec.md §4.5. It
// generalizes original_source's LayoutRect.lerp (single global t) to a
// frame-driven, asymmetric fade-in-only scheme.
package interp

import (
	"squaretop/internal/geometry"
)

// Rect is the minimal shape the interpolator needs: an identifier and a
// geometric rectangle. Label, color and other presentation fields are not
// carried; callers re-attach them by ID (see internal/app's blendFrame).
type Rect struct {
	ID   uint64
	Rect geometry.Rect
}

// Frame interpolates from `from` to `to` at the given frame/total using an
// ease-out curve (spec.md §4.5: t_eased = 1 - (1-t)^2). Rects present in
// both are geometrically blended. Rects only in `to` fade in by scaling
// from the centroid of `to` (so they grow outward rather than popping in at
// full size). Rects only in `from` are omitted entirely — dead processes
// are never faded out, only dropped (spec.md §9 "Animation across PID
// churn").
func Frame(from, to []Rect, frame, total int) []Rect {
	if total <= 0 || frame >= total {
		return to
	}
	if frame <= 0 {
		frame = 0
	}

	t := float64(frame) / float64(total)
	tEased := 1 - (1-t)*(1-t)

	fromByID := make(map[uint64]geometry.Rect, len(from))
	for _, r := range from {
		fromByID[r.ID] = r.Rect
	}

	out := make([]Rect, 0, len(to))
	for _, toRect := range to {
		if fromRect, ok := fromByID[toRect.ID]; ok {
			out = append(out, Rect{ID: toRect.ID, Rect: fromRect.Lerp(toRect.Rect, tEased)})
			continue
		}
		out = append(out, Rect{ID: toRect.ID, Rect: fadeIn(toRect.Rect, tEased)})
	}
	return out
}

// fadeIn scales target toward its own centroid at t=0, reaching target
// itself at t=1.
func fadeIn(target geometry.Rect, t float64) geometry.Rect {
	cx := target.X + target.W/2
	cy := target.Y + target.H/2
	collapsed := geometry.Rect{X: cx, Y: cy, W: 0, H: 0}
	return collapsed.Lerp(target, t)
}

// Complete reports whether frame has reached the end of the animation, at
// which point the caller must use `to` directly (ε-identity, spec.md §8).
func Complete(frame, total int) bool {
	return total <= 0 || frame >= total
}
