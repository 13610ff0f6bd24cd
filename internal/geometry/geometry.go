// Package geometry holds the floating and cell rectangle primitives shared
// by the treemap engine and the renderer. Conversion from Rect to CellRect
// is the sole locus of rounding in the pipeline.
package geometry

import "math"

// Rect is an axis-aligned rectangle with floating-point origin and extent.
type Rect struct {
	X, Y, W, H float64
}

// Area returns width * height.
func (r Rect) Area() float64 { return r.W * r.H }

// ShorterSide returns the smaller of width and height.
func (r Rect) ShorterSide() float64 {
	if r.W < r.H {
		return r.W
	}
	return r.H
}

// Valid reports whether the rect has finite, positive extent.
func (r Rect) Valid() bool {
	if math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.W) || math.IsNaN(r.H) {
		return false
	}
	if math.IsInf(r.X, 0) || math.IsInf(r.Y, 0) || math.IsInf(r.W, 0) || math.IsInf(r.H, 0) {
		return false
	}
	return r.W > 0 && r.H > 0
}

// Lerp linearly interpolates between r and target at t, clamped to [0, 1].
func (r Rect) Lerp(target Rect, t float64) Rect {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Rect{
		X: r.X + (target.X-r.X)*t,
		Y: r.Y + (target.Y-r.Y)*t,
		W: r.W + (target.W-r.W)*t,
		H: r.H + (target.H-r.H)*t,
	}
}

// Centroid returns the rect's geometric center.
func (r Rect) Centroid() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether r lies within bounds, eps-inclusive.
func (r Rect) Contains(bounds Rect, eps float64) bool {
	return r.X >= bounds.X-eps &&
		r.Y >= bounds.Y-eps &&
		r.X+r.W <= bounds.X+bounds.W+eps &&
		r.Y+r.H <= bounds.Y+bounds.H+eps
}

// CellRect is an axis-aligned rectangle in integer terminal cell coordinates.
type CellRect struct {
	X, Y, W, H int
}

// ToCellRect floors the origin and ceils the far corner, clipping to bounds.
// This is the sole rounding locus between the layout engine's floating
// output and the renderer's integer cell grid.
func (r Rect) ToCellRect(bounds CellRect) CellRect {
	x1 := int(math.Floor(r.X))
	y1 := int(math.Floor(r.Y))
	x2 := int(math.Ceil(r.X + r.W))
	y2 := int(math.Ceil(r.Y + r.H))

	if x1 < bounds.X {
		x1 = bounds.X
	}
	if y1 < bounds.Y {
		y1 = bounds.Y
	}
	boundsX2 := bounds.X + bounds.W
	boundsY2 := bounds.Y + bounds.H
	if x2 > boundsX2 {
		x2 = boundsX2
	}
	if y2 > boundsY2 {
		y2 = boundsY2
	}
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return CellRect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Area returns width * height for a CellRect.
func (c CellRect) Area() int { return c.W * c.H }
