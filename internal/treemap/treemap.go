// Package treemap implements the squarified treemap layout algorithm: a pure
// geometric function mapping a weighted list of items onto a rectangle with
// aspect ratios close to 1.
package treemap

import (
	"math"
	"sort"

	"squaretop/internal/geometry"
)

// Item is one weighted entry to lay out. Weight must be non-negative.
type Item struct {
	Weight uint64
}

// Squarify maps items onto bounds, returning one rect per item in the same
// order as items. Weights must sum to > 0 for a non-empty result; the caller
// guarantees non-negative weights. Invalid bounds (non-positive, NaN, or Inf
// extent) or a zero weight sum yields an empty slice, never a panic.
func Squarify(items []Item, bounds geometry.Rect) []geometry.Rect {
	n := len(items)
	if n == 0 || !bounds.Valid() {
		return nil
	}

	var total float64
	for _, it := range items {
		total += float64(it.Weight)
	}
	if total <= 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Weight > items[order[b]].Weight
	})

	out := make([]geometry.Rect, n)
	remaining := bounds

	row := make([]int, 0, n)
	var rowArea float64

	finalize := func() {
		if len(row) == 0 {
			return
		}
		layoutRow(row, rowArea, items, &remaining, out)
		row = row[:0]
		rowArea = 0
	}

	for _, idx := range order {
		it := items[idx]
		itemArea := (float64(it.Weight) / total) * bounds.Area()

		if len(row) == 0 {
			row = append(row, idx)
			rowArea = itemArea
			continue
		}

		side := remaining.ShorterSide()
		worstWithout := worstAspectRatio(row, rowArea, items, side)

		row = append(row, idx)
		newRowArea := rowArea + itemArea
		worstWith := worstAspectRatio(row, newRowArea, items, side)

		if worstWith <= worstWithout {
			rowArea = newRowArea
			continue
		}

		row = row[:len(row)-1]
		finalize()
		row = append(row, idx)
		rowArea = itemArea
	}
	finalize()

	return out
}

func worstAspectRatio(row []int, rowArea float64, items []Item, side float64) float64 {
	if side <= 0 || rowArea <= 0 {
		return math.MaxFloat64
	}
	var rowValueSum float64
	for _, idx := range row {
		rowValueSum += float64(items[idx].Weight)
	}
	if rowValueSum <= 0 {
		return math.MaxFloat64
	}

	strip := rowArea / side
	var worst float64
	for _, idx := range row {
		frac := float64(items[idx].Weight) / rowValueSum
		itemArea := frac * rowArea
		if itemArea <= 0 {
			continue
		}
		length := itemArea / strip
		var aspect float64
		if strip > length {
			aspect = strip / length
		} else {
			aspect = length / strip
		}
		if aspect > worst {
			worst = aspect
		}
	}
	return worst
}

func layoutRow(row []int, rowArea float64, items []Item, remaining *geometry.Rect, out []geometry.Rect) {
	if len(row) == 0 || remaining.Area() <= 0 {
		return
	}
	var rowValueSum float64
	for _, idx := range row {
		rowValueSum += float64(items[idx].Weight)
	}
	if rowValueSum <= 0 {
		return
	}

	vertical := remaining.W >= remaining.H

	if vertical {
		stripWidth := rowArea / remaining.H
		y := remaining.Y
		for _, idx := range row {
			frac := float64(items[idx].Weight) / rowValueSum
			itemHeight := frac * remaining.H
			out[idx] = geometry.Rect{X: remaining.X, Y: y, W: stripWidth, H: itemHeight}
			y += itemHeight
		}
		remaining.X += stripWidth
		remaining.W -= stripWidth
	} else {
		stripHeight := rowArea / remaining.W
		x := remaining.X
		for _, idx := range row {
			frac := float64(items[idx].Weight) / rowValueSum
			itemWidth := frac * remaining.W
			out[idx] = geometry.Rect{X: x, Y: remaining.Y, W: itemWidth, H: stripHeight}
			x += itemWidth
		}
		remaining.Y += stripHeight
		remaining.H -= stripHeight
	}
}
