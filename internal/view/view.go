// Package view implements the layout pipeline: given a snapshot and a view
// context (sort, filter, zoom, color mode, theme, bounds, caps), produces a
// layout-ready sequence of colored, labeled rectangles (spec.md §4.4).
package view

import (
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"squaretop/internal/colorpolicy"
	"squaretop/internal/geometry"
	"squaretop/internal/procmodel"
	"squaretop/internal/snapshot"
	"squaretop/internal/treemap"
)

// SortMode selects the ordering fed to the treemap engine.
type SortMode int

const (
	SortMemory SortMode = iota
	SortCPU
	SortName
)

// Next cycles Memory -> CPU -> Name -> Memory (spec.md §4.6 CycleSort).
func (m SortMode) Next() SortMode {
	switch m {
	case SortMemory:
		return SortCPU
	case SortCPU:
		return SortName
	default:
		return SortMemory
	}
}

func (m SortMode) Label() string {
	switch m {
	case SortMemory:
		return "Memory"
	case SortCPU:
		return "CPU"
	default:
		return "Name"
	}
}

// BorderStyle selects the box-drawing weight the renderer uses.
type BorderStyle int

const (
	BorderThin BorderStyle = iota
	BorderThick
	BorderNone
)

// OtherID is the sentinel identifier for the synthetic "Other" aggregate.
// Real PIDs are 32-bit; this value is unreachable by any real PID.
const OtherID uint64 = 1<<63 - 1

// Context bundles every user-selected rendering preference (spec.md §3
// ViewContext).
type Context struct {
	Sort            SortMode
	ColorMode       colorpolicy.Mode
	Theme           colorpolicy.ThemeName
	HeatLow         string // hex override for the heat gradient's low stop; "" uses the theme default
	HeatMid         string
	HeatHigh        string
	Filter          string
	Zoom            []uint32 // outermost to innermost; empty means top-level
	Bounds          geometry.CellRect
	MaxVisibleProcs int
	GroupThreshold  float64 // fraction of total memory
	MinRectWidth    int
	MinRectHeight   int
	Border          BorderStyle
	AnimationFrames int
}

// Rect is one laid-out rectangle with presentation attributes attached
// (spec.md §3 LayoutRect).
type Rect struct {
	Rect     geometry.Rect
	ID       uint64
	Label    string
	Weight   uint64
	Depth    int
	Color    colorful.Color
	Selected bool
	Visible  bool // false when its cell projection is below the minimum size
}

// OtherSummary describes the synthetic aggregate rect, when present.
type OtherSummary struct {
	Weight uint64
	Count  int
}

// Layout is the layout pipeline's output (spec.md §4.4).
type Layout struct {
	Rects              []Rect
	Other              *OtherSummary
	TotalVisibleMemory uint64
}

// entry is an internal working record carrying the PID alongside its
// process data through scope/filter/sort/group.
type entry struct {
	pid uint32
	rec procmodel.Record
}

// Build runs the full layout pipeline described in spec.md §4.4.
func Build(snap snapshot.Snapshot, ctx Context) Layout {
	scoped := scope(snap.Tree, ctx.Zoom)
	if len(scoped) == 0 {
		return Layout{}
	}

	filtered := filterEntries(scoped, ctx.Filter)
	if len(filtered) == 0 {
		return Layout{}
	}

	sorted := sortEntries(filtered, ctx.Sort)

	visible, other := capAndGroup(sorted, snap.Tree.TotalMemory, ctx.MaxVisibleProcs, ctx.GroupThreshold)

	items := make([]treemap.Item, 0, len(visible)+1)
	for _, e := range visible {
		items = append(items, treemap.Item{Weight: e.rec.MemoryBytes})
	}
	var otherSummary *OtherSummary
	if other.Count > 0 {
		items = append(items, treemap.Item{Weight: other.Weight})
		otherSummary = &OtherSummary{Weight: other.Weight, Count: other.Count}
	}

	bounds := geometry.Rect{X: 0, Y: 0, W: float64(ctx.Bounds.W), H: float64(ctx.Bounds.H)}
	rawRects := treemap.Squarify(items, bounds)
	if rawRects == nil {
		return Layout{}
	}

	colorCtx := colorpolicy.Context{TotalMemory: snap.Tree.TotalMemory}
	theme := ctx.Theme.Resolve().WithHeat(ctx.HeatLow, ctx.HeatMid, ctx.HeatHigh)

	out := make([]Rect, 0, len(rawRects))
	var totalVisibleMemory uint64
	for i, e := range visible {
		color := colorpolicy.ColorFor(e.rec, colorCtx, ctx.ColorMode, theme)
		r := Rect{
			Rect:   rawRects[i],
			ID:     uint64(e.pid),
			Label:  labelFor(e.rec),
			Weight: e.rec.MemoryBytes,
			Color:  color,
		}
		r.Visible = meetsMinSize(r.Rect, ctx)
		out = append(out, r)
		totalVisibleMemory += e.rec.MemoryBytes
	}
	if otherSummary != nil {
		r := Rect{
			Rect:   rawRects[len(rawRects)-1],
			ID:     OtherID,
			Label:  "Other",
			Weight: otherSummary.Weight,
			Color:  theme.HeatLow,
		}
		r.Visible = meetsMinSize(r.Rect, ctx)
		out = append(out, r)
		totalVisibleMemory += otherSummary.Weight
	}

	return Layout{Rects: out, Other: otherSummary, TotalVisibleMemory: totalVisibleMemory}
}

// scope restricts the candidate set to the subtree rooted at the innermost
// zoom PID (excluding the zoom PID itself), or every process when the zoom
// stack is empty (spec.md §4.4 step 1).
func scope(tree procmodel.Tree, zoom []uint32) []entry {
	if len(zoom) == 0 {
		out := make([]entry, 0, len(tree.Processes))
		for pid, rec := range tree.Processes {
			out = append(out, entry{pid: pid, rec: rec})
		}
		return out
	}
	innermost := zoom[len(zoom)-1]
	descendants := tree.Descendants(innermost)
	if len(descendants) <= 1 {
		return nil
	}
	out := make([]entry, 0, len(descendants)-1)
	for _, pid := range descendants[1:] {
		out = append(out, entry{pid: pid, rec: tree.Processes[pid]})
	}
	return out
}

// filterEntries retains records whose name or command contains filter,
// case-insensitively (spec.md §4.4 step 2).
func filterEntries(entries []entry, filter string) []entry {
	if filter == "" {
		return entries
	}
	needle := strings.ToLower(filter)
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.rec.Name), needle) ||
			strings.Contains(strings.ToLower(e.rec.Command), needle) {
			out = append(out, e)
		}
	}
	return out
}

// sortEntries orders by sort mode with PID-ascending tiebreaks (spec.md
// §4.4 step 3).
func sortEntries(entries []entry, mode SortMode) []entry {
	out := make([]entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch mode {
		case SortMemory:
			if a.rec.MemoryBytes != b.rec.MemoryBytes {
				return a.rec.MemoryBytes > b.rec.MemoryBytes
			}
		case SortCPU:
			if a.rec.CPUPercent != b.rec.CPUPercent {
				return a.rec.CPUPercent > b.rec.CPUPercent
			}
		case SortName:
			an, bn := strings.ToLower(a.rec.Name), strings.ToLower(b.rec.Name)
			if an != bn {
				return an < bn
			}
		}
		return a.pid < b.pid
	})
	return out
}

type otherGroup struct {
	Weight uint64
	Count  int
}

// capAndGroup takes the top maxVisible from sorted, then moves any of those
// whose memory fraction falls below threshold (together with everything
// beyond the cap) into the Other aggregate — count cap applied first, then
// threshold on the remainder, per spec.md §9's resolution of the open
// question.
func capAndGroup(sorted []entry, totalMemory uint64, maxVisible int, threshold float64) ([]entry, otherGroup) {
	if maxVisible <= 0 || maxVisible > len(sorted) {
		maxVisible = len(sorted)
	}
	candidates := sorted[:maxVisible]
	excluded := sorted[maxVisible:]

	var group otherGroup
	for _, e := range excluded {
		group.Weight += e.rec.MemoryBytes
		group.Count++
	}

	visible := make([]entry, 0, len(candidates))
	for _, e := range candidates {
		frac := fraction(e.rec.MemoryBytes, totalMemory)
		if threshold > 0 && frac < threshold {
			group.Weight += e.rec.MemoryBytes
			group.Count++
			continue
		}
		visible = append(visible, e)
	}
	return visible, group
}

func fraction(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func meetsMinSize(r geometry.Rect, ctx Context) bool {
	cell := r.ToCellRect(ctx.Bounds)
	return cell.W >= ctx.MinRectWidth && cell.H >= ctx.MinRectHeight
}

// labelFor is the rect's line-1 label (spec.md §4.8 pass 3): just the
// process name. Line 2 (byte size) is computed separately by the renderer
// from Rect.Weight.
func labelFor(rec procmodel.Record) string {
	return rec.Name
}
