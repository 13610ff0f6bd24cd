// Package app implements the interaction state machine described in
// spec.md §4.6/§4.7: it owns the current snapshot, view context, selection,
// input mode, zoom stack, and animation phase, and applies every Action the
// input resolver produces. Grounded on original_source/src/app.rs's
// Application struct (mode/selection/zoom_stack/view fields) translated
// into the teacher's bubbletea Model idiom (internal/ui.Model's own
// held-state-plus-Update pattern, rawwerks-srps-arch/internal/ui/ui.go).
package app

import (
	"context"
	"time"

	"squaretop/internal/colorpolicy"
	"squaretop/internal/input"
	"squaretop/internal/interp"
	"squaretop/internal/snapshot"
	"squaretop/internal/sparkline"
	"squaretop/internal/view"
)

// Mode is an alias of input.Mode, re-exported with its constants so callers
// of the state machine can name modes as app.ModeNormal etc. The dependency
// runs app -> input: app imports input for Mode, Action and Resolved.
type Mode = input.Mode

const (
	ModeNormal = input.ModeNormal
	ModeFilter = input.ModeFilter
	ModeHelp   = input.ModeHelp
)

// Signal is the kind of termination requested of a process.
type Signal int

const (
	SignalTerm Signal = iota
	SignalKill
)

// SignalSink abstracts process termination so app never imports gopsutil
// directly (spec.md §6 "external signal sink"). The production
// implementation wraps gopsutil/v3/process.Process.Terminate/Kill.
type SignalSink interface {
	Send(pid uint32, sig Signal) error
}

const (
	defaultAnimationFrames = 5
	defaultTickInterval    = 2 * time.Second
	animationFrameInterval = 40 * time.Millisecond
	sparklineCapacity      = 60
	sparklineRetainTicks   = 3
)

// App is the full interaction state machine (spec.md §3 AppState).
type App struct {
	Snapshot snapshot.Snapshot

	View   view.Context
	Mode   Mode
	Filter filterBuffer

	Selection   *uint32
	ZoomStack   []uint32
	DetailPanel bool

	fromLayout    []interp.Rect
	toLayout      view.Layout
	animFrame     int
	animTotal     int
	tickInterval  time.Duration

	Sparklines *sparkline.Store
	Signals    SignalSink

	lastErr error
}

// filterBuffer is the Filter-mode text accumulator (spec.md §4.6
// FilterInput/FilterBackspace).
type filterBuffer struct {
	runes []rune
}

func (f filterBuffer) String() string { return string(f.runes) }

// New builds an App with default view preferences, ready for its first
// snapshot.
func New(sink SignalSink) *App {
	return &App{
		View: view.Context{
			Sort:            view.SortMemory,
			ColorMode:       colorpolicy.ModeMemory,
			Theme:           colorpolicy.ThemeVivid,
			MaxVisibleProcs: 40,
			GroupThreshold:  0.01,
			MinRectWidth:    6,
			MinRectHeight:   2,
			AnimationFrames: defaultAnimationFrames,
		},
		Mode:         ModeNormal,
		Sparklines:   sparkline.NewStore(sparklineCapacity, sparklineRetainTicks),
		Signals:      sink,
		tickInterval: defaultTickInterval,
	}
}

// SetTickInterval overrides the default 2s collector period (spec.md §6
// refresh-rate flag).
func (a *App) SetTickInterval(d time.Duration) {
	if d > 0 {
		a.tickInterval = d
	}
}

// SetSparklineCapacity rebuilds the sparkline store with the given per-PID
// ring capacity (spec.md §3 "capacity = configured sparkline length",
// spec.md §6 general.sparkline_length). Existing history is discarded; this
// is only ever called once, during App construction.
func (a *App) SetSparklineCapacity(n int) {
	if n <= 0 {
		n = sparklineCapacity
	}
	a.Sparklines = sparkline.NewStore(n, sparklineRetainTicks)
}

// TickInterval reports the active collector period.
func (a *App) TickInterval() time.Duration { return a.tickInterval }

// Animating reports whether the interpolator still has frames to emit.
func (a *App) Animating() bool { return !interp.Complete(a.animFrame, a.animTotal) }

// CurrentLayout renders the in-progress animation frame, or the resting
// layout when idle (spec.md §4.5).
func (a *App) CurrentLayout() view.Layout {
	if a.Animating() {
		return a.blendFrame()
	}
	return a.toLayout
}

func (a *App) blendFrame() view.Layout {
	toInterp := make([]interp.Rect, len(a.toLayout.Rects))
	byID := make(map[uint64]view.Rect, len(a.toLayout.Rects))
	for i, r := range a.toLayout.Rects {
		toInterp[i] = interp.Rect{ID: r.ID, Rect: r.Rect}
		byID[r.ID] = r
	}
	blended := interp.Frame(a.fromLayout, toInterp, a.animFrame, a.animTotal)

	out := make([]view.Rect, 0, len(blended))
	for _, b := range blended {
		src, ok := byID[b.ID]
		if !ok {
			continue
		}
		src.Rect = b.Rect
		src.Selected = a.Selection != nil && b.ID == uint64(*a.Selection)
		out = append(out, src)
	}
	return view.Layout{Rects: out, Other: a.toLayout.Other, TotalVisibleMemory: a.toLayout.TotalVisibleMemory}
}

// AdvanceAnimation steps the animation clock by one frame; callers drive
// this from a 40ms ticker while Animating() is true (spec.md §5).
func (a *App) AdvanceAnimation() {
	if !a.Animating() {
		return
	}
	a.animFrame++
}

// ApplySnapshot installs a new snapshot, starts an animation from the
// current interpolated layout to the freshly built one, records sparkline
// samples, and repairs the selection if it no longer resolves (spec.md
// §4.6 Tick, §9 selection invariants).
func (a *App) ApplySnapshot(snap snapshot.Snapshot) {
	prevFrame := a.CurrentLayout()
	a.Snapshot = snap

	alive := make(map[uint32]bool, len(snap.Tree.Processes))
	for pid, rec := range snap.Tree.Processes {
		alive[pid] = true
		a.Sparklines.Record(pid, rec.MemoryBytes, rec.CPUPercent)
	}
	a.Sparklines.Compact(alive)

	newLayout := view.Build(snap, a.View)

	a.fromLayout = make([]interp.Rect, len(prevFrame.Rects))
	for i, r := range prevFrame.Rects {
		a.fromLayout[i] = interp.Rect{ID: r.ID, Rect: r.Rect}
	}
	a.toLayout = newLayout
	a.animFrame = 0
	a.animTotal = a.View.AnimationFrames
	if a.animTotal <= 0 {
		a.animTotal = defaultAnimationFrames
	}

	a.repairSelection()
}

// repairSelection clears or resets the selection per spec.md §4.6's
// invariant: selection is either None or a PID present in the current
// layout; any invalidating action resets it to the first (largest)
// visible rect.
func (a *App) repairSelection() {
	if a.Selection != nil {
		for _, r := range a.toLayout.Rects {
			if r.ID == uint64(*a.Selection) {
				return
			}
		}
	}
	a.selectFirstVisible()
}

func (a *App) selectFirstVisible() {
	for _, r := range a.toLayout.Rects {
		if r.ID == view.OtherID {
			continue
		}
		pid := uint32(r.ID)
		a.Selection = &pid
		return
	}
	a.Selection = nil
}

// Dispatch applies one resolved action to the state machine (spec.md
// §4.6's action table). collect is invoked synchronously for Refresh and
// should itself call ApplySnapshot; it is injected rather than imported so
// app never depends on a concrete ProcessSource.
func (a *App) Dispatch(ctx context.Context, r input.Resolved, collect func(context.Context) error) (quit bool) {
	switch r.Action {
	case input.ActionQuit:
		return true
	case input.ActionEnterFilter:
		if a.Mode == ModeNormal {
			a.Mode = ModeFilter
			a.Filter = filterBuffer{}
		}
	case input.ActionFilterInput:
		if a.Mode == ModeFilter {
			a.Filter.runes = append(a.Filter.runes, r.Rune)
		}
	case input.ActionFilterBackspace:
		if a.Mode == ModeFilter && len(a.Filter.runes) > 0 {
			a.Filter.runes = a.Filter.runes[:len(a.Filter.runes)-1]
		}
	case input.ActionCommitFilter:
		if a.Mode == ModeFilter {
			a.Mode = ModeNormal
			a.View.Filter = a.Filter.String()
			a.relayout()
		}
	case input.ActionCancelFilter:
		if a.Mode == ModeFilter {
			a.Mode = ModeNormal
			a.Filter = filterBuffer{}
			a.View.Filter = ""
			a.relayout()
		}
	case input.ActionKillSoft:
		a.kill(SignalTerm)
	case input.ActionKillForce:
		a.kill(SignalKill)
	case input.ActionCycleColor:
		if a.Mode == ModeNormal {
			a.View.ColorMode = a.View.ColorMode.Next()
			a.relayout()
		}
	case input.ActionCycleTheme:
		if a.Mode == ModeNormal {
			a.View.Theme = a.View.Theme.Next()
			a.relayout()
		}
	case input.ActionToggleDetail:
		if a.Mode == ModeNormal {
			a.DetailPanel = !a.DetailPanel
		}
	case input.ActionCycleSort:
		if a.Mode == ModeNormal {
			a.View.Sort = a.View.Sort.Next()
			a.relayout()
		}
	case input.ActionZoomIn:
		a.zoomIn()
	case input.ActionZoomOut:
		a.zoomOut()
	case input.ActionRefresh:
		if a.Mode == ModeNormal && collect != nil {
			a.lastErr = collect(ctx)
		}
	case input.ActionToggleHelp:
		if a.Mode == ModeHelp {
			a.Mode = ModeNormal
		} else if a.Mode == ModeNormal {
			a.Mode = ModeHelp
		}
	case input.ActionNavigateUp:
		a.navigate(dirUp)
	case input.ActionNavigateDown:
		a.navigate(dirDown)
	case input.ActionNavigateLeft:
		a.navigate(dirLeft)
	case input.ActionNavigateRight:
		a.navigate(dirRight)
	}
	return false
}

// relayout rebuilds the resting layout in place without starting a new
// animation; used for user-driven view changes (sort/filter/color/theme)
// that should be instantaneous, not eased.
func (a *App) relayout() {
	a.toLayout = view.Build(a.Snapshot, a.View)
	a.fromLayout = nil
	a.animFrame = a.animTotal
	a.repairSelection()
}

func (a *App) kill(sig Signal) {
	if a.Mode != ModeNormal || a.Selection == nil || a.Signals == nil {
		return
	}
	a.lastErr = a.Signals.Send(*a.Selection, sig)
}

// zoomIn pushes the selected PID onto the zoom stack, provided it has
// children in the current tree (spec.md §4.6 ZoomIn precondition).
func (a *App) zoomIn() {
	if a.Mode != ModeNormal || a.Selection == nil {
		return
	}
	rec, ok := a.Snapshot.Tree.Processes[*a.Selection]
	if !ok || len(rec.Children) == 0 {
		return
	}
	a.ZoomStack = append(a.ZoomStack, *a.Selection)
	a.Selection = nil
	a.View.Zoom = append([]uint32(nil), a.ZoomStack...)
	a.relayout()
}

func (a *App) zoomOut() {
	if a.Mode != ModeNormal || len(a.ZoomStack) == 0 {
		return
	}
	a.ZoomStack = a.ZoomStack[:len(a.ZoomStack)-1]
	a.Selection = nil
	a.View.Zoom = append([]uint32(nil), a.ZoomStack...)
	a.relayout()
}

// LastError reports the most recent error from a collector refresh or a
// kill request, if any.
func (a *App) LastError() error { return a.lastErr }
