// Package input resolves bubbletea key events into app-level Actions using
// a configurable keybind table (spec.md §4.6), gated by input mode. Arrow
// keys and the universal-quit chord (Ctrl+C) are hardwired and never
// consulted against the table. Grounded on
// other_examples/Traves-Theberge-microgpt-tui-go__main.go and
// other_examples/ankel-ankel-log-speed__main.go, both of which resolve
// bubbletea key events through github.com/charmbracelet/bubbles/key
// binding tables instead of raw string switches.
package input

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
)

// Mode gates which actions the resolver will produce.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

// Action is the resolver's output: an app-level intent, independent of the
// key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEnterFilter
	ActionFilterInput
	ActionFilterBackspace
	ActionCommitFilter
	ActionCancelFilter
	ActionKillSoft
	ActionKillForce
	ActionCycleColor
	ActionCycleTheme
	ActionToggleDetail
	ActionCycleSort
	ActionZoomIn
	ActionZoomOut
	ActionRefresh
	ActionToggleHelp
	ActionNavigateUp
	ActionNavigateDown
	ActionNavigateLeft
	ActionNavigateRight
)

// Resolved pairs an Action with any literal character payload (only
// meaningful for ActionFilterInput).
type Resolved struct {
	Action Action
	Rune   rune
}

// Keymap is the 12 remappable action->key bindings from spec.md §6. Arrow
// keys and Ctrl+C are intentionally absent: they are resolved before the
// table is ever consulted.
type Keymap struct {
	Quit        key.Binding
	Filter      key.Binding
	Kill        key.Binding
	KillForce   key.Binding
	CycleColor  key.Binding
	CycleTheme  key.Binding
	Detail      key.Binding
	CycleSort   key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Refresh     key.Binding
	Help        key.Binding
}

// DefaultKeymap matches the teacher's own single-letter bindings
// (internal/ui.Model's "q"/"ctrl+c" switch), extended to the full action
// set spec.md §4.6 requires.
func DefaultKeymap() Keymap {
	return Keymap{
		Quit:       key.NewBinding(key.WithKeys("q")),
		Filter:     key.NewBinding(key.WithKeys("/")),
		Kill:       key.NewBinding(key.WithKeys("k")),
		KillForce:  key.NewBinding(key.WithKeys("K")),
		CycleColor: key.NewBinding(key.WithKeys("c")),
		CycleTheme: key.NewBinding(key.WithKeys("t")),
		Detail:     key.NewBinding(key.WithKeys("d")),
		CycleSort:  key.NewBinding(key.WithKeys("s")),
		ZoomIn:     key.NewBinding(key.WithKeys("enter")),
		ZoomOut:    key.NewBinding(key.WithKeys("esc")),
		Refresh:    key.NewBinding(key.WithKeys("r")),
		Help:       key.NewBinding(key.WithKeys("?")),
	}
}

// Resolver maps key events to actions, gated by mode.
type Resolver struct {
	Keymap Keymap
}

// NewResolver builds a Resolver over the given keymap.
func NewResolver(km Keymap) *Resolver {
	return &Resolver{Keymap: km}
}

// Resolve converts one key event into an Action according to the current
// mode. Arrow keys and Ctrl+C are hardwired ahead of the table in every
// mode (spec.md §4.6).
func (r *Resolver) Resolve(msg tea.KeyMsg, mode Mode) Resolved {
	if msg.Type == tea.KeyCtrlC {
		return Resolved{Action: ActionQuit}
	}
	switch msg.Type {
	case tea.KeyUp:
		return Resolved{Action: ActionNavigateUp}
	case tea.KeyDown:
		return Resolved{Action: ActionNavigateDown}
	case tea.KeyLeft:
		return Resolved{Action: ActionNavigateLeft}
	case tea.KeyRight:
		return Resolved{Action: ActionNavigateRight}
	}

	switch mode {
	case ModeFilter:
		return r.resolveFilter(msg)
	case ModeHelp:
		return r.resolveHelp(msg)
	default:
		return r.resolveNormal(msg)
	}
}

func (r *Resolver) resolveFilter(msg tea.KeyMsg) Resolved {
	switch msg.Type {
	case tea.KeyEnter:
		return Resolved{Action: ActionCommitFilter}
	case tea.KeyEsc:
		return Resolved{Action: ActionCancelFilter}
	case tea.KeyBackspace:
		return Resolved{Action: ActionFilterBackspace}
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return Resolved{Action: ActionFilterInput, Rune: msg.Runes[0]}
		}
	}
	return Resolved{Action: ActionNone}
}

func (r *Resolver) resolveHelp(msg tea.KeyMsg) Resolved {
	if key.Matches(msg, r.Keymap.Help) || msg.Type == tea.KeyEsc {
		return Resolved{Action: ActionToggleHelp}
	}
	return Resolved{Action: ActionNone}
}

func (r *Resolver) resolveNormal(msg tea.KeyMsg) Resolved {
	switch {
	case key.Matches(msg, r.Keymap.Quit):
		return Resolved{Action: ActionQuit}
	case key.Matches(msg, r.Keymap.Filter):
		return Resolved{Action: ActionEnterFilter}
	case key.Matches(msg, r.Keymap.KillForce):
		return Resolved{Action: ActionKillForce}
	case key.Matches(msg, r.Keymap.Kill):
		return Resolved{Action: ActionKillSoft}
	case key.Matches(msg, r.Keymap.CycleColor):
		return Resolved{Action: ActionCycleColor}
	case key.Matches(msg, r.Keymap.CycleTheme):
		return Resolved{Action: ActionCycleTheme}
	case key.Matches(msg, r.Keymap.Detail):
		return Resolved{Action: ActionToggleDetail}
	case key.Matches(msg, r.Keymap.CycleSort):
		return Resolved{Action: ActionCycleSort}
	case key.Matches(msg, r.Keymap.ZoomIn):
		return Resolved{Action: ActionZoomIn}
	case key.Matches(msg, r.Keymap.ZoomOut):
		return Resolved{Action: ActionZoomOut}
	case key.Matches(msg, r.Keymap.Refresh):
		return Resolved{Action: ActionRefresh}
	case key.Matches(msg, r.Keymap.Help):
		return Resolved{Action: ActionToggleHelp}
	}
	return Resolved{Action: ActionNone}
}
