// Package tui wires internal/app's state machine, internal/render's seam
// renderer, and internal/input's key resolver into a bubbletea program,
// following the teacher's own Model/Update/View split
// (rawwerks-srps-arch/internal/ui/ui.go) but replacing its fixed dashboard
// cards with the treemap body and chrome spec.md §4.8 and §6 describe.
// Chrome (header, status line, help overlay) uses lipgloss the way the
// teacher's titleStyle/subtleStyle/cardStyle do; the treemap body itself
// is written directly from the cell buffer, never through lipgloss, since
// seam merging needs single-cell-precision writes lipgloss's box model
// does not offer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"squaretop/internal/app"
	"squaretop/internal/colorpolicy"
	"squaretop/internal/config"
	"squaretop/internal/geometry"
	"squaretop/internal/input"
	"squaretop/internal/render"
	"squaretop/internal/snapshot"
	"squaretop/internal/view"
)

const animFrameInterval = 40 * time.Millisecond

type tickMsg struct{}
type animMsg struct{}
type collectedMsg struct {
	snap snapshot.Snapshot
	err  error
}

// Model is the bubbletea entry point: it owns the App state machine, a
// process source, and the key resolver, and translates bubbletea
// messages into app.Dispatch calls.
type Model struct {
	App      *app.App
	Source   snapshot.ProcessSource
	Resolver *input.Resolver
	Interval time.Duration

	filterInput textinput.Model
	width       int
	height      int
	staleTick   bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// New builds a ready-to-run Model from a loaded configuration.
func New(cfg config.Config, source snapshot.ProcessSource, sink app.SignalSink) *Model {
	a := app.New(sink)
	a.SetTickInterval(cfg.RefreshInterval())
	a.SetSparklineCapacity(cfg.General.SparklineLength)
	a.View.MinRectWidth = cfg.Treemap.MinRectWidth
	a.View.MinRectHeight = cfg.Treemap.MinRectHeight
	a.View.GroupThreshold = cfg.Treemap.GroupThreshold
	a.View.MaxVisibleProcs = cfg.Treemap.MaxVisibleProcs
	a.View.AnimationFrames = cfg.Treemap.AnimationFrames
	a.View.Border = borderFromString(cfg.Treemap.BorderStyle)
	a.View.ColorMode = colorModeFromString(cfg.General.DefaultColorMode)
	a.View.Sort = sortModeFromString(cfg.General.DefaultSort)
	a.View.Theme = themeFromString(cfg.Colors.Theme)
	a.View.HeatLow = cfg.Colors.HeatLow
	a.View.HeatMid = cfg.Colors.HeatMid
	a.View.HeatHigh = cfg.Colors.HeatHigh
	a.DetailPanel = cfg.General.ShowDetailPanel

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/"

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		App:         a,
		Source:      source,
		Resolver:    input.NewResolver(KeymapFromConfig(cfg.Keybinds)),
		Interval:    cfg.RefreshInterval(),
		filterInput: ti,
		width:       120,
		height:      40,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func borderFromString(s string) view.BorderStyle {
	switch s {
	case "thick":
		return view.BorderThick
	case "none":
		return view.BorderNone
	default:
		return view.BorderThin
	}
}

// colorModeFromString maps spec.md §6's general.default_color_mode values
// (name|memory|cpu|user|group|mono) onto colorpolicy.Mode.
func colorModeFromString(s string) colorpolicy.Mode {
	switch s {
	case "name":
		return colorpolicy.ModeName
	case "cpu":
		return colorpolicy.ModeCPU
	case "user":
		return colorpolicy.ModeUser
	case "group":
		return colorpolicy.ModeGroup
	case "mono":
		return colorpolicy.ModeMonochrome
	default:
		return colorpolicy.ModeMemory
	}
}

// sortModeFromString maps spec.md §6's general.default_sort values
// (memory|cpu|name) onto view.SortMode.
func sortModeFromString(s string) view.SortMode {
	switch s {
	case "cpu":
		return view.SortCPU
	case "name":
		return view.SortName
	default:
		return view.SortMemory
	}
}

// themeFromString maps spec.md §6's colors.theme values (vivid|pastel|light)
// onto colorpolicy.ThemeName.
func themeFromString(s string) colorpolicy.ThemeName {
	switch s {
	case "pastel":
		return colorpolicy.ThemePastel
	case "light":
		return colorpolicy.ThemeLight
	default:
		return colorpolicy.ThemeVivid
	}
}

// KeymapFromConfig builds an input.Keymap from the config's remappable
// action->key strings (spec.md §6 "keybinds"), falling back field-by-field
// to input.DefaultKeymap for anything left blank.
func KeymapFromConfig(kb config.Keybinds) input.Keymap {
	def := input.DefaultKeymap()
	return input.Keymap{
		Quit:       bindingOrDefault(kb.Quit, def.Quit),
		Filter:     bindingOrDefault(kb.Filter, def.Filter),
		Kill:       bindingOrDefault(kb.Kill, def.Kill),
		KillForce:  bindingOrDefault(kb.KillForce, def.KillForce),
		CycleColor: bindingOrDefault(kb.CycleColor, def.CycleColor),
		CycleTheme: bindingOrDefault(kb.CycleTheme, def.CycleTheme),
		Detail:     bindingOrDefault(kb.Detail, def.Detail),
		CycleSort:  bindingOrDefault(kb.CycleSort, def.CycleSort),
		ZoomIn:     bindingOrDefault(kb.ZoomIn, def.ZoomIn),
		ZoomOut:    bindingOrDefault(kb.ZoomOut, def.ZoomOut),
		Refresh:    bindingOrDefault(kb.Refresh, def.Refresh),
		Help:       bindingOrDefault(kb.Help, def.Help),
	}
}

func bindingOrDefault(k string, def key.Binding) key.Binding {
	if k == "" {
		return def
	}
	return key.NewBinding(key.WithKeys(k))
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.collectCmd(), tickCmd(m.Interval))
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func animCmd() tea.Cmd {
	return tea.Tick(animFrameInterval, func(time.Time) tea.Msg { return animMsg{} })
}

func (m *Model) collectCmd() tea.Cmd {
	source := m.Source
	now := time.Now()
	return func() tea.Msg {
		raw, totals, err := source.Collect()
		if err != nil {
			return collectedMsg{err: err}
		}
		return collectedMsg{snap: snapshot.Build(now, raw, totals)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.App.View.Bounds = geometry.CellRect{X: 0, Y: 0, W: msg.Width, H: msg.Height - chromeRows(m.App)}
		return m, nil

	case tea.KeyMsg:
		resolved := m.Resolver.Resolve(msg, m.App.Mode)
		quit := m.App.Dispatch(m.ctx, resolved, func(ctx context.Context) error {
			raw, totals, err := m.Source.Collect()
			if err != nil {
				return err
			}
			m.App.ApplySnapshot(snapshot.Build(time.Now(), raw, totals))
			return nil
		})
		if quit {
			m.cancel()
			return m, tea.Quit
		}
		var next tea.Cmd
		if m.App.Animating() {
			next = animCmd()
		}
		return m, next

	case tickMsg:
		next, cmd := m.Update(m.collectCmd()())
		return next, tea.Batch(cmd, tickCmd(m.Interval))

	case collectedMsg:
		if msg.err != nil {
			m.staleTick = true
			m.App.Snapshot.Stale = true
			return m, nil
		}
		m.staleTick = false
		m.App.ApplySnapshot(msg.snap)
		var next tea.Cmd
		if m.App.Animating() {
			next = animCmd()
		}
		return m, next

	case animMsg:
		m.App.AdvanceAnimation()
		if m.App.Animating() {
			return m, animCmd()
		}
		return m, nil
	}
	return m, nil
}

// chromeRows reports how many terminal rows the header/status chrome
// consumes, so the treemap body gets the remainder.
func chromeRows(a *app.App) int {
	rows := 2 // header + status line
	if a.DetailPanel {
		rows += 4
	}
	return rows
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m *Model) View() string {
	var b strings.Builder

	title := headerStyle.Render("squaretop")
	if m.staleTick {
		title += "  " + staleStyle.Render("(stale)")
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	layout := m.App.CurrentLayout()
	opts := renderOptions(m.App)
	buf := render.Render(layout, m.App.View.Bounds, opts)
	b.WriteString(bufferToString(buf))

	if m.App.Mode == input.ModeHelp {
		return b.String() + "\n" + helpOverlay()
	}
	return b.String()
}

func (m *Model) statusLine() string {
	switch m.App.Mode {
	case input.ModeFilter:
		m.filterInput.SetValue(m.App.Filter.String())
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		return m.filterInput.View()
	case input.ModeHelp:
		return statusStyle.Render("press ? or esc to close help")
	default:
		status := fmt.Sprintf("sort:%s  color:%s  theme:%s", m.App.View.Sort.Label(), m.App.View.ColorMode.Label(), themeLabel(m.App.View.Theme))
		if len(m.App.ZoomStack) > 0 {
			status += fmt.Sprintf("  zoom:%d", len(m.App.ZoomStack))
		}
		if err := m.App.LastError(); err != nil {
			status += "  " + errorStyle.Render(err.Error())
		}
		return statusStyle.Render(status)
	}
}

func helpOverlay() string {
	lines := []string{
		"q: quit   /: filter   k/K: kill (soft/force)   c: color mode   t: theme",
		"d: detail panel   s: sort   enter: zoom in   esc: zoom out   r: refresh   ?: help",
	}
	return statusStyle.Render(strings.Join(lines, "\n"))
}
