package tui

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/charmbracelet/lipgloss"

	"squaretop/internal/app"
	"squaretop/internal/colorpolicy"
	"squaretop/internal/render"
)

// renderOptions derives render.Options from the app's current view state.
func renderOptions(a *app.App) render.Options {
	theme := a.View.Theme.Resolve().WithHeat(a.View.HeatLow, a.View.HeatMid, a.View.HeatHigh)
	var selected uint64
	if a.Selection != nil {
		selected = uint64(*a.Selection)
	}
	return render.Options{
		Border:         a.View.Border,
		BorderColor:    theme.HeatLow,
		HighlightColor: theme.HeatHigh,
		Selected:       selected,
	}
}

func themeLabel(t colorpolicy.ThemeName) string {
	switch t {
	case colorpolicy.ThemePastel:
		return "Pastel"
	case colorpolicy.ThemeLight:
		return "Light"
	default:
		return "Vivid"
	}
}

// bufferToString renders a cell buffer into a styled string, grouping
// consecutive cells on a row that share foreground/background/weight into
// a single lipgloss-styled run rather than emitting one escape sequence
// per character.
func bufferToString(buf *render.Buffer) string {
	var b strings.Builder
	for y := 0; y < buf.H; y++ {
		b.WriteString(renderRow(buf, y))
		if y < buf.H-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(buf *render.Buffer, y int) string {
	var b strings.Builder
	var run strings.Builder
	var runFG, runBG colorful.Color
	var runBold bool
	haveRun := false

	flush := func() {
		if !haveRun || run.Len() == 0 {
			run.Reset()
			return
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHex(runFG))).
			Background(lipgloss.Color(colorHex(runBG))).
			Bold(runBold)
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for x := 0; x < buf.W; x++ {
		c := buf.At(x, y)
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if haveRun && (c.FG != runFG || c.BG != runBG || c.Bold != runBold) {
			flush()
		}
		runFG, runBG, runBold = c.FG, c.BG, c.Bold
		haveRun = true
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func colorHex(c colorful.Color) string {
	if c == (colorful.Color{}) {
		return "#000000"
	}
	return c.Clamped().Hex()
}
