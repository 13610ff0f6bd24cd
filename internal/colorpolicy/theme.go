// Package colorpolicy implements the pure process->color mapping described
// in spec.md §4.2, parameterized by a color mode and a theme. Gradient
// interpolation and contrast-text computation are delegated to
// github.com/lucasb-eyer/go-colorful, the same library lipgloss already
// pulls in transitively, rather than hand-rolling channel lerp.
package colorpolicy

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ThemeName selects a palette family.
type ThemeName int

const (
	ThemeVivid ThemeName = iota
	ThemePastel
	ThemeLight
)

// Theme bundles a hue palette and a three-stop heat gradient.
type Theme struct {
	Name     ThemeName
	Palette  []colorful.Color
	HeatLow  colorful.Color
	HeatMid  colorful.Color
	HeatHigh colorful.Color
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

// VividTheme is saturated, high-contrast — the default.
func VividTheme() Theme {
	return Theme{
		Name: ThemeVivid,
		Palette: []colorful.Color{
			hex("#e06c75"), hex("#98c379"), hex("#e5c07b"), hex("#61afef"),
			hex("#c678dd"), hex("#56b6c2"), hex("#d19a66"), hex("#be5046"),
		},
		HeatLow:  hex("#3b4252"),
		HeatMid:  hex("#e5c07b"),
		HeatHigh: hex("#e06c75"),
	}
}

// PastelTheme is desaturated for long sessions.
func PastelTheme() Theme {
	return Theme{
		Name: ThemePastel,
		Palette: []colorful.Color{
			hex("#f2b8c6"), hex("#c0d9a7"), hex("#f0dcaa"), hex("#a9cce8"),
			hex("#d6bce0"), hex("#a6dce0"), hex("#e3c59e"), hex("#e0a9a3"),
		},
		HeatLow:  hex("#6b7280"),
		HeatMid:  hex("#f0dcaa"),
		HeatHigh: hex("#f2b8c6"),
	}
}

// LightTheme targets light-background terminals.
func LightTheme() Theme {
	return Theme{
		Name: ThemeLight,
		Palette: []colorful.Color{
			hex("#b91c1c"), hex("#15803d"), hex("#a16207"), hex("#1d4ed8"),
			hex("#7e22ce"), hex("#0e7490"), hex("#9a3412"), hex("#9f1239"),
		},
		HeatLow:  hex("#d1d5db"),
		HeatMid:  hex("#a16207"),
		HeatHigh: hex("#b91c1c"),
	}
}

// Next cycles Vivid -> Pastel -> Light -> Vivid.
func (t ThemeName) Next() ThemeName {
	switch t {
	case ThemeVivid:
		return ThemePastel
	case ThemePastel:
		return ThemeLight
	default:
		return ThemeVivid
	}
}

func (t ThemeName) Resolve() Theme {
	switch t {
	case ThemePastel:
		return PastelTheme()
	case ThemeLight:
		return LightTheme()
	default:
		return VividTheme()
	}
}

// WithHeat overrides the theme's heat gradient stops with the given hex
// strings (spec.md §4.2 "(heat_low, heat_mid, heat_high)", configurable
// independently of the theme's categorical palette per spec.md §6). An
// empty string leaves that stop at the theme's own default.
func (t Theme) WithHeat(low, mid, high string) Theme {
	if low != "" {
		t.HeatLow = hex(low)
	}
	if mid != "" {
		t.HeatMid = hex(mid)
	}
	if high != "" {
		t.HeatHigh = hex(high)
	}
	return t
}
