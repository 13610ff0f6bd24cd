package colorpolicy

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"squaretop/internal/procmodel"
)

// Mode selects which attribute of a process drives its color.
type Mode int

const (
	ModeName Mode = iota
	ModeMemory
	ModeCPU
	ModeUser
	ModeGroup
	ModeMonochrome
)

func (m Mode) Next() Mode {
	switch m {
	case ModeName:
		return ModeMemory
	case ModeMemory:
		return ModeCPU
	case ModeCPU:
		return ModeUser
	case ModeUser:
		return ModeGroup
	case ModeGroup:
		return ModeMonochrome
	default:
		return ModeName
	}
}

func (m Mode) Label() string {
	switch m {
	case ModeName:
		return "Name"
	case ModeMemory:
		return "Memory"
	case ModeCPU:
		return "CPU"
	case ModeUser:
		return "User"
	case ModeGroup:
		return "Group"
	default:
		return "Mono"
	}
}

// Context is the global state ColorFor needs beyond the single record:
// system totals for fraction computation.
type Context struct {
	TotalMemory uint64
}

// ColorFor is a pure, deterministic mapping from a process record and
// context to a color, parameterized by mode and theme (spec.md §4.2).
func ColorFor(rec procmodel.Record, ctx Context, mode Mode, theme Theme) colorful.Color {
	switch mode {
	case ModeMemory:
		frac := fraction(rec.MemoryBytes, ctx.TotalMemory)
		return gradient(theme, frac)
	case ModeCPU:
		frac := clamp01(float64(rec.CPUPercent) / 100.0)
		return gradient(theme, frac)
	case ModeUser:
		return paletteColor(theme, rec.User)
	case ModeGroup:
		key := "∅"
		if rec.Group != nil && *rec.Group != "" {
			key = *rec.Group
		}
		return paletteColor(theme, key)
	case ModeMonochrome:
		frac := fraction(rec.MemoryBytes, ctx.TotalMemory)
		gray := clamp01(frac)
		return colorful.Color{R: gray, G: gray, B: gray}
	default: // ModeName
		return paletteColor(theme, rec.Name)
	}
}

func fraction(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return clamp01(float64(part) / float64(total))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// gradient linearly blends across the theme's three heat stops over t in
// [0, 1], using go-colorful's perceptual blend rather than raw channel lerp.
func gradient(theme Theme, t float64) colorful.Color {
	if t <= 0 {
		return theme.HeatLow
	}
	if t >= 1 {
		return theme.HeatHigh
	}
	if t <= 0.5 {
		return theme.HeatLow.BlendLuv(theme.HeatMid, t*2)
	}
	return theme.HeatMid.BlendLuv(theme.HeatHigh, (t-0.5)*2)
}

func paletteColor(theme Theme, key string) colorful.Color {
	if len(theme.Palette) == 0 {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	idx := int(h.Sum32()) % len(theme.Palette)
	if idx < 0 {
		idx += len(theme.Palette)
	}
	return theme.Palette[idx]
}

// ContrastText returns black or white, whichever gives better perceived
// contrast against bg, using sRGB-relative luminance with a 0.5 threshold
// (spec.md §4.2).
func ContrastText(bg colorful.Color) colorful.Color {
	r, g, b := bg.R, bg.G, bg.B
	luminance := 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
	if luminance > 0.5 {
		return colorful.Color{R: 0, G: 0, B: 0}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
