package colorpolicy

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"squaretop/internal/procmodel"
)

func TestColorForPure(t *testing.T) {
	rec := procmodel.Record{PID: 1, Name: "chrome", MemoryBytes: 1000}
	ctx := Context{TotalMemory: 10000}
	theme := VividTheme()

	a := ColorFor(rec, ctx, ModeMemory, theme)
	b := ColorFor(rec, ctx, ModeMemory, theme)
	if a != b {
		t.Fatalf("ColorFor not pure: %v vs %v", a, b)
	}
}

func TestColorForNameDeterministicAcrossModes(t *testing.T) {
	rec1 := procmodel.Record{Name: "same-name"}
	rec2 := procmodel.Record{Name: "same-name"}
	theme := VividTheme()
	c1 := ColorFor(rec1, Context{}, ModeName, theme)
	c2 := ColorFor(rec2, Context{}, ModeName, theme)
	if c1 != c2 {
		t.Fatalf("expected equal colors for equal names, got %v vs %v", c1, c2)
	}
}

func TestModeNextCyclesThroughAll(t *testing.T) {
	seen := map[Mode]bool{}
	m := ModeName
	for i := 0; i < 6; i++ {
		seen[m] = true
		m = m.Next()
	}
	if m != ModeName {
		t.Fatalf("expected cycle back to ModeName after 6 steps, got %v", m)
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct modes, got %d", len(seen))
	}
}

func TestGradientClampedAtExtremes(t *testing.T) {
	theme := VividTheme()
	low := gradient(theme, 0)
	if low != theme.HeatLow {
		t.Fatalf("expected gradient(0) == HeatLow, got %v vs %v", low, theme.HeatLow)
	}
	high := gradient(theme, 1)
	if high != theme.HeatHigh {
		t.Fatalf("expected gradient(1) == HeatHigh, got %v vs %v", high, theme.HeatHigh)
	}
}

func TestContrastTextThreshold(t *testing.T) {
	white := ContrastText(colorful.Color{R: 1, G: 1, B: 1})
	if white.R != 0 {
		t.Fatalf("expected black text on white background, got %v", white)
	}
	black := ContrastText(colorful.Color{R: 0, G: 0, B: 0})
	if black.R != 1 {
		t.Fatalf("expected white text on black background, got %v", black)
	}
}
