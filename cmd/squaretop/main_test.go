package main

import (
	"testing"

	"squaretop/internal/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.perfIters != 50 || f.perfWidth != 120 || f.perfHeight != 40 {
		t.Fatalf("unexpected perf defaults: %+v", f)
	}
	if f.perfCapture || f.help {
		t.Fatalf("expected perf-capture and help to default false, got %+v", f)
	}
}

func TestParseFlagsUnknownFlagIsAnError(t *testing.T) {
	if _, err := parseFlags([]string{"--not-a-real-flag"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestApplyFlagOverridesOnlyTouchesSetFields(t *testing.T) {
	cfg := config.Config{}
	cfg.General.RefreshRateMS = 2000
	cfg.General.ColorSupport = "auto"
	cfg.General.DefaultColorMode = "memory"

	applyFlagOverrides(&cfg, cliFlags{refreshRate: 500, color: "mono"})
	if cfg.General.RefreshRateMS != 500 {
		t.Fatalf("expected refresh rate override to 500, got %d", cfg.General.RefreshRateMS)
	}
	if cfg.General.ColorSupport != "mono" {
		t.Fatalf("expected color override to 'mono', got %q", cfg.General.ColorSupport)
	}
	if cfg.General.DefaultColorMode != "memory" {
		t.Fatalf("expected default color mode untouched, got %q", cfg.General.DefaultColorMode)
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	if code := run([]string{"--help"}); code != exitOK {
		t.Fatalf("expected exit code %d for --help, got %d", exitOK, code)
	}
}

func TestRunBadFlagExitsWithBadArgs(t *testing.T) {
	if code := run([]string{"--nonexistent-flag"}); code != exitBadArgs {
		t.Fatalf("expected exit code %d for unknown flag, got %d", exitBadArgs, code)
	}
}

func TestRunBadConfigPathExitsWithBadArgs(t *testing.T) {
	if code := run([]string{"--config", "/nonexistent/path/squaretop.toml"}); code != exitBadArgs {
		t.Fatalf("expected exit code %d for unreadable config path, got %d", exitBadArgs, code)
	}
}
