package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.RefreshRateMS != 2000 {
		t.Fatalf("expected default refresh_rate_ms 2000, got %d", cfg.General.RefreshRateMS)
	}
	if cfg.Treemap.MaxVisibleProcs != 25 {
		t.Fatalf("expected default max_visible_procs 25, got %d", cfg.Treemap.MaxVisibleProcs)
	}
	if cfg.Keybinds.Quit != "q" {
		t.Fatalf("expected default quit keybind 'q', got %q", cfg.Keybinds.Quit)
	}
}

func TestLoadOverridesFromTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "squaretop.toml")
	toml := `
[general]
refresh_rate_ms = 500

[treemap]
max_visible_procs = 10
border_style = "thick"

[keybinds]
quit = "x"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.RefreshRateMS != 500 {
		t.Fatalf("expected overridden refresh_rate_ms 500, got %d", cfg.General.RefreshRateMS)
	}
	if cfg.Treemap.MaxVisibleProcs != 10 {
		t.Fatalf("expected overridden max_visible_procs 10, got %d", cfg.Treemap.MaxVisibleProcs)
	}
	if cfg.Treemap.BorderStyle != "thick" {
		t.Fatalf("expected overridden border_style 'thick', got %q", cfg.Treemap.BorderStyle)
	}
	if cfg.Keybinds.Quit != "x" {
		t.Fatalf("expected overridden quit keybind 'x', got %q", cfg.Keybinds.Quit)
	}
	// Untouched sections keep their defaults.
	if cfg.Colors.Theme != "vivid" {
		t.Fatalf("expected default theme 'vivid' to survive partial override, got %q", cfg.Colors.Theme)
	}
}

func TestLoadMissingFilePathIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatalf("expected error for missing explicit config path")
	}
}

func TestLoadRejectsInvalidBorderStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[treemap]\nborder_style = \"dashed\"\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown border_style")
	}
}

func TestLoadRejectsRefreshRateBelowMinimum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[general]\nrefresh_rate_ms = 10\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for refresh_rate_ms below 100")
	}
}

func TestRefreshIntervalConversion(t *testing.T) {
	cfg, _ := Load("")
	if cfg.RefreshInterval().Milliseconds() != 2000 {
		t.Fatalf("expected 2000ms, got %v", cfg.RefreshInterval())
	}
}
