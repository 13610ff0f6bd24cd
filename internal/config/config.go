// Package config loads the configuration record described in spec.md §6
// from an optional TOML file, environment overrides, and built-in
// defaults, using github.com/spf13/viper the way jondoveston-promtop's
// main.go does (viper.SetDefault + viper.AutomaticEnv + viper.BindPFlag),
// the one Viper-based loader in the example pack. pelletier/go-toml/v2
// rides along as viper's TOML codec exactly as it does in promtop's
// go.mod.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// General holds the general-section options (spec.md §6).
type General struct {
	RefreshRateMS     int    `mapstructure:"refresh_rate_ms"`
	DefaultColorMode  string `mapstructure:"default_color_mode"`
	ShowDetailPanel   bool   `mapstructure:"show_detail_panel"`
	SparklineLength   int    `mapstructure:"sparkline_length"`
	ColorSupport      string `mapstructure:"color_support"` // auto|truecolor|256|mono
	DefaultSort       string `mapstructure:"default_sort"`
}

// Treemap holds the treemap-section options (spec.md §6).
type Treemap struct {
	MinRectWidth    int     `mapstructure:"min_rect_width"`
	MinRectHeight   int     `mapstructure:"min_rect_height"`
	GroupThreshold  float64 `mapstructure:"group_threshold"`
	MaxVisibleProcs int     `mapstructure:"max_visible_procs"`
	BorderStyle     string  `mapstructure:"border_style"` // thin|thick|none
	AnimationFrames int     `mapstructure:"animation_frames"`
}

// Colors holds the colors-section options (spec.md §6).
type Colors struct {
	Theme    string `mapstructure:"theme"`
	HeatLow  string `mapstructure:"heat_low"`
	HeatMid  string `mapstructure:"heat_mid"`
	HeatHigh string `mapstructure:"heat_high"`
}

// Keybinds maps the 12 remappable actions to literal key strings
// (spec.md §6). Zero value for any field means "use the built-in
// default" — see internal/input.DefaultKeymap.
type Keybinds struct {
	Quit       string `mapstructure:"quit"`
	Filter     string `mapstructure:"filter"`
	Kill       string `mapstructure:"kill"`
	KillForce  string `mapstructure:"kill_force"`
	CycleColor string `mapstructure:"cycle_color"`
	CycleTheme string `mapstructure:"cycle_theme"`
	Detail     string `mapstructure:"detail"`
	CycleSort  string `mapstructure:"cycle_sort"`
	ZoomIn     string `mapstructure:"zoom_in"`
	ZoomOut    string `mapstructure:"zoom_out"`
	Refresh    string `mapstructure:"refresh"`
	Help       string `mapstructure:"help"`
}

// Config is the full configuration record (spec.md §6).
type Config struct {
	General  General  `mapstructure:"general"`
	Treemap  Treemap  `mapstructure:"treemap"`
	Colors   Colors   `mapstructure:"colors"`
	Keybinds Keybinds `mapstructure:"keybinds"`
}

// RefreshInterval converts RefreshRateMS to a time.Duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.General.RefreshRateMS) * time.Millisecond
}

func defaults(v *viper.Viper) {
	v.SetDefault("general.refresh_rate_ms", 2000)
	v.SetDefault("general.default_color_mode", "memory")
	v.SetDefault("general.show_detail_panel", false)
	v.SetDefault("general.sparkline_length", 60)
	v.SetDefault("general.color_support", "auto")
	v.SetDefault("general.default_sort", "memory")

	v.SetDefault("treemap.min_rect_width", 6)
	v.SetDefault("treemap.min_rect_height", 2)
	v.SetDefault("treemap.group_threshold", 0.01)
	v.SetDefault("treemap.max_visible_procs", 25)
	v.SetDefault("treemap.border_style", "thin")
	v.SetDefault("treemap.animation_frames", 5)

	v.SetDefault("colors.theme", "vivid")
	v.SetDefault("colors.heat_low", "#3b4252")
	v.SetDefault("colors.heat_mid", "#e5c07b")
	v.SetDefault("colors.heat_high", "#e06c75")

	v.SetDefault("keybinds.quit", "q")
	v.SetDefault("keybinds.filter", "/")
	v.SetDefault("keybinds.kill", "k")
	v.SetDefault("keybinds.kill_force", "K")
	v.SetDefault("keybinds.cycle_color", "c")
	v.SetDefault("keybinds.cycle_theme", "t")
	v.SetDefault("keybinds.detail", "d")
	v.SetDefault("keybinds.cycle_sort", "s")
	v.SetDefault("keybinds.zoom_in", "enter")
	v.SetDefault("keybinds.zoom_out", "esc")
	v.SetDefault("keybinds.refresh", "r")
	v.SetDefault("keybinds.help", "?")
}

// Load builds a Config from built-in defaults, an optional TOML file at
// path (ignored when empty), and SQUARETOP_-prefixed environment
// overrides, in that ascending precedence order. An empty path is not an
// error; an explicit path that cannot be read (including one that does not
// exist) or parsed is (spec.md §7 "Configuration errors", exit code 2 at
// the caller).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	defaults(v)

	v.SetEnvPrefix("squaretop")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.General.RefreshRateMS < 100 {
		return fmt.Errorf("config: general.refresh_rate_ms must be >= 100, got %d", c.General.RefreshRateMS)
	}
	if c.Treemap.GroupThreshold < 0 || c.Treemap.GroupThreshold > 1 {
		return fmt.Errorf("config: treemap.group_threshold must be in [0,1], got %f", c.Treemap.GroupThreshold)
	}
	switch c.Treemap.BorderStyle {
	case "thin", "thick", "none":
	default:
		return fmt.Errorf("config: treemap.border_style must be thin|thick|none, got %q", c.Treemap.BorderStyle)
	}
	switch c.General.ColorSupport {
	case "auto", "truecolor", "256", "mono":
	default:
		return fmt.Errorf("config: general.color_support must be auto|truecolor|256|mono, got %q", c.General.ColorSupport)
	}
	return nil
}
