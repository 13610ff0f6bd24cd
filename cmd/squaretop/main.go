// Command squaretop is a terminal process monitor that renders the
// process tree as a squarified treemap. Flag parsing follows the
// teacher's internal/config.FromFlags shape (rawwerks-srps-arch), extended
// with the treemap-specific flags spec.md §6 names; configuration
// defaults and file/env overrides are layered on top via
// internal/config.Load.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"squaretop/internal/app"
	"squaretop/internal/config"
	"squaretop/internal/perfcapture"
	"squaretop/internal/render"
	"squaretop/internal/snapshot"
	"squaretop/internal/tui"
	"squaretop/internal/view"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitBadArgs = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type cliFlags struct {
	refreshRate int
	configPath  string
	color       string
	colorMode   string
	perfCapture bool
	perfIters   int
	perfWidth   int
	perfHeight  int
	perfOutput  string
	help        bool
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("squaretop", flag.ContinueOnError)
	fs.IntVar(&f.refreshRate, "refresh-rate", 0, "collector refresh interval in milliseconds (0 = use config default)")
	fs.StringVar(&f.configPath, "config", "", "path to a TOML configuration file")
	fs.StringVar(&f.color, "color", "", "color support override: auto|truecolor|256|mono")
	fs.StringVar(&f.colorMode, "color-mode", "", "default color mode: name|memory|cpu|user|group|mono")
	fs.BoolVar(&f.perfCapture, "perf-capture", false, "run a headless perf capture instead of the interactive TUI")
	fs.IntVar(&f.perfIters, "perf-iterations", 50, "number of refresh+layout+render iterations to capture")
	fs.IntVar(&f.perfWidth, "perf-width", 120, "cell width for headless perf capture")
	fs.IntVar(&f.perfHeight, "perf-height", 40, "cell height for headless perf capture")
	fs.StringVar(&f.perfOutput, "perf-output", "squaretop-perf.jsonl", "jsonl output path for perf capture")
	fs.BoolVar(&f.help, "help", false, "print usage and exit")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	}
	if flags.help {
		fmt.Fprintln(os.Stdout, "squaretop: a terminal process monitor rendered as a squarified treemap")
		fmt.Fprintln(os.Stdout, "see --config for TOML configuration; flags override loaded values")
		return exitOK
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	}
	applyFlagOverrides(&cfg, flags)

	if flags.perfCapture {
		if err := runPerfCapture(cfg, flags); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitRuntime
		}
		return exitOK
	}

	return runInteractive(cfg)
}

func applyFlagOverrides(cfg *config.Config, flags cliFlags) {
	if flags.refreshRate > 0 {
		cfg.General.RefreshRateMS = flags.refreshRate
	}
	if flags.color != "" {
		cfg.General.ColorSupport = flags.color
	}
	if flags.colorMode != "" {
		cfg.General.DefaultColorMode = flags.colorMode
	}
}

func runInteractive(cfg config.Config) int {
	source := snapshot.NewGopsutilSource()
	sink := app.NewGopsutilSignalSink()
	model := tui.New(cfg, source, sink)

	prog := tea.NewProgram(model, tea.WithAltScreen())
	defer func() {
		if r := recover(); r != nil {
			prog.ReleaseTerminal()
			panic(r)
		}
	}()

	if _, err := prog.Run(); err != nil {
		log.Println("squaretop: fatal:", err)
		return exitRuntime
	}
	return exitOK
}

// runPerfCapture runs iterations of collect -> layout -> render against a
// fixed cell size, with no terminal attached, writing one jsonl record per
// tracked span per iteration (spec.md §6 "perf capture file format"),
// grounded on original_source/src/main.rs's run_perf_capture.
func runPerfCapture(cfg config.Config, flags cliFlags) error {
	if flags.perfIters <= 0 {
		return fmt.Errorf("--perf-iterations must be greater than 0")
	}
	if flags.perfWidth <= 0 || flags.perfHeight <= 0 {
		return fmt.Errorf("--perf-width and --perf-height must be greater than 0")
	}

	out, err := os.Create(flags.perfOutput)
	if err != nil {
		return fmt.Errorf("perf-capture: creating %s: %w", flags.perfOutput, err)
	}
	defer out.Close()

	rec := perfcapture.NewRecorder(out)
	captureStart := time.Now()
	sinceStartUS := func() uint64 { return uint64(time.Since(captureStart).Microseconds()) }
	source := snapshot.NewGopsutilSource()
	a := app.New(app.NewGopsutilSignalSink())
	a.View.Bounds.W = flags.perfWidth
	a.View.Bounds.H = flags.perfHeight
	a.View.MinRectWidth = cfg.Treemap.MinRectWidth
	a.View.MinRectHeight = cfg.Treemap.MinRectHeight
	a.View.GroupThreshold = cfg.Treemap.GroupThreshold
	a.View.MaxVisibleProcs = cfg.Treemap.MaxVisibleProcs
	a.View.AnimationFrames = cfg.Treemap.AnimationFrames

	processCounts := make([]int, 0, flags.perfIters)
	for i := 0; i < flags.perfIters; i++ {
		rec.SetIteration(uint32(i))
		startUS := sinceStartUS()

		var raw []snapshot.RawProcess
		var totals snapshot.SystemTotals
		var collectErr error
		if err := rec.Span(perfcapture.SpanCollectorRefresh, startUS, func() {
			raw, totals, collectErr = source.Collect()
		}); err != nil {
			return err
		}
		if collectErr != nil {
			return fmt.Errorf("perf-capture: collecting: %w", collectErr)
		}

		snap := snapshot.Build(time.Now(), raw, totals)
		processCounts = append(processCounts, len(snap.Tree.Processes))

		var layout view.Layout
		if err := rec.Span(perfcapture.SpanComputeLayout, sinceStartUS(), func() {
			a.ApplySnapshot(snap)
			layout = a.CurrentLayout()
		}); err != nil {
			return err
		}

		if err := rec.Span(perfcapture.SpanTreemapRender, sinceStartUS(), func() {
			render.Render(layout, a.View.Bounds, render.Options{Border: a.View.Border})
		}); err != nil {
			return err
		}
	}

	summary, _ := json.Marshal(map[string]interface{}{
		"iterations":     flags.perfIters,
		"width":          flags.perfWidth,
		"height":         flags.perfHeight,
		"process_counts": processCounts,
	})
	fmt.Fprintln(os.Stdout, "perf capture complete:", flags.perfOutput)
	fmt.Fprintln(os.Stdout, string(summary))
	return nil
}
