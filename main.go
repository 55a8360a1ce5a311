// Copyright
// SPDX-License-Identifier: MIT
// edgescroll: pull-to-refresh and load-on-scroll for terminal scroll views
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	cfg "edgescroll/internal/config"
	"edgescroll/internal/gesture"
	"edgescroll/internal/logging"
	appTUI "edgescroll/internal/tui"
	"edgescroll/internal/tui/util"
)

const Version = "0.1.0"

const defaultConfig = "edgescroll.toml"

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	var err error
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("edgescroll", Version)
	case "init":
		err = cmdInit(os.Args[2:])
	case "doctor":
		err = cmdDoctor(os.Args[2:], os.Stdout)
	case "demo":
		err = cmdDemo(os.Args[2:])
	case "strategies":
		err = cmdStrategies(os.Args[2:], os.Stdout)
	case "config":
		err = cmdConfig(os.Args[2:], os.Stdout)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`edgescroll ` + Version + `
Pull-down refresh and reach-bottom loading for a terminal scroll view, with swappable gesture strategies.
USAGE
  edgescroll <command> [options]
COMMANDS
  demo         Run the interactive demo feed
  strategies   List gesture strategies and which one would run
  config       Print the effective configuration
  init         Write a default edgescroll.toml
  doctor       Check terminal, clipboard and configuration
  help         Show help (try: edgescroll help demo)
  version      Print version
NOTES
  • Settings come from edgescroll.toml (or --config / EDGESCROLL_CONFIG) and EDGESCROLL_* env vars; flags win.
  • The demo owns the terminal; use --log-file to keep logs, -v or -vv for gesture tracing.
`)
}

func helpTopic(name string) {
	switch name {
	case "demo":
		fmt.Println(`USAGE
  edgescroll demo [--config PATH] [--strategy NAME] [--no-native] [--authoring]
                  [--pages N] [--latency MS] [--log-file PATH] [-v | -vv] [--no-color]
DESCRIPTION
  Opens a paged feed inside the scroll view. Scroll up past the top to refresh,
  reach the end to load the next page. Without native gestures (mouse reporting)
  the simulated strategy runs regardless of --strategy.
OPTIONS
  --config PATH      TOML config file (default: ./edgescroll.toml or the user config dir)
  --strategy NAME    pullDown | swipeDown | slideDown | simulated (default: platform default)
  --no-native        Treat the terminal as lacking native gesture input
  --authoring        Start in authoring mode (gestures disabled)
  --pages N          Pages before the feed runs dry (0 = endless)
  --latency MS       Simulated fetch latency
  --log-file PATH    Append logs to file (created if missing)
  -v                 Log cycle decisions and gesture motion
  -vv                Also log every scroll reading
  --no-color         Disable colors (also honored via NO_COLOR)
KEYS
  r refresh  s strategy  n native  a authoring  x silent next load  y copy  l events  ? help  q quit`)
	case "strategies":
		fmt.Println(`USAGE
  edgescroll strategies [--platform NAME] [--no-native]
DESCRIPTION
  Lists registered strategies, marking the platform default and the strategy that
  would actually run for the given native capability.`)
	default:
		usage()
	}
}

/* ---------- commands ---------- */

func loadConfig(path string) (cfg.Config, error) {
	c, err := cfg.Load(path)
	if err != nil {
		return cfg.Config{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.Usage = func() { helpTopic("demo") }
	configPath := fs.String("config", "", "TOML config file")
	strategy := fs.String("strategy", "", "Gesture strategy name")
	noNative := fs.Bool("no-native", false, "Assume no native gesture input")
	authoring := fs.Bool("authoring", false, "Start in authoring mode")
	pages := fs.Int("pages", -1, "Pages before the feed runs dry (0 = endless)")
	latency := fs.Int("latency", -1, "Simulated fetch latency in ms")
	logPath := fs.String("log-file", "", "Append logs to file (created if missing)")
	verbose := fs.Bool("v", false, "Verbose logs")
	debug := fs.Bool("vv", false, "Debug logs")
	noColor := fs.Bool("no-color", false, "Disable colors")
	_ = fs.Parse(args)

	c, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *strategy != "" {
		c.Strategy.Name = *strategy
	}
	if *noNative {
		c.Strategy.Native = false
	}
	if *authoring {
		c.AuthoringMode = true
	}
	if *pages >= 0 {
		c.Feed.Pages = *pages
	}
	if *latency >= 0 {
		c.Feed.LatencyMS = *latency
	}
	if *logPath != "" {
		c.Log.File = *logPath
	}
	if *debug {
		c.Log.Verbosity = 2
	} else if *verbose {
		c.Log.Verbosity = 1
	}
	if err := c.Validate(); err != nil {
		return err
	}

	events := make(chan string, 256)
	log, closer, err := logging.New(c.Log.File, c.Log.Verbosity, logging.LineSink(events))
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Info("edgescroll started", "version", Version, "strategy", string(c.StrategyName()), "native", c.Strategy.Native)

	return appTUI.Run(appTUI.Options{
		Config:  c,
		Logger:  log,
		Events:  events,
		NoColor: util.NoColor(*noColor),
	})
}

func cmdStrategies(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("strategies", flag.ExitOnError)
	fs.Usage = func() { helpTopic("strategies") }
	platform := fs.String("platform", runtime.GOOS, "Platform hint for the default strategy")
	noNative := fs.Bool("no-native", false, "Assume no native gesture input")
	_ = fs.Parse(args)

	def := gesture.DefaultFor(*platform)
	resolved, _, err := gesture.Select(def, !*noNative)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Strategies (platform %s):\n", *platform)
	for _, n := range gesture.Names() {
		var marks []string
		if n == def {
			marks = append(marks, "default")
		}
		if n == resolved {
			marks = append(marks, "runs")
		}
		line := "  " + string(n)
		if len(marks) > 0 {
			line += "  (" + strings.Join(marks, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
	if *noNative {
		fmt.Fprintln(w, "Without native gestures every name resolves to simulated.")
	}
	return nil
}

func cmdConfig(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	_ = fs.Parse(args)

	c, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	printConfig(w, c)
	return nil
}

func printConfig(w io.Writer, c cfg.Config) {
	fmt.Fprintf(w, "strategy.name          %s\n", c.StrategyName())
	fmt.Fprintf(w, "strategy.native        %v\n", c.Strategy.Native)
	fmt.Fprintf(w, "authoring_mode         %v\n", c.AuthoringMode)
	fmt.Fprintf(w, "gesture.threshold      %d\n", c.Gesture.Threshold)
	fmt.Fprintf(w, "gesture.bottom_margin  %d\n", c.Gesture.BottomMargin)
	fmt.Fprintf(w, "gesture.release_step   %d\n", c.Gesture.ReleaseStep)
	fmt.Fprintf(w, "gesture.settle_ms      %d\n", c.Gesture.SettleMS)
	fmt.Fprintf(w, "gesture.frame_ms       %d\n", c.Gesture.FrameMS)
	fmt.Fprintf(w, "texts.pulling_down     %q\n", c.Texts.PullingDown)
	fmt.Fprintf(w, "texts.pulled_down      %q\n", c.Texts.PulledDown)
	fmt.Fprintf(w, "texts.refreshing       %q\n", c.Texts.Refreshing)
	fmt.Fprintf(w, "texts.reach_bottom     %q\n", c.Texts.ReachBottom)
	fmt.Fprintf(w, "panel.delay_ms         %d\n", c.Panel.DelayMS)
	fmt.Fprintf(w, "feed.page_size         %d\n", c.Feed.PageSize)
	fmt.Fprintf(w, "feed.pages             %d\n", c.Feed.Pages)
	fmt.Fprintf(w, "feed.latency_ms        %d\n", c.Feed.LatencyMS)
	fmt.Fprintf(w, "log.file               %s\n", c.Log.File)
	fmt.Fprintf(w, "log.verbosity          %d\n", c.Log.Verbosity)
}

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", defaultConfig, "Where to write the config")
	force := fs.Bool("force", false, "Overwrite an existing file")
	_ = fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		fmt.Println(*path, "already exists; not overwriting (use --force)")
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := cfg.Save(*path, cfg.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	fmt.Println("Wrote", abs)
	return nil
}

func cmdDoctor(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	_ = fs.Parse(args)

	ok := true
	check := func(pass bool, good, bad string) {
		if pass {
			fmt.Fprintf(w, "  ✓ %s\n", good)
			return
		}
		ok = false
		fmt.Fprintf(w, "  ✗ %s\n", bad)
	}

	fmt.Fprintln(w, "Environment checks:")
	check(isTerminal(os.Stdout), "stdout is a terminal", "stdout is not a terminal; the demo needs one")
	check(!clipboard.Unsupported, "clipboard available", "clipboard unavailable; 'y' in the demo will fail")
	c, err := cfg.Load(*configPath)
	if err != nil {
		check(false, "", "config: "+err.Error())
	} else {
		check(true, "config loads (strategy "+string(c.StrategyName())+")", "")
		if c.Log.File != "" {
			_, closer, lerr := logging.New(c.Log.File, 0)
			if lerr == nil {
				_ = closer.Close()
			}
			check(lerr == nil, "log file writable", fmt.Sprintf("log file: %v", lerr))
		}
	}
	if ok {
		fmt.Fprintln(w, "All checks passed.")
	} else {
		fmt.Fprintln(w, "Some checks failed. Fix the items marked ✗ and retry.")
	}
	return nil
}

func isTerminal(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
