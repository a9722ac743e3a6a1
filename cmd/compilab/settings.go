package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"compilab/internal/config"
	"compilab/internal/driver"
	"compilab/internal/observ"
	"compilab/internal/pipeline"
	"compilab/internal/trace"
)

// settings merges compilab.toml with the command line. Flags that were set
// explicitly win over the file.
type settings struct {
	cfg       config.Config
	colorMode string
	timings   bool
	timer     *observ.Timer
	tracer    trace.Tracer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()

	cfgPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	if root.Changed("halt-on") {
		cfg.Pipeline.HaltOn, _ = root.GetString("halt-on")
	}
	if root.Changed("max-diagnostics") {
		cfg.Pipeline.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if root.Changed("trace") {
		cfg.Trace.Output, _ = root.GetString("trace")
	}
	if root.Changed("trace-level") {
		cfg.Trace.Level, _ = root.GetString("trace-level")
	}
	if root.Changed("trace-mode") {
		cfg.Trace.Mode, _ = root.GetString("trace-mode")
	}
	if root.Changed("trace-ring-size") {
		cfg.Trace.RingSize, _ = root.GetInt("trace-ring-size")
	}
	// --trace без уровня включает phase, как и ожидают от флага
	if cfg.Trace.Output != "" && strings.EqualFold(cfg.Trace.Level, "off") && !root.Changed("trace-level") {
		cfg.Trace.Level = "phase"
	}

	flags := cmd.Flags()
	if flags.Lookup("max-steps") != nil && flags.Changed("max-steps") {
		cfg.Run.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Lookup("input") != nil && flags.Changed("input") {
		cfg.Run.Input, _ = flags.GetString("input")
	}
	if flags.Lookup("debounce") != nil && flags.Changed("debounce") {
		d, _ := flags.GetDuration("debounce")
		cfg.Watch.Debounce = config.Duration{Duration: d}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	colorMode, err := root.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorMode {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	s := &settings{cfg: cfg, colorMode: colorMode, timings: timings, tracer: trace.Nop}
	if timings {
		s.timer = observ.NewTimer()
	}
	return s, nil
}

// useColor decides coloring for one output stream.
func (s *settings) useColor(f *os.File) bool {
	return s.colorMode == "on" || (s.colorMode == "auto" && isTerminal(f))
}

// driverOptions builds analyzer options; observers are appended after the timer.
func (s *settings) driverOptions(observers ...pipeline.Observer) (driver.Options, error) {
	policy, err := s.cfg.Policy()
	if err != nil {
		return driver.Options{}, err
	}
	input, err := s.cfg.ReadInput()
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.DefaultOptions()
	opts.MaxDiagnostics = s.cfg.Pipeline.MaxDiagnostics
	opts.MaxSteps = s.cfg.Run.MaxSteps
	opts.Input = input
	opts.Policy = policy
	opts.Tracer = s.tracer
	if s.timer != nil {
		opts.Observers = append(opts.Observers, s.timer)
	}
	opts.Observers = append(opts.Observers, observers...)
	return opts, nil
}
