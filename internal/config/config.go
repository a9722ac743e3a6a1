// Package config loads compilab.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"compilab/internal/diag"
	"compilab/internal/pipeline"
	"compilab/internal/trace"
	"compilab/internal/vm"
)

// FileName is the configuration file looked up from the working directory upward.
const FileName = "compilab.toml"

type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Run      RunConfig      `toml:"run"`
	Watch    WatchConfig    `toml:"watch"`
	Trace    TraceConfig    `toml:"trace"`

	// Path of the file the values came from, empty for defaults.
	Path string `toml:"-"`
}

type PipelineConfig struct {
	HaltOn         string `toml:"halt_on"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type RunConfig struct {
	MaxSteps int    `toml:"max_steps"`
	Input    string `toml:"input"` // путь к файлу со stdin программы
}

type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

type TraceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Output   string `toml:"output"`
	RingSize int    `toml:"ring_size"`
}

// Duration decodes TOML strings such as "150ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Pipeline: PipelineConfig{HaltOn: "error", MaxDiagnostics: 100},
		Run:      RunConfig{MaxSteps: vm.DefaultMaxSteps},
		Watch:    WatchConfig{Debounce: Duration{150 * time.Millisecond}},
		Trace:    TraceConfig{Level: "off", Mode: "ring", RingSize: 4096},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover returns the configuration found from startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults and validates the result.
// A relative [run].input is resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("run", "input") && cfg.Run.Input != "" && !filepath.IsAbs(cfg.Run.Input) {
		cfg.Run.Input = filepath.Join(filepath.Dir(path), cfg.Run.Input)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value that has a restricted domain.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("[pipeline].halt_on: %w", err)
	}
	if c.Pipeline.MaxDiagnostics < 0 {
		return fmt.Errorf("[pipeline].max_diagnostics must not be negative")
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("[run].max_steps must not be negative")
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("[watch].debounce must not be negative")
	}
	if _, err := c.TracerConfig(); err != nil {
		return fmt.Errorf("[trace]: %w", err)
	}
	return nil
}

// Policy converts [pipeline].halt_on into a cascade policy.
func (c Config) Policy() (pipeline.Policy, error) {
	sev, err := diag.ParseSeverity(c.Pipeline.HaltOn)
	if err != nil {
		return pipeline.Policy{}, err
	}
	if sev == diag.SevInfo {
		return pipeline.Policy{}, fmt.Errorf("halt_on must be error or warning, got %q", c.Pipeline.HaltOn)
	}
	return pipeline.Policy{HaltOn: sev}, nil
}

// TracerConfig converts [trace] into trace.Config.
func (c Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	if c.Trace.RingSize < 0 {
		return trace.Config{}, fmt.Errorf("ring_size must not be negative")
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: c.Trace.Output,
		RingSize:   c.Trace.RingSize,
	}, nil
}

// ReadInput returns the contents of [run].input, or "" when unset.
func (c Config) ReadInput() (string, error) {
	if c.Run.Input == "" {
		return "", nil
	}
	// #nosec G304 -- path comes from the user's own config
	data, err := os.ReadFile(c.Run.Input)
	if err != nil {
		return "", fmt.Errorf("read program input: %w", err)
	}
	return string(data), nil
}
