// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Generation GenerationConfig `yaml:"generation"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Neural     NeuralConfig     `yaml:"neural"`
	Brains     BrainsConfig     `yaml:"brains"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Stream     StreamConfig     `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds playfield and display settings.
// The playfield is the whole screen.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds grid geometry.
type GridConfig struct {
	CellSize      int `yaml:"cell_size"`
	TopMarginRows int `yaml:"top_margin_rows"` // rows food never spawns in
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Size int `yaml:"size"`
}

// GenerationConfig holds generation termination limits.
type GenerationConfig struct {
	MaxUpdates int    `yaml:"max_updates"`
	Lifetime   string `yaml:"lifetime"` // Go duration, "" or "0" = unlimited
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate  float64 `yaml:"rate"`  // probability each weight mutates
	Sigma float64 `yaml:"sigma"` // std dev of the gaussian perturbation
}

// NeuralConfig holds controller network parameters.
type NeuralConfig struct {
	Hidden  int `yaml:"hidden"`
	Outputs int `yaml:"outputs"`
}

// BrainsConfig holds controller persistence parameters.
type BrainsConfig struct {
	Load         bool   `yaml:"load"`
	Save         bool   `yaml:"save"`
	SaveInterval string `yaml:"save_interval"`
	Prefix       string `yaml:"prefix"`
	Backend      string `yaml:"backend"` // memory, file, sqlite
	Path         string `yaml:"path"`
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	ShowAll   bool `yaml:"show_all"`
	FastSpeed int  `yaml:"fast_speed"` // frames per tick
	SlowSpeed int  `yaml:"slow_speed"` // frames per tick
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`
	Plot       bool   `yaml:"plot"`
	HallOfFame int    `yaml:"hall_of_fame"`
	PerfWindow int    `yaml:"perf_window"` // ticks averaged by the live perf panel
}

// StreamConfig holds live spectator parameters.
type StreamConfig struct {
	Every int `yaml:"every"` // ticks between frames
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cols         int
	Rows         int
	NumInputs    int           // 3 flags per cell + x, y, heading twice
	Lifetime     time.Duration // 0 = unlimited
	SaveInterval time.Duration
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values.
// Call it again after mutating a loaded config in code.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.computeDerived()
}

// Validate checks the config for values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %d", c.Grid.CellSize))
	} else {
		if c.Screen.Width <= 0 || c.Screen.Width%c.Grid.CellSize != 0 {
			errs = append(errs, fmt.Errorf("screen.width %d must be a positive multiple of cell size %d", c.Screen.Width, c.Grid.CellSize))
		}
		if c.Screen.Height <= 0 || c.Screen.Height%c.Grid.CellSize != 0 {
			errs = append(errs, fmt.Errorf("screen.height %d must be a positive multiple of cell size %d", c.Screen.Height, c.Grid.CellSize))
		}
		if rows := c.Screen.Height / c.Grid.CellSize; c.Grid.TopMarginRows < 0 || c.Grid.TopMarginRows >= rows {
			errs = append(errs, fmt.Errorf("grid.top_margin_rows %d out of range [0,%d)", c.Grid.TopMarginRows, rows))
		}
	}
	if c.Population.Size < 1 {
		errs = append(errs, fmt.Errorf("population.size must be at least 1, got %d", c.Population.Size))
	}
	if c.Generation.MaxUpdates < 0 {
		errs = append(errs, fmt.Errorf("generation.max_updates must not be negative, got %d", c.Generation.MaxUpdates))
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		errs = append(errs, fmt.Errorf("mutation.rate %v out of range [0,1]", c.Mutation.Rate))
	}
	if c.Neural.Outputs != 3 {
		errs = append(errs, fmt.Errorf("neural.outputs must be 3 (straight, left, right), got %d", c.Neural.Outputs))
	}
	if c.Neural.Hidden < 1 {
		errs = append(errs, fmt.Errorf("neural.hidden must be at least 1, got %d", c.Neural.Hidden))
	}
	if c.Render.FastSpeed < 1 || c.Render.SlowSpeed < 1 {
		errs = append(errs, fmt.Errorf("render speeds must be at least 1 frame per tick, got %d and %d", c.Render.FastSpeed, c.Render.SlowSpeed))
	}
	switch c.Brains.Backend {
	case "", "memory", "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("brains.backend %q is not one of memory, file, sqlite", c.Brains.Backend))
	}
	if _, err := parseDuration(c.Generation.Lifetime); err != nil {
		errs = append(errs, fmt.Errorf("generation.lifetime: %w", err))
	}
	if _, err := parseDuration(c.Brains.SaveInterval); err != nil {
		errs = append(errs, fmt.Errorf("brains.save_interval: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.Cols = c.Screen.Width / c.Grid.CellSize
	c.Derived.Rows = c.Screen.Height / c.Grid.CellSize
	c.Derived.NumInputs = 3*c.Derived.Cols*c.Derived.Rows + 4

	lifetime, err := parseDuration(c.Generation.Lifetime)
	if err != nil {
		return fmt.Errorf("generation.lifetime: %w", err)
	}
	c.Derived.Lifetime = lifetime

	interval, err := parseDuration(c.Brains.SaveInterval)
	if err != nil {
		return fmt.Errorf("brains.save_interval: %w", err)
	}
	c.Derived.SaveInterval = interval
	return nil
}

// parseDuration treats "" and "0" as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
