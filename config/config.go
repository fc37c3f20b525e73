// Package config provides configuration loading and access for the effect.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Simulation SimulationConfig `yaml:"simulation"`
	Shading    ShadingConfig    `yaml:"shading"`
	Sparks     SparksConfig     `yaml:"sparks"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds density field sizing parameters.
type FieldConfig struct {
	Downscale int `yaml:"downscale"` // field resolution = viewport / downscale (min 1)
}

// SimulationConfig holds the advection/decay/injection parameters.
type SimulationConfig struct {
	FlowScale    float64 `yaml:"flow_scale"`    // noise frequency over normalized coordinates
	FlowStrength float64 `yaml:"flow_strength"` // advection displacement per tick
	FlowEvolve   float64 `yaml:"flow_evolve"`   // time factor for the flow's drift
	BrushRadius  float64 `yaml:"brush_radius"`  // injection ribbon radius in aspect-corrected UV
	DecayMin     float64 `yaml:"decay_min"`     // decay factor at zero velocity
	DecayMax     float64 `yaml:"decay_max"`     // decay factor at/above velocity_ramp
	VelocityRamp float64 `yaml:"velocity_ramp"` // velocity mapped onto [decay_min, decay_max]
	IdleThresh   float64 `yaml:"idle_threshold"`
	IdleLimit    int     `yaml:"idle_tick_limit"` // consecutive idle ticks before suspension
	Seed         int64   `yaml:"seed"`            // flow noise seed
}

// ShadingConfig holds the display pass parameters.
type ShadingConfig struct {
	VisibilityFloor float64    `yaml:"visibility_floor"` // density below this is transparent
	NormalScale     float64    `yaml:"normal_scale"`     // gradient-to-normal steepness
	PaletteShift    float64    `yaml:"palette_shift"`    // per-channel phase offset
	LightDir        [3]float64 `yaml:"light_dir"`        // normalized at load
	SpecularPower   float64    `yaml:"specular_power"`
	SpecularGain    float64    `yaml:"specular_gain"`
	Whiten          float64    `yaml:"whiten"`    // blend-to-white factor scaled by density
	AlphaMax        float64    `yaml:"alpha_max"` // alpha clamp ceiling
}

// SparksConfig holds the decorative spark layer parameters.
type SparksConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Max           int     `yaml:"max"`
	SpawnVelocity float64 `yaml:"spawn_velocity"` // minimum pointer velocity to spawn
	Rate          int     `yaml:"rate"`           // sparks spawned per qualifying tick
	Life          float64 `yaml:"life"`           // seconds
	Size          float64 `yaml:"size"`           // pixels
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks in the perf rolling window
	LogInterval int     `yaml:"log_interval"` // ticks between slog perf reports (0 disables)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	LightDir  [3]float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Degenerate values fall back to something renderable rather than erroring.
	if c.Screen.Width < 1 {
		c.Screen.Width = 1
	}
	if c.Screen.Height < 1 {
		c.Screen.Height = 1
	}
	if c.Field.Downscale < 1 {
		c.Field.Downscale = 1
	}
	if c.Simulation.IdleLimit < 1 {
		c.Simulation.IdleLimit = 150
	}

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Normalize the light direction once so the shading pass never has to.
	lx, ly, lz := c.Shading.LightDir[0], c.Shading.LightDir[1], c.Shading.LightDir[2]
	n := lx*lx + ly*ly + lz*lz
	if n == 0 {
		lx, ly, lz = 0.5, 1, 1
		n = lx*lx + ly*ly + lz*lz
	}
	inv := 1.0 / math.Sqrt(n)
	c.Derived.LightDir = [3]float32{float32(lx * inv), float32(ly * inv), float32(lz * inv)}
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
