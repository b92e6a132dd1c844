// Package config provides configuration loading and access for the sketches.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Flock     FlockConfig     `yaml:"flock"`
	Forage    ForageConfig    `yaml:"forage"`
	Trail     TrailConfig     `yaml:"trail"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds canvas and display settings.
// The canvas is also the simulation world: one unit per pixel.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FlockConfig holds boids parameters.
type FlockConfig struct {
	Population       int     `yaml:"population"`
	InitialSpeed     float64 `yaml:"initial_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxForce         float64 `yaml:"max_force"`         // Steering cap per rule per step
	PerceptionRadius float64 `yaml:"perception_radius"` // Alignment and cohesion
	SeparationRadius float64 `yaml:"separation_radius"`

	EnableAlignment  bool `yaml:"enable_alignment"`
	EnableCohesion   bool `yaml:"enable_cohesion"`
	EnableSeparation bool `yaml:"enable_separation"`
}

// ForageConfig holds physarum agent parameters.
type ForageConfig struct {
	Population     int     `yaml:"population"`
	MoveSpeed      float64 `yaml:"move_speed"`      // [0.1, 10]
	TurnSpeed      float64 `yaml:"turn_speed"`      // [0.1, 5] radians
	ShowAgents     bool    `yaml:"show_agents"`     // Agents deposit trail when set
	SensorDistance float64 `yaml:"sensor_distance"` // How far ahead agents probe the field
}

// TrailConfig holds trail field parameters.
type TrailConfig struct {
	Decay        float64 `yaml:"decay"`         // Fraction retained per step
	DepositValue float64 `yaml:"deposit_value"` // Cells are raised to this value
	Diffuse      float64 `yaml:"diffuse"`       // 0 disables diffusion
}

// SpatialConfig selects the neighbour query strategy.
type SpatialConfig struct {
	UseGrid  bool    `yaml:"use_grid"`
	CellSize float64 `yaml:"cell_size"` // 0 = perception radius
}

// ParallelConfig controls the flock's worker pool.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
	Threshold int `yaml:"threshold"` // Minimum population to fan out
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
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

	cfg.Clamp()

	return cfg, nil
}

// Clamp pulls every value into its documented range. Out-of-range values
// are user-adjustable knobs, so they are corrected rather than rejected.
func (c *Config) Clamp() {
	c.Screen.Width = clamp(c.Screen.Width, 1, 8192)
	c.Screen.Height = clamp(c.Screen.Height, 1, 8192)
	c.Screen.TargetFPS = clamp(c.Screen.TargetFPS, 1, 240)

	f := &c.Flock
	f.Population = clamp(f.Population, 0, 100000)
	f.MaxSpeed = clamp(f.MaxSpeed, 0.01, 100)
	f.InitialSpeed = clamp(f.InitialSpeed, 0.01, f.MaxSpeed)
	f.MaxForce = clamp(f.MaxForce, 0, f.MaxSpeed)
	f.PerceptionRadius = clamp(f.PerceptionRadius, 0, 10000)
	f.SeparationRadius = clamp(f.SeparationRadius, 0, 10000)

	g := &c.Forage
	g.Population = clamp(g.Population, 0, 1000000)
	g.MoveSpeed = clamp(g.MoveSpeed, MinMoveSpeed, MaxMoveSpeed)
	g.TurnSpeed = clamp(g.TurnSpeed, MinTurnSpeed, MaxTurnSpeed)
	g.SensorDistance = clamp(g.SensorDistance, 0, 1000)

	t := &c.Trail
	t.Decay = clamp(t.Decay, 0.001, 0.999)
	t.DepositValue = clamp(t.DepositValue, 0.001, 1)
	t.Diffuse = clamp(t.Diffuse, 0, 0.25)

	c.Spatial.CellSize = clamp(c.Spatial.CellSize, 0, 10000)
	c.Parallel.Workers = clamp(c.Parallel.Workers, 0, 1024)
	c.Parallel.Threshold = max(c.Parallel.Threshold, 1)

	c.Telemetry.StatsWindow = max(c.Telemetry.StatsWindow, 1)
	c.Telemetry.PerfWindow = max(c.Telemetry.PerfWindow, 1)
}

// Foraging parameter ranges exposed to the control panel.
const (
	MinMoveSpeed = 0.1
	MaxMoveSpeed = 10.0
	MinTurnSpeed = 0.1
	MaxTurnSpeed = 5.0
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
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
