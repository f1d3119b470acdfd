// Package config provides configuration loading and access for the match engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all match simulation parameters.
type Config struct {
	Field     FieldConfig     `yaml:"field"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Decision  DecisionConfig  `yaml:"decision"`
	Steering  SteeringConfig  `yaml:"steering"`
	Engine    EngineConfig    `yaml:"engine"`
	Squad     SquadConfig     `yaml:"squad"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds pitch dimensions in meters.
type FieldConfig struct {
	Width  float64 `yaml:"width"`  // touchline to touchline along X
	Height float64 `yaml:"height"` // goal line to goal line along Y
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// DecisionConfig holds the rule thresholds used by state fast paths.
type DecisionConfig struct {
	PressureDistance float64 `yaml:"pressure_distance"` // opponent inside this = under pressure
	SupportDistance  float64 `yaml:"support_distance"`  // teammate inside this = supported
	PassMaxDistance  float64 `yaml:"pass_max_distance"` // candidates beyond this are ignored
	PassClearance    float64 `yaml:"pass_clearance"`    // min opponent distance from a candidate
	PassLaneCosine   float64 `yaml:"pass_lane_cosine"`  // min dot of ball-dir and teammate-dir
	ShootingDistance float64 `yaml:"shooting_distance"` // forwards shoot inside this
	TackleDistance   float64 `yaml:"tackle_distance"`   // defenders tackle inside this
	KeeperOutDistance float64 `yaml:"keeper_out_distance"` // keeper comes out inside this
}

// SteeringConfig holds shared steering parameters.
type SteeringConfig struct {
	SlowingDistance float64 `yaml:"slowing_distance"` // Arrive radius
	WanderRadius    float64 `yaml:"wander_radius"`
	WanderJitter    float64 `yaml:"wander_jitter"`
	WanderDistance  float64 `yaml:"wander_distance"`
}

// EngineConfig holds tick evaluation parameters.
type EngineConfig struct {
	ParallelThreshold int `yaml:"parallel_threshold"` // min player count for the worker pool
}

// SquadConfig holds squad composition for the headless runner.
type SquadConfig struct {
	PlayersPerSide int `yaml:"players_per_side"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // simulated seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	FieldW32 float32
	FieldH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.FieldW32 = float32(c.Field.Width)
	c.Derived.FieldH32 = float32(c.Field.Height)
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
