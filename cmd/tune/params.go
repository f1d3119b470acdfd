// Package main provides CMA-ES tuning of match decision parameters.
package main

import (
	"github.com/pthm-cable/touchline/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Decision distances
			{Name: "pressure_distance", Path: "decision.pressure_distance", Min: 2.0, Max: 10.0, Default: 5.0},
			{Name: "support_distance", Path: "decision.support_distance", Min: 5.0, Max: 20.0, Default: 10.0},
			{Name: "pass_max_distance", Path: "decision.pass_max_distance", Min: 10.0, Max: 35.0, Default: 20.0},
			{Name: "pass_clearance", Path: "decision.pass_clearance", Min: 2.0, Max: 10.0, Default: 5.0},
			{Name: "pass_lane_cosine", Path: "decision.pass_lane_cosine", Min: 0.5, Max: 0.95, Default: 0.8},
			{Name: "shooting_distance", Path: "decision.shooting_distance", Min: 15.0, Max: 35.0, Default: 25.0},
			// Movement
			{Name: "slowing_distance", Path: "steering.slowing_distance", Min: 2.0, Max: 12.0, Default: 6.0},
			{Name: "wander_jitter", Path: "steering.wander_jitter", Min: 0.2, Max: 3.0, Default: 1.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw parameter values to [0, 1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize maps [0, 1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp limits raw values to their spec bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		x := v[i]
		if x < spec.Min {
			x = spec.Min
		}
		if x > spec.Max {
			x = spec.Max
		}
		clamped[i] = x
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into a config.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Decision.PressureDistance = v[0]
	cfg.Decision.SupportDistance = v[1]
	cfg.Decision.PassMaxDistance = v[2]
	cfg.Decision.PassClearance = v[3]
	cfg.Decision.PassLaneCosine = v[4]
	cfg.Decision.ShootingDistance = v[5]
	cfg.Steering.SlowingDistance = v[6]
	cfg.Steering.WanderJitter = v[7]
}

// ExtractFromConfig reads the current parameter values out of a config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Decision.PressureDistance,
		cfg.Decision.SupportDistance,
		cfg.Decision.PassMaxDistance,
		cfg.Decision.PassClearance,
		cfg.Decision.PassLaneCosine,
		cfg.Decision.ShootingDistance,
		cfg.Steering.SlowingDistance,
		cfg.Steering.WanderJitter,
	}
}
