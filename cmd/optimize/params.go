// Package main provides CMA-ES optimization for physarum sketch parameters.
package main

import (
	"github.com/pthm-cable/swarmsketch/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Speed bounds match the live control panel.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "move_speed", Path: "forage.move_speed", Min: config.MinMoveSpeed, Max: config.MaxMoveSpeed, Default: 1.0},
			{Name: "turn_speed", Path: "forage.turn_speed", Min: config.MinTurnSpeed, Max: config.MaxTurnSpeed, Default: 0.3},
			{Name: "sensor_distance", Path: "forage.sensor_distance", Min: 1, Max: 20, Default: 5},
			{Name: "trail_decay", Path: "trail.decay", Min: 0.5, Max: 0.99, Default: 0.9},
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

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Forage.MoveSpeed = clamped[0]
	cfg.Forage.TurnSpeed = clamped[1]
	cfg.Forage.SensorDistance = clamped[2]
	cfg.Trail.Decay = clamped[3]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Forage.MoveSpeed,
		cfg.Forage.TurnSpeed,
		cfg.Forage.SensorDistance,
		cfg.Trail.Decay,
	}
}
