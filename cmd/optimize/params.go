// Package main provides CMA-ES optimization for snake evolution parameters.
package main

import (
	"math"

	"github.com/pthm-cable/snakevo/config"
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
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "mutation_sigma", Path: "mutation.sigma", Min: 0.02, Max: 1.0, Default: 0.1},
			{Name: "hidden", Path: "neural.hidden", Min: 8, Max: 160, Default: 80},
			{Name: "max_updates", Path: "generation.max_updates", Min: 100, Max: 600, Default: 200},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and recomputes
// derived values. Integer parameters are rounded.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Mutation.Rate = clamped[0]
	cfg.Mutation.Sigma = clamped[1]
	cfg.Neural.Hidden = int(math.Round(clamped[2]))
	cfg.Generation.MaxUpdates = int(math.Round(clamped[3]))

	return cfg.Finalize()
}
