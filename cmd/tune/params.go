package main

import (
	"math"

	"github.com/pthm-cable/fishbowl/config"
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

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Spawning
			{Name: "spawn_max_speed", Path: "spawn.max_speed", Min: 5, Max: 40, Default: 25},
			// Shark
			{Name: "shark_dash_chance", Path: "shark.dash_chance", Min: 2, Max: 40, Default: 12},
			{Name: "shark_dash_mult", Path: "shark.dash_multiplier", Min: 1.5, Max: 4.0, Default: 2.6},
			{Name: "shark_cruise_mult", Path: "shark.cruise_multiplier", Min: 0.8, Max: 2.0, Default: 1.4},
			// Player
			{Name: "player_speed", Path: "player.speed", Min: 4, Max: 20, Default: 10},
			{Name: "power_milestone", Path: "player.power_milestone", Min: 10, Max: 50, Default: 25},
			{Name: "damage_debounce", Path: "player.damage_debounce", Min: 60, Max: 360, Default: 180},
			// Power-up
			{Name: "powerup_delay", Path: "powerup.delay_frames", Min: 120, Max: 1800, Default: 600},
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
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	round := func(v float64) int { return int(math.Round(v)) }

	cfg.Spawn.MaxSpeed = max(round(c[0]), cfg.Spawn.MinSpeed)
	cfg.Shark.DashChance = round(c[1])
	cfg.Shark.DashMultiplier = c[2]
	cfg.Shark.CruiseMultiplier = c[3]
	cfg.Player.Speed = round(c[4])
	cfg.Player.PowerMilestone = round(c[5])
	cfg.Player.DamageDebounce = round(c[6])
	cfg.PowerUp.DelayFrames = round(c[7])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Spawn.MaxSpeed),
		float64(cfg.Shark.DashChance),
		cfg.Shark.DashMultiplier,
		cfg.Shark.CruiseMultiplier,
		float64(cfg.Player.Speed),
		float64(cfg.Player.PowerMilestone),
		float64(cfg.Player.DamageDebounce),
		float64(cfg.PowerUp.DelayFrames),
	}
}
