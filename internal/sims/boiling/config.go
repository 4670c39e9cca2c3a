package boiling

import (
	"strconv"
	"time"
)

// Params holds the constants of the local thermal, fill-level and particle
// models.
type Params struct {
	MinTemperature float64
	MaxTemperature float64
	BoilingPoint   float64
	HeatStep       float64
	HeatInterval   time.Duration

	MaxWaterLevel  float64
	LevelSmoothing float64
	RelaxThreshold float64

	VaporBoostSpan float64
}

// Config bundles the model parameters with the particle seeding used by the
// offline loopback and the sweep tool.
type Config struct {
	Width     int
	Height    int
	Seed      int64
	Particles int

	Params Params
}

// DefaultParams returns the standard model constants.
func DefaultParams() Params {
	return Params{
		MinTemperature: 25,
		MaxTemperature: 150,
		BoilingPoint:   100,
		HeatStep:       0.1,
		HeatInterval:   50 * time.Millisecond,
		MaxWaterLevel:  0.7,
		LevelSmoothing: 0.01,
		RelaxThreshold: 26,
		VaporBoostSpan: 50,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    400,
		Seed:      1337,
		Particles: 100,
		Params:    DefaultParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Particles = parsed
		}
	}
	c.Params = c.Params.apply(cfg)
	return c
}

func (p Params) apply(cfg map[string]string) Params {
	if v, ok := cfg["heat_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			p.HeatStep = parsed
		}
	}
	if v, ok := cfg["heat_interval"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			p.HeatInterval = parsed
		}
	}
	if v, ok := cfg["level_smoothing"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			p.LevelSmoothing = parsed
		}
	}
	if v, ok := cfg["relax_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.RelaxThreshold = parsed
		}
	}
	if v, ok := cfg["vapor_boost_span"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			p.VaporBoostSpan = parsed
		}
	}
	return p
}

// ClampTemperature bounds t to the model's temperature range.
func (p Params) ClampTemperature(t float64) float64 {
	return clamp(t, p.MinTemperature, p.MaxTemperature)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
