package boiling

import "math"

// Thermal is the locally extrapolated heat state of the left vessel.
type Thermal struct {
	Temperature float64
	Heating     bool
}

// NewThermal returns a cold, idle thermal state.
func (p Params) NewThermal() Thermal {
	return Thermal{Temperature: p.MinTemperature}
}

// AdvanceHeating applies one heating-ramp tick. It reports whether the
// temperature sits at the maximum after the tick.
func (p Params) AdvanceHeating(t *Thermal) bool {
	if t == nil {
		return false
	}
	if t.Heating && t.Temperature < p.MaxTemperature {
		t.Temperature = math.Min(t.Temperature+p.HeatStep, p.MaxTemperature)
	}
	return t.Temperature >= p.MaxTemperature
}

// AdvanceCooling decays the temperature toward the minimum while heating is
// off. The decay is faster the hotter the water is.
func (p Params) AdvanceCooling(t *Thermal) bool {
	if t == nil || t.Heating || t.Temperature <= p.MinTemperature {
		return false
	}
	rate := 0.2 + (t.Temperature-p.MinTemperature)/p.MaxTemperature
	t.Temperature = math.Max(t.Temperature-rate, p.MinTemperature)
	return true
}

// TransferRate returns the evaporation rate for a temperature. Below the
// boiling point it grows linearly, above it quadratically with superheat.
func (p Params) TransferRate(temperature float64) float64 {
	t := p.ClampTemperature(temperature)
	if t < p.BoilingPoint {
		return 0.0002 * (t / p.BoilingPoint)
	}
	excess := p.Superheat(t)
	return 0.002 * (1 + excess*excess)
}

// Superheat returns how far past boiling t is as a fraction of the span
// between the boiling point and the maximum, or zero below boiling.
func (p Params) Superheat(t float64) float64 {
	span := p.MaxTemperature - p.BoilingPoint
	if span <= 0 || t <= p.BoilingPoint {
		return 0
	}
	return (t - p.BoilingPoint) / span
}

// Boiling reports whether t is at or above the boiling point.
func (p Params) Boiling(t float64) bool {
	return t >= p.BoilingPoint
}
