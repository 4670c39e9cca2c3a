package boiling

import "math"

// Particle is a single water particle as pushed by the server. The client
// only flips phase flags and scales velocity between pushes.
type Particle struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	IsVapor     bool    `json:"is_vapor"`
	IsCondensed bool    `json:"is_condensed"`
}

// Phase names the visual state of a particle.
type Phase uint8

const (
	PhaseLiquid Phase = iota
	PhaseVapor
	PhaseCondensed
)

func (ph Phase) String() string {
	switch ph {
	case PhaseVapor:
		return "vapor"
	case PhaseCondensed:
		return "condensed"
	default:
		return "liquid"
	}
}

// Phase derives the particle phase from its flags. Vapor wins over condensed.
func (pt Particle) Phase() Phase {
	switch {
	case pt.IsVapor:
		return PhaseVapor
	case pt.IsCondensed:
		return PhaseCondensed
	default:
		return PhaseLiquid
	}
}

// Speed returns the magnitude of the particle velocity.
func (pt Particle) Speed() float64 {
	return math.Hypot(pt.VX, pt.VY)
}

// WaterBoundary returns the canvas y coordinate of the left vessel's water
// surface as used for reclassification.
func (p Params) WaterBoundary(left, height float64) float64 {
	if p.MaxWaterLevel <= 0 {
		return height
	}
	return height - left*height/p.MaxWaterLevel
}

// Reclassify updates phase flags for every particle and accelerates vapor.
//
// Particles in the upper half of the canvas turn to vapor once the water
// boils and are otherwise left alone; lower-half particles below the water
// boundary revert to liquid. Vapor velocity
// is multiplied by 1+(T-boiling)/VaporBoostSpan on every call, so it
// compounds across frames.
func (p Params) Reclassify(particles []Particle, temperature, left, height float64) {
	half := height / 2
	boundary := p.WaterBoundary(left, height)
	boiling := p.Boiling(temperature)
	boost := 1.0
	if p.VaporBoostSpan > 0 {
		boost = 1 + (temperature-p.BoilingPoint)/p.VaporBoostSpan
	}
	for i := range particles {
		pt := &particles[i]
		if pt.Y < half {
			if boiling {
				pt.IsVapor = true
				pt.IsCondensed = false
			}
		} else if pt.Y > boundary {
			pt.IsVapor = false
			pt.IsCondensed = false
		}
		if pt.IsVapor {
			pt.VX *= boost
			pt.VY *= boost
		}
	}
}

// CountPhases tallies particles per phase.
func CountPhases(particles []Particle) (liquid, vapor, condensed int) {
	for _, pt := range particles {
		switch pt.Phase() {
		case PhaseVapor:
			vapor++
		case PhaseCondensed:
			condensed++
		default:
			liquid++
		}
	}
	return liquid, vapor, condensed
}
