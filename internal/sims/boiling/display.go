package boiling

import (
	"image/color"
	"math"
)

// ParticleRadius is the drawn radius of a particle in canvas pixels.
const ParticleRadius = 2

var waterRGB = [3]uint8{74, 144, 226}

// WaterColor returns the water tint at the given opacity in [0,1].
func WaterColor(alpha float64) color.NRGBA {
	return color.NRGBA{R: waterRGB[0], G: waterRGB[1], B: waterRGB[2], A: alphaByte(alpha)}
}

// ParticleAlpha returns the opacity used for a particle phase. Vapor fades as
// the superheat grows but never below 0.2; vapor left over after cooling
// below boiling gets more opaque, capped at 1.
func (p Params) ParticleAlpha(ph Phase, temperature float64) float64 {
	switch ph {
	case PhaseVapor:
		span := p.MaxTemperature - p.BoilingPoint
		if span <= 0 {
			return 0.6
		}
		return clamp(0.6-(temperature-p.BoilingPoint)/span*0.4, 0.2, 1)
	case PhaseCondensed:
		return 0.8
	default:
		return 1
	}
}

// ParticleColor returns the fill colour of a particle at a temperature.
func (p Params) ParticleColor(pt Particle, temperature float64) color.NRGBA {
	return WaterColor(p.ParticleAlpha(pt.Phase(), temperature))
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}
