package boiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canvasHeight = 400.0

func sampleParticles() []Particle {
	return []Particle{
		{X: 100, Y: 50, VX: 1, VY: -1},
		{X: 120, Y: 199, VX: 0.5, VY: 0.5},
		{X: 140, Y: 300, VX: -1, VY: 2, IsVapor: true},
		{X: 160, Y: 390, VX: 0, VY: 1, IsCondensed: true},
	}
}

func TestReclassifyMarksUpperHalfVaporAtBoiling(t *testing.T) {
	p := DefaultParams()
	ps := sampleParticles()

	p.Reclassify(ps, 100, p.TargetLevels(100).Left, canvasHeight)

	assert.Equal(t, PhaseVapor, ps[0].Phase())
	assert.Equal(t, PhaseVapor, ps[1].Phase())
	assert.False(t, ps[0].IsCondensed)
}

func TestReclassifyRevertsSubmergedParticles(t *testing.T) {
	p := DefaultParams()
	ps := sampleParticles()

	// boundary = 400 - 0.35*400/0.7 = 200
	p.Reclassify(ps, 110, 0.35, canvasHeight)

	assert.Equal(t, PhaseLiquid, ps[2].Phase())
	assert.Equal(t, PhaseLiquid, ps[3].Phase())
}

func TestReclassifyBelowBoilingKeepsUpperParticlesUntouched(t *testing.T) {
	p := DefaultParams()
	ps := []Particle{{Y: 50, IsCondensed: true}}

	p.Reclassify(ps, 90, 0, canvasHeight)

	assert.Equal(t, PhaseCondensed, ps[0].Phase())
}

func TestReclassifyBelowBoilingKeepsUpperPhasesWithFullVessel(t *testing.T) {
	p := DefaultParams()
	// A full vessel puts the water boundary at the top of the canvas.
	require.InDelta(t, 0, p.WaterBoundary(p.MaxWaterLevel, canvasHeight), 1e-9)
	ps := []Particle{
		{Y: 100, VX: 0.3, IsVapor: true},
		{Y: 150, IsCondensed: true},
		{Y: 300, IsCondensed: true},
	}

	p.Reclassify(ps, 90, p.MaxWaterLevel, canvasHeight)

	assert.Equal(t, PhaseVapor, ps[0].Phase())
	assert.Equal(t, PhaseCondensed, ps[1].Phase())
	assert.Equal(t, PhaseLiquid, ps[2].Phase(), "lower half below the boundary reverts")
}

func TestReclassifyIsIdempotentForFlags(t *testing.T) {
	p := DefaultParams()
	for _, temp := range []float64{25, 99.9, 100, 120, 150} {
		once := sampleParticles()
		twice := sampleParticles()
		p.Reclassify(once, temp, 0.4, canvasHeight)
		p.Reclassify(twice, temp, 0.4, canvasHeight)
		p.Reclassify(twice, temp, 0.4, canvasHeight)
		require.Len(t, twice, len(once))
		for i := range once {
			assert.Equal(t, once[i].IsVapor, twice[i].IsVapor, "temp %.1f particle %d", temp, i)
			assert.Equal(t, once[i].IsCondensed, twice[i].IsCondensed, "temp %.1f particle %d", temp, i)
		}
	}
}

func TestVaporSpeedCompoundsAboveBoiling(t *testing.T) {
	p := DefaultParams()
	ps := []Particle{{Y: 10, VX: 0.3, VY: -0.4}}

	prev := ps[0].Speed()
	for tick := 0; tick < 20; tick++ {
		p.Reclassify(ps, 110, 0.3, canvasHeight)
		speed := ps[0].Speed()
		if speed <= prev {
			t.Fatalf("tick %d: speed did not grow (%.6f <= %.6f)", tick, speed, prev)
		}
		prev = speed
	}
	assert.InDelta(t, 0.5*1.2*1.2, func() float64 {
		q := []Particle{{Y: 10, VX: 0.3, VY: -0.4}}
		p.Reclassify(q, 110, 0.3, canvasHeight)
		p.Reclassify(q, 110, 0.3, canvasHeight)
		return q[0].Speed()
	}(), 1e-9)
}

func TestCountPhases(t *testing.T) {
	liquid, vapor, condensed := CountPhases(sampleParticles())

	assert.Equal(t, 2, liquid)
	assert.Equal(t, 1, vapor)
	assert.Equal(t, 1, condensed)
}
