package boiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTemperature(t *testing.T) {
	cases := map[float64]string{
		100:   "100°C / 212°F",
		25:    "25°C / 77°F",
		150:   "150°C / 302°F",
		99.5:  "100°C / 211°F",
		36.6:  "37°C / 98°F",
		-40:   "-40°C / -40°F",
		25.49: "25°C / 78°F",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatTemperature(in), "input %.2f", in)
	}
}

func TestSummaryPhases(t *testing.T) {
	p := DefaultParams()
	l := Levels{Left: 0.35, Right: 0.35}

	cold := p.Summary(60, l)
	assert.Equal(t, []string{
		"Temperature: 60°C / 140°F",
		"Pre-boiling phase",
		"Water transferred: 50.0%",
		"Left vessel: 50.0%",
		"Right vessel: 50.0%",
	}, cold)

	hot := p.Summary(100, l)
	assert.Equal(t, "Boiling at 100°C / 212°F!", hot[0])
	assert.Len(t, hot, 4)
}

func TestParticleColorByPhase(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, uint8(255), p.ParticleColor(Particle{}, 120).A)
	assert.Equal(t, uint8(204), p.ParticleColor(Particle{IsCondensed: true}, 120).A)
	assert.Equal(t, uint8(153), p.ParticleColor(Particle{IsVapor: true}, 100).A)
	assert.Equal(t, uint8(51), p.ParticleColor(Particle{IsVapor: true}, 150).A)
	assert.InDelta(t, 0.4, p.ParticleAlpha(PhaseVapor, 125), 1e-9)
}
