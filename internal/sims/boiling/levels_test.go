package boiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetLevelsAtBoiling(t *testing.T) {
	p := DefaultParams()
	target := p.TargetLevels(100)

	assert.InDelta(t, 0.7*(1-(100.0-25)/(150-25)), target.Left, 1e-12)
	assert.InDelta(t, 0.7*(100.0-25)/(150-25), target.Right, 1e-12)
}

func TestTargetLevelsClampRatio(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, Levels{Left: 0.7, Right: 0}, p.TargetLevels(10))
	assert.Equal(t, Levels{Left: 0, Right: 0.7}, p.TargetLevels(500))
}

func TestStepLevelsConvergesMonotonically(t *testing.T) {
	p := DefaultParams()
	th := Thermal{Temperature: 130, Heating: true}
	target := p.TargetLevels(th.Temperature)
	l := p.BaselineLevels()

	prevLeftGap := math.Abs(l.Left - target.Left)
	prevRightGap := math.Abs(l.Right - target.Right)
	for i := 0; i < 2000; i++ {
		p.StepLevels(&l, th)
		if l.Left < 0 || l.Left > p.MaxWaterLevel || l.Right < 0 || l.Right > p.MaxWaterLevel {
			t.Fatalf("step %d: levels out of range: %+v", i, l)
		}
		leftGap := math.Abs(l.Left - target.Left)
		rightGap := math.Abs(l.Right - target.Right)
		if leftGap > prevLeftGap || rightGap > prevRightGap {
			t.Fatalf("step %d: gap grew (left %.6f>%.6f right %.6f>%.6f)", i, leftGap, prevLeftGap, rightGap, prevRightGap)
		}
		prevLeftGap, prevRightGap = leftGap, rightGap
	}
	assert.InDelta(t, target.Left, l.Left, 1e-6)
	assert.InDelta(t, target.Right, l.Right, 1e-6)
}

func TestStepLevelsRelaxesWhenCold(t *testing.T) {
	p := DefaultParams()
	l := Levels{Left: 0.2, Right: 0.5}

	p.StepLevels(&l, Thermal{Temperature: 25.5})

	assert.InDelta(t, 0.2+0.5*0.01, l.Left, 1e-12)
	assert.InDelta(t, 0.5-0.5*0.01, l.Right, 1e-12)
}

func TestStepLevelsHoldWhileWarmAndIdle(t *testing.T) {
	p := DefaultParams()
	l := Levels{Left: 0.2, Right: 0.5}

	p.StepLevels(&l, Thermal{Temperature: 60})

	assert.Equal(t, Levels{Left: 0.2, Right: 0.5}, l)
}

func TestStepLevelsClampsOutOfRangeInput(t *testing.T) {
	p := DefaultParams()
	l := Levels{Left: 3, Right: -1}

	p.StepLevels(&l, Thermal{Temperature: 60})

	assert.Equal(t, Levels{Left: 0.7, Right: 0}, l)
}

func TestPercentages(t *testing.T) {
	p := DefaultParams()
	l := Levels{Left: 0.35, Right: 0.35}

	assert.InDelta(t, 50.0, p.Transferred(l), 1e-9)
	assert.InDelta(t, 50.0, p.Percent(l.Left), 1e-9)
	assert.InDelta(t, 50.0, p.Percent(l.Right), 1e-9)
}
