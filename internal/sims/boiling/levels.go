package boiling

// Levels holds the fill fractions of the heated (left) and collection (right)
// vessels. Both stay within [0, MaxWaterLevel].
type Levels struct {
	Left  float64
	Right float64
}

// BaselineLevels is the resting state: source full, collector empty.
func (p Params) BaselineLevels() Levels {
	return Levels{Left: p.MaxWaterLevel, Right: 0}
}

// TargetLevels maps a temperature to the fill levels the vessels approach
// while heating.
func (p Params) TargetLevels(temperature float64) Levels {
	span := p.MaxTemperature - p.MinTemperature
	ratio := 0.0
	if span > 0 {
		ratio = clamp((temperature-p.MinTemperature)/span, 0, 1)
	}
	return Levels{
		Left:  p.MaxWaterLevel * (1 - ratio),
		Right: p.MaxWaterLevel * ratio,
	}
}

// Smooth moves current a fraction k of the way toward target.
func Smooth(current, target, k float64) float64 {
	return current + (target-current)*k
}

// StepLevels advances the fill levels by one frame. While heating they
// approach the temperature target; once heating is off and the water has
// cooled to the relax threshold they drift back to the baseline. Other states
// leave the levels where they are.
func (p Params) StepLevels(l *Levels, t Thermal) {
	if l == nil {
		return
	}
	switch {
	case t.Heating:
		target := p.TargetLevels(t.Temperature)
		l.Left = Smooth(l.Left, target.Left, p.LevelSmoothing)
		l.Right = Smooth(l.Right, target.Right, p.LevelSmoothing)
	case t.Temperature <= p.RelaxThreshold:
		base := p.BaselineLevels()
		l.Left = Smooth(l.Left, base.Left, p.LevelSmoothing)
		l.Right = Smooth(l.Right, base.Right, p.LevelSmoothing)
	}
	*l = p.ClampLevels(*l)
}

// ClampLevels bounds both levels to [0, MaxWaterLevel].
func (p Params) ClampLevels(l Levels) Levels {
	return Levels{
		Left:  clamp(l.Left, 0, p.MaxWaterLevel),
		Right: clamp(l.Right, 0, p.MaxWaterLevel),
	}
}

// Transferred is the percentage of the source water moved out of the left
// vessel.
func (p Params) Transferred(l Levels) float64 {
	if p.MaxWaterLevel <= 0 {
		return 0
	}
	return (p.MaxWaterLevel - l.Left) / p.MaxWaterLevel * 100
}

// Percent expresses a level as a percentage of the vessel capacity.
func (p Params) Percent(level float64) float64 {
	if p.MaxWaterLevel <= 0 {
		return 0
	}
	return level / p.MaxWaterLevel * 100
}
