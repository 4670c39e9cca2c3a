package boiling

import "fmt"

// Summary renders the info panel lines for a temperature and fill state.
func (p Params) Summary(temperature float64, l Levels) []string {
	transferred := fmt.Sprintf("Water transferred: %.1f%%", p.Transferred(l))
	left := fmt.Sprintf("Left vessel: %.1f%%", p.Percent(l.Left))
	right := fmt.Sprintf("Right vessel: %.1f%%", p.Percent(l.Right))
	if temperature < p.BoilingPoint {
		return []string{
			"Temperature: " + FormatTemperature(temperature),
			"Pre-boiling phase",
			transferred,
			left,
			right,
		}
	}
	return []string{
		fmt.Sprintf("Boiling at %s!", FormatTemperature(temperature)),
		transferred,
		left,
		right,
	}
}
