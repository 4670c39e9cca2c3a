package boiling

import (
	"fmt"
	"math"
)

// CelsiusToFahrenheit converts a Celsius temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FormatTemperature renders a temperature as whole degrees in both scales,
// e.g. "100°C / 212°F". Halves round up.
func FormatTemperature(c float64) string {
	return fmt.Sprintf("%d°C / %d°F", RoundHalfUp(c), RoundHalfUp(CelsiusToFahrenheit(c)))
}

// RoundHalfUp rounds to the nearest integer, halves toward +Inf.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
