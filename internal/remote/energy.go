package remote

import "fmt"

// SpeedOfLight in metres per second.
const SpeedOfLight = 299_792_458.0

// MassEnergy computes E = mc² for a mass given in grams.
func MassEnergy(massGrams float64) Energy {
	kg := massGrams / 1000
	joules := kg * SpeedOfLight * SpeedOfLight
	return Energy{
		Joules:     joules,
		Scientific: fmt.Sprintf("%.2e", joules),
		MassKg:     kg,
		MassGrams:  massGrams,
	}
}
