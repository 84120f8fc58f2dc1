package config

import (
	"fmt"
	"math"
)

// Physics holds the physical constants used by the simulation. It is passed
// by value to the components that need it.
type Physics struct {
	SpeedOfLight float64 // m/s
	Planck       float64 // J·s
	Wavelength   float64 // laser wavelength in metres
}

// DefaultPhysics returns SI constants for a 905 nm emitter.
func DefaultPhysics() Physics {
	return Physics{
		SpeedOfLight: 299792458,
		Planck:       6.62607015e-34,
		Wavelength:   905e-9,
	}
}

// PhotonEnergy is the energy of one photon at the laser wavelength, h·c/λ.
func (p Physics) PhotonEnergy() float64 {
	return p.Planck * p.SpeedOfLight / p.Wavelength
}

// Validate checks that every constant is positive and finite.
func (p Physics) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"speed of light", p.SpeedOfLight},
		{"planck constant", p.Planck},
		{"wavelength", p.Wavelength},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be positive, got %g", f.name, f.v)
		}
	}
	return nil
}
