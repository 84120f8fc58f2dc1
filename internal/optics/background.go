package optics

import (
	"fmt"
	"math"
)

// FlatBackground is a constant ambient source: Irradiance (W/m²) falling on
// the target, seen through Geometry.
type FlatBackground struct {
	Irradiance float64
	Geometry   Geometry
}

var _ SpectrumSource = FlatBackground{}

// Spectrum returns the received background power on axis.
func (b FlatBackground) Spectrum(axis TimeAxis) (Spectrum, error) {
	if err := axis.Validate(); err != nil {
		return Spectrum{}, err
	}
	if !(b.Irradiance >= 0) || math.IsInf(b.Irradiance, 0) {
		return Spectrum{}, fmt.Errorf("%w: background irradiance %g", ErrInvalidGeometry, b.Irradiance)
	}
	gain, err := b.Geometry.BackgroundGain()
	if err != nil {
		return Spectrum{}, err
	}

	p := gain * b.Irradiance
	power := make([]float64, axis.Len)
	for k := range power {
		power[k] = p
	}
	return Spectrum{Axis: axis, Power: power}, nil
}
