package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PulseTrain describes the periodic laser emission as seen at the detector.
// Times are in seconds, Energy in joules.
type PulseTrain struct {
	Count  int     // number of pulses
	Period float64 // pulse repetition interval
	Sigma  float64 // temporal spread of one pulse
	Energy float64 // energy of one pulse
	Offset float64 // delay of the first pulse, usually the round-trip time
}

// Validate checks the pulse train invariants.
func (p PulseTrain) Validate() error {
	switch {
	case p.Count < 1:
		return fmt.Errorf("%w: count %d", ErrInvalidPulseTrain, p.Count)
	case !(p.Period > 0) || math.IsInf(p.Period, 0):
		return fmt.Errorf("%w: period %g", ErrInvalidPulseTrain, p.Period)
	case !(p.Sigma > 0) || math.IsInf(p.Sigma, 0):
		return fmt.Errorf("%w: sigma %g", ErrInvalidPulseTrain, p.Sigma)
	case !(p.Energy >= 0) || math.IsInf(p.Energy, 0):
		return fmt.Errorf("%w: energy %g", ErrInvalidPulseTrain, p.Energy)
	case !(p.Offset >= 0) || math.IsInf(p.Offset, 0):
		return fmt.Errorf("%w: offset %g", ErrInvalidPulseTrain, p.Offset)
	}
	return nil
}

// Center returns the arrival time of pulse i.
func (p PulseTrain) Center(i int) float64 {
	return p.Offset + float64(i)*p.Period
}

// Gaussian is the normalized Gaussian density with mean mu and standard
// deviation sigma evaluated at x.
func Gaussian(x, mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}
