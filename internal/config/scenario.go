package config

import (
	"fmt"
	"math"

	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/banshee-data/tofsim/internal/units"
)

// Detector carries the per-pixel detector parameters in SI units. The
// simulator does not model the detector; they are passed through to the
// pipeline that consumes the photon events.
type Detector struct {
	PixelSize            int
	PDP                  float64
	DeadTime             float64
	SPADJitter           float64
	TDCJitter            float64
	CoincidenceThreshold int
	CoincidenceWindow    float64
}

// Scenario is a RunConfig resolved to SI units.
type Scenario struct {
	Pulse                optics.PulseTrain
	Geometry             optics.Geometry
	Edge                 optics.EdgePolicy
	TimeStep             float64
	BinWidth             int
	BackgroundIrradiance float64
	Histogram            histogram.Config
	Detector             Detector
	Seed                 uint64
}

// PulseEnergy returns the energy of a Gaussian pulse with the given peak
// power and temporal spread, √(2π)·σ·P.
func PulseEnergy(peakPower, sigma float64) float64 {
	return math.Sqrt(2*math.Pi) * sigma * peakPower
}

// Scenario validates the configuration and converts it to SI units using
// phys for the round-trip delays.
func (c *RunConfig) Scenario(phys Physics) (Scenario, error) {
	if err := c.Validate(); err != nil {
		return Scenario{}, err
	}
	if err := phys.Validate(); err != nil {
		return Scenario{}, err
	}
	edge, err := optics.ParseEdgePolicy(c.GetEdgePolicy())
	if err != nil {
		return Scenario{}, err
	}

	sigma := units.NanosToSeconds(c.GetLaserSigma())
	period := units.MicrosToSeconds(c.GetPulseDistance())
	pixelSide := units.MicronsToMetres(c.GetSPADSize()) * float64(c.GetPixelSize())

	s := Scenario{
		Pulse: optics.PulseTrain{
			Count:  c.GetNImp(),
			Period: period,
			Sigma:  sigma,
			Energy: PulseEnergy(c.GetLaserPower(), sigma),
			Offset: units.RoundTripDelay(c.GetZ(), phys.SpeedOfLight),
		},
		Geometry: optics.Geometry{
			Transmission: c.GetTau(),
			Reflectivity: c.GetRhoTgt(),
			FillFactor:   c.GetFillFactor(),
			PixelArea:    pixelSide * pixelSide,
			FocalLength:  units.MillimetresToMetres(c.GetFLens()),
			LensDiameter: units.MillimetresToMetres(c.GetDLens()),
			ThetaH:       units.MilliradiansToRadians(c.GetThetaH()),
			ThetaV:       units.MilliradiansToRadians(c.GetThetaV()),
			Range:        c.GetZ(),
		},
		Edge:                 edge,
		TimeStep:             units.PicosToSeconds(c.GetTimeStep()),
		BinWidth:             c.GetBinWidth(),
		BackgroundIrradiance: c.GetBkgPower(),
		Histogram: histogram.Config{
			TMin:      units.RoundTripDelay(c.GetRangeMin(), phys.SpeedOfLight),
			Period:    period,
			TDCBits:   c.GetNBitTDC(),
			CountBits: c.GetNBitHist(),
		},
		Detector: Detector{
			PixelSize:            c.GetPixelSize(),
			PDP:                  c.GetPDP(),
			DeadTime:             units.NanosToSeconds(c.GetTDead()),
			SPADJitter:           units.PicosToSeconds(c.GetSPADJitter()),
			TDCJitter:            units.PicosToSeconds(c.GetTDCJitter()),
			CoincidenceThreshold: c.GetCoincThr(),
			CoincidenceWindow:    3 * sigma,
		},
		Seed: c.GetSeed(),
	}

	if err := s.Pulse.Validate(); err != nil {
		return Scenario{}, err
	}
	if _, err := s.Geometry.Gain(); err != nil {
		return Scenario{}, err
	}
	if err := s.Histogram.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("range_min %g m: %w", c.GetRangeMin(), err)
	}
	if n := s.Pulse.Count * optics.SamplesPerWindow(period, s.TimeStep); n < 1 || s.BinWidth > n {
		return Scenario{}, fmt.Errorf("bin_width %d not in [1, %d] for time_step %g ps", s.BinWidth, n, c.GetTimeStep())
	}
	return s, nil
}
