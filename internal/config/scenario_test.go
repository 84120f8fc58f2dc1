package config

import (
	"math"
	"testing"

	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysics(t *testing.T) {
	p := DefaultPhysics()
	require.NoError(t, p.Validate())
	// h·c/λ at 905 nm.
	assert.InEpsilon(t, 2.195e-19, p.PhotonEnergy(), 1e-3)

	p.Wavelength = 0
	assert.Error(t, p.Validate())

	cfg := &RunConfig{Wavelength: ptrFloat64(1550)}
	assert.InEpsilon(t, 1550e-9, cfg.Physics().Wavelength, 1e-12)
}

func TestPulseEnergy(t *testing.T) {
	// A Gaussian with peak P and spread σ integrates to √(2π)·σ·P.
	sigma, peak := 1e-9, 50.0
	var sum float64
	dt := sigma / 100
	for x := -10 * sigma; x <= 10*sigma; x += dt {
		sum += peak * math.Exp(-x*x/(2*sigma*sigma)) * dt
	}
	assert.InEpsilon(t, sum, PulseEnergy(peak, sigma), 1e-6)
}

func TestScenarioFromDefaults(t *testing.T) {
	cfg := DefaultRunConfig()
	phys := cfg.Physics()
	s, err := cfg.Scenario(phys)
	require.NoError(t, err)

	assert.Equal(t, 100, s.Pulse.Count)
	assert.InEpsilon(t, 1e-6, s.Pulse.Period, 1e-12)
	assert.InEpsilon(t, 1e-9, s.Pulse.Sigma, 1e-12)
	assert.InEpsilon(t, math.Sqrt(2*math.Pi)*1e-9*50, s.Pulse.Energy, 1e-12)
	assert.InEpsilon(t, 100/phys.SpeedOfLight, s.Pulse.Offset, 1e-12)

	assert.InEpsilon(t, math.Pow(8*30e-6, 2), s.Geometry.PixelArea, 1e-12)
	assert.InEpsilon(t, 0.025, s.Geometry.FocalLength, 1e-12)
	assert.InEpsilon(t, 0.0125, s.Geometry.LensDiameter, 1e-12)
	assert.InEpsilon(t, 0.05, s.Geometry.ThetaH, 1e-12)
	assert.Equal(t, 50.0, s.Geometry.Range)

	assert.Equal(t, optics.Truncate, s.Edge)
	assert.InEpsilon(t, 100e-12, s.TimeStep, 1e-12)
	assert.Equal(t, 1, s.BinWidth)
	assert.Equal(t, 12, s.Histogram.TDCBits)
	assert.Equal(t, 8, s.Histogram.CountBits)
	assert.InEpsilon(t, 2/phys.SpeedOfLight, s.Histogram.TMin, 1e-12)
	assert.InEpsilon(t, 20e-9, s.Detector.DeadTime, 1e-12)
	assert.InEpsilon(t, 3e-9, s.Detector.CoincidenceWindow, 1e-12)
	assert.Equal(t, uint64(1), s.Seed)
}

func TestScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  *RunConfig
		phys Physics
	}{
		{"bad physics", &RunConfig{}, Physics{}},
		{"minimum range beyond period", &RunConfig{RangeMin: ptrFloat64(200)}, DefaultPhysics()},
		{"time step longer than period", &RunConfig{TimeStep: ptrFloat64(2e6)}, DefaultPhysics()},
		{"bin width beyond axis", &RunConfig{NImp: ptrInt(1), BinWidth: ptrInt(20000)}, DefaultPhysics()},
		{"invalid field", &RunConfig{Tau: ptrFloat64(-1)}, DefaultPhysics()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Scenario(tt.phys)
			assert.Error(t, err)
		})
	}
}
