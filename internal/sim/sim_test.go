package sim

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/banshee-data/tofsim/internal/config"
	"github.com/banshee-data/tofsim/internal/monitoring"
	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/banshee-data/tofsim/internal/photon"
	"github.com/banshee-data/tofsim/internal/timeutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func quiet(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

func scenario(t *testing.T, cfg *config.RunConfig) (config.Scenario, config.Physics) {
	t.Helper()
	phys := cfg.Physics()
	s, err := cfg.Scenario(phys)
	require.NoError(t, err)
	return s, phys
}

func smallConfig() *config.RunConfig {
	return &config.RunConfig{
		NImp:     ptr(20),
		Z:        ptr(30.0),
		BkgPower: ptr(0.0),
		Seed:     ptr(uint64(7)),
	}
}

func TestRunEstimatesRange(t *testing.T) {
	quiet(t)
	s, phys := scenario(t, smallConfig())

	res, err := Run(s, phys, Options{})
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Len(t, res.Laser.Power, 20*optics.SamplesPerWindow(s.Pulse.Period, s.TimeStep))
	assert.Equal(t, res.Laser.Axis, res.Background.Axis)
	assert.Zero(t, res.BackgroundDraw.Photons())
	assert.Positive(t, res.LaserDraw.Photons())
	assert.Equal(t, len(res.LaserDraw.Times), photon.Count(res.Events, photon.Laser))

	// One folded phase per period at most.
	assert.LessOrEqual(t, len(res.Phases), s.Pulse.Count)
	require.True(t, res.RangeOK)
	// First-photon detection sits on the leading edge of the pulse.
	assert.InDelta(t, 30.0, res.Range, 1.0)
	assert.Less(t, res.Range, 30.0)
}

func TestRunDeterministic(t *testing.T) {
	quiet(t)
	cfg := smallConfig()
	cfg.BkgPower = ptr(1e-4)
	s, phys := scenario(t, cfg)

	a, err := Run(s, phys, Options{})
	require.NoError(t, err)
	b, err := Run(s, phys, Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, a.Histogram, b.Histogram)
	assert.Positive(t, photon.Count(a.Events, photon.Background))
}

func TestRunExplicitSource(t *testing.T) {
	quiet(t)
	s, phys := scenario(t, smallConfig())

	a, err := Run(s, phys, Options{Source: rand.NewPCG(1, 2)})
	require.NoError(t, err)
	b, err := Run(s, phys, Options{Source: rand.NewPCG(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, a.LaserDraw, b.LaserDraw)
}

func TestRunProgressAndDetector(t *testing.T) {
	quiet(t)
	s, phys := scenario(t, smallConfig())

	var pulses int
	var seen int
	res, err := Run(s, phys, Options{
		Progress: func(done, total int) { pulses = done },
		Detector: DetectorFunc(func(events []photon.Event) ([]photon.Event, error) {
			seen = len(events)
			return nil, nil
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, s.Pulse.Count, pulses)
	assert.Equal(t, len(res.Events), seen)
	assert.Empty(t, res.Phases)
	assert.False(t, res.RangeOK)
	assert.Zero(t, res.Histogram.Total())
}

type badBackground struct{}

func (badBackground) Spectrum(axis optics.TimeAxis) (optics.Spectrum, error) {
	return optics.Spectrum{Axis: axis, Power: make([]float64, 3)}, nil
}

func TestRunErrors(t *testing.T) {
	quiet(t)
	s, phys := scenario(t, smallConfig())

	_, err := Run(s, config.Physics{}, Options{})
	assert.Error(t, err)

	_, err = Run(s, phys, Options{Background: badBackground{}})
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = Run(s, phys, Options{Detector: DetectorFunc(func([]photon.Event) ([]photon.Event, error) {
		return nil, boom
	})})
	assert.ErrorIs(t, err, boom)

	bad := s
	bad.Pulse.Sigma = 0
	_, err = Run(bad, phys, Options{})
	assert.ErrorIs(t, err, optics.ErrInvalidPulseTrain)
}

func TestRunBackgroundOnly(t *testing.T) {
	quiet(t)
	cfg := smallConfig()
	cfg.LaserPower = ptr(0.0)
	cfg.BkgPower = ptr(1e-3)
	s, phys := scenario(t, cfg)

	res, err := Run(s, phys, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.LaserDraw.Photons())
	assert.Equal(t, len(res.Events), photon.Count(res.Events, photon.Background))
	for _, p := range res.Phases {
		assert.True(t, p >= 0 && p < s.Pulse.Period && !math.IsNaN(p))
	}
}

func TestRunTiming(t *testing.T) {
	quiet(t)
	s, phys := scenario(t, smallConfig())
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	clock := timeutil.NewTickingClock(start, 2*time.Second)

	res, err := Run(s, phys, Options{Clock: clock})
	require.NoError(t, err)
	assert.Equal(t, start, res.Started)
	assert.Equal(t, 2*time.Second, res.Elapsed)
}
