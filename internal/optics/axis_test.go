package optics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeAxis(t *testing.T) {
	t.Parallel()

	a, err := NewTimeAxis(0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, TimeAxis{Start: 0, Step: 0.25, Len: 4}, a)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, a.Times())
	assert.Equal(t, 1.0, a.Duration())

	_, err = NewTimeAxis(0, 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidAxis))
	_, err = NewTimeAxis(1, 1, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidAxis))
}

func TestTimeAxisStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	a := TimeAxis{Start: 2e-9, Step: 100e-12, Len: 500}
	times := a.Times()
	for k := 1; k < len(times); k++ {
		assert.Greater(t, times[k], times[k-1])
	}
	assert.InDelta(t, 2e-9+499*100e-12, times[len(times)-1], 1e-21)
}

func TestSpectrumSlice(t *testing.T) {
	t.Parallel()

	s := Spectrum{Axis: TimeAxis{Start: 1, Step: 0.5, Len: 4}, Power: []float64{1, 2, 3, 4}}
	sub := s.Slice(1, 3)
	assert.Equal(t, TimeAxis{Start: 1.5, Step: 0.5, Len: 2}, sub.Axis)
	assert.Equal(t, []float64{2, 3}, sub.Power)
	assert.Equal(t, 2.5, sub.Energy())

	sub.Power[0] = 99
	assert.Equal(t, 2.0, s.Power[1], "slice must not alias the parent")
}

func TestFlatBackground(t *testing.T) {
	t.Parallel()

	geom := testGeometry()
	gain, err := geom.BackgroundGain()
	require.NoError(t, err)

	axis := TimeAxis{Start: 0, Step: testStep, Len: 10}
	spec, err := FlatBackground{Irradiance: 500, Geometry: geom}.Spectrum(axis)
	require.NoError(t, err)
	require.Len(t, spec.Power, 10)
	for _, p := range spec.Power {
		assert.InEpsilon(t, 500*gain, p, 1e-12)
	}
	assert.Equal(t, axis, spec.Axis)

	_, err = FlatBackground{Irradiance: -1, Geometry: geom}.Spectrum(axis)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, err = FlatBackground{Irradiance: 1, Geometry: geom}.Spectrum(TimeAxis{Step: 0})
	assert.True(t, errors.Is(err, ErrInvalidAxis))
}
