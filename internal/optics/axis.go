package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// TimeAxis is an evenly spaced sequence of sample instants. Sample k is at
// Start + k*Step.
type TimeAxis struct {
	Start float64
	Step  float64
	Len   int
}

// NewTimeAxis returns the axis covering [start, stop) with the given step.
// The number of samples is floor((stop-start)/step).
func NewTimeAxis(start, stop, step float64) (TimeAxis, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return TimeAxis{}, fmt.Errorf("%w: step %g", ErrInvalidAxis, step)
	}
	if !(stop > start) {
		return TimeAxis{}, fmt.Errorf("%w: stop %g <= start %g", ErrInvalidAxis, stop, start)
	}
	return TimeAxis{Start: start, Step: step, Len: int(math.Floor((stop - start) / step))}, nil
}

// Validate checks the axis invariants.
func (a TimeAxis) Validate() error {
	if !(a.Step > 0) || math.IsInf(a.Step, 0) {
		return fmt.Errorf("%w: step %g", ErrInvalidAxis, a.Step)
	}
	if a.Len < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidAxis, a.Len)
	}
	if math.IsNaN(a.Start) || math.IsInf(a.Start, 0) {
		return fmt.Errorf("%w: start %g", ErrInvalidAxis, a.Start)
	}
	return nil
}

// At returns the instant of sample k.
func (a TimeAxis) At(k int) float64 {
	return a.Start + float64(k)*a.Step
}

// Duration is the time spanned by Len samples.
func (a TimeAxis) Duration() float64 {
	return float64(a.Len) * a.Step
}

// Times materializes the axis.
func (a TimeAxis) Times() []float64 {
	out := make([]float64, a.Len)
	for k := range out {
		out[k] = a.At(k)
	}
	return out
}

// Spectrum is optical power (W) sampled on Axis.
type Spectrum struct {
	Axis  TimeAxis
	Power []float64
}

// Energy integrates the spectrum with a rectangle rule.
func (s Spectrum) Energy() float64 {
	return floats.Sum(s.Power) * s.Axis.Step
}

// Slice returns the part of the spectrum between sample indices lo and hi.
// The returned power shares no memory with s.
func (s Spectrum) Slice(lo, hi int) Spectrum {
	p := make([]float64, hi-lo)
	copy(p, s.Power[lo:hi])
	return Spectrum{
		Axis:  TimeAxis{Start: s.Axis.At(lo), Step: s.Axis.Step, Len: hi - lo},
		Power: p,
	}
}

// SpectrumSource produces a spectrum on a caller-chosen axis. Background
// generators implement it so that their output can be sampled exactly like
// the laser spectrum.
type SpectrumSource interface {
	Spectrum(axis TimeAxis) (Spectrum, error)
}
