package photon

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/banshee-data/tofsim/internal/optics"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrInvalidBinWidth     = errors.New("photon: bin width out of range")
	ErrNegativeExpectation = errors.New("photon: negative or non-finite expected count")
	ErrLengthMismatch      = errors.New("photon: spectrum length does not match its axis")
	ErrInvalidPhotonEnergy = errors.New("photon: photon energy must be positive")
	ErrExpectationTooLarge = errors.New("photon: expected count exceeds MaxExpectation")
)

// MaxExpectation is the largest mean a bin may have. Above 2^53 a float64
// no longer holds every integer, and far above it a draw overflows int.
const MaxExpectation = 1 << 53

// ExpectedCounts returns the mean number of photons in each bin of binWidth
// samples. Every binWidth-th power sample stands for its whole bin, so the
// count is P·(binWidth·Δt)/E_ph.
func ExpectedCounts(spec optics.Spectrum, binWidth int, photonEnergy float64) ([]float64, error) {
	if err := spec.Axis.Validate(); err != nil {
		return nil, err
	}
	if len(spec.Power) != spec.Axis.Len {
		return nil, fmt.Errorf("%w: %d samples, axis has %d", ErrLengthMismatch, len(spec.Power), spec.Axis.Len)
	}
	if binWidth < 1 || binWidth > len(spec.Power) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidBinWidth, binWidth, len(spec.Power))
	}
	if !(photonEnergy > 0) || math.IsInf(photonEnergy, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPhotonEnergy, photonEnergy)
	}

	deltaT := float64(binWidth) * spec.Axis.Step
	out := make([]float64, 0, (len(spec.Power)+binWidth-1)/binWidth)
	for k := 0; k < len(spec.Power); k += binWidth {
		p := spec.Power[k]
		if !(p >= 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: power %g at sample %d", ErrNegativeExpectation, p, k)
		}
		mean := p * deltaT / photonEnergy
		if math.IsInf(mean, 0) {
			return nil, fmt.Errorf("%w: mean %g at sample %d", ErrNegativeExpectation, mean, k)
		}
		out = append(out, mean)
	}
	return out, nil
}

// Draw is the outcome of sampling one spectrum.
type Draw struct {
	// Counts holds the photons drawn in each bin.
	Counts []int
	// Times holds the start of every bin with at least one photon. Several
	// photons in one bin share a single timestamp.
	Times []float64
}

// Photons is the total number of photons drawn.
func (d Draw) Photons() int {
	n := 0
	for _, c := range d.Counts {
		n += c
	}
	return n
}

// Events tags the occupied bin timestamps with origin.
func (d Draw) Events(origin Origin) []Event {
	return Tag(d.Times, origin)
}

// Sampler draws photon counts with an explicit random source. A Sampler is
// not safe for concurrent use because the source is not.
type Sampler struct {
	src          rand.Source
	photonEnergy float64
}

// NewSampler returns a Sampler drawing from src. photonEnergy is the energy
// of one photon in joules.
func NewSampler(src rand.Source, photonEnergy float64) *Sampler {
	return &Sampler{src: src, photonEnergy: photonEnergy}
}

// NewSeededSampler returns a Sampler with a PCG source seeded from seed.
func NewSeededSampler(seed uint64, photonEnergy float64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), photonEnergy)
}

// Sample draws a Poisson photon count for each bin of spec and returns the
// counts together with the start times of the occupied bins.
func (s *Sampler) Sample(spec optics.Spectrum, binWidth int) (Draw, error) {
	means, err := ExpectedCounts(spec, binWidth, s.photonEnergy)
	if err != nil {
		return Draw{}, err
	}

	for i, lambda := range means {
		if lambda > MaxExpectation {
			return Draw{}, fmt.Errorf("%w: %g in bin %d", ErrExpectationTooLarge, lambda, i)
		}
	}

	d := Draw{Counts: make([]int, len(means))}
	for i, lambda := range means {
		if lambda == 0 {
			continue
		}
		n := int(distuv.Poisson{Lambda: lambda, Src: s.src}.Rand())
		d.Counts[i] = n
		if n >= 1 {
			d.Times = append(d.Times, spec.Axis.At(i*binWidth))
		}
	}
	return d, nil
}
