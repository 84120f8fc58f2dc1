package optics

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// EdgePolicy selects how a pulse is treated at the boundaries of its period
// window.
type EdgePolicy int

const (
	// Truncate evaluates each pulse on its own window only. Tails outside the
	// window are dropped.
	Truncate EdgePolicy = iota
	// Wrap folds tails that leave the window back in at the opposite edge, so
	// each window carries the full pulse energy.
	Wrap
	// Superpose sums every pulse over the whole axis.
	Superpose
)

// wrapSpan is the number of standard deviations beyond which periodic images
// are not summed by Wrap.
const wrapSpan = 10

func (p EdgePolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Wrap:
		return "wrap"
	case Superpose:
		return "superpose"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", int(p))
	}
}

// ParseEdgePolicy maps "truncate", "wrap" or "superpose" to an EdgePolicy.
// The empty string selects Truncate.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return Truncate, nil
	case "wrap":
		return Wrap, nil
	case "superpose":
		return Superpose, nil
	}
	return Truncate, fmt.Errorf("unknown edge policy %q (want truncate, wrap or superpose)", s)
}

// ProgressFunc is called after each pulse with the number of pulses done and
// the total.
type ProgressFunc func(done, total int)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithEdgePolicy sets the window edge policy. The default is Truncate.
func WithEdgePolicy(p EdgePolicy) Option {
	return func(s *Synthesizer) { s.edge = p }
}

// WithProgress installs a per-pulse progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Synthesizer) { s.progress = fn }
}

// Synthesizer builds received laser spectra. It holds no state between calls.
type Synthesizer struct {
	edge     EdgePolicy
	progress ProgressFunc
}

// NewSynthesizer returns a Synthesizer with the given options applied.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{edge: Truncate}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EdgePolicy reports the configured edge policy.
func (s *Synthesizer) EdgePolicy() EdgePolicy { return s.edge }

// SamplesPerWindow is the number of axis samples owned by one pulse.
func SamplesPerWindow(period, step float64) int {
	// Absorb representation error for decimal multiples such as 1us/100ps.
	return int(math.Floor(period / step * (1 + 1e-12)))
}

// Synthesize returns the power received from train through geom, sampled
// every step seconds.
//
// The axis starts at 0 and has train.Count*floor(Period/step) samples. Pulse i
// owns samples [i*spw, (i+1)*spw) and is centred at Offset + i*Period.
func (s *Synthesizer) Synthesize(train PulseTrain, geom Geometry, step float64) (Spectrum, error) {
	if err := train.Validate(); err != nil {
		return Spectrum{}, err
	}
	gain, err := geom.Gain()
	if err != nil {
		return Spectrum{}, err
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return Spectrum{}, fmt.Errorf("%w: %g", ErrInvalidTimeStep, step)
	}
	spw := SamplesPerWindow(train.Period, step)
	if spw < 1 {
		return Spectrum{}, fmt.Errorf("%w: step %g exceeds period %g", ErrInvalidTimeStep, step, train.Period)
	}

	axis := TimeAxis{Start: 0, Step: step, Len: train.Count * spw}
	power := make([]float64, axis.Len)
	scale := gain * train.Energy
	window := float64(spw) * step

	for i := 0; i < train.Count; i++ {
		pulse := distuv.Normal{Mu: train.Center(i), Sigma: train.Sigma}
		lo, hi := i*spw, (i+1)*spw

		switch s.edge {
		case Superpose:
			for k := range power {
				power[k] += scale * pulse.Prob(axis.At(k))
			}
		case Wrap:
			// Periodic images of the pulse with period equal to the window
			// length. Enough images are summed to reach a pulse centred
			// outside its own window.
			mid := axis.At(lo) + 0.5*window
			images := int(math.Ceil((math.Abs(pulse.Mu-mid)+wrapSpan*pulse.Sigma)/window)) + 1
			for k := lo; k < hi; k++ {
				t := axis.At(k)
				var d float64
				for m := -images; m <= images; m++ {
					d += pulse.Prob(t + float64(m)*window)
				}
				power[k] = scale * d
			}
		default:
			for k := lo; k < hi; k++ {
				power[k] = scale * pulse.Prob(axis.At(k))
			}
		}

		if s.progress != nil {
			s.progress(i+1, train.Count)
		}
	}

	return Spectrum{Axis: axis, Power: power}, nil
}
