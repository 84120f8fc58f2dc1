package histogram

import (
	"fmt"
	"math"
	"slices"

	"github.com/banshee-data/tofsim/internal/units"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bounds on the quantizer bit depths.
const (
	MaxTDCBits   = 24
	MaxCountBits = 62
)

// Config describes the time-to-digital converter and the counter memory.
type Config struct {
	TMin      float64 // earliest phase kept, usually the round trip to the minimum range
	Period    float64 // pulse period; phases at or beyond it cannot occur
	TDCBits   int     // 2^TDCBits-1 bin edges span [TMin, Period]
	CountBits int     // bins saturate at 2^CountBits-1
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case !(c.Period > 0) || math.IsInf(c.Period, 0):
		return fmt.Errorf("%w: period %g", ErrInvalidPeriod, c.Period)
	case !(c.TMin >= 0) || c.TMin >= c.Period:
		return fmt.Errorf("%w: t_min %g outside [0, %g)", ErrInvalidConfig, c.TMin, c.Period)
	case c.TDCBits < 2 || c.TDCBits > MaxTDCBits:
		return fmt.Errorf("%w: tdc bits %d not in [2, %d]", ErrInvalidConfig, c.TDCBits, MaxTDCBits)
	case c.CountBits < 1 || c.CountBits > MaxCountBits:
		return fmt.Errorf("%w: count bits %d not in [1, %d]", ErrInvalidConfig, c.CountBits, MaxCountBits)
	}
	return nil
}

// CountLimit is the largest value a bin can hold.
func (c Config) CountLimit() int {
	return 1<<c.CountBits - 1
}

// Histogram is a quantized time-of-flight histogram. Bin i covers
// [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64
	Counts []int
	// Saturated is the number of bins clipped at the count limit.
	Saturated int
	// Discarded is the number of phases outside [TMin, Period).
	Discarded int
}

// Build bins phases into a histogram described by cfg. phases need not be
// sorted and are not modified.
func Build(phases []float64, cfg Config) (Histogram, error) {
	if err := cfg.Validate(); err != nil {
		return Histogram{}, err
	}

	edges := make([]float64, 1<<cfg.TDCBits-1)
	floats.Span(edges, cfg.TMin, cfg.Period)
	// stat.Histogram requires every value below the last divider.
	edges[len(edges)-1] = cfg.Period

	kept := make([]float64, 0, len(phases))
	for _, p := range phases {
		if p >= cfg.TMin && p < cfg.Period {
			kept = append(kept, p)
		}
	}
	slices.Sort(kept)

	h := Histogram{
		Edges:     edges,
		Counts:    make([]int, len(edges)-1),
		Discarded: len(phases) - len(kept),
	}
	if len(kept) == 0 {
		return h, nil
	}

	raw := stat.Histogram(nil, edges, kept, nil)
	limit := cfg.CountLimit()
	for i, v := range raw {
		n := int(v)
		if n > limit {
			n = limit
			h.Saturated++
		}
		h.Counts[i] = n
	}
	return h, nil
}

// Total is the sum of all (possibly saturated) bin counts.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Centers returns the mid-point of every bin.
func (h Histogram) Centers() []float64 {
	if len(h.Edges) < 2 {
		return nil
	}
	out := make([]float64, len(h.Edges)-1)
	for i := range out {
		out[i] = 0.5 * (h.Edges[i] + h.Edges[i+1])
	}
	return out
}

// RangeAxis converts bin centres to target distance in metres.
func (h Histogram) RangeAxis(speedOfLight float64) []float64 {
	centers := h.Centers()
	for i, t := range centers {
		centers[i] = units.RangeFromDelay(t, speedOfLight)
	}
	return centers
}

// Peak returns the index of the fullest bin. Ties go to the earliest bin.
// ok is false when the histogram is empty.
func (h Histogram) Peak() (bin int, ok bool) {
	best := 0
	for i, c := range h.Counts {
		if c > best {
			best, bin = c, i
		}
	}
	return bin, best > 0
}

// EstimateRange returns the distance of the peak bin centre.
func (h Histogram) EstimateRange(speedOfLight float64) (float64, bool) {
	bin, ok := h.Peak()
	if !ok {
		return 0, false
	}
	return units.RangeFromDelay(0.5*(h.Edges[bin]+h.Edges[bin+1]), speedOfLight), true
}
