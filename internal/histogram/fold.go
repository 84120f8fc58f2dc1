// Package histogram folds photon timestamps onto one pulse period and bins
// them into a time-of-flight histogram.
package histogram

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPeriod = errors.New("histogram: period must be positive and finite")
	ErrInvalidConfig = errors.New("histogram: invalid configuration")
)

// phase returns t modulo period, in [0, period) for positive periods.
func phase(t, period float64) float64 {
	return t - math.Floor(t/period)*period
}

// Fold reduces absolute timestamps to phases within the pulse period, keeping
// at most one phase per period.
//
// The phase of the first timestamp is always emitted. After that, a timestamp
// is emitted only when it falls in a different period from the one before
// it. The last timestamp is never emitted unless it is also the first, so
// [1 13 14 15 34 36 42] with period 10 folds to [1 3 4].
//
// An empty input returns nil.
func Fold(timestamps []float64, period float64) ([]float64, error) {
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPeriod, period)
	}
	if len(timestamps) == 0 {
		return nil, nil
	}

	out := []float64{phase(timestamps[0], period)}
	for i := 1; i < len(timestamps)-1; i++ {
		if math.Floor(timestamps[i]/period) != math.Floor(timestamps[i-1]/period) {
			out = append(out, phase(timestamps[i], period))
		}
	}
	return out, nil
}
