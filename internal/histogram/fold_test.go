package histogram

import (
	"errors"
	"math"
	"testing"

	"github.com/banshee-data/tofsim/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []float64
		period     float64
		expected   []float64
	}{
		{"reference vector", []float64{1, 13, 14, 15, 34, 36, 42}, 10, []float64{1, 3, 4}},
		{"empty", nil, 10, nil},
		{"single", []float64{27}, 10, []float64{7}},
		{"last timestamp is never folded", []float64{2, 15}, 10, []float64{2}},
		{"duplicates in one period", []float64{3, 3, 3, 3}, 10, []float64{3}},
		{"every period once", []float64{1, 12, 23, 34, 45}, 10, []float64{1, 2, 3, 4}},
		{"first timestamp faces its period", []float64{55, 56, 61, 70}, 10, []float64{5, 1}},
		{"period boundary belongs to the next period", []float64{0, 10, 20, 21}, 10, []float64{0, 0, 0}},
		{"nanosecond scale", []float64{5e-9, 1.05e-6, 1.07e-6, 2.5e-6}, 1e-6, []float64{5e-9, 5e-8}},
	}

	approx := cmpopts.EquateApprox(1e-9, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fold(tt.timestamps, tt.period)
			if err != nil {
				t.Fatalf("Fold returned error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got, approx); diff != "" {
				t.Errorf("Fold(%v, %g) mismatch (-want +got):\n%s", tt.timestamps, tt.period, diff)
			}
		})
	}
}

func TestFoldEmptyIsNil(t *testing.T) {
	got, err := Fold([]float64{}, 1)
	testutil.AssertNoError(t, err)
	if got != nil {
		t.Errorf("Fold(empty) = %v, want nil", got)
	}
}

func TestFoldInvalidPeriod(t *testing.T) {
	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Fold([]float64{1, 2}, p)
		testutil.AssertError(t, err)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Fold(period=%g) error = %v, want ErrInvalidPeriod", p, err)
		}
	}
}

func TestFoldPhasesInRange(t *testing.T) {
	ts := make([]float64, 200)
	for i := range ts {
		ts[i] = float64(i) * 0.37
	}
	got, err := Fold(ts, 1.1)
	testutil.AssertNoError(t, err)
	for i, p := range got {
		if p < 0 || p >= 1.1 {
			t.Errorf("phase[%d] = %g outside [0, 1.1)", i, p)
		}
	}
}
