package testutil

import (
	"errors"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	AssertError(t, errors.New("test error"))
}

func TestAssertNonNegative(t *testing.T) {
	t.Parallel()

	AssertNonNegative(t, nil)
	AssertNonNegative(t, []float64{0, 1e-300, 3})
}

func TestAssertRelDelta(t *testing.T) {
	t.Parallel()

	AssertRelDelta(t, 100, 100.5, 0.01)
	AssertRelDelta(t, 0, 0, 0)
}
