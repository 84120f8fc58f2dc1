// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the numeric assertions used by the optics,
// photon and histogram tests so tolerances are reported the same way.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertNonNegative fails the test if any element of xs is negative or NaN.
func AssertNonNegative(t *testing.T, xs []float64) {
	t.Helper()
	for i, v := range xs {
		if !(v >= 0) {
			t.Fatalf("element %d = %g, want >= 0", i, v)
		}
	}
}

// AssertRelDelta fails the test if got differs from want by more than
// rel*|want|.
func AssertRelDelta(t *testing.T, want, got, rel float64) {
	t.Helper()
	if math.Abs(got-want) > rel*math.Abs(want) {
		t.Errorf("got %g, want %g (rel tolerance %g)", got, want, rel)
	}
}
