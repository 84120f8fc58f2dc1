package optics

import "errors"

var (
	// ErrInvalidGeometry is returned when the optical geometry cannot yield a
	// non-negative finite gain.
	ErrInvalidGeometry = errors.New("optics: invalid geometry")
	// ErrInvalidPulseTrain is returned for non-positive periods or spreads,
	// negative offsets or energies, or an empty train.
	ErrInvalidPulseTrain = errors.New("optics: invalid pulse train")
	// ErrInvalidTimeStep is returned when the sampling step is not positive
	// or does not fit at least one sample in a pulse period.
	ErrInvalidTimeStep = errors.New("optics: invalid time step")
	// ErrInvalidAxis is returned for malformed time axes.
	ErrInvalidAxis = errors.New("optics: invalid time axis")
)
