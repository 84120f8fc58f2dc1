package optics

import (
	"fmt"
	"math"
)

// Geometry holds the radiometric parameters of the optics and the target.
// Lengths are in metres, angles in radians.
type Geometry struct {
	Transmission float64 // optical transmission of the receive path
	Reflectivity float64 // target reflectivity
	FillFactor   float64
	PixelArea    float64 // m²
	FocalLength  float64
	LensDiameter float64
	ThetaH       float64 // horizontal divergence angle of the emitter
	ThetaV       float64 // vertical divergence angle of the emitter
	Range        float64 // target distance
}

// FNumber is the focal ratio f/D of the receive lens.
func (g Geometry) FNumber() float64 {
	return g.FocalLength / g.LensDiameter
}

func (g Geometry) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"transmission", g.Transmission},
		{"reflectivity", g.Reflectivity},
		{"fill factor", g.FillFactor},
		{"pixel area", g.PixelArea},
		{"range", g.Range},
	} {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g", ErrInvalidGeometry, f.name, f.v)
		}
	}
	if !(g.FocalLength > 0) || math.IsInf(g.FocalLength, 0) {
		return fmt.Errorf("%w: focal length %g", ErrInvalidGeometry, g.FocalLength)
	}
	if !(g.LensDiameter > 0) || math.IsInf(g.LensDiameter, 0) {
		return fmt.Errorf("%w: lens diameter %g", ErrInvalidGeometry, g.LensDiameter)
	}
	return nil
}

// Gain returns the factor converting emitted pulse power into power received
// by one pixel:
//
//	τ·ρ·FF·A / (π·(f/D)²·tan(θh/2)·tan(θv/2)·(D² + 4z²))
//
// Divergence angles must lie in (0, π).
func (g Geometry) Gain() (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	if !(g.ThetaH > 0 && g.ThetaH < math.Pi) || !(g.ThetaV > 0 && g.ThetaV < math.Pi) {
		return 0, fmt.Errorf("%w: divergence %g x %g rad", ErrInvalidGeometry, g.ThetaH, g.ThetaV)
	}

	num := g.Transmission * g.Reflectivity * g.FillFactor * g.PixelArea
	fn := g.FNumber()
	den := math.Pi * fn * fn *
		math.Tan(0.5*g.ThetaH) * math.Tan(0.5*g.ThetaV) *
		(g.LensDiameter*g.LensDiameter + 4*g.Range*g.Range)
	return num / den, nil
}

// BackgroundGain returns the factor converting ambient irradiance on a
// Lambertian target (W/m²) into power received by one pixel:
//
//	τ·ρ·FF·A·(z/f)²·D²/(D² + 4z²)
//
// The emitter divergence plays no part; the pixel footprint on the target is
// set by the lens alone.
func (g Geometry) BackgroundGain() (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	mag := g.Range / g.FocalLength
	d2 := g.LensDiameter * g.LensDiameter
	return g.Transmission * g.Reflectivity * g.FillFactor * g.PixelArea *
		mag * mag * d2 / (d2 + 4*g.Range*g.Range), nil
}
