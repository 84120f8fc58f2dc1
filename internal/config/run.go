// Package config loads run parameters and resolves them into the SI values
// consumed by the optics, photon and histogram packages.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/banshee-data/tofsim/internal/units"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/tofsim.defaults.json"

// RunConfig is the flat set of named run parameters. Values use the units
// of the parameter file (noted per field); Scenario converts them to SI.
// Unset fields fall back to the defaults returned by the Get* methods.
type RunConfig struct {
	// Laser
	LaserPower    *float64 `json:"laser_power,omitempty" yaml:"laser_power,omitempty"`       // W, peak
	LaserSigma    *float64 `json:"laser_sigma,omitempty" yaml:"laser_sigma,omitempty"`       // ns
	PulseDistance *float64 `json:"pulse_distance,omitempty" yaml:"pulse_distance,omitempty"` // µs
	NImp          *int     `json:"n_imp,omitempty" yaml:"n_imp,omitempty"`
	ThetaH        *float64 `json:"theta_h,omitempty" yaml:"theta_h,omitempty"`       // mrad
	ThetaV        *float64 `json:"theta_v,omitempty" yaml:"theta_v,omitempty"`       // mrad
	Wavelength    *float64 `json:"wavelength,omitempty" yaml:"wavelength,omitempty"` // nm

	// Receiver optics and pixel
	FLens      *float64 `json:"f_lens,omitempty" yaml:"f_lens,omitempty"` // mm
	DLens      *float64 `json:"d_lens,omitempty" yaml:"d_lens,omitempty"` // mm
	Tau        *float64 `json:"tau,omitempty" yaml:"tau,omitempty"`
	PixelSize  *int     `json:"pixel_size,omitempty" yaml:"pixel_size,omitempty"` // SPADs per side
	SPADSize   *float64 `json:"spad_size,omitempty" yaml:"spad_size,omitempty"`   // µm
	FillFactor *float64 `json:"fill_factor,omitempty" yaml:"fill_factor,omitempty"`

	// Scene
	Z        *float64 `json:"z,omitempty" yaml:"z,omitempty"` // m
	RhoTgt   *float64 `json:"rho_tgt,omitempty" yaml:"rho_tgt,omitempty"`
	BkgPower *float64 `json:"bkg_power,omitempty" yaml:"bkg_power,omitempty"` // W/m² on the target

	// Detector (consumed by the per-pixel pipeline)
	PDP        *float64 `json:"pdp,omitempty" yaml:"pdp,omitempty"`
	TDead      *float64 `json:"t_dead,omitempty" yaml:"t_dead,omitempty"` // ns
	CoincThr   *int     `json:"coinc_thr,omitempty" yaml:"coinc_thr,omitempty"`
	SPADJitter *float64 `json:"spad_j,omitempty" yaml:"spad_j,omitempty"` // ps
	TDCJitter  *float64 `json:"tdc_j,omitempty" yaml:"tdc_j,omitempty"`   // ps

	// Histogram
	RangeMin *float64 `json:"range_min,omitempty" yaml:"range_min,omitempty"` // m
	NBitTDC  *int     `json:"n_bit_tdc,omitempty" yaml:"n_bit_tdc,omitempty"`
	NBitHist *int     `json:"n_bit_hist,omitempty" yaml:"n_bit_hist,omitempty"`

	// Sampling
	TimeStep   *float64 `json:"time_step,omitempty" yaml:"time_step,omitempty"` // ps
	BinWidth   *int     `json:"bin_width,omitempty" yaml:"bin_width,omitempty"`
	Seed       *uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	EdgePolicy *string  `json:"edge_policy,omitempty" yaml:"edge_policy,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrUint64(v uint64) *uint64    { return &v }
func ptrString(v string) *string    { return &v }

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// DefaultRunConfig returns a RunConfig with every field set to its default.
func DefaultRunConfig() *RunConfig {
	c := EmptyRunConfig()
	return &RunConfig{
		LaserPower:    ptrFloat64(c.GetLaserPower()),
		LaserSigma:    ptrFloat64(c.GetLaserSigma()),
		PulseDistance: ptrFloat64(c.GetPulseDistance()),
		NImp:          ptrInt(c.GetNImp()),
		ThetaH:        ptrFloat64(c.GetThetaH()),
		ThetaV:        ptrFloat64(c.GetThetaV()),
		Wavelength:    ptrFloat64(c.GetWavelength()),
		FLens:         ptrFloat64(c.GetFLens()),
		DLens:         ptrFloat64(c.GetDLens()),
		Tau:           ptrFloat64(c.GetTau()),
		PixelSize:     ptrInt(c.GetPixelSize()),
		SPADSize:      ptrFloat64(c.GetSPADSize()),
		FillFactor:    ptrFloat64(c.GetFillFactor()),
		Z:             ptrFloat64(c.GetZ()),
		RhoTgt:        ptrFloat64(c.GetRhoTgt()),
		BkgPower:      ptrFloat64(c.GetBkgPower()),
		PDP:           ptrFloat64(c.GetPDP()),
		TDead:         ptrFloat64(c.GetTDead()),
		CoincThr:      ptrInt(c.GetCoincThr()),
		SPADJitter:    ptrFloat64(c.GetSPADJitter()),
		TDCJitter:     ptrFloat64(c.GetTDCJitter()),
		RangeMin:      ptrFloat64(c.GetRangeMin()),
		NBitTDC:       ptrInt(c.GetNBitTDC()),
		NBitHist:      ptrInt(c.GetNBitHist()),
		TimeStep:      ptrFloat64(c.GetTimeStep()),
		BinWidth:      ptrInt(c.GetBinWidth()),
		Seed:          ptrUint64(c.GetSeed()),
		EdgePolicy:    ptrString(c.GetEdgePolicy()),
	}
}

// LoadRunConfig loads a RunConfig from a .json, .yaml or .yml file.
// Fields omitted from the file keep their defaults, so partial configs are
// safe.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical run defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *RunConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadRunConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the values that are set are in range.
func (c *RunConfig) Validate() error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"laser_sigma", c.LaserSigma},
		{"pulse_distance", c.PulseDistance},
		{"theta_h", c.ThetaH},
		{"theta_v", c.ThetaV},
		{"wavelength", c.Wavelength},
		{"f_lens", c.FLens},
		{"d_lens", c.DLens},
		{"spad_size", c.SPADSize},
		{"time_step", c.TimeStep},
	}
	for _, f := range positive {
		if f.v != nil && (!(*f.v > 0) || math.IsInf(*f.v, 0)) {
			return fmt.Errorf("%s must be positive, got %g", f.name, *f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"laser_power", c.LaserPower},
		{"z", c.Z},
		{"bkg_power", c.BkgPower},
		{"t_dead", c.TDead},
		{"spad_j", c.SPADJitter},
		{"tdc_j", c.TDCJitter},
		{"range_min", c.RangeMin},
	}
	for _, f := range nonNegative {
		if f.v != nil && (!(*f.v >= 0) || math.IsInf(*f.v, 0)) {
			return fmt.Errorf("%s must be non-negative, got %g", f.name, *f.v)
		}
	}

	fractions := []struct {
		name string
		v    *float64
	}{
		{"tau", c.Tau},
		{"fill_factor", c.FillFactor},
		{"rho_tgt", c.RhoTgt},
		{"pdp", c.PDP},
	}
	for _, f := range fractions {
		if f.v != nil && !(*f.v >= 0 && *f.v <= 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %g", f.name, *f.v)
		}
	}

	counts := []struct {
		name string
		v    *int
		min  int
		max  int
	}{
		{"n_imp", c.NImp, 1, math.MaxInt32},
		{"pixel_size", c.PixelSize, 1, 1024},
		{"coinc_thr", c.CoincThr, 1, math.MaxInt32},
		{"bin_width", c.BinWidth, 1, math.MaxInt32},
		{"n_bit_tdc", c.NBitTDC, 2, histogram.MaxTDCBits},
		{"n_bit_hist", c.NBitHist, 1, histogram.MaxCountBits},
	}
	for _, f := range counts {
		if f.v != nil && (*f.v < f.min || *f.v > f.max) {
			return fmt.Errorf("%s must be between %d and %d, got %d", f.name, f.min, f.max, *f.v)
		}
	}

	if c.EdgePolicy != nil {
		if _, err := optics.ParseEdgePolicy(*c.EdgePolicy); err != nil {
			return fmt.Errorf("invalid edge_policy: %w", err)
		}
	}

	return nil
}

// Physics returns the physical constants for this run. Only the wavelength
// is configurable.
func (c *RunConfig) Physics() Physics {
	p := DefaultPhysics()
	p.Wavelength = c.GetWavelength() * units.Nano
	return p
}

// GetLaserPower returns the laser_power value or the default.
func (c *RunConfig) GetLaserPower() float64 {
	if c.LaserPower == nil {
		return 50
	}
	return *c.LaserPower
}

// GetLaserSigma returns the laser_sigma value or the default.
func (c *RunConfig) GetLaserSigma() float64 {
	if c.LaserSigma == nil {
		return 1
	}
	return *c.LaserSigma
}

// GetPulseDistance returns the pulse_distance value or the default.
func (c *RunConfig) GetPulseDistance() float64 {
	if c.PulseDistance == nil {
		return 1
	}
	return *c.PulseDistance
}

// GetNImp returns the n_imp value or the default.
func (c *RunConfig) GetNImp() int {
	if c.NImp == nil {
		return 100
	}
	return *c.NImp
}

// GetThetaH returns the theta_h value or the default.
func (c *RunConfig) GetThetaH() float64 {
	if c.ThetaH == nil {
		return 50
	}
	return *c.ThetaH
}

// GetThetaV returns the theta_v value or the default.
func (c *RunConfig) GetThetaV() float64 {
	if c.ThetaV == nil {
		return 50
	}
	return *c.ThetaV
}

// GetWavelength returns the wavelength value or the default.
func (c *RunConfig) GetWavelength() float64 {
	if c.Wavelength == nil {
		return 905
	}
	return *c.Wavelength
}

// GetFLens returns the f_lens value or the default.
func (c *RunConfig) GetFLens() float64 {
	if c.FLens == nil {
		return 25
	}
	return *c.FLens
}

// GetDLens returns the d_lens value or the default.
func (c *RunConfig) GetDLens() float64 {
	if c.DLens == nil {
		return 12.5
	}
	return *c.DLens
}

// GetTau returns the tau value or the default.
func (c *RunConfig) GetTau() float64 {
	if c.Tau == nil {
		return 0.9
	}
	return *c.Tau
}

// GetPixelSize returns the pixel_size value or the default.
func (c *RunConfig) GetPixelSize() int {
	if c.PixelSize == nil {
		return 8
	}
	return *c.PixelSize
}

// GetSPADSize returns the spad_size value or the default.
func (c *RunConfig) GetSPADSize() float64 {
	if c.SPADSize == nil {
		return 30
	}
	return *c.SPADSize
}

// GetFillFactor returns the fill_factor value or the default.
func (c *RunConfig) GetFillFactor() float64 {
	if c.FillFactor == nil {
		return 0.6
	}
	return *c.FillFactor
}

// GetZ returns the z value or the default.
func (c *RunConfig) GetZ() float64 {
	if c.Z == nil {
		return 50
	}
	return *c.Z
}

// GetRhoTgt returns the rho_tgt value or the default.
func (c *RunConfig) GetRhoTgt() float64 {
	if c.RhoTgt == nil {
		return 0.5
	}
	return *c.RhoTgt
}

// GetBkgPower returns the bkg_power value or the default.
func (c *RunConfig) GetBkgPower() float64 {
	if c.BkgPower == nil {
		return 1e-4
	}
	return *c.BkgPower
}

// GetPDP returns the pdp value or the default.
func (c *RunConfig) GetPDP() float64 {
	if c.PDP == nil {
		return 0.2
	}
	return *c.PDP
}

// GetTDead returns the t_dead value or the default.
func (c *RunConfig) GetTDead() float64 {
	if c.TDead == nil {
		return 20
	}
	return *c.TDead
}

// GetCoincThr returns the coinc_thr value or the default.
func (c *RunConfig) GetCoincThr() int {
	if c.CoincThr == nil {
		return 2
	}
	return *c.CoincThr
}

// GetSPADJitter returns the spad_j value or the default.
func (c *RunConfig) GetSPADJitter() float64 {
	if c.SPADJitter == nil {
		return 100
	}
	return *c.SPADJitter
}

// GetTDCJitter returns the tdc_j value or the default.
func (c *RunConfig) GetTDCJitter() float64 {
	if c.TDCJitter == nil {
		return 50
	}
	return *c.TDCJitter
}

// GetRangeMin returns the range_min value or the default.
func (c *RunConfig) GetRangeMin() float64 {
	if c.RangeMin == nil {
		return 1
	}
	return *c.RangeMin
}

// GetNBitTDC returns the n_bit_tdc value or the default.
func (c *RunConfig) GetNBitTDC() int {
	if c.NBitTDC == nil {
		return 12
	}
	return *c.NBitTDC
}

// GetNBitHist returns the n_bit_hist value or the default.
func (c *RunConfig) GetNBitHist() int {
	if c.NBitHist == nil {
		return 8
	}
	return *c.NBitHist
}

// GetTimeStep returns the time_step value or the default.
func (c *RunConfig) GetTimeStep() float64 {
	if c.TimeStep == nil {
		return 100
	}
	return *c.TimeStep
}

// GetBinWidth returns the bin_width value or the default.
func (c *RunConfig) GetBinWidth() int {
	if c.BinWidth == nil {
		return 1
	}
	return *c.BinWidth
}

// GetSeed returns the seed value or the default.
func (c *RunConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}

// GetEdgePolicy returns the edge_policy value or the default.
func (c *RunConfig) GetEdgePolicy() string {
	if c.EdgePolicy == nil {
		return optics.Truncate.String()
	}
	return *c.EdgePolicy
}
