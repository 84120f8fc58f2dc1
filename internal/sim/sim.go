// Package sim runs the optical front-end end to end: laser and background
// spectra, Poisson photon draws, origin tagging, folding and the
// time-of-flight histogram.
package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/banshee-data/tofsim/internal/config"
	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/banshee-data/tofsim/internal/monitoring"
	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/banshee-data/tofsim/internal/photon"
	"github.com/banshee-data/tofsim/internal/timeutil"
	"github.com/google/uuid"
)

// Detector maps photon arrivals to detections. The per-pixel pipeline
// (crosstalk, dead time, jitter, coincidence) implements it outside this
// module.
type Detector interface {
	Detect(events []photon.Event) ([]photon.Event, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(events []photon.Event) ([]photon.Event, error)

// Detect calls f.
func (f DetectorFunc) Detect(events []photon.Event) ([]photon.Event, error) { return f(events) }

// Passthrough reports every photon as a detection.
var Passthrough Detector = DetectorFunc(func(events []photon.Event) ([]photon.Event, error) {
	return events, nil
})

// Options tune a run. The zero value is ready to use.
type Options struct {
	// Progress observes the pulse loop of the laser synthesis.
	Progress optics.ProgressFunc
	// Source overrides the PCG source seeded from the scenario.
	Source rand.Source
	// Background overrides the flat ambient background.
	Background optics.SpectrumSource
	// Detector defaults to Passthrough.
	Detector Detector
	// Clock times the run. Defaults to the wall clock.
	Clock timeutil.Clock
}

// Result holds everything computed by Run.
type Result struct {
	RunID    string
	Scenario config.Scenario
	Physics  config.Physics
	Started  time.Time
	Elapsed  time.Duration

	Laser      optics.Spectrum
	Background optics.Spectrum

	LaserDraw      photon.Draw
	BackgroundDraw photon.Draw

	// Events are the merged, time-ordered photon arrivals.
	Events []photon.Event
	// Detections are the events that survived the detector.
	Detections []photon.Event
	// Phases are the folded detection times.
	Phases []float64

	Histogram histogram.Histogram
	// Range is the distance of the histogram peak; RangeOK is false when the
	// histogram is empty.
	Range   float64
	RangeOK bool
}

// Run simulates scenario s with constants phys.
func Run(s config.Scenario, phys config.Physics, opts Options) (*Result, error) {
	if err := phys.Validate(); err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	res := &Result{RunID: uuid.New().String(), Scenario: s, Physics: phys, Started: clock.Now()}

	monitoring.Logf("[%s] creating laser spectrum (%d pulses, %s edges)", res.RunID, s.Pulse.Count, s.Edge)
	synth := optics.NewSynthesizer(optics.WithEdgePolicy(s.Edge), optics.WithProgress(opts.Progress))
	laser, err := synth.Synthesize(s.Pulse, s.Geometry, s.TimeStep)
	if err != nil {
		return nil, fmt.Errorf("laser spectrum: %w", err)
	}
	res.Laser = laser

	monitoring.Logf("[%s] creating background spectrum", res.RunID)
	bg := opts.Background
	if bg == nil {
		bg = optics.FlatBackground{Irradiance: s.BackgroundIrradiance, Geometry: s.Geometry}
	}
	background, err := bg.Spectrum(laser.Axis)
	if err != nil {
		return nil, fmt.Errorf("background spectrum: %w", err)
	}
	if len(background.Power) != len(laser.Power) {
		return nil, fmt.Errorf("background spectrum has %d samples, laser has %d", len(background.Power), len(laser.Power))
	}
	res.Background = background

	sampler := photon.NewSeededSampler(s.Seed, phys.PhotonEnergy())
	if opts.Source != nil {
		sampler = photon.NewSampler(opts.Source, phys.PhotonEnergy())
	}

	monitoring.Logf("[%s] extracting laser photons", res.RunID)
	if res.LaserDraw, err = sampler.Sample(laser, s.BinWidth); err != nil {
		return nil, fmt.Errorf("laser photons: %w", err)
	}
	monitoring.Logf("[%s] extracting background photons", res.RunID)
	if res.BackgroundDraw, err = sampler.Sample(background, s.BinWidth); err != nil {
		return nil, fmt.Errorf("background photons: %w", err)
	}

	res.Events = photon.Merge(res.LaserDraw.Events(photon.Laser), res.BackgroundDraw.Events(photon.Background))
	monitoring.Logf("[%s] photon count: %d laser, %d background (%d occupied bins)",
		res.RunID, res.LaserDraw.Photons(), res.BackgroundDraw.Photons(), len(res.Events))

	det := opts.Detector
	if det == nil {
		det = Passthrough
	}
	if res.Detections, err = det.Detect(res.Events); err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}

	if res.Phases, err = histogram.Fold(photon.Times(res.Detections), s.Pulse.Period); err != nil {
		return nil, fmt.Errorf("fold: %w", err)
	}
	if res.Histogram, err = histogram.Build(res.Phases, s.Histogram); err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	res.Range, res.RangeOK = res.Histogram.EstimateRange(phys.SpeedOfLight)
	res.Elapsed = clock.Since(res.Started)
	if res.RangeOK {
		monitoring.Logf("[%s] %d detections, estimated range %.3f m (%s)", res.RunID, len(res.Detections), res.Range, res.Elapsed)
	} else {
		monitoring.Logf("[%s] %d detections, no histogram peak (%s)", res.RunID, len(res.Detections), res.Elapsed)
	}
	return res, nil
}
