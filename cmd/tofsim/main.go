// Command tofsim simulates the optical front-end of a pulsed time-of-flight
// sensor and writes the photon events, the TOF histogram and optional plots.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/tofsim/internal/config"
	"github.com/banshee-data/tofsim/internal/fsutil"
	"github.com/banshee-data/tofsim/internal/monitoring"
	"github.com/banshee-data/tofsim/internal/report"
	"github.com/banshee-data/tofsim/internal/sim"
	"github.com/banshee-data/tofsim/internal/units"
	"github.com/banshee-data/tofsim/internal/version"
)

var (
	configPath  = flag.String("config", "", "Run config (.json, .yaml or .yml); built-in defaults when empty")
	seed        = flag.Uint64("seed", 0, "Override the random seed")
	outDir      = flag.String("out", "tofsim-out", "Output directory")
	writePlots  = flag.Bool("plot", false, "Write spectrum and histogram PNG plots")
	writeHTML   = flag.Bool("html", false, "Write an interactive HTML histogram")
	edgePolicy  = flag.String("edge", "", "Override the pulse edge policy (truncate, wrap, superpose)")
	timeUnit    = flag.String("time-unit", units.S, "Unit for CSV timestamps ("+units.GetValidUnitsString()+")")
	quiet       = flag.Bool("quiet", false, "Suppress progress logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// options collects the flag values so runs can be driven from tests.
type options struct {
	configPath string
	seed       *uint64
	outDir     string
	plots      bool
	html       bool
	edge       string
	timeUnit   string
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("tofsim version %s\n", version.String())
		return
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	o := options{
		configPath: *configPath,
		outDir:     *outDir,
		plots:      *writePlots,
		html:       *writeHTML,
		edge:       *edgePolicy,
		timeUnit:   *timeUnit,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.seed = seed
		}
	})

	res, err := run(o)
	if err != nil {
		log.Fatalf("tofsim: %v", err)
	}
	if res.RangeOK {
		fmt.Printf("run %s: estimated range %.3f m (target %.3f m)\n", res.RunID, res.Range, res.Scenario.Geometry.Range)
	} else {
		fmt.Printf("run %s: no detections in range\n", res.RunID)
	}
}

func loadConfig(o options) (*config.RunConfig, error) {
	cfg := config.DefaultRunConfig()
	if o.configPath != "" {
		loaded, err := config.LoadRunConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.seed != nil {
		s := *o.seed
		cfg.Seed = &s
	}
	if o.edge != "" {
		e := o.edge
		cfg.EdgePolicy = &e
	}
	return cfg, nil
}

func run(o options) (*sim.Result, error) {
	if o.timeUnit != "" && !units.IsValid(o.timeUnit) {
		return nil, fmt.Errorf("invalid time unit %q, must be one of: %s", o.timeUnit, units.GetValidUnitsString())
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return nil, err
	}
	phys := cfg.Physics()
	s, err := cfg.Scenario(phys)
	if err != nil {
		return nil, err
	}

	res, err := sim.Run(s, phys, sim.Options{Progress: monitoring.ProgressLogger("laser pulses", 10)})
	if err != nil {
		return nil, err
	}

	written, err := report.WriteRun(fsutil.OSFileSystem{}, o.outDir, res, report.Outputs{Plots: o.plots, HTML: o.html, TimeUnit: o.timeUnit})
	if err != nil {
		return nil, err
	}
	monitoring.Logf("[%s] wrote %d files to %s", res.RunID, len(written), o.outDir)
	return res, nil
}
