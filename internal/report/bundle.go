package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/tofsim/internal/fsutil"
	"github.com/banshee-data/tofsim/internal/sim"
)

// Output file names inside the run directory.
const (
	EventsCSV     = "events.csv"
	HistogramCSV  = "histogram.csv"
	SpectrumPNG   = "spectrum.png"
	HistogramPNG  = "histogram.png"
	HistogramHTML = "histogram.html"
)

// Outputs selects the optional report files. The CSV tables are always
// written.
type Outputs struct {
	Plots bool
	HTML  bool
	// TimeUnit scales the CSV timestamps. Empty means seconds.
	TimeUnit string
}

// WriteRun writes the reports for res into dir on fsys and returns the paths
// written.
func WriteRun(fsys fsutil.FileSystem, dir string, res *sim.Result, out Outputs) ([]string, error) {
	if _, err := checkTimeUnit(out.TimeUnit); err != nil {
		return nil, err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	c := res.Physics.SpeedOfLight

	type file struct {
		name  string
		write func(io.Writer) error
	}
	files := []file{
		{EventsCSV, func(w io.Writer) error { return WriteEvents(w, res.Events, out.TimeUnit) }},
		{HistogramCSV, func(w io.Writer) error { return WriteHistogram(w, res.Histogram, c, out.TimeUnit) }},
	}
	if out.Plots {
		files = append(files,
			file{SpectrumPNG, func(w io.Writer) error {
				p, err := SpectrumPlot(res.Laser, res.Background, res.Events)
				if err != nil {
					return err
				}
				return WritePNG(w, p)
			}},
			file{HistogramPNG, func(w io.Writer) error {
				p, err := HistogramPlot(res.Histogram, c)
				if err != nil {
					return err
				}
				return WritePNG(w, p)
			}},
		)
	}
	if out.HTML {
		subtitle := fmt.Sprintf("run=%s pulses=%d z=%g m", res.RunID, res.Scenario.Pulse.Count, res.Scenario.Geometry.Range)
		files = append(files, file{HistogramHTML, func(w io.Writer) error {
			return WriteHistogramHTML(w, res.Histogram, c, subtitle)
		}})
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(fsys, path, f.write); err != nil {
			return written, fmt.Errorf("write %s: %w", f.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(fsys fsutil.FileSystem, path string, write func(io.Writer) error) error {
	w, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
