package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/banshee-data/tofsim/internal/optics"
	"github.com/banshee-data/tofsim/internal/photon"
	"github.com/banshee-data/tofsim/internal/units"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// maxLinePoints caps the vertices drawn per spectrum line. Longer spectra
// are decimated by a fixed stride.
const maxLinePoints = 20000

// PNG size used by WritePNG.
const (
	PlotWidth  = 14 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

func spectrumXYs(s optics.Spectrum) plotter.XYs {
	stride := 1
	if len(s.Power) > maxLinePoints {
		stride = (len(s.Power) + maxLinePoints - 1) / maxLinePoints
	}
	pts := make(plotter.XYs, 0, len(s.Power)/stride+1)
	for k := 0; k < len(s.Power); k += stride {
		pts = append(pts, plotter.XY{X: s.Axis.At(k) / units.Micro, Y: s.Power[k]})
	}
	return pts
}

// SpectrumPlot draws the laser and background power over time with the
// photon arrivals marked along the time axis.
func SpectrumPlot(laser, background optics.Spectrum, events []photon.Event) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Received optical power"
	p.X.Label.Text = "Time (µs)"
	p.Y.Label.Text = "Power (W)"

	for i, s := range []struct {
		name string
		spec optics.Spectrum
	}{
		{"laser", laser},
		{"background", background},
	} {
		if len(s.spec.Power) == 0 {
			continue
		}
		line, err := plotter.NewLine(spectrumXYs(s.spec))
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", s.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	for i, origin := range []photon.Origin{photon.Laser, photon.Background} {
		pts := make(plotter.XYs, 0)
		for _, e := range events {
			if e.Origin == origin {
				pts = append(pts, plotter.XY{X: e.Time / units.Micro, Y: 0})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("%s photons: %w", origin, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(origin.String()+" photons", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// HistogramPlot draws h as a stairs plot over distance. The title carries the
// estimated range when the histogram has a peak.
func HistogramPlot(h histogram.Histogram, speedOfLight float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "TOF histogram"
	if r, ok := h.EstimateRange(speedOfLight); ok {
		p.Title.Text = fmt.Sprintf("TOF histogram, distance = %.2f m", r)
	}
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Counts"

	if len(h.Counts) == 0 {
		return p, nil
	}
	pts := make(plotter.XYs, 0, len(h.Edges))
	for i, n := range h.Counts {
		pts = append(pts, plotter.XY{X: units.RangeFromDelay(h.Edges[i], speedOfLight), Y: float64(n)})
	}
	last := len(h.Counts) - 1
	pts = append(pts, plotter.XY{
		X: units.RangeFromDelay(h.Edges[last+1], speedOfLight),
		Y: float64(h.Counts[last]),
	})

	stairs, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	stairs.StepStyle = plotter.PostStep
	stairs.Color = color.RGBA{B: 200, A: 255}
	stairs.Width = vg.Points(1)
	p.Add(stairs)
	return p, nil
}

// WritePNG encodes p as a PNG at the report size.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(PlotWidth, PlotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
