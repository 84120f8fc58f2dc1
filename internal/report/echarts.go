package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HistogramChart builds an interactive bar chart of h against distance.
func HistogramChart(h histogram.Histogram, speedOfLight float64, subtitle string) *charts.Bar {
	ranges := h.RangeAxis(speedOfLight)
	labels := make([]string, len(ranges))
	for i, r := range ranges {
		labels[i] = fmt.Sprintf("%.2f", r)
	}
	data := make([]opts.BarData, len(h.Counts))
	for i, n := range h.Counts {
		data[i] = opts.BarData{Value: n}
	}

	title := "TOF histogram"
	if r, ok := h.EstimateRange(speedOfLight); ok {
		title = fmt.Sprintf("TOF histogram, distance = %.2f m", r)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "TOF histogram", Width: "100%", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Counts"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	bar.SetXAxis(labels).AddSeries("counts", data)
	return bar
}

// WriteHistogramHTML renders the histogram chart as a standalone HTML page.
func WriteHistogramHTML(w io.Writer, h histogram.Histogram, speedOfLight float64, subtitle string) error {
	return HistogramChart(h, speedOfLight, subtitle).Render(w)
}
