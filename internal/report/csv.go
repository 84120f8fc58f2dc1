package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/tofsim/internal/histogram"
	"github.com/banshee-data/tofsim/internal/photon"
	"github.com/banshee-data/tofsim/internal/units"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// checkTimeUnit maps the empty unit to seconds and rejects unknown units.
func checkTimeUnit(unit string) (string, error) {
	if unit == "" {
		return units.S, nil
	}
	if !units.IsValid(unit) {
		return "", fmt.Errorf("invalid time unit %q, must be one of: %s", unit, units.GetValidUnitsString())
	}
	return unit, nil
}

// WriteEvents writes one row per occupied photon bin: arrival time in unit
// (seconds when empty) and origin tag.
func WriteEvents(w io.Writer, events []photon.Event, unit string) error {
	unit, err := checkTimeUnit(unit)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time_" + unit, "origin"}); err != nil {
		return err
	}
	for _, e := range events {
		if err := cw.Write([]string{formatFloat(units.ConvertSeconds(e.Time, unit)), e.Origin.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistogram writes one row per histogram bin with its time bounds in
// unit, the distance of its centre and its count.
func WriteHistogram(w io.Writer, h histogram.Histogram, speedOfLight float64, unit string) error {
	unit, err := checkTimeUnit(unit)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin", "start_" + unit, "end_" + unit, "range_m", "count"}); err != nil {
		return err
	}
	ranges := h.RangeAxis(speedOfLight)
	for i, n := range h.Counts {
		row := []string{
			strconv.Itoa(i),
			formatFloat(units.ConvertSeconds(h.Edges[i], unit)),
			formatFloat(units.ConvertSeconds(h.Edges[i+1], unit)),
			formatFloat(ranges[i]),
			strconv.Itoa(n),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
