// Package photon turns received optical power into discrete photon arrivals
// drawn from a Poisson process.
package photon

import (
	"cmp"
	"fmt"
	"slices"
)

// Origin records which source produced a photon.
type Origin int

const (
	Laser Origin = iota
	Background
)

func (o Origin) String() string {
	switch o {
	case Laser:
		return "las"
	case Background:
		return "bkg"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Event is a photon arrival at Time seconds.
type Event struct {
	Time   float64
	Origin Origin
}

// Tag attaches origin to every timestamp.
func Tag(times []float64, origin Origin) []Event {
	out := make([]Event, len(times))
	for i, t := range times {
		out[i] = Event{Time: t, Origin: origin}
	}
	return out
}

// Merge returns the events of a and b in time order. Events with equal times
// keep a before b.
func Merge(a, b []Event) []Event {
	out := make([]Event, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.SortStableFunc(out, func(x, y Event) int {
		return cmp.Compare(x.Time, y.Time)
	})
	return out
}

// Times extracts the timestamps of events.
func Times(events []Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.Time
	}
	return out
}

// Count returns the number of events with the given origin.
func Count(events []Event, origin Origin) int {
	n := 0
	for _, e := range events {
		if e.Origin == origin {
			n++
		}
	}
	return n
}
