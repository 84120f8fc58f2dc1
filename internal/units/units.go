// Package units provides the SI scale factors used by run parameter files and
// the conversions between round-trip delay and target range.
package units

// Scale factors from the units used in run parameter files to SI.
const (
	Nano  = 1e-9
	Micro = 1e-6
	Milli = 1e-3
	Pico  = 1e-12
)

// Time units accepted for report timestamps.
const (
	S  = "s"
	MS = "ms"
	US = "us"
	NS = "ns"
	PS = "ps"
)

// ValidTimeUnits contains all valid time unit values
var ValidTimeUnits = []string{S, MS, US, NS, PS}

// IsValid checks if the given time unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidTimeUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "s, ms, us, ns, ps"
}

// ConvertSeconds converts a duration in seconds to the target unit.
// Unknown units fall back to seconds.
func ConvertSeconds(seconds float64, targetUnit string) float64 {
	switch targetUnit {
	case MS:
		return seconds / Milli
	case US:
		return seconds / Micro
	case NS:
		return seconds / Nano
	case PS:
		return seconds / Pico
	default:
		return seconds
	}
}

// NanosToSeconds converts nanoseconds to seconds.
func NanosToSeconds(ns float64) float64 { return ns * Nano }

// MicrosToSeconds converts microseconds to seconds.
func MicrosToSeconds(us float64) float64 { return us * Micro }

// PicosToSeconds converts picoseconds to seconds.
func PicosToSeconds(ps float64) float64 { return ps * Pico }

// MillimetresToMetres converts millimetres to metres.
func MillimetresToMetres(mm float64) float64 { return mm * Milli }

// MicronsToMetres converts micrometres to metres.
func MicronsToMetres(um float64) float64 { return um * Micro }

// MilliradiansToRadians converts milliradians to radians.
func MilliradiansToRadians(mrad float64) float64 { return mrad * Milli }
