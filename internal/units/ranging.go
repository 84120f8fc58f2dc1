package units

// RoundTripDelay returns the time light needs to reach a target at rangeM
// metres and come back.
func RoundTripDelay(rangeM, speedOfLight float64) float64 {
	return 2 * rangeM / speedOfLight
}

// RangeFromDelay converts a round-trip delay in seconds back to a target
// range in metres.
func RangeFromDelay(delay, speedOfLight float64) float64 {
	return 0.5 * delay * speedOfLight
}
