package distance

import "math"

const (
	// DefaultReferencePower is the RSSI (dBm) expected at 1 meter from a generic BLE beacon.
	DefaultReferencePower = -59

	// DefaultPathLossExponent models free space / line of sight propagation.
	DefaultPathLossExponent = 2.0

	// Unknown is returned when the RSSI is unreported (0) and no distance can be derived.
	// It is a marker, never a real distance.
	Unknown = -1.0
)

// EstimateDistance converts an RSSI reading to an estimated distance in meters using the
// log-distance path-loss model, rounded to two decimals.
// referencePower is the calibrated RSSI at 1 meter and pathLossExponent describes the environment.
func EstimateDistance(rssi int, referencePower int, pathLossExponent float64) float64 {
	if rssi == 0 {
		return Unknown
	}

	exponent := float64(referencePower-rssi) / (10 * pathLossExponent)
	return round2(math.Pow(10, exponent))
}

// Estimate calls EstimateDistance with the default reference power and path-loss exponent.
func Estimate(rssi int) float64 {
	return EstimateDistance(rssi, DefaultReferencePower, DefaultPathLossExponent)
}

// IsKnown reports whether d is a real estimate rather than the Unknown marker.
func IsKnown(d float64) bool {
	return d != Unknown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
