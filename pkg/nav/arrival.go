package nav

import "wayfargo/pkg/geo"

// DefaultArrivalRadius is the arrival threshold in meters when the config
// does not override it.
const DefaultArrivalRadius = 50.0

// CheckArrival applies the one-way arrival latch. It returns the new flag
// value and whether this call is the latching transition. Once arrived,
// outward drift never un-arrives: the latch only resets when the session
// returns to idle.
func CheckArrival(current, destination geo.Point, radiusMeters float64, arrived bool) (nowArrived, latched bool) {
	if arrived {
		return true, false
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultArrivalRadius
	}
	if geo.Distance(current, destination) < radiusMeters {
		return true, true
	}
	return false, false
}
