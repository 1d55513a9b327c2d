// Package nav implements the navigation progress engine: step tracking,
// arrival detection, waypoint planning, and the session actor composing them.
package nav

import (
	"math"

	"wayfargo/pkg/geo"
	"wayfargo/pkg/model"
)

// Progress is the result of one tracker evaluation.
type Progress struct {
	StepIndex       int
	RemainingMeters float64
	// Advanced is true exactly when StepIndex moved forward this evaluation;
	// each advance is a discrete event suitable for haptic/voice cues.
	Advanced bool
}

// TrackProgress maps a live position onto the route's step sequence.
//
// The step estimate is a straight-line progress ratio against the route's
// total distance, not a projection onto the polyline. Projection would place
// the index wrong on routes that back-track (transit transfers); the ratio
// degrades gracefully under GPS jitter instead. The index only moves forward:
// a noisy fix that increases the distance to the destination never regresses
// a step the traveler has already been told about.
//
// A nil route (or one without steps) leaves the index untouched.
func TrackProgress(current, destination geo.Point, route *model.Route, stepIndex int) Progress {
	remaining := geo.Distance(current, destination)
	p := Progress{StepIndex: stepIndex, RemainingMeters: remaining}

	if route == nil || len(route.Steps) == 0 || route.TotalDistanceMeters <= 0 {
		return p
	}

	progress := 1 - remaining/route.TotalDistanceMeters
	progress = math.Max(0, math.Min(1, progress))

	estimated := int(math.Floor(progress * float64(len(route.Steps))))
	if estimated > len(route.Steps)-1 {
		estimated = len(route.Steps) - 1
	}
	if estimated < 0 {
		estimated = 0
	}

	if estimated > stepIndex {
		p.StepIndex = estimated
		p.Advanced = true
	}
	return p
}
