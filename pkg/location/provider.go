// Package location defines the geolocation source the engine consumes.
// The engine makes no assumption about fix cadence or jitter; it polls at
// its own pace and tolerates noisy positions.
package location

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"wayfargo/pkg/geo"
)

// Fix is a single position report from the geolocation source.
type Fix struct {
	Point    geo.Point
	Heading  float64 // degrees, 0 = north
	SpeedMPS float64
	At       time.Time
}

// Provider produces position fixes. GetFix blocks until a fix is available
// or the context is cancelled; implementations must never panic into the
// caller.
type Provider interface {
	GetFix(ctx context.Context) (*Fix, error)
	Close() error
}

// PathFollower is implemented by simulated providers that can walk a route
// geometry instead of wandering. The engine feeds the active route's
// decoded polyline to the provider when one is available.
type PathFollower interface {
	SetPath(ls orb.LineString)
}
