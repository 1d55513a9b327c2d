// Package routing defines the contract with the external directions service.
//
// Providers return a nil route (not an error) when the service has no route
// to offer; transport failures surface as errors. The navigation session
// treats both identically: the route is unavailable and the request is
// retryable. Nothing may panic across this boundary.
package routing

import (
	"context"

	"wayfargo/pkg/model"
)

// RequestMode is the travel mode sent to the directions service. It is
// coarser than model.TravelMode: the service plans transit as one mode and
// picks lines itself.
type RequestMode string

const (
	RequestWalk    RequestMode = "walk"
	RequestTransit RequestMode = "transit"
	RequestDrive   RequestMode = "drive"
)

// ModeForTravel maps a step-level travel mode to the request mode that plans it.
func ModeForTravel(m model.TravelMode) RequestMode {
	switch m {
	case model.ModeTrain, model.ModeBus:
		return RequestTransit
	case model.ModeTaxi:
		return RequestDrive
	default:
		return RequestWalk
	}
}

// Provider plans routes via an external directions service.
type Provider interface {
	// GetRoute plans a route from origin to destination.
	GetRoute(ctx context.Context, origin, destination model.Coordinate, mode RequestMode) (*model.Route, error)
	// GetMultiPointRoute plans a route visiting the given points in order.
	// At least two points (origin and destination) are required.
	GetMultiPointRoute(ctx context.Context, points []model.Coordinate) (*model.Route, error)
}
