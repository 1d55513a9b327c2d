// Package mockroute provides a deterministic in-process route provider for
// mock mode and tests. Routes are straight lines with synthetic steps; no
// network access.
package mockroute

import (
	"context"
	"fmt"

	"wayfargo/pkg/geo"
	"wayfargo/pkg/model"
	"wayfargo/pkg/polyline"
	"wayfargo/pkg/routing"
)

// Synthetic travel speeds, m/s.
const (
	walkSpeed    = 1.4
	transitSpeed = 11.0
	driveSpeed   = 8.3
)

// Provider plans synthetic routes without calling any external service.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// GetRoute plans a straight-line route. Transit requests get a three-step
// plan (walk, ride, walk); walk and drive requests get a single step.
func (p *Provider) GetRoute(ctx context.Context, origin, destination model.Coordinate, mode routing.RequestMode) (*model.Route, error) {
	return p.plan([]model.Coordinate{origin, destination}, mode)
}

// GetMultiPointRoute plans straight walking legs through every point in order.
func (p *Provider) GetMultiPointRoute(ctx context.Context, points []model.Coordinate) (*model.Route, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("multi-point route requires at least 2 points, got %d", len(points))
	}
	return p.plan(points, routing.RequestWalk)
}

func (p *Provider) plan(points []model.Coordinate, mode routing.RequestMode) (*model.Route, error) {
	pts := make([]geo.Point, len(points))
	for i, c := range points {
		pts[i] = geo.FromCoordinate(c)
		if !geo.Finite(pts[i]) {
			return nil, fmt.Errorf("point %d is not a finite coordinate", i)
		}
	}

	var total float64
	legs := make([]float64, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		d := geo.Distance(pts[i-1], pts[i])
		legs = append(legs, d)
		total += d
	}
	if total <= 0 {
		// Zero-length request; the real service would reject it too.
		return nil, nil
	}

	var steps []model.RouteStep
	switch mode {
	case routing.RequestTransit:
		steps = transitSteps(total)
	case routing.RequestDrive:
		steps = []model.RouteStep{{
			Mode:            model.ModeTaxi,
			Instruction:     "Ride to the destination",
			DistanceMeters:  total,
			DurationMinutes: minutes(total, driveSpeed),
		}}
	default:
		for i, d := range legs {
			steps = append(steps, model.RouteStep{
				Mode:            model.ModeWalk,
				Instruction:     fmt.Sprintf("Walk leg %d", i+1),
				DistanceMeters:  d,
				DurationMinutes: minutes(d, walkSpeed),
			})
		}
	}

	var totalMinutes float64
	for i := range steps {
		totalMinutes += steps[i].DurationMinutes
	}

	return &model.Route{
		Steps:                steps,
		TotalDistanceMeters:  total,
		TotalDurationMinutes: totalMinutes,
		Polyline:             polyline.Encode(pts),
	}, nil
}

// transitSteps splits the distance into access walk, ride, and egress walk.
func transitSteps(total float64) []model.RouteStep {
	access := total * 0.1
	ride := total * 0.8
	return []model.RouteStep{
		{
			Mode:            model.ModeWalk,
			Instruction:     "Walk to the station",
			DistanceMeters:  access,
			DurationMinutes: minutes(access, walkSpeed),
		},
		{
			Mode:            model.ModeTrain,
			Instruction:     "Ride the Loop Line",
			DistanceMeters:  ride,
			DurationMinutes: minutes(ride, transitSpeed),
			Line:            "Loop Line",
			Direction:       "Outbound",
		},
		{
			Mode:            model.ModeWalk,
			Instruction:     "Walk to the destination",
			DistanceMeters:  access,
			DurationMinutes: minutes(access, walkSpeed),
		},
	}
}

func minutes(distMeters, speedMPS float64) float64 {
	return distMeters / speedMPS / 60
}
