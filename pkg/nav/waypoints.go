package nav

import (
	"github.com/google/uuid"

	"wayfargo/pkg/model"
)

// NewWaypoint builds an unvisited waypoint with a fresh id.
func NewWaypoint(name string, c model.Coordinate) model.Waypoint {
	return model.Waypoint{
		ID:     uuid.NewString(),
		Name:   name,
		Coords: c,
	}
}

// InsertWaypoint inserts wp at index, or appends when index is -1 (before
// the final destination, which is not part of the list). An out-of-range
// index is an invalid edit: the list is returned unchanged and ok is false.
func InsertWaypoint(list []model.Waypoint, wp model.Waypoint, index int) (out []model.Waypoint, ok bool) {
	if index == -1 {
		index = len(list)
	}
	if index < 0 || index > len(list) {
		return list, false
	}
	out = make([]model.Waypoint, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, wp)
	out = append(out, list[index:]...)
	return out, true
}

// RemoveWaypoint removes the waypoint with the given id. An unknown id is an
// invalid edit: the list is returned unchanged and ok is false.
func RemoveWaypoint(list []model.Waypoint, id string) (out []model.Waypoint, ok bool) {
	for i := range list {
		if list[i].ID == id {
			out = make([]model.Waypoint, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
	}
	return list, false
}

// MarkVisited flags the waypoint with the given id as visited, in place.
// Returns false for an unknown id.
func MarkVisited(list []model.Waypoint, id string) bool {
	for i := range list {
		if list[i].ID == id {
			list[i].Visited = true
			return true
		}
	}
	return false
}

// CurrentTarget returns the index of the first unvisited waypoint, or -1
// when the traveler is heading to the final destination.
func CurrentTarget(list []model.Waypoint) int {
	for i := range list {
		if !list[i].Visited {
			return i
		}
	}
	return -1
}

// RoutePoints assembles the ordered point list for a multi-point replan:
// origin, every unvisited waypoint, final destination.
func RoutePoints(origin model.Coordinate, list []model.Waypoint, destination model.Coordinate) []model.Coordinate {
	pts := make([]model.Coordinate, 0, len(list)+2)
	pts = append(pts, origin)
	for i := range list {
		if !list[i].Visited {
			pts = append(pts, list[i].Coords)
		}
	}
	pts = append(pts, destination)
	return pts
}
