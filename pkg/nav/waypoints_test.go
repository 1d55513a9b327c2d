package nav

import (
	"testing"

	"wayfargo/pkg/model"
)

func threeStops() []model.Waypoint {
	return []model.Waypoint{
		{ID: "a", Name: "Coffee"},
		{ID: "b", Name: "Bookstore"},
		{ID: "c", Name: "Park"},
	}
}

func TestNewWaypointIDsUnique(t *testing.T) {
	a := NewWaypoint("Coffee", model.Coordinate{Lat: 1, Lon: 2})
	b := NewWaypoint("Coffee", model.Coordinate{Lat: 1, Lon: 2})
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids not unique: %q vs %q", a.ID, b.ID)
	}
	if a.Visited {
		t.Error("new waypoint must start unvisited")
	}
}

func TestInsertWaypoint(t *testing.T) {
	list := threeStops()

	out, ok := InsertWaypoint(list, model.Waypoint{ID: "x"}, 1)
	if !ok {
		t.Fatal("insert at 1 rejected")
	}
	if len(out) != 4 || out[1].ID != "x" || out[2].ID != "b" {
		t.Errorf("unexpected order: %+v", out)
	}

	// -1 appends.
	out, ok = InsertWaypoint(list, model.Waypoint{ID: "y"}, -1)
	if !ok || out[len(out)-1].ID != "y" {
		t.Errorf("append failed: %+v", out)
	}

	// Out of range is a no-op.
	out, ok = InsertWaypoint(list, model.Waypoint{ID: "z"}, 7)
	if ok || len(out) != 3 {
		t.Errorf("out-of-range insert applied: %+v", out)
	}
}

func TestRemoveWaypoint(t *testing.T) {
	list := threeStops()

	out, ok := RemoveWaypoint(list, "b")
	if !ok || len(out) != 2 || out[1].ID != "c" {
		t.Errorf("remove failed: %+v", out)
	}

	out, ok = RemoveWaypoint(list, "nope")
	if ok || len(out) != 3 {
		t.Errorf("unknown id should be a no-op: %+v", out)
	}
}

func TestMarkVisitedAndCurrentTarget(t *testing.T) {
	list := threeStops()

	if idx := CurrentTarget(list); idx != 0 {
		t.Errorf("initial target = %d, want 0", idx)
	}

	if !MarkVisited(list, "a") {
		t.Fatal("visit of known id rejected")
	}
	if idx := CurrentTarget(list); idx != 1 {
		t.Errorf("target after first visit = %d, want 1", idx)
	}

	MarkVisited(list, "b")
	MarkVisited(list, "c")
	if idx := CurrentTarget(list); idx != -1 {
		t.Errorf("target with all visited = %d, want -1", idx)
	}

	if MarkVisited(list, "nope") {
		t.Error("unknown id visit applied")
	}
}

func TestRoutePoints(t *testing.T) {
	list := threeStops()
	MarkVisited(list, "a")

	origin := model.Coordinate{Lat: 1}
	dest := model.Coordinate{Lat: 9}
	pts := RoutePoints(origin, list, dest)
	// origin, two unvisited stops, destination
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	if pts[0] != origin || pts[3] != dest {
		t.Errorf("endpoints wrong: %+v", pts)
	}
}
