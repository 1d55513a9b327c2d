package model

import (
	"fmt"
	"time"
)

// TravelMode identifies how a route (or a single step) is travelled.
type TravelMode string

const (
	ModeWalk  TravelMode = "walk"
	ModeTrain TravelMode = "train"
	ModeBus   TravelMode = "bus"
	ModeTaxi  TravelMode = "taxi"
)

// Valid reports whether the mode is one of the known travel modes.
func (m TravelMode) Valid() bool {
	switch m {
	case ModeWalk, ModeTrain, ModeBus, ModeTaxi:
		return true
	}
	return false
}

// Transit reports whether the mode rides a scheduled line (train or bus).
// Transit steps carry Line and Direction; other steps must not.
func (m TravelMode) Transit() bool {
	return m == ModeTrain || m == ModeBus
}

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteStep is one leg of a route: a walk segment, a transit ride, or a taxi hop.
type RouteStep struct {
	Mode            TravelMode `json:"mode"`
	Instruction     string     `json:"instruction"`
	DistanceMeters  float64    `json:"distance_meters"`
	DurationMinutes float64    `json:"duration_minutes"`

	// Transit-only fields. Required when Mode is train or bus, empty otherwise.
	Line      string `json:"line,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Validate checks the mode/field pairing of the step.
func (s *RouteStep) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("unknown travel mode %q", s.Mode)
	}
	if s.Mode.Transit() {
		if s.Line == "" {
			return fmt.Errorf("%s step missing line", s.Mode)
		}
		if s.Direction == "" {
			return fmt.Errorf("%s step missing direction", s.Mode)
		}
		return nil
	}
	if s.Line != "" || s.Direction != "" {
		return fmt.Errorf("%s step must not carry line/direction", s.Mode)
	}
	return nil
}

// Route is an ordered plan from origin to destination.
type Route struct {
	Steps                []RouteStep `json:"steps"`
	TotalDistanceMeters  float64     `json:"total_distance_meters"`
	TotalDurationMinutes float64     `json:"total_duration_minutes"`
	// Polyline is the encoded geometry string shared with mapping vendors.
	Polyline string `json:"polyline"`
}

// Validate checks every step and the totals.
func (r *Route) Validate() error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("route has no steps")
	}
	if r.TotalDistanceMeters <= 0 {
		return fmt.Errorf("route total distance must be positive")
	}
	for i := range r.Steps {
		if err := r.Steps[i].Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Waypoint is a user-inserted intermediate stop between origin and destination.
type Waypoint struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Coords  Coordinate `json:"coords"`
	Visited bool       `json:"visited"`
	// AddedDurationMinutes is the detour cost reported by the route provider,
	// zero until a multi-point route has been fetched.
	AddedDurationMinutes float64 `json:"added_duration_minutes,omitempty"`
}

// SessionMode is the top-level navigation state.
type SessionMode string

const (
	ModeIdle          SessionMode = "idle"
	ModeViewingDetail SessionMode = "viewing_detail"
	ModeNavigating    SessionMode = "navigating"
	ModeCompanion     SessionMode = "companion"
)

// Destination is the end target of a navigation session.
type Destination struct {
	Name   string     `json:"name"`
	Coords Coordinate `json:"coords"`
}

// SessionSnapshot is an immutable view of the navigation session, published
// to subscribers after every state change. Slices are copies; holders may
// keep a snapshot indefinitely.
type SessionSnapshot struct {
	Mode                 SessionMode  `json:"mode"`
	Destination          *Destination `json:"destination,omitempty"`
	Route                *Route       `json:"route,omitempty"`
	Waypoints            []Waypoint   `json:"waypoints"`
	CurrentWaypointIndex int          `json:"current_waypoint_index"`
	CurrentStepIndex     int          `json:"current_step_index"`
	ArrivalDetected      bool         `json:"arrival_detected"`
	OriginalETA          time.Time    `json:"original_eta,omitempty"`
	TravelMode           TravelMode   `json:"travel_mode"`
	// RouteStale is set while a replan is outstanding (or failed); the UI
	// shows the last-known-good geometry greyed out.
	RouteStale bool `json:"route_stale"`
	// LastFix is the most recent GPS coordinate seen while navigating.
	LastFix *Coordinate `json:"last_fix,omitempty"`
	// RemainingMeters is the straight-line distance to the current target.
	RemainingMeters float64 `json:"remaining_meters"`
}

// NavEvent is a discrete trip event (step advance, arrival, waypoint edit)
// recorded to the event log and trip history.
type NavEvent struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types recorded by the navigation session.
const (
	EventNavigationStarted = "navigation_started"
	EventStepAdvanced      = "step_advanced"
	EventArrival           = "arrival"
	EventWaypointAdded     = "waypoint_added"
	EventWaypointRemoved   = "waypoint_removed"
	EventWaypointVisited   = "waypoint_visited"
	EventModeChanged       = "mode_changed"
	EventRouteReplaced     = "route_replaced"
	EventRouteUnavailable  = "route_unavailable"
	EventSessionEnded      = "session_ended"
)
