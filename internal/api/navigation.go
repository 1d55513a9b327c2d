package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wayfargo/pkg/geo"
	"wayfargo/pkg/model"
	"wayfargo/pkg/nav"
	"wayfargo/pkg/polyline"
)

// NavHandler exposes the navigation session over HTTP.
type NavHandler struct {
	session *nav.Session
}

func NewNavHandler(s *nav.Session) *NavHandler {
	return &NavHandler{session: s}
}

type destinationRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type waypointRequest struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Index *int    `json:"index,omitempty"`
}

// boundsDTO is the bounding box the map viewport fits to.
type boundsDTO struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// sessionResponse wraps a snapshot with the active route's bounding box so
// the client can frame the map without decoding the polyline itself.
type sessionResponse struct {
	model.SessionSnapshot
	RouteBounds *boundsDTO `json:"route_bounds,omitempty"`
}

func newSessionResponse(snap model.SessionSnapshot) sessionResponse {
	resp := sessionResponse{SessionSnapshot: snap}
	if snap.Route != nil && snap.Route.Polyline != "" {
		if b, ok := geo.Bound(polyline.DecodeLineString(snap.Route.Polyline)); ok {
			resp.RouteBounds = &boundsDTO{
				MinLat: b.Min.Lat(),
				MinLon: b.Min.Lon(),
				MaxLat: b.Max.Lat(),
				MaxLon: b.Max.Lon(),
			}
		}
	}
	return resp
}

func (h *NavHandler) writeSnapshot(w http.ResponseWriter) {
	writeJSON(w, newSessionResponse(h.session.Snapshot()))
}

// HandleSession returns the current session snapshot.
// GET /api/session
func (h *NavHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w)
}

// HandleView shows a destination without routing.
// POST /api/navigation/view
func (h *NavHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.session.ViewDestination(model.Destination{
		Name:   req.Name,
		Coords: model.Coordinate{Lat: req.Lat, Lon: req.Lon},
	})
	h.writeSnapshot(w)
}

// HandleStart begins navigating to a destination.
// POST /api/navigation/start
func (h *NavHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.session.StartNavigation(model.Destination{
		Name:   req.Name,
		Coords: model.Coordinate{Lat: req.Lat, Lon: req.Lon},
	})
	h.writeSnapshot(w)
}

// HandleMode switches the travel mode.
// POST /api/navigation/mode
func (h *NavHandler) HandleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.session.SetTravelMode(model.TravelMode(req.Mode)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeSnapshot(w)
}

// HandleLocation injects a device GPS fix. The mobile shell bridges native
// geolocation through this endpoint when the mock walker is disabled.
// POST /api/navigation/location
func (h *NavHandler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.session.LocationUpdated(model.Coordinate{Lat: req.Lat, Lon: req.Lon})
	w.WriteHeader(http.StatusAccepted)
}

// HandleAddWaypoint inserts a mid-route stop.
// POST /api/navigation/waypoints
func (h *NavHandler) HandleAddWaypoint(w http.ResponseWriter, r *http.Request) {
	var req waypointRequest
	if !decodeBody(w, r, &req) {
		return
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}
	wp, ok := h.session.AddWaypoint(req.Name, model.Coordinate{Lat: req.Lat, Lon: req.Lon}, index)
	if !ok {
		http.Error(w, "waypoint edit rejected", http.StatusConflict)
		return
	}
	writeJSON(w, wp)
}

// HandleRemoveWaypoint removes a stop by id.
// DELETE /api/navigation/waypoints/{id}
func (h *NavHandler) HandleRemoveWaypoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.session.RemoveWaypoint(id) {
		http.Error(w, "unknown waypoint", http.StatusNotFound)
		return
	}
	h.writeSnapshot(w)
}

// HandleVisitWaypoint checks off a stop.
// POST /api/navigation/waypoints/{id}/visited
func (h *NavHandler) HandleVisitWaypoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.session.MarkWaypointVisited(id) {
		http.Error(w, "unknown waypoint", http.StatusNotFound)
		return
	}
	h.writeSnapshot(w)
}

// HandleExit tears the session down to idle.
// POST /api/navigation/exit
func (h *NavHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	h.session.GoHome()
	h.writeSnapshot(w)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
