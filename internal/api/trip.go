package api

import (
	"net/http"
	"time"

	"wayfargo/pkg/model"
	"wayfargo/pkg/store"
)

// TripHandler serves the persisted trip-event history.
type TripHandler struct {
	events store.EventStore
}

// NewTripHandler creates a new TripHandler. Returns nil without a store.
func NewTripHandler(events store.EventStore) *TripHandler {
	if events == nil {
		return nil
	}
	return &TripHandler{events: events}
}

// HandleEvents returns the trip events of the last 24 hours, or of the
// window given by ?since=RFC3339.
// GET /api/trip/events
func (h *TripHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	events, err := h.events.GetEventsSince(r.Context(), since)
	if err != nil {
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []model.NavEvent{}
	}

	writeJSON(w, events)
}
