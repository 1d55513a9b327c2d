package api

import (
	"net/http"
	"sync"
	"time"

	"wayfargo/pkg/geo"
	"wayfargo/pkg/location"
)

// trackWindow is the number of fixes averaged into the ground track.
const trackWindow = 5

// LocationResponse is the API view of the latest fix. Track and TrackSpeedMPS
// are smoothed over the last few fixes; raw fix-to-fix headings are too
// jittery at walking pace to point a compass arrow at.
type LocationResponse struct {
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Heading       float64   `json:"heading"`
	SpeedMPS      float64   `json:"speed_mps"`
	Track         float64   `json:"track"`
	TrackSpeedMPS float64   `json:"track_speed_mps"`
	At            time.Time `json:"at"`
	HasFix        bool      `json:"has_fix"`
}

// LocationHandler caches the latest fix from the pump (it implements
// core.FixSink) and serves it to the UI.
type LocationHandler struct {
	mu    sync.RWMutex
	fix   *location.Fix
	trk   float64
	track *geo.TrackBuffer
}

func NewLocationHandler() *LocationHandler {
	return &LocationHandler{track: geo.NewTrackBuffer(trackWindow)}
}

// Update implements core.FixSink.
func (h *LocationHandler) Update(f *location.Fix) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fix = f
	h.trk = h.track.Push(f.Point, f.At, f.Heading)
}

// HandleLocation returns the latest fix.
// GET /api/location
func (h *LocationHandler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	resp := LocationResponse{}
	if h.fix != nil {
		resp = LocationResponse{
			Lat:           h.fix.Point.Lat,
			Lon:           h.fix.Point.Lon,
			Heading:       h.fix.Heading,
			SpeedMPS:      h.fix.SpeedMPS,
			Track:         h.trk,
			TrackSpeedMPS: h.track.Speed(),
			At:            h.fix.At,
			HasFix:        true,
		}
	}
	h.mu.RUnlock()

	writeJSON(w, resp)
}
