// Package api exposes the local HTTP surface the companion UI talks to:
// session state, navigation commands, live fix and snapshot streams, and
// diagnostics.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"wayfargo/pkg/version"
)

// NewServer creates and configures the HTTP server.
func NewServer(addr string, nav *NavHandler, loc *LocationHandler, stats *StatsHandler, trip *TripHandler, ws *StreamHandler, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)

	// Session state and navigation commands
	mux.HandleFunc("GET /api/session", nav.HandleSession)
	mux.HandleFunc("POST /api/navigation/view", nav.HandleView)
	mux.HandleFunc("POST /api/navigation/start", nav.HandleStart)
	mux.HandleFunc("POST /api/navigation/mode", nav.HandleMode)
	mux.HandleFunc("POST /api/navigation/location", nav.HandleLocation)
	mux.HandleFunc("POST /api/navigation/waypoints", nav.HandleAddWaypoint)
	mux.HandleFunc("DELETE /api/navigation/waypoints/{id}", nav.HandleRemoveWaypoint)
	mux.HandleFunc("POST /api/navigation/waypoints/{id}/visited", nav.HandleVisitWaypoint)
	mux.HandleFunc("POST /api/navigation/exit", nav.HandleExit)

	// Live data
	mux.HandleFunc("GET /api/location", loc.HandleLocation)
	if ws != nil {
		mux.HandleFunc("GET /ws/session", ws.HandleSession)
	}

	// Diagnostics
	mux.Handle("GET /api/stats", stats)
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)
	if trip != nil {
		mux.HandleFunc("GET /api/trip/events", trip.HandleEvents)
	}

	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
