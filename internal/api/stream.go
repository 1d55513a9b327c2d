package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"wayfargo/pkg/nav"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The server only listens on localhost; the UI shell connects from a
	// file:// or custom-scheme origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler pushes session snapshots to websocket clients.
type StreamHandler struct {
	session *nav.Session
}

func NewStreamHandler(s *nav.Session) *StreamHandler {
	return &StreamHandler{session: s}
}

// HandleSession upgrades to a websocket and streams one snapshot per
// session change, starting with the current state.
// GET /ws/session
func (h *StreamHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	snapshots, cancel := h.session.Subscribe()
	defer cancel()

	// Discard client frames; we only push. This also surfaces closes.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	if err := conn.WriteJSON(h.session.Snapshot()); err != nil {
		return
	}

	// Heartbeat keeps half-dead connections from lingering.
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
