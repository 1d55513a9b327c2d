package core

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"wayfargo/pkg/model"
	"wayfargo/pkg/nav"
	"wayfargo/pkg/store"
)

const snapshotStateKey = "session_snapshot"

// SessionPersistenceJob periodically saves the session snapshot so a trip
// survives an app restart (the UI offers to resume from it).
type SessionPersistenceJob struct {
	st       store.StateStore
	session  *nav.Session
	interval time.Duration

	lastSavedState []byte
}

// NewSessionPersistenceJob creates a new persistence job.
func NewSessionPersistenceJob(st store.StateStore, s *nav.Session, interval time.Duration) *SessionPersistenceJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SessionPersistenceJob{
		st:       st,
		session:  s,
		interval: interval,
	}
}

// Start begins the persistence loop.
func (j *SessionPersistenceJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)

	slog.Info("Persistence: session persistence loop started", "interval", j.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.checkAndSave(ctx)
			}
		}
	}()
}

func (j *SessionPersistenceJob) checkAndSave(ctx context.Context) {
	snap := j.session.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("Persistence: failed to serialize session snapshot", "error", err)
		return
	}

	if bytes.Equal(data, j.lastSavedState) {
		return // No change
	}

	if err := j.st.SetState(ctx, snapshotStateKey, string(data)); err != nil {
		slog.Error("Persistence: failed to save session snapshot", "error", err)
		return
	}
	j.lastSavedState = data
	slog.Debug("Persistence: session saved", "size", len(data))
}

// LoadLastSnapshot returns the snapshot saved by a previous run, if any.
func LoadLastSnapshot(ctx context.Context, st store.StateStore) (*model.SessionSnapshot, bool) {
	raw, ok := st.GetState(ctx, snapshotStateKey)
	if !ok {
		return nil, false
	}
	var snap model.SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		slog.Warn("Persistence: discarding unreadable session snapshot", "error", err)
		return nil, false
	}
	return &snap, true
}
