package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"wayfargo/pkg/config"
	"wayfargo/pkg/model"
	"wayfargo/pkg/nav"
	"wayfargo/pkg/routing/mockroute"
	"wayfargo/pkg/tracker"
)

type memStateStore struct {
	mu     sync.Mutex
	states map[string]string
	sets   int
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]string)}
}

func (m *memStateStore) GetState(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.states[key]
	return v, ok
}

func (m *memStateStore) SetState(ctx context.Context, key, val string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = val
	m.sets++
	return nil
}

func (m *memStateStore) DeleteState(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
	return nil
}

func (m *memStateStore) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func TestPersistenceSavesOnceWhenUnchanged(t *testing.T) {
	session := nav.NewSession(mockroute.New(), nil, tracker.New(), config.NavConfig{})
	defer session.Close()
	st := newMemStateStore()

	j := NewSessionPersistenceJob(st, session, time.Minute)

	ctx := context.Background()
	j.checkAndSave(ctx)
	j.checkAndSave(ctx)
	j.checkAndSave(ctx)

	if st.setCount() != 1 {
		t.Errorf("unchanged snapshot saved %d times, want 1", st.setCount())
	}
}

func TestPersistenceSavesOnChange(t *testing.T) {
	session := nav.NewSession(mockroute.New(), nil, tracker.New(), config.NavConfig{})
	defer session.Close()
	st := newMemStateStore()

	j := NewSessionPersistenceJob(st, session, time.Minute)

	ctx := context.Background()
	j.checkAndSave(ctx)

	session.ViewDestination(model.Destination{
		Name:   "Museum",
		Coords: model.Coordinate{Lat: 35.65, Lon: 139.74},
	})
	j.checkAndSave(ctx)

	if st.setCount() != 2 {
		t.Errorf("changed snapshot saved %d times, want 2", st.setCount())
	}

	snap, ok := LoadLastSnapshot(ctx, st)
	if !ok {
		t.Fatal("no snapshot restored")
	}
	if snap.Mode != model.ModeViewingDetail || snap.Destination == nil {
		t.Errorf("restored snapshot wrong: %+v", snap)
	}
}

func TestLoadLastSnapshotMissing(t *testing.T) {
	st := newMemStateStore()
	if _, ok := LoadLastSnapshot(context.Background(), st); ok {
		t.Error("restored a snapshot from an empty store")
	}

	st.SetState(context.Background(), snapshotStateKey, "{not json")
	if _, ok := LoadLastSnapshot(context.Background(), st); ok {
		t.Error("restored a corrupt snapshot")
	}
}
