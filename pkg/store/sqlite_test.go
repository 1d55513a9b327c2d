package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wayfargo/pkg/db"
	"wayfargo/pkg/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	d, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db init: %v", err)
	}
	s := NewSQLiteStore(d)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEventRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Now().Add(-time.Minute)
	events := []model.NavEvent{
		{Type: model.EventNavigationStarted, Title: "Navigation started", Summary: "to Tokyo Station"},
		{Type: model.EventStepAdvanced, Title: "Step 0 → 2"},
		{Type: model.EventArrival, Title: "Arrived"},
	}
	for i := range events {
		if err := s.SaveEvent(ctx, &events[i]); err != nil {
			t.Fatalf("SaveEvent: %v", err)
		}
	}

	got, err := s.GetEventsSince(ctx, start)
	if err != nil {
		t.Fatalf("GetEventsSince: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, expected 3", len(got))
	}
	if got[0].Type != model.EventNavigationStarted || got[2].Type != model.EventArrival {
		t.Errorf("events out of order: %+v", got)
	}
	if got[0].Summary != "to Tokyo Station" {
		t.Errorf("summary lost: %q", got[0].Summary)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, found := s.GetCache(ctx, "missing"); found {
		t.Error("unexpected cache hit for missing key")
	}

	payload := []byte(`{"route":"_p~iF~ps|U_ulLnnqC"}`)
	if err := s.SetCache(ctx, "route:abc", payload); err != nil {
		t.Fatalf("SetCache: %v", err)
	}

	got, found := s.GetCache(ctx, "route:abc")
	if !found {
		t.Fatal("cache miss after set")
	}
	if string(got) != string(payload) {
		t.Errorf("cache value = %q, expected %q (compression must be transparent)", got, payload)
	}

	keys, err := s.ListCacheKeys(ctx, "route:")
	if err != nil {
		t.Fatalf("ListCacheKeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "route:abc" {
		t.Errorf("keys = %v", keys)
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, found := s.GetState(ctx, "session"); found {
		t.Error("unexpected state for missing key")
	}

	if err := s.SetState(ctx, "session", `{"mode":"navigating"}`); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	val, found := s.GetState(ctx, "session")
	if !found || val != `{"mode":"navigating"}` {
		t.Errorf("state = %q, found=%v", val, found)
	}

	// Overwrite
	if err := s.SetState(ctx, "session", `{"mode":"idle"}`); err != nil {
		t.Fatal(err)
	}
	val, _ = s.GetState(ctx, "session")
	if val != `{"mode":"idle"}` {
		t.Errorf("overwrite failed: %q", val)
	}

	if err := s.DeleteState(ctx, "session"); err != nil {
		t.Fatalf("DeleteState: %v", err)
	}
	if _, found := s.GetState(ctx, "session"); found {
		t.Error("state present after delete")
	}
}
