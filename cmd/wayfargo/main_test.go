package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()

	tempConfig := `
server:
    address: localhost:0  # 0 lets the OS choose a free port
ticker:
    location_loop: 50ms
    persistence: 1s
db:
    path: ":memory:"
routing:
    provider: mock
location:
    provider: mock
log:
    server:
        path: "` + filepath.Join(dir, "server.log") + `"
        level: "debug"
    requests:
        path: "` + filepath.Join(dir, "requests.log") + `"
        level: "info"
    events:
        path: "` + filepath.Join(dir, "events.log") + `"
        level: "info"
`
	cfgPath := filepath.Join(dir, "wayfar.yaml")
	if err := os.WriteFile(cfgPath, []byte(tempConfig), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	// Cancel quickly; this verifies the startup and shutdown sequence.
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := run(ctx, cfgPath); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
}

func TestRunRejectsUnknownProviders(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wayfar.yaml")
	cfg := `
db:
    path: ":memory:"
routing:
    provider: carrier-pigeon
log:
    server:
        path: "` + filepath.Join(dir, "server.log") + `"
    requests:
        path: "` + filepath.Join(dir, "requests.log") + `"
    events:
        path: "` + filepath.Join(dir, "events.log") + `"
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := run(ctx, cfgPath); err == nil {
		t.Fatal("expected an error for an unknown routing provider")
	}
}
