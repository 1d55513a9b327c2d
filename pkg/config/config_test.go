package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfar.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Address == "" {
		t.Error("default server address empty")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	if float64(cfg.Nav.ArrivalRadius) != 50 {
		t.Errorf("default arrival radius = %v, expected 50", cfg.Nav.ArrivalRadius)
	}
}

func TestLoadMergesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfar.yaml")
	content := `
server:
  address: "localhost:9999"
ticker:
  location_loop: 250ms
nav:
  arrival_radius: 75m
routing:
  provider: mock
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Address != "localhost:9999" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if time.Duration(cfg.Ticker.LocationLoop) != 250*time.Millisecond {
		t.Errorf("location_loop = %v", cfg.Ticker.LocationLoop)
	}
	if float64(cfg.Nav.ArrivalRadius) != 75 {
		t.Errorf("arrival_radius = %v", cfg.Nav.ArrivalRadius)
	}
	if cfg.Routing.Provider != "mock" {
		t.Errorf("routing provider = %q", cfg.Routing.Provider)
	}
	// Untouched fields keep defaults
	if cfg.DB.Path == "" {
		t.Error("db path default lost in merge")
	}
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfar.yaml")
	if err := os.WriteFile(path, []byte("routing:\n  provider: osrm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAYFAR_ROUTING_API_KEY", "secret-123")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Routing.APIKey != "secret-123" {
		t.Errorf("api key = %q, expected env fallback", cfg.Routing.APIKey)
	}
}
