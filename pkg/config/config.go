package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	DB       DBConfig       `yaml:"db"`
	Ticker   TickerConfig   `yaml:"ticker"`
	Request  RequestConfig  `yaml:"request"`
	Routing  RoutingConfig  `yaml:"routing"`
	Location LocationConfig `yaml:"location"`
	Nav      NavConfig      `yaml:"nav"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
	Events   LogSettings `yaml:"events"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// TickerConfig holds ticker settings.
type TickerConfig struct {
	LocationLoop Duration `yaml:"location_loop"`
	Persistence  Duration `yaml:"persistence"`
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries int           `yaml:"retries"`
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// RoutingConfig holds settings for the external directions service.
type RoutingConfig struct {
	Provider string `yaml:"provider"` // "directions", "mock"
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
}

// LocationConfig holds settings for the geolocation source.
type LocationConfig struct {
	Provider string        `yaml:"provider"` // "mock" (device GPS is bridged in by the UI layer)
	Mock     MockGPSConfig `yaml:"mock"`
}

// MockGPSConfig holds settings for the simulated GPS walker.
type MockGPSConfig struct {
	StartLat     float64  `yaml:"start_lat"`
	StartLon     float64  `yaml:"start_lon"`
	SpeedMPS     float64  `yaml:"speed_mps"`
	JitterMeters Distance `yaml:"jitter"`
}

// NavConfig holds navigation engine thresholds.
type NavConfig struct {
	ArrivalRadius Distance `yaml:"arrival_radius"`
	QueueDepth    int      `yaml:"queue_depth"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:1872",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
			Events: LogSettings{
				Path: "./logs/events.log",
			},
		},
		DB: DBConfig{
			Path: "./data/wayfar.db",
		},
		Ticker: TickerConfig{
			LocationLoop: Duration(1 * time.Second),
			Persistence:  Duration(30 * time.Second),
		},
		Request: RequestConfig{
			Retries: 3,
			Timeout: Duration(30 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(500 * time.Millisecond),
				MaxDelay:  Duration(30 * time.Second),
			},
		},
		Routing: RoutingConfig{
			Provider: "directions",
			BaseURL:  "https://routes.googleapis.com",
		},
		Location: LocationConfig{
			Provider: "mock",
			Mock: MockGPSConfig{
				StartLat: 35.6812,
				StartLon: 139.7671,
				SpeedMPS: 1.4, // walking pace
			},
		},
		Nav: NavConfig{
			ArrivalRadius: Distance(50),
			QueueDepth:    64,
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		// Env fallback for the routing key (never saved back to disk)
		if cfg.Routing.APIKey == "" {
			if key := os.Getenv("WAYFAR_ROUTING_API_KEY"); key != "" {
				cfg.Routing.APIKey = key
			}
		}

		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Wayfar Configuration
# --------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)
#   Distance: m (meters), km (kilometers)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
