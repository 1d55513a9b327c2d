package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wayfargo/pkg/config"
	"wayfargo/pkg/model"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")
	requestLog := filepath.Join(tempDir, "requests.log")

	cfg := &config.LogConfig{
		Server: config.LogSettings{
			Path:  serverLog,
			Level: "DEBUG",
		},
		Requests: config.LogSettings{
			Path:  requestLog,
			Level: "INFO",
		},
	}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(serverLog); os.IsNotExist(err) {
		t.Error("Server log file not created")
	}
	if _, err := os.Stat(requestLog); os.IsNotExist(err) {
		t.Error("Request log file not created")
	}
	if RequestLogger == nil {
		t.Error("RequestLogger was not initialized")
	}
}

func TestLogEvent(t *testing.T) {
	tempDir := t.TempDir()
	eventLog := filepath.Join(tempDir, "events.log")
	SetEventLogPath(eventLog)
	defer SetEventLogPath("")

	LogEvent(&model.NavEvent{
		Type:      model.EventArrival,
		Title:     "Arrived at Tokyo Station",
		Summary:   "49m from destination",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	data, err := os.ReadFile(eventLog)
	if err != nil {
		t.Fatalf("event log not written: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "[arrival]") || !strings.Contains(line, "Arrived at Tokyo Station") {
		t.Errorf("unexpected event line: %q", line)
	}
	if !strings.Contains(GlobalEventCapture.GetLastLine(), "Arrived at Tokyo Station") {
		t.Error("event not captured for overlay")
	}
}

func TestLogCaptureWriterDepth(t *testing.T) {
	w := &LogCaptureWriter{}
	for i := 0; i < captureDepth+10; i++ {
		if _, err := w.Write([]byte("line\n")); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(w.GetLines()); got != captureDepth {
		t.Errorf("capture depth = %d, expected %d", got, captureDepth)
	}
}
