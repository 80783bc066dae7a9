package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("streak reconciled", "current", 3)
	Warn("save failed", "key", "dayly.streak")
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, false)

	Debug("hidden at info level")
	Warn("corrupt blob preserved", "key", "dayly.goals")

	out := buf.String()
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "corrupt blob preserved") || !strings.Contains(out, "dayly.goals") {
		t.Errorf("expected warning with key in output, got %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
