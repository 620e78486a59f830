package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	logger.Info("screen resumed", "screen_id", "scr-1")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "stagedoor.log"))
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("Expected at least one log line")
	}

	var entry map[string]any
	if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}
	if entry["msg"] != "screen resumed" {
		t.Errorf("Expected msg 'screen resumed', got %v", entry["msg"])
	}
	if entry["screen_id"] != "scr-1" {
		t.Errorf("Expected screen_id scr-1, got %v", entry["screen_id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stagedoor.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 1 {
		t.Errorf("Expected 1 log line at WARN level, got %d", lines)
	}
}

func TestLogger_WithScreenInheritsAttrs(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	child := logger.WithScreen("scr-9").WithKind("editor")
	child.Info("started")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stagedoor.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}
	if entry["screen_id"] != "scr-9" {
		t.Errorf("Expected screen_id scr-9, got %v", entry["screen_id"])
	}
	if entry["kind"] != "editor" {
		t.Errorf("Expected kind editor, got %v", entry["kind"])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger

	// None of these should panic.
	logger.Debug("msg")
	logger.Info("msg")
	logger.Warn("msg")
	logger.Error("msg")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger returned error: %v", err)
	}
	if child := logger.WithScreen("scr-1"); child != nil {
		t.Error("WithScreen on nil logger should return nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
