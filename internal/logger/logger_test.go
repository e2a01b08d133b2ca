package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"camviewer/internal/config"
)

func TestNewLogger_WritesLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := NewLogger(&config.Config{LogDirectory: dir})
	defer l.Close()

	l.Info("camera %d opened", 0)
	l.Warning("empty frame")
	l.Error("write failed: %s", "disk full")

	cases := map[string]string{
		InfoFile:    "camera 0 opened",
		WarningFile: "empty frame",
		ErrorFile:   "write failed: disk full",
	}
	for file, want := range cases {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", file, err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s should contain %q, got %q", file, want, data)
		}
	}
}

func TestCleanLogs(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger(&config.Config{LogDirectory: dir})
	defer l.Close()

	l.Warning("first")
	if err := l.CleanLogs(WarningFile); err != nil {
		t.Fatalf("CleanLogs failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, WarningFile))
	if err != nil {
		t.Fatalf("Failed to read warning log: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty warning log, got %q", data)
	}
}

func TestWriterLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger(&out, &errOut)

	l.Info("hello")
	l.Error("boom")

	if !strings.Contains(out.String(), "hello") {
		t.Errorf("Expected info on out, got %q", out.String())
	}
	if strings.Contains(out.String(), "boom") {
		t.Error("Error entries should not go to out")
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("Expected error on errOut, got %q", errOut.String())
	}
}
