package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CAMERA_INDEX", "FACE_SCALE", "EYE_BAND_RATIO", "DETECTION_ENABLED", "PROBE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.CameraIndex != 0 {
		t.Errorf("Expected camera index 0, got %d", cfg.CameraIndex)
	}
	if cfg.FaceScale != 1.1 {
		t.Errorf("Expected face scale 1.1, got %v", cfg.FaceScale)
	}
	if cfg.EyeBandRatio != 0.6 {
		t.Errorf("Expected eye band ratio 0.6, got %v", cfg.EyeBandRatio)
	}
	if !cfg.DetectionEnabled {
		t.Error("Detection should be enabled by default")
	}
	if cfg.ProbeLimit != 6 {
		t.Errorf("Expected probe limit 6, got %d", cfg.ProbeLimit)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "2")
	t.Setenv("EYE_BAND_RATIO", "0.5")
	t.Setenv("DETECTION_ENABLED", "false")
	t.Setenv("VIEWER_PORT", "9090")

	cfg := Load()

	if cfg.CameraIndex != 2 {
		t.Errorf("Expected camera index 2, got %d", cfg.CameraIndex)
	}
	if cfg.EyeBandRatio != 0.5 {
		t.Errorf("Expected eye band ratio 0.5, got %v", cfg.EyeBandRatio)
	}
	if cfg.DetectionEnabled {
		t.Error("Detection should be disabled")
	}
	if cfg.ViewerPort != 9090 {
		t.Errorf("Expected viewer port 9090, got %d", cfg.ViewerPort)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "abc")
	t.Setenv("FACE_SCALE", "fast")
	t.Setenv("DETECTION_ENABLED", "maybe")
	t.Setenv("EYE_BAND_RATIO", "-0.6")
	t.Setenv("PROBE_LIMIT", "-1")

	cfg := Load()

	if cfg.CameraIndex != 0 {
		t.Errorf("Expected fallback camera index 0, got %d", cfg.CameraIndex)
	}
	if cfg.FaceScale != 1.1 {
		t.Errorf("Expected fallback face scale 1.1, got %v", cfg.FaceScale)
	}
	if !cfg.DetectionEnabled {
		t.Error("Expected fallback DetectionEnabled=true")
	}
	if cfg.EyeBandRatio != 0.6 {
		t.Errorf("Expected fallback eye band ratio 0.6, got %v", cfg.EyeBandRatio)
	}
	if cfg.ProbeLimit != 6 {
		t.Errorf("Expected fallback probe limit 6, got %d", cfg.ProbeLimit)
	}
}

func TestLoad_EyeBandRatioRange(t *testing.T) {
	tests := []struct {
		value    string
		expected float64
	}{
		{"0", 0.6},
		{"1.5", 0.6},
		{"-0.2", 0.6},
		{"1", 1},
		{"0.4", 0.4},
	}

	for _, tt := range tests {
		t.Setenv("EYE_BAND_RATIO", tt.value)
		if got := Load().EyeBandRatio; got != tt.expected {
			t.Errorf("EYE_BAND_RATIO=%s: got %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func TestCascadePaths(t *testing.T) {
	cfg := &Config{
		CascadeDir:  "cascades",
		FaceCascade: "face.xml",
		EyeCascade:  filepath.Join(string(filepath.Separator), "opt", "eye.xml"),
	}

	if got := cfg.FaceCascadePath(); got != filepath.Join("cascades", "face.xml") {
		t.Errorf("FaceCascadePath() = %s", got)
	}
	if got := cfg.EyeCascadePath(); got != cfg.EyeCascade {
		t.Errorf("Absolute eye cascade should be kept, got %s", got)
	}
}
