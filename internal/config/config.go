package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEyeBandRatio = 0.6
	defaultProbeLimit   = 6
)

type Config struct {
	CameraIndex      int
	CameraFPS        float64
	CascadeDir       string
	FaceCascade      string
	EyeCascade       string
	FaceScale        float64
	FaceMinNeighbors int
	FaceMinSize      int // px, square
	EyeScale         float64
	EyeMinNeighbors  int
	EyeMinSize       int
	EyeBandRatio     float64 // Górna część twarzy przeszukiwana pod kątem oczu
	DetectionEnabled bool
	KeyWaitMs        int
	WindowName       string
	SnapshotDir      string
	DatabasePath     string
	LogDirectory     string
	ViewerPort       int // 0 wyłącza podgląd w przeglądarce
	ProbeLimit       int // Ile indeksów kamer sprawdza listcam
}

// Load reads an optional .env file and fills the Config from the environment.
func Load() *Config {
	// Brak pliku .env nie jest błędem
	_ = godotenv.Load()

	cfg := &Config{
		CameraIndex:      getEnvAsInt("CAMERA_INDEX", 0),
		CameraFPS:        getEnvAsFloat("CAMERA_FPS", 30),
		CascadeDir:       getEnv("CASCADE_DIR", filepath.Join(".", "data")),
		FaceCascade:      getEnv("FACE_CASCADE", "haarcascade_frontalface_default.xml"),
		EyeCascade:       getEnv("EYE_CASCADE", "haarcascade_eye.xml"),
		FaceScale:        getEnvAsFloat("FACE_SCALE", 1.1),
		FaceMinNeighbors: getEnvAsInt("FACE_MIN_NEIGHBORS", 5),
		FaceMinSize:      getEnvAsInt("FACE_MIN_SIZE", 80),
		EyeScale:         getEnvAsFloat("EYE_SCALE", 1.1),
		EyeMinNeighbors:  getEnvAsInt("EYE_MIN_NEIGHBORS", 10),
		EyeMinSize:       getEnvAsInt("EYE_MIN_SIZE", 20),
		EyeBandRatio:     getEnvAsFloat("EYE_BAND_RATIO", defaultEyeBandRatio),
		DetectionEnabled: getEnvAsBool("DETECTION_ENABLED", true),
		KeyWaitMs:        getEnvAsInt("KEY_WAIT_MS", 1),
		WindowName:       getEnv("WINDOW_NAME", "Eye Tracker  [Q=quit  E=detection  G=gray  F=flip  S=snapshot  I=info]"),
		SnapshotDir:      getEnv("SNAPSHOT_DIR", filepath.Join(".", "snapshots")),
		DatabasePath:     getEnv("DB_PATH", filepath.Join(".", "data", "snapshots.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		ViewerPort:       getEnvAsInt("VIEWER_PORT", 0),
		ProbeLimit:       getEnvAsInt("PROBE_LIMIT", defaultProbeLimit),
	}

	// Wartości spoza zakresu zastępujemy domyślnymi
	if cfg.EyeBandRatio <= 0 || cfg.EyeBandRatio > 1 {
		cfg.EyeBandRatio = defaultEyeBandRatio
	}
	if cfg.ProbeLimit < 1 {
		cfg.ProbeLimit = defaultProbeLimit
	}
	return cfg
}

// FaceCascadePath returns the full path of the face cascade definition.
func (c *Config) FaceCascadePath() string {
	return cascadePath(c.CascadeDir, c.FaceCascade)
}

// EyeCascadePath returns the full path of the eye cascade definition.
func (c *Config) EyeCascadePath() string {
	return cascadePath(c.CascadeDir, c.EyeCascade)
}

func cascadePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
