package model

import "time"

// Snapshot represents a saved display frame.
type Snapshot struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	CameraIndex int       `json:"camera_index"`
	Sequence    int       `json:"sequence"`
	Timestamp   time.Time `json:"timestamp"`
	FilePath    string    `json:"filepath"`
	FileSize    int64     `json:"filesize"`
	Detection   bool      `json:"detection"`
	Grayscale   bool      `json:"grayscale"`
	Flipped     bool      `json:"flipped"`
}

// Region represents a face or eye visible in a snapshot.
type Region struct {
	ID         int64  `json:"id"`
	SnapshotID int64  `json:"snapshot_id"`
	Label      string `json:"label"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}
