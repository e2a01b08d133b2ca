package dto

import (
	"encoding/json"
	"time"
)

// SnapshotInfo represents a stored snapshot as listed to viewers.
type SnapshotInfo struct {
	Name        string    `json:"name"`
	Session     string    `json:"session"`
	CameraIndex int       `json:"camera"`
	Sequence    int       `json:"sequence"`
	Taken       time.Time `json:"taken"`
	Size        int64     `json:"size"`
	Labels      []string  `json:"labels"` // Faces and eyes visible when saved
}

// MarshalJSON customizes JSON output for SnapshotInfo to format the capture time.
func (s SnapshotInfo) MarshalJSON() ([]byte, error) {
	type Alias SnapshotInfo
	return json.Marshal(&struct {
		Taken string `json:"taken"`
		Alias
	}{
		Taken: s.Taken.Format("02-01-2006 15:04:05"),
		Alias: (Alias)(s),
	})
}
