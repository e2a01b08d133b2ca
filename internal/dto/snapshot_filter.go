// SnapshotFilters describe user-provided filters to narrow the snapshot list.
package dto

import "time"

type SnapshotFilters struct {
	SessionID   string
	CameraIndex int // -1 matches every camera
	Label       string
	DateAfter   time.Time
	DateBefore  time.Time
	Limit       int
	Offset      int
}

// AllSnapshots returns filters that match every snapshot.
func AllSnapshots() *SnapshotFilters {
	return &SnapshotFilters{CameraIndex: -1}
}
