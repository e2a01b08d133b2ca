package session

// State is the mutable mode of a capture session. Only command handlers
// change it; the renderer reads it once per frame.
type State struct {
	DetectionEnabled bool
	Grayscale        bool
	Flipped          bool
	SnapshotCounter  int
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
