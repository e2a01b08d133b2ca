package vision

// OpenFunc opens the camera at index.
type OpenFunc func(index int) (Camera, error)

// ProbeResult describes one probed camera index.
type ProbeResult struct {
	Index   int
	Found   bool
	Info    CameraInfo
	Grabbed bool // A frame could actually be read
}

// Probe tries every index in [0, limit) and reports which cameras open and
// which of them deliver frames. Each camera is released before the next one
// is opened.
func Probe(open OpenFunc, limit int) []ProbeResult {
	if limit <= 0 {
		return nil
	}
	results := make([]ProbeResult, 0, limit)
	for i := 0; i < limit; i++ {
		results = append(results, probeOne(open, i))
	}
	return results
}

func probeOne(open OpenFunc, index int) ProbeResult {
	result := ProbeResult{Index: index}

	cam, err := open(index)
	if err != nil || cam == nil {
		return result
	}
	defer cam.Close()

	result.Found = true
	result.Info = ReadInfo(cam)

	frame, err := cam.Read()
	if err == nil && frame != nil {
		result.Grabbed = !frame.Empty()
		frame.Close()
	}
	return result
}
