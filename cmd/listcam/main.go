package main

import (
	"fmt"

	"camviewer/internal/config"
	"camviewer/internal/vision"
	"camviewer/internal/vision/opencv"
)

func main() {
	cfg := config.Load()

	fmt.Printf("Probing camera indices 0..%d\n", cfg.ProbeLimit-1)

	results := vision.Probe(func(index int) (vision.Camera, error) {
		c, err := opencv.OpenCamera(index)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, cfg.ProbeLimit)

	for _, r := range results {
		fmt.Println(formatResult(r))
	}
}

func formatResult(r vision.ProbeResult) string {
	if !r.Found {
		return fmt.Sprintf("Index %d: not available", r.Index)
	}
	grab := "frame grabbed"
	if !r.Grabbed {
		grab = "no frame"
	}
	return fmt.Sprintf("Index %d: FOUND (%dx%d @ %.1f fps), %s", r.Index, r.Info.Width, r.Info.Height, r.Info.FPS, grab)
}
