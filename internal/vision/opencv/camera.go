package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"camviewer/internal/vision"
)

var properties = map[vision.Property]gocv.VideoCaptureProperties{
	vision.PropFrameWidth:  gocv.VideoCaptureFrameWidth,
	vision.PropFrameHeight: gocv.VideoCaptureFrameHeight,
	vision.PropFPS:         gocv.VideoCaptureFPS,
}

// Camera is a capture device opened through OpenCV.
type Camera struct {
	capture *gocv.VideoCapture
}

// OpenCamera opens the capture device with the given index.
func OpenCamera(index int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", index, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not available", index)
	}
	return &Camera{capture: capture}, nil
}

// Read grabs the next frame. The caller owns the returned frame.
func (c *Camera) Read() (vision.Frame, error) {
	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, vision.ErrReadFailed
	}
	if mat.Empty() {
		mat.Close()
		return nil, vision.ErrEmptyFrame
	}
	return NewFrame(mat), nil
}

func (c *Camera) Get(prop vision.Property) float64 {
	p, ok := properties[prop]
	if !ok {
		return 0
	}
	return c.capture.Get(p)
}

func (c *Camera) Set(prop vision.Property, value float64) {
	if p, ok := properties[prop]; ok {
		c.capture.Set(p, value)
	}
}

func (c *Camera) Close() error {
	return c.capture.Close()
}
