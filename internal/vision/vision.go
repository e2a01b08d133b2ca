// Package vision declares the narrow capture, classifier, imaging and
// display capabilities the viewer needs from a computer vision backend.
// The OpenCV implementation lives in vision/opencv.
package vision

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrEmptyFrame is returned by a Camera when it produced no image.
	ErrEmptyFrame = errors.New("empty frame")
	// ErrReadFailed is returned by a Camera when the device stopped delivering frames.
	ErrReadFailed = errors.New("camera read failed")
)

// Frame is one raster image owned by the caller until Close.
type Frame interface {
	Empty() bool
	Size() image.Point
	Close() error
}

// Property identifies a camera property.
type Property int

const (
	PropFrameWidth Property = iota
	PropFrameHeight
	PropFPS
)

// Camera is an open capture device.
type Camera interface {
	Read() (Frame, error)
	Get(prop Property) float64
	Set(prop Property, value float64)
	Close() error
}

// DetectParams are the multi-scale detection settings for a classifier.
type DetectParams struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// Classifier finds object regions inside roi of img. Returned rectangles are
// relative to roi's origin.
type Classifier interface {
	Detect(img Frame, roi image.Rectangle, params DetectParams) ([]image.Rectangle, error)
	Close() error
}

// Imaging performs the image operations the renderer needs. Every method
// except Draw leaves src untouched and returns a new Frame.
type Imaging interface {
	Clone(src Frame) (Frame, error)
	Flip(src Frame) (Frame, error)
	// Grayscale returns a gray image that still carries colour channels so overlays keep their colour.
	Grayscale(src Frame) (Frame, error)
	// Normalize returns the single channel, histogram equalised image classifiers expect.
	Normalize(src Frame) (Frame, error)
	Draw(dst Frame, overlay Overlay) error
	Encode(src Frame) ([]byte, error)
	Write(path string, src Frame) error
}

// Surface is where display frames are presented and keys are read.
type Surface interface {
	Show(f Frame) error
	// PollKey waits at most wait for a key press and returns -1 when none arrived.
	PollKey(wait time.Duration) int
	Close() error
}

// CameraInfo is the resolution and frame rate reported by a camera.
type CameraInfo struct {
	Width  int
	Height int
	FPS    float64
}

// ReadInfo queries resolution and frame rate from cam.
func ReadInfo(cam Camera) CameraInfo {
	return CameraInfo{
		Width:  int(cam.Get(PropFrameWidth)),
		Height: int(cam.Get(PropFrameHeight)),
		FPS:    cam.Get(PropFPS),
	}
}
