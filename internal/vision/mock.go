package vision

import (
	"image"
	"os"
	"strings"
	"sync"
	"time"
)

// MockFrame is an in-memory Frame for testing. Ops records the chain of
// image operations that produced it and Overlays what was drawn on it.
type MockFrame struct {
	Width, Height int
	Blank         bool
	Ops           []string
	Overlays      []Overlay
	Closed        bool
}

// NewMockFrame returns a non-empty frame of the given size.
func NewMockFrame(width, height int) *MockFrame {
	return &MockFrame{Width: width, Height: height}
}

func (f *MockFrame) Empty() bool       { return f.Blank || f.Width == 0 || f.Height == 0 }
func (f *MockFrame) Size() image.Point { return image.Pt(f.Width, f.Height) }
func (f *MockFrame) Close() error {
	f.Closed = true
	return nil
}

// Lineage returns the recorded operations joined by ">".
func (f *MockFrame) Lineage() string {
	return strings.Join(f.Ops, ">")
}

func (f *MockFrame) derive(op string) *MockFrame {
	ops := make([]string, len(f.Ops), len(f.Ops)+1)
	copy(ops, f.Ops)
	return &MockFrame{Width: f.Width, Height: f.Height, Ops: append(ops, op)}
}

// MockCamera replays a scripted sequence of frames. A nil entry reads as an
// empty frame; once the script is exhausted Read fails.
type MockCamera struct {
	Frames     []*MockFrame
	Properties map[Property]float64

	mu     sync.Mutex
	reads  int
	closed int
}

// NewMockCamera creates a camera reporting 640x480 at 30 fps.
func NewMockCamera(frames ...*MockFrame) *MockCamera {
	return &MockCamera{
		Frames: frames,
		Properties: map[Property]float64{
			PropFrameWidth:  640,
			PropFrameHeight: 480,
			PropFPS:         30,
		},
	}
}

func (c *MockCamera) Read() (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reads >= len(c.Frames) {
		return nil, ErrReadFailed
	}
	f := c.Frames[c.reads]
	c.reads++
	if f == nil {
		return &MockFrame{Blank: true}, nil
	}
	return f, nil
}

func (c *MockCamera) Get(prop Property) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Properties[prop]
}

func (c *MockCamera) Set(prop Property, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Properties[prop] = value
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

// Reads returns how many times Read was called.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// CloseCount returns how many times Close was called.
func (c *MockCamera) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// DetectCall records one Classifier.Detect invocation.
type DetectCall struct {
	Source string
	ROI    image.Rectangle
	Params DetectParams
}

// MockClassifier returns scripted results, one slice per call. Calls past the
// end of the script find nothing.
type MockClassifier struct {
	Results [][]image.Rectangle
	Err     error

	Calls  []DetectCall
	Closed bool
}

func (m *MockClassifier) Detect(img Frame, roi image.Rectangle, params DetectParams) ([]image.Rectangle, error) {
	call := DetectCall{ROI: roi, Params: params}
	if mf, ok := img.(*MockFrame); ok {
		call.Source = mf.Lineage()
	}
	m.Calls = append(m.Calls, call)

	if m.Err != nil {
		return nil, m.Err
	}
	i := len(m.Calls) - 1
	if i >= len(m.Results) {
		return nil, nil
	}
	return m.Results[i], nil
}

func (m *MockClassifier) Close() error {
	m.Closed = true
	return nil
}

// WriteCall records one Imaging.Write invocation.
type WriteCall struct {
	Path    string
	Lineage string
}

// MockImaging derives MockFrames instead of touching pixels. Write creates
// the target file so callers can stat it.
type MockImaging struct {
	Draws  []Overlay
	Writes []WriteCall
	Err    error
}

func (m *MockImaging) apply(src Frame, op string) (Frame, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	mf, ok := src.(*MockFrame)
	if !ok {
		return &MockFrame{Ops: []string{op}}, nil
	}
	return mf.derive(op), nil
}

func (m *MockImaging) Clone(src Frame) (Frame, error)     { return m.apply(src, "clone") }
func (m *MockImaging) Flip(src Frame) (Frame, error)      { return m.apply(src, "flip") }
func (m *MockImaging) Grayscale(src Frame) (Frame, error) { return m.apply(src, "gray") }
func (m *MockImaging) Normalize(src Frame) (Frame, error) { return m.apply(src, "normalize") }

func (m *MockImaging) Draw(dst Frame, overlay Overlay) error {
	m.Draws = append(m.Draws, overlay)
	if mf, ok := dst.(*MockFrame); ok {
		mf.Overlays = append(mf.Overlays, overlay)
	}
	return nil
}

func (m *MockImaging) Encode(src Frame) ([]byte, error) {
	if mf, ok := src.(*MockFrame); ok {
		return []byte(mf.Lineage()), nil
	}
	return []byte{}, nil
}

func (m *MockImaging) Write(path string, src Frame) error {
	if m.Err != nil {
		return m.Err
	}
	call := WriteCall{Path: path}
	if mf, ok := src.(*MockFrame); ok {
		call.Lineage = mf.Lineage()
	}
	m.Writes = append(m.Writes, call)
	return os.WriteFile(path, []byte("mock:"+call.Lineage), 0644)
}

// MockSurface records shown frames and replays scripted key presses. Once
// the script is exhausted PollKey reports no key.
type MockSurface struct {
	Keys []int

	Shown  []*MockFrame
	Waits  []time.Duration
	Closed bool
}

func (s *MockSurface) Show(f Frame) error {
	if mf, ok := f.(*MockFrame); ok {
		snapshot := *mf
		snapshot.Ops = append([]string(nil), mf.Ops...)
		snapshot.Overlays = append([]Overlay(nil), mf.Overlays...)
		s.Shown = append(s.Shown, &snapshot)
	} else {
		s.Shown = append(s.Shown, nil)
	}
	return nil
}

func (s *MockSurface) PollKey(wait time.Duration) int {
	s.Waits = append(s.Waits, wait)
	i := len(s.Waits) - 1
	if i >= len(s.Keys) {
		return -1
	}
	return s.Keys[i]
}

func (s *MockSurface) Close() error {
	s.Closed = true
	return nil
}
