package opencv

import (
	"time"

	"gocv.io/x/gocv"

	"camviewer/internal/vision"
)

// Window is a HighGUI window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window titled name.
func NewWindow(name string) *Window {
	return &Window{window: gocv.NewWindow(name)}
}

func (w *Window) Show(f vision.Frame) error {
	mat, err := matOf(f)
	if err != nil {
		return err
	}
	return w.window.IMShow(mat)
}

// PollKey waits at least one millisecond so HighGUI gets to process events.
func (w *Window) PollKey(wait time.Duration) int {
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return w.window.WaitKey(ms)
}

func (w *Window) Close() error {
	return w.window.Close()
}
