// Package opencv implements the vision capabilities on top of gocv.
package opencv

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"camviewer/internal/vision"
)

var errForeignFrame = errors.New("frame was not produced by the opencv backend")

// Frame wraps a gocv.Mat.
type Frame struct {
	mat gocv.Mat
}

// NewFrame takes ownership of mat.
func NewFrame(mat gocv.Mat) *Frame {
	return &Frame{mat: mat}
}

// Mat returns the underlying matrix. It stays owned by the Frame.
func (f *Frame) Mat() gocv.Mat {
	return f.mat
}

func (f *Frame) Empty() bool {
	return f.mat.Empty()
}

func (f *Frame) Size() image.Point {
	return image.Pt(f.mat.Cols(), f.mat.Rows())
}

func (f *Frame) Close() error {
	return f.mat.Close()
}

func matOf(f vision.Frame) (gocv.Mat, error) {
	of, ok := f.(*Frame)
	if !ok || of == nil {
		return gocv.Mat{}, fmt.Errorf("%w: %T", errForeignFrame, f)
	}
	return of.mat, nil
}
