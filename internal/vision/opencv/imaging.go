package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"camviewer/internal/vision"
)

const flipHorizontal = 1

// Imaging performs image operations with OpenCV.
type Imaging struct{}

func (Imaging) Clone(src vision.Frame) (vision.Frame, error) {
	mat, err := matOf(src)
	if err != nil {
		return nil, err
	}
	return NewFrame(mat.Clone()), nil
}

func (Imaging) Flip(src vision.Frame) (vision.Frame, error) {
	return apply(src, func(in gocv.Mat, out *gocv.Mat) error {
		return gocv.Flip(in, out, flipHorizontal)
	})
}

// Grayscale converts to gray and back to three channels.
func (Imaging) Grayscale(src vision.Frame) (vision.Frame, error) {
	return apply(src, func(in gocv.Mat, out *gocv.Mat) error {
		gray := gocv.NewMat()
		defer gray.Close()

		if err := gocv.CvtColor(in, &gray, gocv.ColorBGRToGray); err != nil {
			return err
		}
		return gocv.CvtColor(gray, out, gocv.ColorGrayToBGR)
	})
}

func (Imaging) Normalize(src vision.Frame) (vision.Frame, error) {
	return apply(src, func(in gocv.Mat, out *gocv.Mat) error {
		gray := gocv.NewMat()
		defer gray.Close()

		if err := gocv.CvtColor(in, &gray, gocv.ColorBGRToGray); err != nil {
			return err
		}
		return gocv.EqualizeHist(gray, out)
	})
}

// Draw paints overlay onto dst in place.
func (Imaging) Draw(dst vision.Frame, overlay vision.Overlay) error {
	mat, err := matOf(dst)
	if err != nil {
		return err
	}

	for _, b := range overlay.Boxes {
		if err := gocv.Rectangle(&mat, b.Bounds, b.Color, b.Thickness); err != nil {
			return fmt.Errorf("failed to draw rectangle: %w", err)
		}
	}
	for _, d := range overlay.Dots {
		if err := gocv.Circle(&mat, d.Center, d.Radius, d.Color, d.Thickness); err != nil {
			return fmt.Errorf("failed to draw circle: %w", err)
		}
	}

	for _, t := range overlay.Labels {
		if err := putText(&mat, t); err != nil {
			return err
		}
	}
	return putText(&mat, overlay.Status)
}

func putText(mat *gocv.Mat, t vision.Text) error {
	if t.Value == "" {
		return nil
	}
	if err := gocv.PutText(mat, t.Value, t.Origin, gocv.FontHersheySimplex, t.Scale, t.Color, t.Thickness); err != nil {
		return fmt.Errorf("failed to draw text: %w", err)
	}
	return nil
}

// Encode returns src as JPEG bytes.
func (Imaging) Encode(src vision.Frame) ([]byte, error) {
	mat, err := matOf(src)
	if err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// Write saves src to path; the format follows the file extension.
func (Imaging) Write(path string, src vision.Frame) error {
	mat, err := matOf(src)
	if err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write image %s", path)
	}
	return nil
}

func apply(src vision.Frame, op func(in gocv.Mat, out *gocv.Mat) error) (vision.Frame, error) {
	in, err := matOf(src)
	if err != nil {
		return nil, err
	}

	out := gocv.NewMat()
	if err := op(in, &out); err != nil {
		out.Close()
		return nil, err
	}
	return NewFrame(out), nil
}
