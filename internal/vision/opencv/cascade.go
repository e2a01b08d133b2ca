package opencv

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"camviewer/internal/vision"
)

// Cascade is a Haar cascade classifier.
type Cascade struct {
	classifier gocv.CascadeClassifier
	path       string
}

// LoadCascade reads a cascade definition from path.
func LoadCascade(path string) (*Cascade, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cascade file not found: %s", path)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load cascade: %s", path)
	}
	return &Cascade{classifier: classifier, path: path}, nil
}

// Detect runs multi-scale detection inside roi. Results are relative to roi.
func (c *Cascade) Detect(img vision.Frame, roi image.Rectangle, params vision.DetectParams) ([]image.Rectangle, error) {
	mat, err := matOf(img)
	if err != nil {
		return nil, err
	}

	roi = roi.Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	if roi.Empty() {
		return nil, nil
	}

	region := mat.Region(roi)
	defer region.Close()

	return c.classifier.DetectMultiScaleWithParams(region, params.ScaleFactor, params.MinNeighbors, 0, params.MinSize, image.Point{}), nil
}

func (c *Cascade) Close() error {
	return c.classifier.Close()
}
