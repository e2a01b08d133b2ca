// Package detect finds faces and the eyes inside them with a pair of
// cascade classifiers.
package detect

import (
	"fmt"
	"image"
	"math"

	"camviewer/internal/vision"
)

// Kind tells primary (face) and secondary (eye) regions apart.
type Kind int

const (
	KindFace Kind = iota
	KindEye
)

const (
	FaceLabel = "Face"
	EyeLabel  = "Eye"
)

// Region is one detected object in full-frame coordinates.
type Region struct {
	Bounds image.Rectangle
	Label  string
	Kind   Kind
}

// Config holds the detection tuning constants.
type Config struct {
	Face vision.DetectParams
	Eye  vision.DetectParams
	// EyeBandRatio is the share of a face's height, from the top, searched for eyes.
	// It keeps nostrils and mouth corners from being reported as eyes.
	EyeBandRatio float64
}

// DefaultConfig returns the tuning used by the viewer.
func DefaultConfig() Config {
	return Config{
		Face:         vision.DetectParams{ScaleFactor: 1.1, MinNeighbors: 5, MinSize: image.Pt(80, 80)},
		Eye:          vision.DetectParams{ScaleFactor: 1.1, MinNeighbors: 10, MinSize: image.Pt(20, 20)},
		EyeBandRatio: 0.6,
	}
}

// Detector runs face detection and then eye detection inside every face.
type Detector struct {
	faces vision.Classifier
	eyes  vision.Classifier
	cfg   Config
}

// New creates a Detector. The classifiers stay owned by the caller until Close.
func New(faces, eyes vision.Classifier, cfg Config) *Detector {
	return &Detector{faces: faces, eyes: eyes, cfg: cfg}
}

// Detect returns the faces found in gray followed, per face, by its eyes.
// gray must be the normalized (single channel, equalized) working frame.
func (d *Detector) Detect(gray vision.Frame) ([]Region, error) {
	frameBounds := image.Rectangle{Max: gray.Size()}

	faces, err := d.faces.Detect(gray, frameBounds, d.cfg.Face)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}

	regions := make([]Region, 0, len(faces)*3)
	for _, local := range faces {
		face := ToFrame(frameBounds, local)
		regions = append(regions, Region{Bounds: face, Label: FaceLabel, Kind: KindFace})

		band := UpperBand(face, d.cfg.EyeBandRatio).Intersect(frameBounds)
		if band.Empty() {
			continue
		}

		eyes, err := d.eyes.Detect(gray, band, d.cfg.Eye)
		if err != nil {
			return nil, fmt.Errorf("eye detection failed: %w", err)
		}
		for _, eye := range eyes {
			regions = append(regions, Region{Bounds: ToFrame(band, eye), Label: EyeLabel, Kind: KindEye})
		}
	}

	return regions, nil
}

// Close releases both classifiers.
func (d *Detector) Close() error {
	errFaces := d.faces.Close()
	errEyes := d.eyes.Close()
	if errFaces != nil {
		return errFaces
	}
	return errEyes
}

// UpperBand returns the top ratio of r's height, keeping its width. ratio is
// clamped to [0, 1] so the band never leaves r.
func UpperBand(r image.Rectangle, ratio float64) image.Rectangle {
	ratio = math.Max(0, math.Min(1, ratio))
	h := int(float64(r.Dy()) * ratio)
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+h)
}

// ToFrame maps a rectangle found inside sub back to full-frame coordinates.
func ToFrame(sub image.Rectangle, local image.Rectangle) image.Rectangle {
	return local.Add(sub.Min)
}

// Count returns how many regions are of kind k.
func Count(regions []Region, k Kind) int {
	n := 0
	for _, r := range regions {
		if r.Kind == k {
			n++
		}
	}
	return n
}
