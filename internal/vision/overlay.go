package vision

import (
	"image"
	"image/color"
)

// Colours are RGBA; the OpenCV backend converts them to BGR scalars.
var (
	FaceColor      = color.RGBA{R: 0, G: 100, B: 255, A: 0}
	EyeColor       = color.RGBA{R: 0, G: 220, B: 0, A: 0}
	EyeCenterColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	StatusOnColor  = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	StatusOffColor = color.RGBA{R: 255, G: 100, B: 0, A: 0}

	StatusOrigin = image.Pt(10, 28)
)

const (
	StatusScale     = 0.7
	StatusThickness = 2

	RegionThickness = 2
	EyeCenterRadius = 3
	// FilledMarker as a Dot thickness fills the circle.
	FilledMarker = -1

	FaceLabelOffset = 8
	FaceLabelScale  = 0.6
	FaceLabelWeight = 2
	EyeLabelOffset  = 5
	EyeLabelScale   = 0.5
	EyeLabelWeight  = 1
)

// Box is a rectangle outline.
type Box struct {
	Bounds    image.Rectangle
	Color     color.RGBA
	Thickness int
}

// Text is a label drawn with its baseline starting at Origin.
type Text struct {
	Value     string
	Origin    image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Dot is a circle marker; Thickness FilledMarker fills it.
type Dot struct {
	Center    image.Point
	Radius    int
	Color     color.RGBA
	Thickness int
}

// Overlay is everything drawn on top of a display frame.
type Overlay struct {
	Boxes  []Box
	Labels []Text
	Dots   []Dot
	Status Text
}
