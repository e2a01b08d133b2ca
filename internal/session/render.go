package session

import (
	"fmt"
	"image"
	"image/color"

	"camviewer/internal/detect"
	"camviewer/internal/vision"
)

// render builds the display frame for the current state. Transforms run on
// copies in a fixed order: flip, grayscale, detection overlay. frame itself
// is never modified.
func (s *Session) render(frame vision.Frame) (vision.Frame, []detect.Region, error) {
	working, err := s.imaging.Clone(frame)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to copy frame: %w", err)
	}

	if s.state.Flipped {
		if working, err = replace(working, s.imaging.Flip); err != nil {
			return nil, nil, fmt.Errorf("failed to flip frame: %w", err)
		}
	}

	if s.state.Grayscale {
		if working, err = replace(working, s.imaging.Grayscale); err != nil {
			return nil, nil, fmt.Errorf("failed to convert frame to grayscale: %w", err)
		}
	}

	var (
		regions []detect.Region
		overlay vision.Overlay
	)
	if s.state.DetectionEnabled && s.detector != nil {
		regions, err = s.detectRegions(working)
		if err != nil {
			working.Close()
			return nil, nil, err
		}
		overlay = DetectionOverlay(regions)
	} else {
		overlay = ModeOverlay(s.state)
	}

	if err := s.imaging.Draw(working, overlay); err != nil {
		working.Close()
		return nil, nil, fmt.Errorf("failed to draw overlay: %w", err)
	}

	return working, regions, nil
}

func (s *Session) detectRegions(working vision.Frame) ([]detect.Region, error) {
	gray, err := s.imaging.Normalize(working)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare frame for detection: %w", err)
	}
	defer gray.Close()

	return s.detector.Detect(gray)
}

// replace applies op to f and releases f.
func replace(f vision.Frame, op func(vision.Frame) (vision.Frame, error)) (vision.Frame, error) {
	next, err := op(f)
	f.Close()
	return next, err
}

// DetectionOverlay draws every face and eye plus the detection status line.
func DetectionOverlay(regions []detect.Region) vision.Overlay {
	var o vision.Overlay

	for _, r := range regions {
		switch r.Kind {
		case detect.KindFace:
			o.Boxes = append(o.Boxes, vision.Box{Bounds: r.Bounds, Color: vision.FaceColor, Thickness: vision.RegionThickness})
			o.Labels = append(o.Labels, vision.Text{
				Value:     r.Label,
				Origin:    image.Pt(r.Bounds.Min.X, r.Bounds.Min.Y-vision.FaceLabelOffset),
				Scale:     vision.FaceLabelScale,
				Color:     vision.FaceColor,
				Thickness: vision.FaceLabelWeight,
			})
		case detect.KindEye:
			o.Boxes = append(o.Boxes, vision.Box{Bounds: r.Bounds, Color: vision.EyeColor, Thickness: vision.RegionThickness})
			o.Dots = append(o.Dots, vision.Dot{
				Center:    image.Pt(r.Bounds.Min.X+r.Bounds.Dx()/2, r.Bounds.Min.Y+r.Bounds.Dy()/2),
				Radius:    vision.EyeCenterRadius,
				Color:     vision.EyeCenterColor,
				Thickness: vision.FilledMarker,
			})
			o.Labels = append(o.Labels, vision.Text{
				Value:     r.Label,
				Origin:    image.Pt(r.Bounds.Min.X, r.Bounds.Min.Y-vision.EyeLabelOffset),
				Scale:     vision.EyeLabelScale,
				Color:     vision.EyeColor,
				Thickness: vision.EyeLabelWeight,
			})
		}
	}

	o.Status = statusLine(fmt.Sprintf("Detection: ON | Faces: %d", detect.Count(regions, detect.KindFace)), vision.StatusOnColor)
	return o
}

// ModeOverlay reports the mode flags when detection is off.
func ModeOverlay(st State) vision.Overlay {
	text := fmt.Sprintf("Detection: OFF | Gray: %s | Flip: %s", onOff(st.Grayscale), onOff(st.Flipped))
	return vision.Overlay{Status: statusLine(text, vision.StatusOffColor)}
}

func statusLine(text string, c color.RGBA) vision.Text {
	return vision.Text{
		Value:     text,
		Origin:    vision.StatusOrigin,
		Scale:     vision.StatusScale,
		Color:     c,
		Thickness: vision.StatusThickness,
	}
}
