package vr

import (
	"image"
	"math"
)

// Panel selects which part of the display a frame is rendered to.
type Panel int

const (
	PanelFull Panel = iota
	PanelLeft
	PanelRight
)

func (p Panel) String() string {
	switch p {
	case PanelLeft:
		return "left"
	case PanelRight:
		return "right"
	default:
		return "full"
	}
}

// Settings are the headset parameters.
type Settings struct {
	InterpupillaryDistance float64 `json:"interpupillary_distance" yaml:"interpupillary_distance"`
	BarrelDistortion       float64 `json:"barrel_distortion" yaml:"barrel_distortion"`
	DistortionZoom         float64 `json:"distortion_zoom" yaml:"distortion_zoom"`
}

// DefaultSettings returns the headset defaults.
func DefaultSettings() Settings {
	return Settings{
		InterpupillaryDistance: 60,
		BarrelDistortion:       0.15,
		DistortionZoom:         1,
	}
}

// Sanitized replaces non-finite values with defaults and a non-positive zoom
// with 1.
func (s Settings) Sanitized() Settings {
	d := DefaultSettings()
	finite := func(v, def float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	s.InterpupillaryDistance = finite(s.InterpupillaryDistance, d.InterpupillaryDistance)
	s.BarrelDistortion = finite(s.BarrelDistortion, d.BarrelDistortion)
	s.DistortionZoom = finite(s.DistortionZoom, d.DistortionZoom)
	if s.DistortionZoom <= 0 {
		s.DistortionZoom = 1
	}
	return s
}

// Layout is where one panel lands on the display and the geometry its
// frames are filtered with.
type Layout struct {
	Panel    Panel
	Rect     image.Rectangle
	Geometry Geometry
}

// EyeShift is the horizontal shift for panel: -IPD/2 for the left eye,
// +IPD/2 for the right eye and zero for a full-screen panel.
func EyeShift(panel Panel, s Settings) float64 {
	switch panel {
	case PanelLeft:
		return -s.InterpupillaryDistance / 2
	case PanelRight:
		return s.InterpupillaryDistance / 2
	}
	return 0
}

// Adapt computes the layout of panel on a display of the given size.
// Stereo panels take one half each and carry the eye shift both in the
// effect center and as a frame translation.
func Adapt(panel Panel, s Settings, display image.Point, centerOffset Vec) Layout {
	s = s.Sanitized()
	rect := image.Rectangle{Max: display}
	half := display.X / 2
	switch panel {
	case PanelLeft:
		rect = image.Rect(0, 0, half, display.Y)
	case PanelRight:
		rect = image.Rect(half, 0, 2*half, display.Y)
	}
	size := rect.Size()
	shift := EyeShift(panel, s)
	offset := centerOffset
	if size.X > 0 {
		offset.X += shift / float64(size.X)
	}
	return Layout{
		Panel: panel,
		Rect:  rect,
		Geometry: Geometry{
			PanelSize:    size,
			CenterOffset: offset,
			VROffset:     image.Pt(int(math.Round(shift)), 0),
		},
	}
}
