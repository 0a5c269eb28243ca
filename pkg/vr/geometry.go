// Package vr places illness effects on display panels: it resolves effect
// centers, lays out stereo eyes with their interpupillary shift, fits
// captured frames into panels and applies the headset lens warp.
package vr

import (
	"image"
	"math"
)

// Vec is a 2D vector in pixels or normalized units depending on use.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Geometry describes where an effect sits on a frame.
type Geometry struct {
	// PanelSize is the size of the display panel the frame is shown on. Zero
	// means the frame's own size.
	PanelSize image.Point
	// CenterOffset moves the effect center by a fraction of the panel size,
	// each axis clamped to [-1,1].
	CenterOffset Vec
	// VROffset translates the whole frame before any filtering.
	VROffset image.Point
}

// Effect is a Geometry resolved against a concrete frame.
type Effect struct {
	Bounds       image.Rectangle
	Center       Vec
	MinSide      float64
	HalfDiagonal float64
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// Resolve maps the geometry onto frame. The center is the panel midpoint plus
// the offset times the panel size, scaled into frame coordinates.
func (g Geometry) Resolve(frame image.Rectangle) Effect {
	w, h := float64(frame.Dx()), float64(frame.Dy())
	pw, ph := float64(g.PanelSize.X), float64(g.PanelSize.Y)
	if pw <= 0 || ph <= 0 {
		pw, ph = w, h
	}
	cx := pw/2 + clampUnit(g.CenterOffset.X)*pw
	cy := ph/2 + clampUnit(g.CenterOffset.Y)*ph
	return Effect{
		Bounds: frame,
		Center: Vec{
			X: float64(frame.Min.X) + cx*w/pw,
			Y: float64(frame.Min.Y) + cy*h/ph,
		},
		MinSide:      math.Min(w, h),
		HalfDiagonal: math.Hypot(w, h) / 2,
	}
}
