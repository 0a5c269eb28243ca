package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Translate shifts src by (dx, dy) pixels. Uncovered pixels become opaque
// black; the frame keeps its size.
func Translate(src *image.NRGBA, dx, dy int) *image.NRGBA {
	if dx == 0 && dy == 0 {
		return imaging.Clone(src)
	}
	b := src.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), color.NRGBA{A: 255})
	return imaging.Paste(canvas, src, image.Pt(dx, dy))
}

// Shift moves src by a fractional (dx, dy) with bilinear sampling. Edge
// pixels extend into the uncovered area.
func Shift(src *image.NRGBA, dx, dy float64) *image.NRGBA {
	if dx == 0 && dy == 0 {
		return imaging.Clone(src)
	}
	return Warp(src, func(x, y float64) (float64, float64, bool) {
		return x - dx, y - dy, true
	}, color.NRGBA{})
}
