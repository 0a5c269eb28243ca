package vr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/EyeSim/pkg/raster"
)

// Distort applies the barrel lens warp: a destination point at normalized
// radius r samples the source at r*(1+k*r²)/zoom. Samples that fall outside
// the frame become black.
func Distort(img *image.NRGBA, s Settings) *image.NRGBA {
	s = s.Sanitized()
	k, zoom := s.BarrelDistortion, s.DistortionZoom
	if k == 0 && zoom == 1 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	if b.Empty() {
		return imaging.Clone(img)
	}
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	hw, hh := float64(b.Dx())/2, float64(b.Dy())/2
	return raster.Warp(img, func(x, y float64) (float64, float64, bool) {
		nx, ny := (x-cx)/hw, (y-cy)/hh
		f := (1 + k*(nx*nx+ny*ny)) / zoom
		sx, sy := cx+nx*f*hw, cy+ny*f*hh
		if sx < float64(b.Min.X) || sy < float64(b.Min.Y) || sx > float64(b.Max.X) || sy > float64(b.Max.Y) {
			return 0, 0, false
		}
		return sx, sy, true
	}, color.NRGBA{A: 255})
}
