package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Mapping returns the source position sampled for destination pixel center
// (x, y). ok=false paints the fill color instead.
type Mapping func(x, y float64) (sx, sy float64, ok bool)

// Warp resamples src through mapping with bilinear interpolation. Sampling
// exactly on a pixel center returns that pixel unchanged.
func Warp(src *image.NRGBA, mapping Mapping, fill color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	parallelRows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				j := dst.PixOffset(x, y)
				d := dst.Pix[j : j+4 : j+4]
				sx, sy, ok := mapping(float64(x)+0.5, float64(y)+0.5)
				if !ok {
					d[0], d[1], d[2], d[3] = fill.R, fill.G, fill.B, fill.A
					continue
				}
				bilinear(src, sx, sy, d)
			}
		}
	})
	return dst
}

func bilinear(src *image.NRGBA, sx, sy float64, d []uint8) {
	b := src.Bounds()
	fx, fy := sx-0.5, sy-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)
	clampX := func(x int) int { return min(max(x, b.Min.X), b.Max.X-1) }
	clampY := func(y int) int { return min(max(y, b.Min.Y), b.Max.Y-1) }
	xa, xb := clampX(x0), clampX(x0+1)
	ya, yb := clampY(y0), clampY(y0+1)
	p00 := src.Pix[src.PixOffset(xa, ya):]
	p10 := src.Pix[src.PixOffset(xb, ya):]
	p01 := src.Pix[src.PixOffset(xa, yb):]
	p11 := src.Pix[src.PixOffset(xb, yb):]
	for c := 0; c < 4; c++ {
		top := float64(p00[c])*(1-tx) + float64(p10[c])*tx
		bot := float64(p01[c])*(1-tx) + float64(p11[c])*tx
		d[c] = uint8(math.Round(math.Max(0, math.Min(255, top*(1-ty)+bot*ty))))
	}
}

// Twirl rotates pixels around (cx, cy) by an angle that is angleRad at the
// center and shrinks to zero at radius. falloff shapes the decay.
func Twirl(src *image.NRGBA, cx, cy, radius, angleRad, falloff float64) *image.NRGBA {
	if radius <= 0 || angleRad == 0 {
		return imaging.Clone(src)
	}
	if falloff <= 0 {
		falloff = 1
	}
	return Warp(src, func(x, y float64) (float64, float64, bool) {
		dx, dy := x-cx, y-cy
		d := math.Hypot(dx, dy)
		if d >= radius {
			return x, y, true
		}
		theta := angleRad * math.Pow(1-d/radius, falloff)
		s, c := math.Sincos(theta)
		return cx + dx*c - dy*s, cy + dx*s + dy*c, true
	}, color.NRGBA{})
}
