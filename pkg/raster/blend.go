package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// mapPixels writes fn(src pixel, mask weight) into a new image. A nil mask
// weighs every pixel 1.
func mapPixels(src *image.NRGBA, m *Mask, fn func(p []uint8, dst []uint8, w float64, x, y int)) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	parallelRows(b.Dy(), func(y0, y1 int) {
		for y := b.Min.Y + y0; y < b.Min.Y+y1; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i, j := src.PixOffset(x, y), dst.PixOffset(x, y)
				w := 1.0
				if m != nil {
					w = m.At(x, y)
				}
				fn(src.Pix[i:i+4:i+4], dst.Pix[j:j+4:j+4], w, x, y)
			}
		}
	})
	return dst
}

// Darken multiplies RGB toward black by alpha times the mask weight.
func Darken(src *image.NRGBA, m *Mask, alpha float64) *image.NRGBA {
	if alpha <= 0 {
		return imaging.Clone(src)
	}
	return mapPixels(src, m, func(p, d []uint8, w float64, _, _ int) {
		k := 1 - clamp01(alpha*w)
		d[0] = to8(from8(p[0]) * k)
		d[1] = to8(from8(p[1]) * k)
		d[2] = to8(from8(p[2]) * k)
		d[3] = p[3]
	})
}

// Desaturate pulls RGB toward luminance by amount times the mask weight.
func Desaturate(src *image.NRGBA, m *Mask, amount float64) *image.NRGBA {
	if amount <= 0 {
		return imaging.Clone(src)
	}
	return mapPixels(src, m, func(p, d []uint8, w float64, _, _ int) {
		r, g, b := from8(p[0]), from8(p[1]), from8(p[2])
		lum := lumR*r + lumG*g + lumB*b
		k := clamp01(amount * w)
		d[0] = to8(r + (lum-r)*k)
		d[1] = to8(g + (lum-g)*k)
		d[2] = to8(b + (lum-b)*k)
		d[3] = p[3]
	})
}

// Tint moves RGB toward c by alpha times the mask weight.
func Tint(src *image.NRGBA, m *Mask, c color.NRGBA, alpha float64) *image.NRGBA {
	if alpha <= 0 {
		return imaging.Clone(src)
	}
	tr, tg, tb := from8(c.R), from8(c.G), from8(c.B)
	return mapPixels(src, m, func(p, d []uint8, w float64, _, _ int) {
		k := clamp01(alpha * w)
		d[0] = to8(from8(p[0]) + (tr-from8(p[0]))*k)
		d[1] = to8(from8(p[1]) + (tg-from8(p[1]))*k)
		d[2] = to8(from8(p[2]) + (tb-from8(p[2]))*k)
		d[3] = p[3]
	})
}

// Blend moves base toward layer by alpha times the mask weight. Both images
// must share bounds.
func Blend(base, layer *image.NRGBA, m *Mask, alpha float64) (*image.NRGBA, error) {
	if base.Bounds() != layer.Bounds() {
		return nil, fmt.Errorf("blend: bounds %v and %v differ", base.Bounds(), layer.Bounds())
	}
	if alpha <= 0 {
		return imaging.Clone(base), nil
	}
	return mapPixels(base, m, func(p, d []uint8, w float64, x, y int) {
		k := clamp01(alpha * w)
		l := layer.Pix[layer.PixOffset(x, y):]
		for c := 0; c < 3; c++ {
			d[c] = to8(from8(p[c]) + (from8(l[c])-from8(p[c]))*k)
		}
		d[3] = p[3]
	}), nil
}

// Screen lightens base with a screen blend of layer at the given opacity.
func Screen(base, layer *image.NRGBA, opacity float64) (*image.NRGBA, error) {
	if base.Bounds() != layer.Bounds() {
		return nil, fmt.Errorf("screen: bounds %v and %v differ", base.Bounds(), layer.Bounds())
	}
	if opacity <= 0 {
		return imaging.Clone(base), nil
	}
	screened := imaging.Clone(blend.Screen(base, layer))
	screened.Rect = screened.Rect.Add(base.Rect.Min)
	return Blend(base, screened, nil, opacity)
}

// Disc is a soft-edged filled circle used for spot overlays.
type Disc struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// Spots tints src toward c under soft discs. Each disc is opaque to its
// alpha in the middle and fades out over its outer third; overlapping discs
// compound like stacked layers.
func Spots(src *image.NRGBA, discs []Disc, c color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	m := newMask(b)
	defer m.Release()
	clear(m.Weights)
	var hit bool
	for _, disc := range discs {
		if disc.Radius <= 0 || disc.Alpha <= 0 {
			continue
		}
		r := image.Rect(
			int(math.Floor(disc.X-disc.Radius)), int(math.Floor(disc.Y-disc.Radius)),
			int(math.Ceil(disc.X+disc.Radius))+1, int(math.Ceil(disc.Y+disc.Radius))+1,
		).Intersect(b)
		inner := disc.Radius * 2 / 3
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := m.Weights[(y-b.Min.Y)*b.Dx():]
			for x := r.Min.X; x < r.Max.X; x++ {
				d := math.Hypot(float64(x)+0.5-disc.X, float64(y)+0.5-disc.Y)
				k := clamp01(disc.Alpha) * (1 - Smoothstep(inner, disc.Radius, d))
				if k <= 0 {
					continue
				}
				w := &row[x-b.Min.X]
				*w = 1 - (1-*w)*(1-k)
				hit = true
			}
		}
	}
	if !hit {
		return imaging.Clone(src)
	}
	return Tint(src, m, c, 1)
}
