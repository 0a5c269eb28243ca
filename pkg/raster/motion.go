package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// lineTapStep is the spacing, in pixels, of the taps laid along a blur line.
const lineTapStep = 0.125

// MotionBlur smears src along a line oriented angleDeg counter-clockwise from
// the x axis. Lengths under half a pixel are a no-op.
func MotionBlur(src *image.NRGBA, length, angleDeg float64) *image.NRGBA {
	if !(length >= 0.5) || math.IsInf(length, 0) {
		return imaging.Clone(src)
	}
	k := lineKernel(length, angleDeg)
	// Convolve truncates; the half step bias makes it round.
	out := convolution.Convolve(src, k, &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true})
	return imaging.Clone(out)
}

// lineKernel weighs taps along the line with a gaussian of sigma length/4 and
// spreads every tap bilinearly over its four nearest cells. The kernel is
// point symmetric and varies continuously with length and angle.
func lineKernel(length, angleDeg float64) *convolution.Kernel {
	sigma := length / 4
	reach := 3 * sigma
	half := int(math.Ceil(reach)) + 1
	size := 2*half + 1
	k := convolution.NewKernel(size, size)
	s, c := math.Sincos(angleDeg * math.Pi / 180)
	n := int(math.Floor(reach / lineTapStep))

	var sum float64
	for j := -n; j <= n; j++ {
		t := float64(j) * lineTapStep
		w := math.Exp(-t * t / (2 * sigma * sigma))
		fx := float64(half) + t*c
		fy := float64(half) - t*s
		x0, y0 := math.Floor(fx), math.Floor(fy)
		tx, ty := fx-x0, fy-y0
		i := int(y0)*k.Width + int(x0)
		k.Matrix[i] += w * (1 - tx) * (1 - ty)
		k.Matrix[i+1] += w * tx * (1 - ty)
		k.Matrix[i+k.Width] += w * (1 - tx) * ty
		k.Matrix[i+k.Width+1] += w * tx * ty
		sum += w
	}
	for i := range k.Matrix {
		k.Matrix[i] /= sum
	}
	return k
}
