package raster

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// Speckle tints isolated pixels toward c. Pixels are visited in row order and
// each draws one uniform number from rng; a draw below density marks the
// pixel. The same rng state and density therefore always mark the same
// pixels, and a higher density marks a superset.
func Speckle(src *image.NRGBA, rng *rand.Rand, density float64, c color.NRGBA, alpha float64) *image.NRGBA {
	if density <= 0 || alpha <= 0 || rng == nil {
		return imaging.Clone(src)
	}
	m := newMask(src.Bounds())
	defer m.Release()
	for i := range m.Weights {
		m.Weights[i] = 0
		if rng.Float64() < density {
			m.Weights[i] = 1
		}
	}
	return Tint(src, m, c, alpha)
}
