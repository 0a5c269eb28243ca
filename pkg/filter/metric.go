package filter

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/stat"
)

// EffectMagnitude is the mean absolute RGB difference between a and b,
// in [0,1]. Both frames must have the same size.
func EffectMagnitude(a, b image.Image) (float64, error) {
	if a == nil || b == nil {
		return 0, ErrEmptyFrame
	}
	if a.Bounds().Size() != b.Bounds().Size() {
		return 0, fmt.Errorf("comparing %v with %v: size mismatch", a.Bounds().Size(), b.Bounds().Size())
	}
	na, nb := imaging.Clone(a), imaging.Clone(b)
	size := na.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return 0, ErrEmptyFrame
	}

	rows := make([]float64, size.Y)
	diffs := make([]float64, size.X*3)
	for y := range rows {
		pa := na.Pix[y*na.Stride : y*na.Stride+size.X*4]
		pb := nb.Pix[y*nb.Stride : y*nb.Stride+size.X*4]
		for x := 0; x < size.X; x++ {
			for c := 0; c < 3; c++ {
				diffs[x*3+c] = math.Abs(float64(pa[x*4+c])-float64(pb[x*4+c])) / 255
			}
		}
		rows[y] = stat.Mean(diffs, nil)
	}
	return stat.Mean(rows, nil), nil
}
