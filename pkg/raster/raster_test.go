package raster

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	return img
}

func TestColorMatrixIdentity(t *testing.T) {
	src := gradient(16, 8)
	out := Identity().Apply(src)
	assert.Equal(t, src.Pix, out.Pix)
	assert.True(t, Contrast(1).IsIdentity())
	assert.True(t, Saturation(1).Then(Identity()).IsIdentity())
}

func TestColorMatrixThenOrder(t *testing.T) {
	// Haze to white then zero the blue channel: blue must end at zero.
	m := Haze(1, 1, 1, 1).Then(ChannelScale(1, 1, 0))
	r, g, b, a := m.Transform(0.2, 0.3, 0.4, 1)
	assert.InDelta(t, 1, r, 1e-9)
	assert.InDelta(t, 1, g, 1e-9)
	assert.InDelta(t, 0, b, 1e-9)
	assert.InDelta(t, 1, a, 1e-9)
}

func TestSaturationZeroIsGray(t *testing.T) {
	r, g, b, _ := Saturation(0).Transform(1, 0, 0, 1)
	assert.InDelta(t, lumR, r, 1e-9)
	assert.InDelta(t, lumR, g, 1e-9)
	assert.InDelta(t, lumR, b, 1e-9)
}

func TestContrastKeepsMidGray(t *testing.T) {
	r, _, _, _ := Contrast(0.3).Transform(0.5, 0.5, 0.5, 1)
	assert.InDelta(t, 0.5, r, 1e-9)
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, 0.0, Smoothstep(1, 2, 0.5))
	assert.Equal(t, 1.0, Smoothstep(1, 2, 3))
	assert.InDelta(t, 0.5, Smoothstep(1, 2, 1.5), 1e-9)
	assert.Equal(t, 0.0, Smoothstep(2, 2, 1))
	assert.Equal(t, 1.0, Smoothstep(2, 2, 2))
}

func TestRadialMask(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)
	m := RadialMask(r, 50, 50, 10, 20)
	defer m.Release()
	assert.Equal(t, 1.0, m.At(50, 50))
	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 0.0, m.At(-1, 5))
	mid := m.At(50+15, 50)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)

	m.Invert()
	assert.Equal(t, 0.0, m.At(50, 50))
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestHalfPlaneMaskDirection(t *testing.T) {
	r := image.Rect(0, 0, 10, 4)
	right := HalfPlaneMask(r, AxisX, 4, 6)
	defer right.Release()
	assert.Equal(t, 0.0, right.At(0, 0))
	assert.Equal(t, 1.0, right.At(9, 3))

	left := HalfPlaneMask(r, AxisX, 6, 4)
	defer left.Release()
	assert.Equal(t, 1.0, left.At(0, 0))
	assert.Equal(t, 0.0, left.At(9, 3))

	top := HalfPlaneMask(r, AxisY, 3, 1)
	defer top.Release()
	assert.Equal(t, 1.0, top.At(5, 0))
	assert.Equal(t, 0.0, top.At(5, 3))
}

func TestDarken(t *testing.T) {
	src := imaging.New(4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	out := Darken(src, nil, 0.5)
	assert.Equal(t, color.NRGBA{R: 100, G: 50, B: 25, A: 255}, out.NRGBAAt(1, 1))

	same := Darken(src, nil, 0)
	assert.Equal(t, src.Pix, same.Pix)
}

func TestBlendBoundsMismatch(t *testing.T) {
	_, err := Blend(gradient(4, 4), gradient(5, 4), nil, 1)
	require.Error(t, err)
	_, err = Screen(gradient(4, 4), gradient(4, 5), 1)
	require.Error(t, err)
}

func TestBlendFull(t *testing.T) {
	base := imaging.New(3, 3, color.NRGBA{A: 255})
	layer := imaging.New(3, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out, err := Blend(base, layer, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, layer.Pix, out.Pix)
}

func TestScreen(t *testing.T) {
	base := imaging.New(2, 2, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	out, err := Screen(base, base, 1)
	require.NoError(t, err)
	// 1-(1-b)^2 for b=128/255
	b := 128.0 / 255
	want := (1 - (1-b)*(1-b)) * 255
	assert.InDelta(t, want, float64(out.NRGBAAt(0, 0).R), 1)
	assert.Equal(t, uint8(255), out.NRGBAAt(0, 0).A)

	half, err := Screen(base, base, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 128+(want-128)/2, float64(half.NRGBAAt(1, 1).R), 1)

	same, err := Screen(base, base, 0)
	require.NoError(t, err)
	assert.Equal(t, base.Pix, same.Pix)
}

func TestWarpIdentityIsExact(t *testing.T) {
	src := gradient(13, 7)
	out := Warp(src, func(x, y float64) (float64, float64, bool) { return x, y, true }, color.NRGBA{})
	assert.Equal(t, src.Pix, out.Pix)
}

func TestTwirlZeroAngle(t *testing.T) {
	src := gradient(10, 10)
	assert.Equal(t, src.Pix, Twirl(src, 5, 5, 4, 0, 2).Pix)
	out := Twirl(src, 5, 5, 4, 1, 2)
	// Pixels outside the radius stay put.
	assert.Equal(t, src.NRGBAAt(0, 0), out.NRGBAAt(0, 0))
}

func TestMotionBlur(t *testing.T) {
	src := gradient(20, 20)
	assert.Equal(t, src.Pix, MotionBlur(src, 0.2, 0).Pix)

	flat := imaging.New(10, 10, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
	out := MotionBlur(flat, 5, 30)
	require.Equal(t, flat.Bounds(), out.Bounds())
	for _, p := range [][2]int{{0, 0}, {5, 5}, {9, 9}} {
		c := out.NRGBAAt(p[0], p[1])
		assert.InDelta(t, 40, int(c.R), 1)
		assert.InDelta(t, 120, int(c.B), 1)
	}
}

func TestLineKernelNormalized(t *testing.T) {
	for _, tc := range []struct{ length, angle float64 }{{0.5, 0}, {7, 45}, {12, 30}, {3.3, 90}, {9, 171}} {
		k := lineKernel(tc.length, tc.angle)
		var sum float64
		for _, v := range k.Matrix {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-9, "length %v angle %v", tc.length, tc.angle)

		// Point symmetric about the center cell.
		n := len(k.Matrix)
		for i := range k.Matrix {
			assert.InDelta(t, k.Matrix[i], k.Matrix[n-1-i], 1e-9)
		}
	}
}

func checker(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(60 + x*100/w)
			if (x/cell+y/cell)%2 == 1 {
				v += 70
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: 120, A: 255})
		}
	}
	return img
}

func meanDiff(a, b *image.NRGBA) float64 {
	var sum float64
	for i := range a.Pix {
		if i%4 == 3 {
			continue
		}
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(a.Pix)/4*3) / 255
}

func TestMotionBlurGrowsWithLength(t *testing.T) {
	src := checker(96, 64, 8)
	for _, angle := range []float64{0, 30, 90} {
		prev := 0.0
		for length := 0.5; length <= 10; length += 0.1 {
			d := meanDiff(src, MotionBlur(src, length, angle))
			assert.GreaterOrEqual(t, d, prev-0.5/255, "angle %v length %.1f", angle, length)
			prev = d
		}
	}
}

func TestShift(t *testing.T) {
	src := gradient(16, 8)
	assert.Equal(t, src.Pix, Shift(src, 0, 0).Pix)

	out := Shift(src, 2, 1)
	assert.Equal(t, src.NRGBAAt(5, 3), out.NRGBAAt(7, 4))
	// Uncovered pixels repeat the edge.
	assert.Equal(t, src.NRGBAAt(0, 0), out.NRGBAAt(0, 0))

	// Half a pixel averages the two neighbours.
	half := Shift(src, 0.5, 0)
	a, b := src.NRGBAAt(4, 2).R, src.NRGBAAt(5, 2).R
	assert.InDelta(t, (float64(a)+float64(b))/2, float64(half.NRGBAAt(5, 2).R), 0.5)
}

func TestDesaturate(t *testing.T) {
	src := imaging.New(4, 4, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	assert.Equal(t, src.Pix, Desaturate(src, nil, 0).Pix)

	gray := Desaturate(src, nil, 1).NRGBAAt(1, 1)
	assert.Equal(t, gray.R, gray.G)
	assert.Equal(t, gray.G, gray.B)

	m := HalfPlaneMask(src.Bounds(), AxisX, 0, 4)
	defer m.Release()
	out := Desaturate(src, m, 1)
	assert.Greater(t, int(out.NRGBAAt(0, 0).R), int(out.NRGBAAt(3, 0).R))
}

func TestTint(t *testing.T) {
	src := imaging.New(2, 2, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	red := color.NRGBA{R: 255, A: 255}
	assert.Equal(t, src.Pix, Tint(src, nil, red, 0).Pix)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, Tint(src, nil, red, 1).NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 214, G: 150, B: 150, A: 255}, Tint(src, nil, red, 0.25).NRGBAAt(1, 1))
}

func TestTranslate(t *testing.T) {
	src := imaging.New(4, 4, color.NRGBA{R: 255, A: 255})
	out := Translate(src, 2, 0)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(3, 0))
}

func TestSpots(t *testing.T) {
	src := imaging.New(20, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out := Spots(src, []Disc{{X: 10, Y: 10, Radius: 4, Alpha: 1}}, color.NRGBA{R: 102, G: 8, B: 8, A: 255})
	assert.Equal(t, color.NRGBA{R: 102, G: 8, B: 8, A: 255}, out.NRGBAAt(10, 10))
	assert.Equal(t, src.NRGBAAt(0, 0), out.NRGBAAt(0, 0))

	// Two half-alpha discs cover three quarters of the way to the color.
	half := Disc{X: 10, Y: 10, Radius: 4, Alpha: 0.5}
	stacked := Spots(src, []Disc{half, half}, color.NRGBA{R: 102, G: 8, B: 8, A: 255})
	assert.Equal(t, uint8(140), stacked.NRGBAAt(10, 10).R)

	assert.Equal(t, src.Pix, Spots(src, nil, color.NRGBA{A: 255}).Pix)
}

func TestGaussianVignetteMask(t *testing.T) {
	m := GaussianVignetteMask(image.Rect(0, 0, 50, 50), 25, 25, 25, 12.5)
	defer m.Release()
	assert.Less(t, m.At(25, 25), 0.01)
	assert.InDelta(t, 1, m.At(0, 25), 0.05)
}

func TestSpeckleDeterministic(t *testing.T) {
	src := imaging.New(40, 40, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	tint := color.NRGBA{R: 102, G: 8, B: 8, A: 255}
	a := Speckle(src, rand.New(rand.NewPCG(1, 2)), 0.05, tint, 1)
	b := Speckle(src, rand.New(rand.NewPCG(1, 2)), 0.05, tint, 1)
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, src.Pix, a.Pix)

	// A denser pass marks every pixel the sparser pass marked.
	dense := Speckle(src, rand.New(rand.NewPCG(1, 2)), 0.2, tint, 1)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if a.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				assert.Equal(t, tint, dense.NRGBAAt(x, y))
			}
		}
	}

	none := Speckle(src, rand.New(rand.NewPCG(1, 2)), 0, tint, 1)
	assert.Equal(t, src.Pix, none.Pix)
}
