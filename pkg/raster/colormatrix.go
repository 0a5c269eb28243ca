package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ColorMatrix is a 4x5 color transform in row-major order:
// [R_r, R_g, R_b, R_a, R_offset, G_r, ..., A_offset].
type ColorMatrix [20]float64

// Identity returns the matrix that leaves colors unchanged.
func Identity() ColorMatrix {
	var m ColorMatrix
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	return m
}

// RGB builds a matrix from a 3x3 row-major RGB transform; alpha is kept.
func RGB(t [9]float64) ColorMatrix {
	m := Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[row*5+col] = t[row*3+col]
		}
	}
	return m
}

// Contrast scales the distance of every channel from mid-gray by f.
func Contrast(f float64) ColorMatrix {
	m := Identity()
	for row := 0; row < 3; row++ {
		m[row*5+row] = f
		m[row*5+4] = 0.5 * (1 - f)
	}
	return m
}

// Saturation scales the distance of every channel from the pixel's luminance
// by f. Zero gives grayscale.
func Saturation(f float64) ColorMatrix {
	inv := 1 - f
	return RGB([9]float64{
		lumR*inv + f, lumG * inv, lumB * inv,
		lumR * inv, lumG*inv + f, lumB * inv,
		lumR * inv, lumG * inv, lumB*inv + f,
	})
}

// Haze mixes every pixel toward the color (r, g, b) by alpha.
func Haze(r, g, b, alpha float64) ColorMatrix {
	m := Identity()
	tint := [3]float64{r, g, b}
	for row := 0; row < 3; row++ {
		m[row*5+row] = 1 - alpha
		m[row*5+4] = tint[row] * alpha
	}
	return m
}

// ChannelScale multiplies each channel independently.
func ChannelScale(r, g, b float64) ColorMatrix {
	m := Identity()
	m[0], m[6], m[12] = r, g, b
	return m
}

// Mix interpolates element-wise between m (a=0) and other (a=1).
func (m ColorMatrix) Mix(other ColorMatrix, a float64) ColorMatrix {
	var out ColorMatrix
	for i := range m {
		out[i] = m[i] + (other[i]-m[i])*a
	}
	return out
}

// Then returns the matrix that applies m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			if col == 4 {
				sum += next[row*5+4]
			}
			out[row*5+col] = sum
		}
	}
	return out
}

// IsIdentity reports whether m leaves every color unchanged.
func (m ColorMatrix) IsIdentity() bool {
	return m == Identity()
}

// Transform maps one un-premultiplied color in [0,1].
func (m ColorMatrix) Transform(r, g, b, a float64) (float64, float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// Apply transforms every pixel of img.
func (m ColorMatrix) Apply(img image.Image) *image.NRGBA {
	if m.IsIdentity() {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b, a := m.Transform(from8(c.R), from8(c.G), from8(c.B), from8(c.A))
		return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)}
	})
}
