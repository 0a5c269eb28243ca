package vr

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a simple test image.
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		geom   Geometry
		frame  image.Rectangle
		center Vec
	}{
		{"zero panel uses frame", Geometry{}, image.Rect(0, 0, 200, 100), Vec{100, 50}},
		{"offset", Geometry{PanelSize: image.Pt(200, 100), CenterOffset: Vec{0.25, -0.5}}, image.Rect(0, 0, 200, 100), Vec{150, 0}},
		{"offset clamped", Geometry{CenterOffset: Vec{3, -3}}, image.Rect(0, 0, 10, 10), Vec{15, -5}},
		{"scaled panel", Geometry{PanelSize: image.Pt(400, 200), CenterOffset: Vec{0.25, 0}}, image.Rect(0, 0, 200, 100), Vec{150, 50}},
		{"NaN offset", Geometry{CenterOffset: Vec{math.NaN(), 0}}, image.Rect(0, 0, 10, 10), Vec{5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.geom.Resolve(tt.frame)
			assert.InDelta(t, tt.center.X, e.Center.X, 1e-9)
			assert.InDelta(t, tt.center.Y, e.Center.Y, 1e-9)
			assert.Equal(t, tt.frame, e.Bounds)
		})
	}

	e := Geometry{}.Resolve(image.Rect(0, 0, 30, 40))
	assert.Equal(t, 30.0, e.MinSide)
	assert.Equal(t, 25.0, e.HalfDiagonal)
}

func TestStereoCentersDifferByIPD(t *testing.T) {
	s := DefaultSettings()
	s.InterpupillaryDistance = 128
	display := image.Pt(1280, 720)

	left := Adapt(PanelLeft, s, display, Vec{})
	right := Adapt(PanelRight, s, display, Vec{})

	frame := image.Rect(0, 0, 640, 720)
	lc := left.Geometry.Resolve(frame).Center
	rc := right.Geometry.Resolve(frame).Center
	assert.InDelta(t, 128, rc.X-lc.X, 1e-9)
	assert.InDelta(t, lc.Y, rc.Y, 1e-9)

	assert.Equal(t, image.Pt(-64, 0), left.Geometry.VROffset)
	assert.Equal(t, image.Pt(64, 0), right.Geometry.VROffset)
	assert.Equal(t, image.Rect(0, 0, 640, 720), left.Rect)
	assert.Equal(t, image.Rect(640, 0, 1280, 720), right.Rect)
}

func TestAdaptFull(t *testing.T) {
	l := Adapt(PanelFull, DefaultSettings(), image.Pt(800, 600), Vec{X: 0.1})
	assert.Equal(t, image.Rect(0, 0, 800, 600), l.Rect)
	assert.Equal(t, image.Point{}, l.Geometry.VROffset)
	assert.Equal(t, 0.1, l.Geometry.CenterOffset.X)
}

func TestPanelString(t *testing.T) {
	assert.Equal(t, "full", PanelFull.String())
	assert.Equal(t, "left", PanelLeft.String())
	assert.Equal(t, "right", PanelRight.String())
}

func TestSanitized(t *testing.T) {
	s := Settings{InterpupillaryDistance: math.NaN(), BarrelDistortion: math.Inf(1), DistortionZoom: 0}.Sanitized()
	assert.Equal(t, DefaultSettings().InterpupillaryDistance, s.InterpupillaryDistance)
	assert.Equal(t, DefaultSettings().BarrelDistortion, s.BarrelDistortion)
	assert.Equal(t, 1.0, s.DistortionZoom)
}

func TestDistort(t *testing.T) {
	src := createTestImage(64, 48)
	flat := Distort(src, Settings{DistortionZoom: 1})
	assert.Equal(t, src.Pix, flat.Pix)

	out := Distort(src, Settings{BarrelDistortion: 0.5, DistortionZoom: 1})
	require.Equal(t, src.Bounds(), out.Bounds())
	// Corners sample beyond the frame and turn black.
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
	// The center is a fixed point.
	assert.Equal(t, src.NRGBAAt(32, 24), out.NRGBAAt(32, 24))
}

func TestCenterFitter(t *testing.T) {
	src := createTestImage(400, 200)
	out, err := CenterFitter{}.Fit(context.Background(), src, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 100), out.Bounds().Size())

	_, err = CenterFitter{}.Fit(context.Background(), src, image.Point{})
	assert.Error(t, err)
}

func TestSmartFitter(t *testing.T) {
	src := createTestImage(300, 200)
	out, err := SmartFitter{Resampler: imaging.Box}.Fit(context.Background(), src, image.Pt(120, 120))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(120, 120), out.Bounds().Size())

	same, err := SmartFitter{}.Fit(context.Background(), src, image.Pt(300, 200))
	require.NoError(t, err)
	assert.Equal(t, src.Pix, same.Pix)
}

func TestFitterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := createTestImage(50, 50)
	for _, f := range []Fitter{CenterFitter{}, SmartFitter{}} {
		_, err := f.Fit(ctx, src, image.Pt(10, 10))
		assert.ErrorIs(t, err, context.Canceled)
	}
}
