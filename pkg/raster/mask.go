package raster

import (
	"image"
	"math"
	"sync"
)

// Mask is a per-pixel weight in [0,1] over a rectangle. Masks are pooled; call
// Release when done so the next frame can reuse the buffer.
type Mask struct {
	Rect    image.Rectangle
	Weights []float64
}

var maskPool = sync.Pool{
	New: func() any { return new([]float64) },
}

func newMask(r image.Rectangle) *Mask {
	n := r.Dx() * r.Dy()
	buf := maskPool.Get().(*[]float64)
	if cap(*buf) < n {
		*buf = make([]float64, n)
	}
	return &Mask{Rect: r, Weights: (*buf)[:n]}
}

// Release returns the weight buffer to the pool. The mask must not be used
// afterwards.
func (m *Mask) Release() {
	if m == nil || m.Weights == nil {
		return
	}
	buf := m.Weights[:0]
	m.Weights = nil
	maskPool.Put(&buf)
}

// At returns the weight at absolute pixel (x, y), zero outside the mask.
func (m *Mask) At(x, y int) float64 {
	if m == nil {
		return 1
	}
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return 0
	}
	return m.Weights[(y-m.Rect.Min.Y)*m.Rect.Dx()+(x-m.Rect.Min.X)]
}

// Invert replaces every weight w with 1-w in place and returns m.
func (m *Mask) Invert() *Mask {
	for i, w := range m.Weights {
		m.Weights[i] = 1 - w
	}
	return m
}

// Smoothstep is 0 at or below e0, 1 at or above e1 and a cubic ease between.
// A zero-width edge degenerates to a hard step at e0.
func Smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// RadialMask is 1 within inner pixels of (cx, cy) and eases to 0 at outer.
func RadialMask(r image.Rectangle, cx, cy, inner, outer float64) *Mask {
	m := newMask(r)
	w := r.Dx()
	parallelRows(r.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := float64(r.Min.Y+y) + 0.5 - cy
			row := m.Weights[y*w : (y+1)*w]
			for x := range row {
				dx := float64(r.Min.X+x) + 0.5 - cx
				row[x] = 1 - Smoothstep(inner, outer, math.Hypot(dx, dy))
			}
		}
	})
	return m
}

// GaussianVignetteMask is 0 at (cx, cy) and rises along a normalized gaussian
// to 1 at radius, following 1-exp(-d²/2σ²).
func GaussianVignetteMask(r image.Rectangle, cx, cy, radius, sigma float64) *Mask {
	m := newMask(r)
	if sigma <= 0 {
		sigma = radius / 3
	}
	norm := 1 - math.Exp(-0.5*(radius*radius)/(sigma*sigma))
	w := r.Dx()
	parallelRows(r.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := float64(r.Min.Y+y) + 0.5 - cy
			row := m.Weights[y*w : (y+1)*w]
			for x := range row {
				dx := float64(r.Min.X+x) + 0.5 - cx
				d2 := dx*dx + dy*dy
				v := 1 - math.Exp(-0.5*d2/(sigma*sigma))
				if norm > 0 {
					v /= norm
				}
				row[x] = clamp01(v)
			}
		}
	})
	return m
}

// Axis selects the coordinate a HalfPlaneMask ramps along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// HalfPlaneMask ramps from 0 at start to 1 at end along axis. When end is
// smaller than start the ramp runs toward decreasing coordinates.
func HalfPlaneMask(r image.Rectangle, axis Axis, start, end float64) *Mask {
	m := newMask(r)
	w := r.Dx()
	weight := func(p float64) float64 {
		if end >= start {
			return Smoothstep(start, end, p)
		}
		return 1 - Smoothstep(end, start, p)
	}
	parallelRows(r.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := m.Weights[y*w : (y+1)*w]
			if axis == AxisY {
				v := weight(float64(r.Min.Y+y) + 0.5)
				for x := range row {
					row[x] = v
				}
				continue
			}
			for x := range row {
				row[x] = weight(float64(r.Min.X+x) + 0.5)
			}
		}
	})
	return m
}
