// Package report measures how strongly each illness changes a frame as
// intensity rises and plots the resulting severity curves.
package report

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/dixieflatline76/EyeSim/pkg/filter"
	"github.com/dixieflatline76/EyeSim/pkg/illness"
)

// Sample is the effect magnitude measured at one intensity.
type Sample struct {
	Intensity float64
	Magnitude float64
}

// Curve is a labelled series of samples.
type Curve struct {
	Illness illness.Kind
	Samples []Sample
}

// SeverityCurve applies req at steps+1 evenly spaced intensities from 0 to
// 1 and measures each output against frame.
func SeverityCurve(e *filter.Engine, frame image.Image, req filter.Request, steps int) ([]Sample, error) {
	if steps < 1 {
		return nil, fmt.Errorf("severity curve needs at least one step, got %d", steps)
	}
	if frame == nil {
		return nil, filter.ErrEmptyFrame
	}
	req.Enabled = true
	samples := make([]Sample, 0, steps+1)
	for s := 0; s <= steps; s++ {
		req.Intensity = float64(s) / float64(steps)
		mag, err := filter.EffectMagnitude(frame, e.Apply(frame, req))
		if err != nil {
			return nil, fmt.Errorf("measuring %s at %.2f: %w", req.Illness, req.Intensity, err)
		}
		samples = append(samples, Sample{Intensity: req.Intensity, Magnitude: mag})
	}
	return samples, nil
}

// Monotonic reports whether magnitudes never fall by more than tolerance
// from one sample to the next.
func Monotonic(samples []Sample, tolerance float64) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].Magnitude < samples[i-1].Magnitude-tolerance {
			return false
		}
	}
	return true
}

// Trend fits magnitude = intercept + slope*intensity by least squares.
func Trend(samples []Sample) (intercept, slope float64) {
	if len(samples) < 2 {
		return 0, 0
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = s.Intensity, s.Magnitude
	}
	return stat.LinearRegression(xs, ys, nil, false)
}

// SavePlot renders curves into a PNG (or any format plot supports by
// extension) at path.
func SavePlot(title, path string, curves ...Curve) error {
	if len(curves) == 0 {
		return errors.New("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Intensity"
	p.Y.Label.Text = "Mean absolute difference"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min = 0

	for i, c := range curves {
		pts := make(plotter.XYs, 0, len(c.Samples))
		for _, s := range c.Samples {
			pts = append(pts, plotter.XY{X: s.Intensity, Y: s.Magnitude})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", c.Illness, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Illness.String(), line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
