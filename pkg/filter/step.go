package filter

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/util/log"
)

// Step is one operator of a pipeline. Run must not modify its input.
type Step struct {
	Name string
	Run  func(*image.NRGBA) (*image.NRGBA, error)
}

// runSteps folds src through steps. A step that errors, panics or returns
// nothing is skipped and the next step sees the previous output. Outputs that
// grew are cropped back to the source extent.
func runSteps(kind illness.Kind, src *image.NRGBA, steps []Step) *image.NRGBA {
	size := src.Bounds().Size()
	cur := src
	failed := 0
	for _, s := range steps {
		next, err := runStep(s, cur)
		if err == nil {
			next, err = fitExtent(next, size)
		}
		if err != nil {
			failed++
			log.Debugf("filter %s: step %s skipped: %v", kind, s.Name, err)
			continue
		}
		cur = next
	}
	if failed > 0 && failed == len(steps) {
		log.Printf("filter %s: every step failed, returning source frame", kind)
	}
	return cur
}

func runStep(s Step, in *image.NRGBA) (out *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	out, err = s.Run(in)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNoOutput
	}
	return out, nil
}

func fitExtent(img *image.NRGBA, size image.Point) (*image.NRGBA, error) {
	got := img.Bounds().Size()
	switch {
	case got == size && img.Bounds().Min == (image.Point{}):
		return img, nil
	case got.X == 0 || got.Y == 0:
		return nil, ErrEmptyFrame
	case got.X < size.X || got.Y < size.Y:
		return nil, fmt.Errorf("step shrank frame from %v to %v", size, got)
	}
	b := img.Bounds()
	return imaging.Crop(img, image.Rectangle{Min: b.Min, Max: b.Min.Add(size)}), nil
}
