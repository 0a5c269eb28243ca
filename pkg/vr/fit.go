package vr

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/dixieflatline76/EyeSim/util/log"
)

// Fitter crops and scales a captured frame to exactly fill a panel.
type Fitter interface {
	Fit(ctx context.Context, img image.Image, size image.Point) (*image.NRGBA, error)
}

// CenterFitter fills the panel keeping the frame center.
type CenterFitter struct {
	Resampler imaging.ResampleFilter
}

// Fit implements Fitter.
func (f CenterFitter) Fit(ctx context.Context, img image.Image, size image.Point) (*image.NRGBA, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("fitting to %v: empty panel", size)
	}
	if img.Bounds().Size() == size {
		return imaging.Clone(img), nil
	}
	filter := f.Resampler
	if filter.Support == 0 && filter.Kernel == nil {
		filter = imaging.Linear
	}
	return imaging.Fill(img, size.X, size.Y, imaging.Center, filter), nil
}

// SmartFitter crops around the most interesting region of the frame. It falls
// back to a center fit if the analysis fails.
type SmartFitter struct {
	Resampler imaging.ResampleFilter
}

// Fit implements Fitter.
func (f SmartFitter) Fit(ctx context.Context, img image.Image, size image.Point) (*image.NRGBA, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("fitting to %v: empty panel", size)
	}
	if img.Bounds().Size() == size {
		return imaging.Clone(img), nil
	}
	filter := f.Resampler
	if filter.Support == 0 && filter.Kernel == nil {
		filter = imaging.Linear
	}

	r := &resizer{resampler: filter}
	crop, err := f.findCrop(ctx, r, img, size)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Debugf("smart crop failed, using center fit: %v", err)
		return CenterFitter{Resampler: filter}.Fit(ctx, img, size)
	}

	cropped := imaging.Crop(img, crop)
	resized := r.resizeWithContext(ctx, cropped, uint(size.X), uint(size.Y))
	if resized == nil {
		return nil, ctx.Err()
	}
	return resized, nil
}

func (f SmartFitter) findCrop(ctx context.Context, r *resizer, img image.Image, size image.Point) (image.Rectangle, error) {
	analyzer := smartcrop.NewAnalyzer(r)

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		crop, err := analyzer.FindBestCrop(img, size.X, size.Y)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return image.Rectangle{}, fmt.Errorf("finding best crop: %w", result.err)
		}
		if result.crop.Empty() {
			return image.Rectangle{}, fmt.Errorf("finding best crop: empty result")
		}
		return result.crop, nil
	}
}

// resizer implements smartcrop.Resizer on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize implements smartcrop.Resizer. The interface has no context, so
// cancellation is handled in resizeWithContext.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

func (r *resizer) resizeWithContext(ctx context.Context, img image.Image, width, height uint) *image.NRGBA {
	resultChan := make(chan *image.NRGBA, 1)

	go func() {
		resultChan <- imaging.Resize(img, int(width), int(height), r.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil
	case result := <-resultChan:
		return result
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
