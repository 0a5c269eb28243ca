// Package filter is the illness simulation engine. Apply turns one captured
// frame into the frame a person with the selected condition would see.
package filter

import (
	"errors"
	"image"
	"math"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/raster"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
	"github.com/dixieflatline76/EyeSim/pkg/vr"
	"github.com/dixieflatline76/EyeSim/util/log"
)

var (
	// ErrEmptyFrame is reported when a step receives or produces a frame with
	// no pixels.
	ErrEmptyFrame = errors.New("empty frame")
	// ErrNoOutput is reported when a step returns neither an image nor an error.
	ErrNoOutput = errors.New("step produced no output")
)

// Options configures an Engine.
type Options struct {
	// SpeckleSeed seeds the diabetic retinopathy spot and speckle generator.
	SpeckleSeed uint64
	// FrozenSpeckle reuses the same seed on every frame instead of advancing
	// it per frame, which makes the speckle pattern stand still.
	FrozenSpeckle bool
}

// Request is one frame's worth of filter parameters.
type Request struct {
	Illness   illness.Kind
	Settings  illness.Settings // nil or mismatched settings fall back to defaults
	Enabled   bool
	Intensity float64
	Geometry  vr.Geometry
}

// Engine applies illness pipelines. It is safe for concurrent use; every call
// allocates its own scratch buffers.
type Engine struct {
	store  *tuning.Store
	opts   Options
	frames atomic.Uint64
}

// NewEngine creates an engine reading coefficients from store. A nil store
// uses the default tuning.
func NewEngine(store *tuning.Store, opts Options) *Engine {
	return &Engine{store: store, opts: opts}
}

// ClampIntensity maps any float to [0,1]. NaN becomes 0.
func ClampIntensity(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return v
}

// Apply runs the pipeline selected by req on src and returns a new frame of
// the same size. src is never modified and the result is never nil. Failing
// operators are skipped; if the whole pipeline fails the source is returned.
func (e *Engine) Apply(src image.Image, req Request) (out *image.NRGBA) {
	if src == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	base := imaging.Clone(src)
	if base.Bounds().Empty() {
		return base
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("filter %s: recovered from panic: %v", req.Illness, r)
			out = base
		}
	}()

	frame := raster.Translate(base, req.Geometry.VROffset.X, req.Geometry.VROffset.Y)
	if !req.Enabled || !req.Illness.Valid() {
		return frame
	}

	settings := req.Settings
	if settings == nil || settings.Kind() != req.Illness {
		settings = illness.Defaults(req.Illness)
	}

	p := &pass{
		i:      ClampIntensity(req.Intensity),
		effect: req.Geometry.Resolve(frame.Bounds()),
		cfg:    e.store.Load(),
		seed:   e.nextSeed(),
	}
	defer p.release()

	return runSteps(req.Illness, frame, p.steps(settings.Clamped(), frame))
}

func (e *Engine) nextSeed() uint64 {
	if e.opts.FrozenSpeckle {
		return e.opts.SpeckleSeed
	}
	return e.opts.SpeckleSeed + e.frames.Add(1)
}
