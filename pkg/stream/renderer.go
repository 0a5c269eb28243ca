package stream

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/EyeSim/pkg/filter"
	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/vr"
)

// Mode selects mono (one full panel) or stereo (side-by-side eyes) output.
type Mode int

const (
	ModeMono Mode = iota
	ModeStereo
)

func (m Mode) String() string {
	if m == ModeStereo {
		return "stereo"
	}
	return "mono"
}

// ParseMode accepts "mono" or "stereo".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mono":
		return ModeMono, nil
	case "stereo", "vr":
		return ModeStereo, nil
	}
	return ModeMono, fmt.Errorf("unknown render mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Params are the per-frame filter choices shared by both eyes.
type Params struct {
	Illness      illness.Kind
	Settings     illness.Settings
	Enabled      bool
	Intensity    float64
	CenterOffset vr.Vec
}

// Renderer fits, filters and lays out frames for a display.
type Renderer struct {
	engine *filter.Engine
	fitter vr.Fitter
	vr     vr.Settings
}

// NewRenderer creates a renderer. A nil fitter uses vr.CenterFitter.
func NewRenderer(engine *filter.Engine, fitter vr.Fitter, s vr.Settings) *Renderer {
	if fitter == nil {
		fitter = vr.CenterFitter{}
	}
	return &Renderer{engine: engine, fitter: fitter, vr: s.Sanitized()}
}

// Render produces one display-sized frame. Stereo renders both eyes in
// parallel, each fitted to its half, filtered and lens-distorted.
func (r *Renderer) Render(ctx context.Context, src image.Image, mode Mode, display image.Point, p Params) (*image.NRGBA, error) {
	if display.X <= 0 || display.Y <= 0 {
		return nil, fmt.Errorf("rendering to %v: empty display", display)
	}
	if mode != ModeStereo {
		return r.renderPanel(ctx, src, vr.Adapt(vr.PanelFull, r.vr, display, p.CenterOffset), p, false)
	}

	layouts := []vr.Layout{
		vr.Adapt(vr.PanelLeft, r.vr, display, p.CenterOffset),
		vr.Adapt(vr.PanelRight, r.vr, display, p.CenterOffset),
	}
	eyes := make([]*image.NRGBA, len(layouts))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range layouts {
		g.Go(func() error {
			eye, err := r.renderPanel(gctx, src, l, p, true)
			if err != nil {
				return fmt.Errorf("rendering %s eye: %w", l.Panel, err)
			}
			eyes[i] = eye
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := imaging.New(display.X, display.Y, color.NRGBA{A: 255})
	for i, l := range layouts {
		draw.Draw(canvas, l.Rect, eyes[i], image.Point{}, draw.Src)
	}
	return canvas, nil
}

func (r *Renderer) renderPanel(ctx context.Context, src image.Image, l vr.Layout, p Params, lens bool) (*image.NRGBA, error) {
	fitted, err := r.fitter.Fit(ctx, src, l.Rect.Size())
	if err != nil {
		return nil, fmt.Errorf("fitting frame: %w", err)
	}
	out := r.engine.Apply(fitted, filter.Request{
		Illness:   p.Illness,
		Settings:  p.Settings,
		Enabled:   p.Enabled,
		Intensity: p.Intensity,
		Geometry:  l.Geometry,
	})
	if lens {
		out = vr.Distort(out, r.vr)
	}
	return out, nil
}

// ProcessFunc adapts the renderer for a Worker. params is read once per
// frame so live setting changes apply to the next frame.
func (r *Renderer) ProcessFunc(mode Mode, display image.Point, params func() Params) ProcessFunc {
	return func(ctx context.Context, f Frame) (*image.NRGBA, error) {
		return r.Render(ctx, f.Image, mode, display, params())
	}
}
