package filter

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/raster"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
	"github.com/dixieflatline76/EyeSim/pkg/vr"
)

// deuteranopiaMatrix is the full-severity Machado et al. simulation matrix.
var deuteranopiaMatrix = [9]float64{
	0.367322, 0.860646, -0.227968,
	0.280085, 0.672501, 0.047413,
	-0.011820, 0.042940, 0.968881,
}

const (
	spotStream    = 0x5eed5
	speckleStream = 0x5eed7
)

// pass holds everything one Apply call derives before running steps.
type pass struct {
	i      float64
	effect vr.Effect
	cfg    tuning.TuningConfig
	seed   uint64
	masks  []*raster.Mask
}

func (p *pass) steps(s illness.Settings, src *image.NRGBA) []Step {
	switch s := s.(type) {
	case illness.CataractsSettings:
		return p.cataracts(s)
	case illness.GlaucomaSettings:
		return p.glaucoma(s)
	case illness.MacularDegenerationSettings:
		return p.macularDegeneration(s)
	case illness.TunnelVisionSettings:
		return p.tunnelVision(s)
	case illness.HemianopsiaSettings:
		return p.hemianopsia(s)
	case illness.BlurryVisionSettings:
		return p.blurryVision(s)
	case illness.CentralScotomaSettings:
		return p.centralScotoma(s)
	case illness.DiabeticRetinopathySettings:
		return p.diabeticRetinopathy(s)
	case illness.DeuteranopiaSettings:
		return p.deuteranopia(s)
	case illness.AstigmatismSettings:
		return p.astigmatism(s, src)
	}
	return nil
}

// mask registers m for release once the frame is done.
func (p *pass) mask(m *raster.Mask) *raster.Mask {
	p.masks = append(p.masks, m)
	return m
}

func (p *pass) release() {
	for _, m := range p.masks {
		m.Release()
	}
	p.masks = nil
}

func (p *pass) radial(inner, outer float64) *raster.Mask {
	outer = math.Max(outer, inner+p.cfg.MinFeather)
	c := p.effect.Center
	return p.mask(raster.RadialMask(p.effect.Bounds, c.X, c.Y, inner, outer))
}

func (p *pass) blur(img *image.NRGBA, sigma float64) *image.NRGBA {
	sigma = math.Min(sigma, p.cfg.MaxBlurSigma)
	if sigma <= 0 {
		return img
	}
	return imaging.Blur(img, sigma)
}

func (p *pass) blurStep(name string, sigma float64) []Step {
	if sigma <= 0 {
		return nil
	}
	return []Step{{Name: name, Run: func(img *image.NRGBA) (*image.NRGBA, error) {
		return p.blur(img, sigma), nil
	}}}
}

func colorStep(name string, m raster.ColorMatrix) []Step {
	if m.IsIdentity() {
		return nil
	}
	return []Step{{Name: name, Run: func(img *image.NRGBA) (*image.NRGBA, error) {
		return m.Apply(img), nil
	}}}
}

func darkenStep(name string, m func() *raster.Mask, alpha float64) []Step {
	if alpha <= 0 {
		return nil
	}
	return []Step{{Name: name, Run: func(img *image.NRGBA) (*image.NRGBA, error) {
		return raster.Darken(img, m(), alpha), nil
	}}}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (p *pass) cataracts(s illness.CataractsSettings) []Step {
	i := p.i
	haze := raster.Contrast(1 - s.ContrastReduction*i).
		Then(raster.Saturation(1 - s.SaturationReduction*i)).
		Then(raster.Haze(s.Brightness, s.Brightness, s.Brightness*p.cfg.HazeBlueFactor, s.Cloudiness*i)).
		Then(raster.ChannelScale(1, 1, 1-s.BlueReduction*i))

	steps := p.blurStep("blur", s.BlurRadius*i)
	steps = append(steps, colorStep("haze", haze)...)
	if opacity := p.cfg.BloomIntensity.At(i) * i; opacity > 0 {
		sigma := p.cfg.BloomRadius.At(i) * i
		steps = append(steps, Step{Name: "bloom", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Screen(img, p.blur(img, sigma), opacity)
		}})
	}
	return steps
}

func (p *pass) glaucoma(s illness.GlaucomaSettings) []Step {
	i := p.i
	m, h := p.effect.MinSide, p.effect.HalfDiagonal
	// The clear zone starts at the frame corners and closes in.
	inner := lerp(h, s.VignetteRadiusFactor*s.TunnelRadius*m, i)
	outer := lerp(h+s.VignetteFalloff*m, s.EffectRadiusFactor*s.TunnelRadius*m, i)
	var periphery *raster.Mask
	mask := func() *raster.Mask {
		if periphery == nil {
			periphery = p.radial(inner, outer).Invert()
		}
		return periphery
	}

	var steps []Step
	if loss := raster.Contrast(1 - (1-s.Contrast)*i); !loss.IsIdentity() {
		steps = append(steps, Step{Name: "contrast", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Blend(img, loss.Apply(img), mask(), 1)
		}})
	}
	if amount := p.cfg.GlaucomaDesaturation.At(i) * i; amount > 0 {
		steps = append(steps, Step{Name: "desaturate", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Desaturate(img, mask(), amount), nil
		}})
	}
	return append(steps, darkenStep("vignette", mask, s.VignetteIntensity*i)...)
}

func (p *pass) macularDegeneration(s illness.MacularDegenerationSettings) []Step {
	i := p.i
	m, c := p.effect.MinSide, p.effect.Center
	inner := s.InnerRadius * m
	outer := s.OuterRadiusFactor * m
	zone := outer * (1 + s.CentralBlurRadius)

	var steps []Step
	if angle := s.TwirlAngle * s.DistortionAmount * i; angle > 0 {
		rad := angle * math.Pi / 180
		steps = append(steps, Step{Name: "twirl", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Twirl(img, c.X, c.Y, zone, rad, p.cfg.TwirlFalloff), nil
		}})
	}
	if sigma := s.BlurRadius * i; sigma > 0 {
		steps = append(steps, Step{Name: "central blur", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Blend(img, p.blur(img, sigma), p.radial(inner, zone), 1)
		}})
	}
	return append(steps, darkenStep("dark core", func() *raster.Mask {
		return p.radial(inner, outer)
	}, s.DarkAlpha*s.CentralDarkness*i)...)
}

func (p *pass) tunnelVision(s illness.TunnelVisionSettings) []Step {
	i := p.i
	m := p.effect.MinSide
	narrowest := math.Max(s.MinRadiusPercent, s.TunnelRadius)
	radius := m * lerp(s.MaxRadiusFactor, narrowest, i)
	feather := math.Max(p.cfg.MinFeather, (s.FeatherFactorBase*p.cfg.TunnelFeather.At(i)+s.EdgeSoftness)*radius)
	var outside *raster.Mask
	mask := func() *raster.Mask {
		if outside == nil {
			outside = p.radial(radius, radius+feather).Invert()
		}
		return outside
	}

	var steps []Step
	if sigma := s.BlurRadius * i; sigma > 0 {
		steps = append(steps, Step{Name: "outer blur", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Blend(img, p.blur(img, sigma), mask(), 1)
		}})
	}
	return append(steps, darkenStep("tunnel", mask, s.DarknessLevel*i)...)
}

func (p *pass) hemianopsia(s illness.HemianopsiaSettings) []Step {
	b, c := p.effect.Bounds, p.effect.Center
	axis, boundary, length := raster.AxisX, c.X, float64(b.Dx())
	if s.Side == illness.SideTop || s.Side == illness.SideBottom {
		axis, boundary, length = raster.AxisY, c.Y, float64(b.Dy())
	}
	band := math.Max(p.cfg.MinFeather, s.TransitionSoftness*length)
	lo := boundary - band*s.FeatherFactor
	hi := boundary + band*(1-s.FeatherFactor)

	return darkenStep("field loss", func() *raster.Mask {
		// The ramp rises toward the affected side.
		if s.Side == illness.SideLeft || s.Side == illness.SideTop {
			return p.mask(raster.HalfPlaneMask(b, axis, hi, lo))
		}
		return p.mask(raster.HalfPlaneMask(b, axis, lo, hi))
	}, s.Darkness*p.i)
}

func (p *pass) blurryVision(s illness.BlurryVisionSettings) []Step {
	sigma := s.BlurAmount * p.i
	if sigma <= 0 {
		return nil
	}
	return []Step{{Name: "blur", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
		return raster.Blend(p.blur(img, sigma), img, nil, s.Clarity)
	}}}
}

func (p *pass) centralScotoma(s illness.CentralScotomaSettings) []Step {
	r := s.ScotomaRadius * p.effect.MinSide * p.i
	if r <= 0 {
		return nil
	}
	feather := math.Max(p.cfg.MinFeather, s.EdgeBlur*r)
	return darkenStep("scotoma", func() *raster.Mask {
		return p.radial(r, r+feather)
	}, s.Darkness*p.i)
}

func (p *pass) diabeticRetinopathy(s illness.DiabeticRetinopathySettings) []Step {
	i := p.i
	b, c := p.effect.Bounds, p.effect.Center
	tint := color.NRGBA{
		R: uint8(math.Round(clampUnit(p.cfg.SpeckleTintRed) * 255)),
		G: uint8(math.Round(clampUnit(p.cfg.SpeckleTintGreen) * 255)),
		B: uint8(math.Round(clampUnit(p.cfg.SpeckleTintBlue) * 255)),
		A: 255,
	}

	steps := p.blurStep("blur", s.BlurRadius*i)
	radius := s.VignetteRadius * p.effect.HalfDiagonal
	steps = append(steps, darkenStep("vignette", func() *raster.Mask {
		return p.mask(raster.GaussianVignetteMask(b, c.X, c.Y, radius, p.cfg.VignetteSigmaFactor*radius))
	}, s.VignetteIntensity*i)...)

	opacity := s.SpeckleOpacity * i
	if opacity <= 0 {
		return steps
	}
	if n := int(math.Round(s.SpotCount * i)); n > 0 {
		discs := p.spots(n, opacity)
		steps = append(steps, Step{Name: "spots", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Spots(img, discs, tint), nil
		}})
	}
	if density := p.cfg.SpeckleDensity.At(i) * i; density > 0 {
		steps = append(steps, Step{Name: "speckle", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			rng := rand.New(rand.NewPCG(p.seed, speckleStream))
			return raster.Speckle(img, rng, density, tint, opacity), nil
		}})
	}
	return steps
}

// spots places n discs. Every disc consumes the same number of draws, so the
// first n discs are identical for any larger n.
func (p *pass) spots(n int, alpha float64) []raster.Disc {
	b := p.effect.Bounds
	rng := rand.New(rand.NewPCG(p.seed, spotStream))
	base := p.cfg.SpotRadius.At(p.i) * p.i * p.effect.MinSide / 100
	discs := make([]raster.Disc, n)
	for k := range discs {
		x := float64(b.Min.X) + rng.Float64()*float64(b.Dx())
		y := float64(b.Min.Y) + rng.Float64()*float64(b.Dy())
		jitter := rng.Float64()*2 - 1
		discs[k] = raster.Disc{X: x, Y: y, Radius: base * (1 + p.cfg.SpotJitter*jitter), Alpha: alpha}
	}
	return discs
}

func (p *pass) deuteranopia(s illness.DeuteranopiaSettings) []Step {
	m := raster.Identity().Mix(raster.RGB(deuteranopiaMatrix), s.Strength*p.i)
	return colorStep("deuteranopia", m)
}

func (p *pass) astigmatism(s illness.AstigmatismSettings, src *image.NRGBA) []Step {
	i := p.i
	var steps []Step
	if length := s.BlurRadius * i * p.cfg.MotionBlur.At(i); length > 0 {
		steps = append(steps, Step{Name: "directional blur", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.MotionBlur(img, length, s.AngleDegrees), nil
		}})
	}
	if alpha := s.GhostAlpha * i * p.cfg.GhostAlpha.At(i); alpha > 0 {
		offset := p.cfg.GhostOffset.At(i) * i
		sin, cos := math.Sincos(s.AngleDegrees * math.Pi / 180)
		steps = append(steps, Step{Name: "ghost", Run: func(img *image.NRGBA) (*image.NRGBA, error) {
			return raster.Blend(img, raster.Shift(src, offset*cos, -offset*sin), nil, math.Min(alpha, 1))
		}})
	}
	return steps
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
