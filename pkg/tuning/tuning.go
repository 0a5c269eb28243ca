// Package tuning holds the derived coefficients the filter pipelines use when
// a value is not exposed as a per-illness setting.
package tuning

import (
	"math"
	"reflect"
)

// Coefficient is a linear curve over intensity.
type Coefficient struct {
	Base  float64 `json:"base"`
	Scale float64 `json:"scale"`
}

// At evaluates the curve at intensity i.
func (c Coefficient) At(i float64) float64 {
	return c.Base + c.Scale*i
}

// TuningConfig holds the internal magic numbers of the illness pipelines.
// Curves shape an amount that the pipelines still multiply by intensity, so
// intensity zero never produces a visible effect.
type TuningConfig struct {
	// Cataracts
	BloomIntensity Coefficient `json:"bloom_intensity"`  // opacity of the glare pass
	BloomRadius    Coefficient `json:"bloom_radius"`     // sigma of the glare pass, pixels
	HazeBlueFactor float64     `json:"haze_blue_factor"` // blue level of the haze relative to brightness

	// Glaucoma
	GlaucomaDesaturation Coefficient `json:"glaucoma_desaturation"` // saturation loss in the darkened band

	// Macular degeneration
	TwirlFalloff float64 `json:"twirl_falloff"` // exponent of the twirl angle falloff

	// Tunnel vision
	TunnelFeather Coefficient `json:"tunnel_feather"` // multiplier of featherFactorBase

	// Diabetic retinopathy
	SpeckleDensity      Coefficient `json:"speckle_density"` // fraction of pixels turned into speckle
	SpotRadius          Coefficient `json:"spot_radius"`     // percent of the min side
	SpotJitter          float64     `json:"spot_jitter"`     // relative radius variation between spots
	SpeckleTintRed      float64     `json:"speckle_tint_red"`
	SpeckleTintGreen    float64     `json:"speckle_tint_green"`
	SpeckleTintBlue     float64     `json:"speckle_tint_blue"`
	VignetteSigmaFactor float64     `json:"vignette_sigma_factor"` // gaussian sigma relative to vignette radius

	// Astigmatism
	MotionBlur  Coefficient `json:"motion_blur"`  // multiplier of blurRadius
	GhostAlpha  Coefficient `json:"ghost_alpha"`  // multiplier of ghostAlpha
	GhostOffset Coefficient `json:"ghost_offset"` // ghost displacement, pixels

	// Limits
	MaxBlurSigma float64 `json:"max_blur_sigma"` // upper bound for every gaussian sigma
	MinFeather   float64 `json:"min_feather"`    // narrowest mask transition, pixels
}

// DefaultTuningConfig returns the hardcoded defaults.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		BloomIntensity:       Coefficient{Base: 0.1, Scale: 0.15},
		BloomRadius:          Coefficient{Base: 4, Scale: 8},
		HazeBlueFactor:       0.9,
		GlaucomaDesaturation: Coefficient{Base: 0.2, Scale: 0.4},
		TwirlFalloff:         2,
		TunnelFeather:        Coefficient{Base: 0.5, Scale: 0.5},
		SpeckleDensity:       Coefficient{Base: 0.0005, Scale: 0.0015},
		SpotRadius:           Coefficient{Base: 0.5, Scale: 1.0},
		SpotJitter:           0.5,
		SpeckleTintRed:       0.4,
		SpeckleTintGreen:     0.03,
		SpeckleTintBlue:      0.03,
		VignetteSigmaFactor:  0.5,
		MotionBlur:           Coefficient{Base: 0.6, Scale: 0.4},
		GhostAlpha:           Coefficient{Base: 0.5, Scale: 0.5},
		GhostOffset:          Coefficient{Base: 2, Scale: 4},
		MaxBlurSigma:         48,
		MinFeather:           1,
	}
}

// Sanitized replaces non-finite values with their defaults. Hand-edited files
// and live tuning panels can produce them.
func (c TuningConfig) Sanitized() TuningConfig {
	def := DefaultTuningConfig()
	sanitizeFloats(reflect.ValueOf(&c).Elem(), reflect.ValueOf(def))
	return c
}

func sanitizeFloats(v, def reflect.Value) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Float64:
			if x := f.Float(); math.IsNaN(x) || math.IsInf(x, 0) {
				f.SetFloat(def.Field(i).Float())
			}
		case reflect.Struct:
			sanitizeFloats(f, def.Field(i))
		}
	}
}
