package illness

import "math"

// Settings is the per-illness parameter set. Exactly one concrete type exists
// per Kind, which keeps pipeline dispatch exhaustive.
type Settings interface {
	// Kind returns the illness these settings belong to.
	Kind() Kind
	// Clamped returns a copy with every field inside its slider range.
	Clamped() Settings

	isSettings()
}

// Range is the slider range and default of a scalar field.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to the range. NaN falls back to the default.
func (r Range) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return r.Default
	case v < r.Min:
		return r.Min
	case v > r.Max:
		return r.Max
	}
	return v
}

// Field describes one tunable scalar for UIs and validation.
type Field struct {
	Name string
	Range
}

type field struct {
	name string
	ptr  *float64
	rng  Range
}

type fielder interface {
	fields() []field
}

func clampFields(f fielder) {
	for _, fd := range f.fields() {
		*fd.ptr = fd.rng.Clamp(*fd.ptr)
	}
}

func defaultFields(f fielder) {
	for _, fd := range f.fields() {
		*fd.ptr = fd.rng.Default
	}
}

func describe(f fielder) []Field {
	fds := f.fields()
	out := make([]Field, len(fds))
	for i, fd := range fds {
		out[i] = Field{Name: fd.name, Range: fd.rng}
	}
	return out
}

// CataractsSettings clouds, blurs and yellows the image.
type CataractsSettings struct {
	BlurRadius          float64 `json:"blur_radius" yaml:"blur_radius"`
	Cloudiness          float64 `json:"cloudiness" yaml:"cloudiness"`
	Brightness          float64 `json:"brightness" yaml:"brightness"`
	SaturationReduction float64 `json:"saturation_reduction" yaml:"saturation_reduction"`
	ContrastReduction   float64 `json:"contrast_reduction" yaml:"contrast_reduction"`
	BlueReduction       float64 `json:"blue_reduction" yaml:"blue_reduction"`
}

func (s *CataractsSettings) fields() []field {
	return []field{
		{"blurRadius", &s.BlurRadius, Range{0, 30, 10}},
		{"cloudiness", &s.Cloudiness, Range{0, 1, 0.3}},
		{"brightness", &s.Brightness, Range{0, 1, 0.8}},
		{"saturationReduction", &s.SaturationReduction, Range{0, 1, 0.3}},
		{"contrastReduction", &s.ContrastReduction, Range{0, 1, 0.2}},
		{"blueReduction", &s.BlueReduction, Range{0, 1, 0.2}},
	}
}

func (CataractsSettings) Kind() Kind  { return Cataracts }
func (CataractsSettings) isSettings() {}
func (s CataractsSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// GlaucomaSettings darkens the periphery and lowers contrast.
type GlaucomaSettings struct {
	TunnelRadius         float64 `json:"tunnel_radius" yaml:"tunnel_radius"`
	VignetteFalloff      float64 `json:"vignette_falloff" yaml:"vignette_falloff"`
	Contrast             float64 `json:"contrast" yaml:"contrast"`
	VignetteIntensity    float64 `json:"vignette_intensity" yaml:"vignette_intensity"`
	VignetteRadiusFactor float64 `json:"vignette_radius_factor" yaml:"vignette_radius_factor"`
	EffectRadiusFactor   float64 `json:"effect_radius_factor" yaml:"effect_radius_factor"`
}

func (s *GlaucomaSettings) fields() []field {
	return []field{
		{"tunnelRadius", &s.TunnelRadius, Range{0.2, 1.5, 1}},
		{"vignetteFalloff", &s.VignetteFalloff, Range{0, 1, 0.3}},
		{"contrast", &s.Contrast, Range{0, 1, 0.8}},
		{"vignetteIntensity", &s.VignetteIntensity, Range{0, 1, 0.9}},
		{"vignetteRadiusFactor", &s.VignetteRadiusFactor, Range{0.05, 1, 0.25}},
		{"effectRadiusFactor", &s.EffectRadiusFactor, Range{0.1, 1.5, 0.6}},
	}
}

func (GlaucomaSettings) Kind() Kind  { return Glaucoma }
func (GlaucomaSettings) isSettings() {}
func (s GlaucomaSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// MacularDegenerationSettings blurs, warps and darkens central vision.
type MacularDegenerationSettings struct {
	CentralBlurRadius float64 `json:"central_blur_radius" yaml:"central_blur_radius"`
	DistortionAmount  float64 `json:"distortion_amount" yaml:"distortion_amount"`
	CentralDarkness   float64 `json:"central_darkness" yaml:"central_darkness"`
	BlurRadius        float64 `json:"blur_radius" yaml:"blur_radius"`
	DarkAlpha         float64 `json:"dark_alpha" yaml:"dark_alpha"`
	TwirlAngle        float64 `json:"twirl_angle" yaml:"twirl_angle"`
	InnerRadius       float64 `json:"inner_radius" yaml:"inner_radius"`
	OuterRadiusFactor float64 `json:"outer_radius_factor" yaml:"outer_radius_factor"`
}

func (s *MacularDegenerationSettings) fields() []field {
	return []field{
		{"centralBlurRadius", &s.CentralBlurRadius, Range{0, 1, 0.25}},
		{"distortionAmount", &s.DistortionAmount, Range{0, 1, 0.5}},
		{"centralDarkness", &s.CentralDarkness, Range{0, 1, 0.6}},
		{"blurRadius", &s.BlurRadius, Range{0, 40, 12}},
		{"darkAlpha", &s.DarkAlpha, Range{0, 1, 0.8}},
		{"twirlAngle", &s.TwirlAngle, Range{0, 180, 45}},
		{"innerRadius", &s.InnerRadius, Range{0, 0.5, 0.05}},
		{"outerRadiusFactor", &s.OuterRadiusFactor, Range{0.05, 1, 0.3}},
	}
}

func (MacularDegenerationSettings) Kind() Kind  { return MacularDegeneration }
func (MacularDegenerationSettings) isSettings() {}
func (s MacularDegenerationSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// TunnelVisionSettings keeps a sharp circular tunnel and hides the rest.
type TunnelVisionSettings struct {
	TunnelRadius      float64 `json:"tunnel_radius" yaml:"tunnel_radius"`
	EdgeSoftness      float64 `json:"edge_softness" yaml:"edge_softness"`
	DarknessLevel     float64 `json:"darkness_level" yaml:"darkness_level"`
	BlurRadius        float64 `json:"blur_radius" yaml:"blur_radius"`
	MaxRadiusFactor   float64 `json:"max_radius_factor" yaml:"max_radius_factor"`
	FeatherFactorBase float64 `json:"feather_factor_base" yaml:"feather_factor_base"`
	MinRadiusPercent  float64 `json:"min_radius_percent" yaml:"min_radius_percent"`
}

func (s *TunnelVisionSettings) fields() []field {
	return []field{
		{"tunnelRadius", &s.TunnelRadius, Range{0.05, 1, 0.3}},
		{"edgeSoftness", &s.EdgeSoftness, Range{0, 1, 0.15}},
		{"darknessLevel", &s.DarknessLevel, Range{0, 1, 0.9}},
		{"blurRadius", &s.BlurRadius, Range{0, 30, 8}},
		{"maxRadiusFactor", &s.MaxRadiusFactor, Range{0.1, 1.5, 0.75}},
		{"featherFactorBase", &s.FeatherFactorBase, Range{0, 1, 0.2}},
		{"minRadiusPercent", &s.MinRadiusPercent, Range{0.01, 1, 0.1}},
	}
}

func (TunnelVisionSettings) Kind() Kind  { return TunnelVision }
func (TunnelVisionSettings) isSettings() {}
func (s TunnelVisionSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// HemianopsiaSettings darkens one half of the visual field.
type HemianopsiaSettings struct {
	Side               Side    `json:"side" yaml:"side"`
	TransitionSoftness float64 `json:"transition_softness" yaml:"transition_softness"`
	Darkness           float64 `json:"darkness" yaml:"darkness"`
	FeatherFactor      float64 `json:"feather_factor" yaml:"feather_factor"`
}

func (s *HemianopsiaSettings) fields() []field {
	return []field{
		{"transitionSoftness", &s.TransitionSoftness, Range{0, 1, 0.1}},
		{"darkness", &s.Darkness, Range{0, 1, 0.85}},
		{"featherFactor", &s.FeatherFactor, Range{0, 1, 0.5}},
	}
}

func (HemianopsiaSettings) Kind() Kind  { return Hemianopsia }
func (HemianopsiaSettings) isSettings() {}
func (s HemianopsiaSettings) Clamped() Settings {
	clampFields(&s)
	if s.Side < SideLeft || s.Side > SideBottom {
		s.Side = SideLeft
	}
	return s
}

// BlurryVisionSettings blurs the whole frame.
type BlurryVisionSettings struct {
	BlurAmount float64 `json:"blur_amount" yaml:"blur_amount"`
	Clarity    float64 `json:"clarity" yaml:"clarity"`
}

func (s *BlurryVisionSettings) fields() []field {
	return []field{
		{"blurAmount", &s.BlurAmount, Range{0, 30, 8}},
		{"clarity", &s.Clarity, Range{0, 1, 0.2}},
	}
}

func (BlurryVisionSettings) Kind() Kind  { return BlurryVision }
func (BlurryVisionSettings) isSettings() {}
func (s BlurryVisionSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// CentralScotomaSettings puts a dark disc over the fixation point.
type CentralScotomaSettings struct {
	ScotomaRadius float64 `json:"scotoma_radius" yaml:"scotoma_radius"`
	Darkness      float64 `json:"darkness" yaml:"darkness"`
	EdgeBlur      float64 `json:"edge_blur" yaml:"edge_blur"`
}

func (s *CentralScotomaSettings) fields() []field {
	return []field{
		{"scotomaRadius", &s.ScotomaRadius, Range{0, 0.5, 0.15}},
		{"darkness", &s.Darkness, Range{0, 1, 0.95}},
		{"edgeBlur", &s.EdgeBlur, Range{0, 1, 0.35}},
	}
}

func (CentralScotomaSettings) Kind() Kind  { return CentralScotoma }
func (CentralScotomaSettings) isSettings() {}
func (s CentralScotomaSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// DiabeticRetinopathySettings adds haemorrhage spots and a vignette.
type DiabeticRetinopathySettings struct {
	VignetteIntensity float64 `json:"vignette_intensity" yaml:"vignette_intensity"`
	VignetteRadius    float64 `json:"vignette_radius" yaml:"vignette_radius"`
	BlurRadius        float64 `json:"blur_radius" yaml:"blur_radius"`
	SpeckleOpacity    float64 `json:"speckle_opacity" yaml:"speckle_opacity"`
	SpotCount         float64 `json:"spot_count" yaml:"spot_count"`
}

func (s *DiabeticRetinopathySettings) fields() []field {
	return []field{
		{"vignetteIntensity", &s.VignetteIntensity, Range{0, 1, 0.5}},
		{"vignetteRadius", &s.VignetteRadius, Range{0.1, 1.5, 0.8}},
		{"blurRadius", &s.BlurRadius, Range{0, 20, 3}},
		{"speckleOpacity", &s.SpeckleOpacity, Range{0, 1, 0.6}},
		{"spotCount", &s.SpotCount, Range{0, 200, 40}},
	}
}

func (DiabeticRetinopathySettings) Kind() Kind  { return DiabeticRetinopathy }
func (DiabeticRetinopathySettings) isSettings() {}
func (s DiabeticRetinopathySettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// DeuteranopiaSettings simulates red-green color confusion.
type DeuteranopiaSettings struct {
	Strength float64 `json:"strength" yaml:"strength"`
}

func (s *DeuteranopiaSettings) fields() []field {
	return []field{
		{"strength", &s.Strength, Range{0, 1, 1}},
	}
}

func (DeuteranopiaSettings) Kind() Kind  { return Deuteranopia }
func (DeuteranopiaSettings) isSettings() {}
func (s DeuteranopiaSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// AstigmatismSettings smears the image along one axis and adds a ghost.
type AstigmatismSettings struct {
	BlurRadius   float64 `json:"blur_radius" yaml:"blur_radius"`
	AngleDegrees float64 `json:"angle_degrees" yaml:"angle_degrees"`
	GhostAlpha   float64 `json:"ghost_alpha" yaml:"ghost_alpha"`
}

func (s *AstigmatismSettings) fields() []field {
	return []field{
		{"blurRadius", &s.BlurRadius, Range{0, 30, 6}},
		{"angleDegrees", &s.AngleDegrees, Range{0, 180, 30}},
		{"ghostAlpha", &s.GhostAlpha, Range{0, 1, 0.35}},
	}
}

func (AstigmatismSettings) Kind() Kind  { return Astigmatism }
func (AstigmatismSettings) isSettings() {}
func (s AstigmatismSettings) Clamped() Settings {
	clampFields(&s)
	return s
}

// newFielder returns a zeroed, addressable settings value for k.
func newFielder(k Kind) fielder {
	switch k {
	case Cataracts:
		return &CataractsSettings{}
	case Glaucoma:
		return &GlaucomaSettings{}
	case MacularDegeneration:
		return &MacularDegenerationSettings{}
	case TunnelVision:
		return &TunnelVisionSettings{}
	case Hemianopsia:
		return &HemianopsiaSettings{}
	case BlurryVision:
		return &BlurryVisionSettings{}
	case CentralScotoma:
		return &CentralScotomaSettings{}
	case DiabeticRetinopathy:
		return &DiabeticRetinopathySettings{}
	case Deuteranopia:
		return &DeuteranopiaSettings{}
	case Astigmatism:
		return &AstigmatismSettings{}
	}
	return nil
}

// Defaults returns the default settings for k, or nil for None.
func Defaults(k Kind) Settings {
	f := newFielder(k)
	if f == nil {
		return nil
	}
	defaultFields(f)
	return deref(f)
}

// Fields describes the tunable scalars of k in display order.
func Fields(k Kind) []Field {
	f := newFielder(k)
	if f == nil {
		return nil
	}
	return describe(f)
}

func deref(f fielder) Settings {
	switch v := f.(type) {
	case *CataractsSettings:
		return *v
	case *GlaucomaSettings:
		return *v
	case *MacularDegenerationSettings:
		return *v
	case *TunnelVisionSettings:
		return *v
	case *HemianopsiaSettings:
		return *v
	case *BlurryVisionSettings:
		return *v
	case *CentralScotomaSettings:
		return *v
	case *DiabeticRetinopathySettings:
		return *v
	case *DeuteranopiaSettings:
		return *v
	case *AstigmatismSettings:
		return *v
	}
	return nil
}
