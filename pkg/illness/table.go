package illness

// Table holds one settings value per illness. It is the preset set a UI edits
// and a profile persists.
type Table struct {
	Cataracts           CataractsSettings           `json:"cataracts" yaml:"cataracts"`
	Glaucoma            GlaucomaSettings            `json:"glaucoma" yaml:"glaucoma"`
	MacularDegeneration MacularDegenerationSettings `json:"macular_degeneration" yaml:"macular_degeneration"`
	TunnelVision        TunnelVisionSettings        `json:"tunnel_vision" yaml:"tunnel_vision"`
	Hemianopsia         HemianopsiaSettings         `json:"hemianopsia" yaml:"hemianopsia"`
	BlurryVision        BlurryVisionSettings        `json:"blurry_vision" yaml:"blurry_vision"`
	CentralScotoma      CentralScotomaSettings      `json:"central_scotoma" yaml:"central_scotoma"`
	DiabeticRetinopathy DiabeticRetinopathySettings `json:"diabetic_retinopathy" yaml:"diabetic_retinopathy"`
	Deuteranopia        DeuteranopiaSettings        `json:"deuteranopia" yaml:"deuteranopia"`
	Astigmatism         AstigmatismSettings         `json:"astigmatism" yaml:"astigmatism"`
}

// DefaultTable returns a table filled with every illness' defaults.
func DefaultTable() Table {
	var t Table
	for _, k := range All() {
		t.Set(Defaults(k))
	}
	return t
}

// Get returns the settings stored for k, or nil for None.
func (t Table) Get(k Kind) Settings {
	switch k {
	case Cataracts:
		return t.Cataracts
	case Glaucoma:
		return t.Glaucoma
	case MacularDegeneration:
		return t.MacularDegeneration
	case TunnelVision:
		return t.TunnelVision
	case Hemianopsia:
		return t.Hemianopsia
	case BlurryVision:
		return t.BlurryVision
	case CentralScotoma:
		return t.CentralScotoma
	case DiabeticRetinopathy:
		return t.DiabeticRetinopathy
	case Deuteranopia:
		return t.Deuteranopia
	case Astigmatism:
		return t.Astigmatism
	}
	return nil
}

// Set stores s in the slot for its kind. Nil is ignored.
func (t *Table) Set(s Settings) {
	switch v := s.(type) {
	case CataractsSettings:
		t.Cataracts = v
	case GlaucomaSettings:
		t.Glaucoma = v
	case MacularDegenerationSettings:
		t.MacularDegeneration = v
	case TunnelVisionSettings:
		t.TunnelVision = v
	case HemianopsiaSettings:
		t.Hemianopsia = v
	case BlurryVisionSettings:
		t.BlurryVision = v
	case CentralScotomaSettings:
		t.CentralScotoma = v
	case DiabeticRetinopathySettings:
		t.DiabeticRetinopathy = v
	case DeuteranopiaSettings:
		t.Deuteranopia = v
	case AstigmatismSettings:
		t.Astigmatism = v
	}
}

// Clamped returns a copy of the table with every value inside its range.
func (t Table) Clamped() Table {
	var out Table
	for _, k := range All() {
		out.Set(t.Get(k).Clamped())
	}
	return out
}
