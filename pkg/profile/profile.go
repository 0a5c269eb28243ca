// Package profile stores a simulation setup: the selected illness, its
// intensity, output layout and the per-illness presets.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dixieflatline76/EyeSim/pkg/filter"
	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/stream"
	"github.com/dixieflatline76/EyeSim/pkg/vr"
	"github.com/dixieflatline76/EyeSim/util/log"
)

// ErrUnsupportedFormat is returned for profile files that are neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported profile format")

// FitMode selects how captured frames are cropped into panels.
type FitMode string

const (
	FitCenter FitMode = "center"
	FitSmart  FitMode = "smart"
)

// Fitter returns the vr.Fitter for the mode.
func (m FitMode) Fitter() vr.Fitter {
	if m == FitSmart {
		return vr.SmartFitter{}
	}
	return vr.CenterFitter{}
}

// Profile is a saved simulation setup.
type Profile struct {
	Illness      illness.Kind  `json:"illness" yaml:"illness"`
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Intensity    float64       `json:"intensity" yaml:"intensity"`
	CenterOffset vr.Vec        `json:"center_offset" yaml:"center_offset"`
	Mode         stream.Mode   `json:"mode" yaml:"mode"`
	Fit          FitMode       `json:"fit" yaml:"fit"`
	MaxFPS       float64       `json:"max_fps" yaml:"max_fps"`
	VR           vr.Settings   `json:"vr" yaml:"vr"`
	Presets      illness.Table `json:"presets" yaml:"presets"`
	TuningFile   string        `json:"tuning_file,omitempty" yaml:"tuning_file,omitempty"`
}

// Default returns the profile used when none is saved.
func Default() Profile {
	return Profile{
		Illness:   illness.Cataracts,
		Enabled:   true,
		Intensity: 0.5,
		Mode:      stream.ModeMono,
		Fit:       FitCenter,
		MaxFPS:    30,
		VR:        vr.DefaultSettings(),
		Presets:   illness.DefaultTable(),
	}
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// Load reads a profile. Fields missing from the file keep their defaults and
// the result is clamped into valid ranges.
func Load(path string) (Profile, error) {
	f, err := formatFor(path)
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading profile: %w", err)
	}

	p := Default()
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Default(), fmt.Errorf("parsing profile %s: %w", filepath.Base(path), err)
	}
	return p.Normalized(), nil
}

// LoadOrDefault is Load that falls back to Default. A missing file is not
// worth a log line; anything else is.
func LoadOrDefault(path string) Profile {
	p, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Using default profile: %v", err)
		}
		return Default()
	}
	return p
}

// Save writes the profile, creating parent directories.
func (p *Profile) Save(path string) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(p)
	default:
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// Normalized clamps the intensity, center offset, presets and VR settings.
func (p Profile) Normalized() Profile {
	p.Intensity = filter.ClampIntensity(p.Intensity)
	p.CenterOffset.X = clampOffset(p.CenterOffset.X)
	p.CenterOffset.Y = clampOffset(p.CenterOffset.Y)
	p.Presets = p.Presets.Clamped()
	p.VR = p.VR.Sanitized()
	if p.Fit != FitSmart {
		p.Fit = FitCenter
	}
	if p.MaxFPS < 0 {
		p.MaxFPS = 0
	}
	return p
}

func clampOffset(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-1, min(1, v))
}

// Request builds the engine request for the selected illness using its
// preset.
func (p Profile) Request() filter.Request {
	return filter.Request{
		Illness:   p.Illness,
		Settings:  p.Presets.Get(p.Illness),
		Enabled:   p.Enabled,
		Intensity: p.Intensity,
		Geometry:  vr.Geometry{CenterOffset: p.CenterOffset},
	}
}

// Params builds the renderer parameters for the selected illness.
func (p Profile) Params() stream.Params {
	return stream.Params{
		Illness:      p.Illness,
		Settings:     p.Presets.Get(p.Illness),
		Enabled:      p.Enabled,
		Intensity:    p.Intensity,
		CenterOffset: p.CenterOffset,
	}
}
