// Package illness defines the simulated conditions and their per-illness
// tuning settings.
package illness

import (
	"fmt"
	"strings"
)

// Kind identifies a simulated condition. The zero value None means no
// illness is selected.
type Kind int

const (
	None Kind = iota
	Cataracts
	Glaucoma
	MacularDegeneration
	TunnelVision
	Hemianopsia
	BlurryVision
	CentralScotoma
	DiabeticRetinopathy
	Deuteranopia
	Astigmatism
)

var kindNames = map[Kind]string{
	None:                "none",
	Cataracts:           "cataracts",
	Glaucoma:            "glaucoma",
	MacularDegeneration: "macularDegeneration",
	TunnelVision:        "tunnelVision",
	Hemianopsia:         "hemianopsia",
	BlurryVision:        "blurryVision",
	CentralScotoma:      "centralScotoma",
	DiabeticRetinopathy: "diabeticRetinopathy",
	Deuteranopia:        "deuteranopia",
	Astigmatism:         "astigmatism",
}

// All returns every selectable illness in menu order.
func All() []Kind {
	return []Kind{
		Cataracts, Glaucoma, MacularDegeneration, TunnelVision, Hemianopsia,
		BlurryVision, CentralScotoma, DiabeticRetinopathy, Deuteranopia, Astigmatism,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k names a real illness.
func (k Kind) Valid() bool {
	return k > None && k <= Astigmatism
}

// ParseKind parses an illness name. Case, dashes, underscores and spaces are
// ignored, so "macular-degeneration" and "macularDegeneration" are equal.
func ParseKind(s string) (Kind, error) {
	want := normalizeName(s)
	if want == "" {
		return None, nil
	}
	for k, name := range kindNames {
		if normalizeName(name) == want {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown illness %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("invalid illness kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// Side selects the affected half of the visual field for hemianopsia.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

var sideNames = []string{"left", "right", "top", "bottom"}

func (s Side) String() string {
	if s < SideLeft || s > SideBottom {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// ParseSide parses "left", "right", "top" or "bottom".
func ParseSide(s string) (Side, error) {
	want := normalizeName(s)
	for i, name := range sideNames {
		if name == want {
			return Side(i), nil
		}
	}
	return SideLeft, fmt.Errorf("unknown side %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if s < SideLeft || s > SideBottom {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
