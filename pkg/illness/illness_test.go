package illness

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"cataracts", Cataracts},
		{"macularDegeneration", MacularDegeneration},
		{"macular-degeneration", MacularDegeneration},
		{"TUNNEL_VISION", TunnelVision},
		{"diabetic retinopathy", DiabeticRetinopathy},
		{"", None},
		{"none", None},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("myopia")
	assert.Error(t, err)
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range All() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.True(t, k.Valid())
	}
	assert.False(t, None.Valid())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestCataractsDefaults(t *testing.T) {
	s, ok := Defaults(Cataracts).(CataractsSettings)
	require.True(t, ok)
	assert.Equal(t, CataractsSettings{
		BlurRadius:          10,
		Cloudiness:          0.3,
		Brightness:          0.8,
		SaturationReduction: 0.3,
		ContrastReduction:   0.2,
		BlueReduction:       0.2,
	}, s)
}

func TestDefaultsMatchKind(t *testing.T) {
	for _, k := range All() {
		s := Defaults(k)
		require.NotNil(t, s, k.String())
		assert.Equal(t, k, s.Kind())
		assert.Equal(t, s, s.Clamped(), "defaults must sit inside their ranges")
		assert.NotEmpty(t, Fields(k))
	}
	assert.Nil(t, Defaults(None))
	assert.Nil(t, Fields(None))
}

func TestFieldCount(t *testing.T) {
	total := 0
	for _, k := range All() {
		total += len(Fields(k))
	}
	// hemianopsia's side is an enum, not a scalar
	assert.Equal(t, 44, total)
}

func TestClamped(t *testing.T) {
	s := TunnelVisionSettings{
		TunnelRadius:      -1,
		EdgeSoftness:      5,
		DarknessLevel:     math.NaN(),
		BlurRadius:        1000,
		MaxRadiusFactor:   0.5,
		FeatherFactorBase: 0.2,
		MinRadiusPercent:  0,
	}
	got := s.Clamped().(TunnelVisionSettings)
	assert.Equal(t, 0.05, got.TunnelRadius)
	assert.Equal(t, 1.0, got.EdgeSoftness)
	assert.Equal(t, 0.9, got.DarknessLevel, "NaN resets to default")
	assert.Equal(t, 30.0, got.BlurRadius)
	assert.Equal(t, 0.5, got.MaxRadiusFactor)
	assert.Equal(t, 0.01, got.MinRadiusPercent)

	// the receiver is a copy
	assert.Equal(t, -1.0, s.TunnelRadius)

	h := HemianopsiaSettings{Side: Side(12)}.Clamped().(HemianopsiaSettings)
	assert.Equal(t, SideLeft, h.Side)
}

func TestTable(t *testing.T) {
	table := DefaultTable()
	for _, k := range All() {
		assert.Equal(t, Defaults(k), table.Get(k))
	}

	table.Set(AstigmatismSettings{BlurRadius: 3, AngleDegrees: 90, GhostAlpha: 0.1})
	assert.Equal(t, 90.0, table.Get(Astigmatism).(AstigmatismSettings).AngleDegrees)

	table.Set(nil)
	assert.Nil(t, table.Get(None))

	table.Deuteranopia.Strength = 3
	assert.Equal(t, 1.0, table.Clamped().Deuteranopia.Strength)
}

func TestSideJSON(t *testing.T) {
	data, err := json.Marshal(HemianopsiaSettings{Side: SideTop, Darkness: 0.5})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"side":"top"`)

	var back HemianopsiaSettings
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, SideTop, back.Side)

	assert.Error(t, json.Unmarshal([]byte(`{"side":"middle"}`), &back))
}
