package main

import (
	"flag"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/profile"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
)

func TestParseDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want image.Point
		ok   bool
	}{
		{"1280x720", image.Pt(1280, 720), true},
		{"64X32", image.Pt(64, 32), true},
		{" 10 x 20 ", image.Pt(10, 20), true},
		{"1280", image.Point{}, false},
		{"0x10", image.Point{}, false},
		{"ax10", image.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDisplay(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	base := profile.Default()
	base.Illness = illness.Glaucoma
	base.CenterOffset.X = 0.3
	require.NoError(t, base.Save(path))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var c common
	c.register(fs)
	require.NoError(t, fs.Parse([]string{"-profile", path, "-intensity", "0.9", "-offset-y", "-0.5", "-disabled"}))

	p, err := c.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, illness.Glaucoma, p.Illness)
	assert.Equal(t, 0.9, p.Intensity)
	assert.Equal(t, 0.3, p.CenterOffset.X)
	assert.Equal(t, -0.5, p.CenterOffset.Y)
	assert.False(t, p.Enabled)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	c = common{}
	c.register(fs)
	require.NoError(t, fs.Parse([]string{"-profile", path, "-illness", "sneezing"}))
	_, err = c.resolve(fs)
	assert.Error(t, err)
}

func TestListFrames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	frames, err := listFrames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}, frames)
}

func TestRunInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	dir := filepath.Join(home, ".eyesim")
	tuningPath := filepath.Join(dir, "tuning.json")
	profilePath := filepath.Join(dir, "profile.json")

	assert.Empty(t, userTuningFile())
	require.NoError(t, runInit(nil))
	assert.FileExists(t, tuningPath)
	assert.Equal(t, tuningPath, userTuningFile())

	p, err := profile.Load(profilePath)
	require.NoError(t, err)
	assert.Equal(t, tuningPath, p.TuningFile)

	// A second run keeps edits; -force restores the defaults.
	require.NoError(t, os.WriteFile(tuningPath, []byte(`{"twirl_falloff": 3}`), 0644))
	require.NoError(t, runInit(nil))
	data, err := os.ReadFile(tuningPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"twirl_falloff": 3}`, string(data))

	require.NoError(t, runInit([]string{"-force"}))
	cfg, err := tuning.LoadFile(tuningPath)
	require.NoError(t, err)
	assert.Equal(t, tuning.DefaultTuningConfig(), cfg)
}

func TestResolveFindsUserTuningFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	tuningPath := filepath.Join(home, ".eyesim", "tuning.json")
	require.NoError(t, tuning.SaveFile(tuningPath, tuning.DefaultTuningConfig()))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var c common
	c.register(fs)
	require.NoError(t, fs.Parse(nil))
	p, err := c.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, tuningPath, p.TuningFile)

	explicit := filepath.Join(t.TempDir(), "other.json")
	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	c = common{}
	c.register(fs)
	require.NoError(t, fs.Parse([]string{"-tuning", explicit}))
	p, err = c.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, explicit, p.TuningFile)
}
