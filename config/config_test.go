package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := GetPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".eyesim"), dir)

	profile, err := GetProfileFilename()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".eyesim", ProfileFileName), profile)

	tuning, err := GetTuningFilename()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".eyesim", TuningFileName), tuning)
}

func TestEnsurePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := EnsurePath()
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
