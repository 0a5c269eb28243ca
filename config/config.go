// Package config provides application constants and per-user file locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetPath returns the path to the user's config directory.
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, LogSubDir), nil
}

// GetProfileFilename returns the path to the user's simulation profile.
func GetProfileFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProfileFileName), nil
}

// GetTuningFilename returns the path to the user's tuning file.
func GetTuningFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TuningFileName), nil
}

// EnsurePath creates the config directory if it does not exist.
func EnsurePath() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}
