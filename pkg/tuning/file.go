package tuning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads a JSON tuning file. Fields missing from the file keep their
// defaults.
func LoadFile(path string) (TuningConfig, error) {
	cfg := DefaultTuningConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultTuningConfig(), fmt.Errorf("decoding tuning file %s: %w", path, err)
	}
	return cfg.Sanitized(), nil
}

// SaveFile writes cfg as indented JSON, creating the directory if needed.
func SaveFile(path string, cfg TuningConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating tuning directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tuning config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing tuning file: %w", err)
	}
	return nil
}
