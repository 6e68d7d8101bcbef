package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Sections left out keep their defaults.
type File struct {
	Window *Config       `yaml:"window"`
	Interp *InterpConfig `yaml:"interp"`
	Net    *NetConfig    `yaml:"net"`
	HUD    *HUDConfig    `yaml:"hud"`
}

// LoadFile overlays the YAML file at path onto the package configuration.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

// Load overlays YAML data onto the package configuration. Fields missing from
// a present section keep their current values.
func Load(data []byte) error {
	f := File{
		Window: C,
		Interp: &Interp,
		Net:    &Net,
		HUD:    &HUD,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if Interp.BufferSize < 1 {
		return fmt.Errorf("interp.buffer_size must be at least 1, got %d", Interp.BufferSize)
	}
	return nil
}
