// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Hud HudConfig `toml:"hud"`
}

// HudConfig maps HUD-related settings. The logical frame duration is fixed
// at 1/60 s and deliberately has no entry here.
type HudConfig struct {
	RefreshHz       *int    `toml:"refresh-hz"`
	ClampMs         *int    `toml:"clamp-ms"`
	MaxCatchUpTicks *int    `toml:"max-catchup-ticks"`
	HoldTimeoutMs   *int    `toml:"hold-timeout-ms"`
	GamepadDevice   *string `toml:"gamepad-device"`
	GamepadButton   *int    `toml:"gamepad-button"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
