// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// GameConfig contains configuration for a turret game
type GameConfig struct {
	World   WorldConfig   `json:"world"`
	Display DisplayConfig `json:"display"`
	Audio   AudioConfig   `json:"audio"`
}

// WorldConfig contains simulation-related configuration
type WorldConfig struct {
	// TickRate is the target update frequency in Hz
	TickRate int `json:"tickRate"`
	// MinBulletSpeed is the launch speed floor in units per second; slower
	// shots are rescaled up to it
	MinBulletSpeed float64 `json:"minBulletSpeed"`
	// BulletRadius is the radius of a bullet's visual element
	BulletRadius float64 `json:"bulletRadius"`
}

// DisplayConfig contains display backend configuration
type DisplayConfig struct {
	// Backend selects the display implementation: "tcell", "engo" or
	// "headless"
	Backend    string `json:"backend"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
}

// AudioConfig contains sound effect configuration
type AudioConfig struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sampleRate"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that file-supplied values sit inside the same ranges the
// environment path enforces. A tick rate of zero would otherwise reach the
// world loop's ticker interval division.
func (c *GameConfig) Validate() error {
	if c.World.TickRate < 1 || c.World.TickRate > 240 {
		return &ValidationError{
			Field:   "TickRate",
			Value:   c.World.TickRate,
			Message: "must be between 1 and 240",
		}
	}
	if c.World.MinBulletSpeed <= 0 || c.World.MinBulletSpeed > 10000 {
		return &ValidationError{
			Field:   "MinBulletSpeed",
			Value:   c.World.MinBulletSpeed,
			Message: "must be between 0 (exclusive) and 10000",
		}
	}
	if c.World.BulletRadius <= 0 || c.World.BulletRadius > 100 {
		return &ValidationError{
			Field:   "BulletRadius",
			Value:   c.World.BulletRadius,
			Message: "must be between 0 (exclusive) and 100",
		}
	}
	switch c.Display.Backend {
	case "tcell", "engo", "headless":
	default:
		return &ValidationError{
			Field:   "Backend",
			Value:   c.Display.Backend,
			Message: "must be one of tcell, engo, headless",
		}
	}
	if c.Audio.SampleRate < 1 {
		return &ValidationError{
			Field:   "SampleRate",
			Value:   c.Audio.SampleRate,
			Message: "must be at least 1",
		}
	}
	return nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			TickRate:       60,
			MinBulletSpeed: 300,
			BulletRadius:   5,
		},
		Display: DisplayConfig{
			Backend:    "tcell",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
	}
}
