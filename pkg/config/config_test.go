// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.World.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.World.TickRate)
	}
	if cfg.World.MinBulletSpeed != 300 {
		t.Errorf("MinBulletSpeed = %v, expected 300", cfg.World.MinBulletSpeed)
	}
	if cfg.World.BulletRadius != 5 {
		t.Errorf("BulletRadius = %v, expected 5", cfg.World.BulletRadius)
	}
	if cfg.Display.Backend != "tcell" {
		t.Errorf("Backend = %q, expected tcell", cfg.Display.Backend)
	}
	if !cfg.Audio.Enabled {
		t.Error("Audio.Enabled = false, expected true")
	}
}

func TestSaveConfig_LoadConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	original := DefaultConfig()
	original.World.TickRate = 30
	original.Display.Backend = "engo"
	original.Display.Width = 640
	original.Audio.Enabled = false

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("roundtrip mismatch: got %+v, expected %+v", *loaded, *original)
	}
}

func TestLoadConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadConfig_InvalidWorldValues_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := `{"world": {"tickRate": 0, "minBulletSpeed": 300, "bulletRadius": 5},
	         "display": {"backend": "tcell", "width": 1024, "height": 768},
	         "audio": {"enabled": true, "sampleRate": 44100}}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for tickRate 0, got nil")
	}
	validationErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Field != "TickRate" {
		t.Errorf("Field = %q, expected TickRate", validationErr.Field)
	}
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*GameConfig)
		errorField string
	}{
		{
			name:       "valid_default",
			mutate:     func(*GameConfig) {},
			errorField: "",
		},
		{
			name:       "tick_rate_zero",
			mutate:     func(c *GameConfig) { c.World.TickRate = 0 },
			errorField: "TickRate",
		},
		{
			name:       "tick_rate_negative",
			mutate:     func(c *GameConfig) { c.World.TickRate = -60 },
			errorField: "TickRate",
		},
		{
			name:       "tick_rate_too_high",
			mutate:     func(c *GameConfig) { c.World.TickRate = 500 },
			errorField: "TickRate",
		},
		{
			name:       "bullet_speed_zero",
			mutate:     func(c *GameConfig) { c.World.MinBulletSpeed = 0 },
			errorField: "MinBulletSpeed",
		},
		{
			name:       "bullet_radius_too_large",
			mutate:     func(c *GameConfig) { c.World.BulletRadius = 500 },
			errorField: "BulletRadius",
		},
		{
			name:       "unknown_backend",
			mutate:     func(c *GameConfig) { c.Display.Backend = "sdl" },
			errorField: "Backend",
		},
		{
			name:       "sample_rate_zero",
			mutate:     func(c *GameConfig) { c.Audio.SampleRate = 0 },
			errorField: "SampleRate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if validationErr.Field != tt.errorField {
				t.Errorf("Field = %q, expected %q", validationErr.Field, tt.errorField)
			}
		})
	}
}

func TestLoadConfig_InvalidJSON_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}
