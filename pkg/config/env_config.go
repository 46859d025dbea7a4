// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig holds deployment-level settings read from TURRET_*
// environment variables. File config describes the game; environment config
// describes the process running it.
type EnvironmentConfig struct {
	TickRate       int
	MinBulletSpeed float64
	BulletRadius   float64
	DisplayBackend string
	AudioEnabled   bool

	// Circuit Breaker Configuration (audio device)
	BreakerMaxRequests         int
	BreakerInterval            time.Duration
	BreakerTimeout             time.Duration
	BreakerMaxConsecutiveFails int
}

// ValidationError describes a single invalid configuration field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config field %s=%v: %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads environment configuration with safe defaults and
// validates it.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		TickRate:       getEnvAsIntOrDefault("TURRET_TICK_RATE", 60),
		MinBulletSpeed: getEnvAsFloatOrDefault("TURRET_MIN_BULLET_SPEED", 300),
		BulletRadius:   getEnvAsFloatOrDefault("TURRET_BULLET_RADIUS", 5),
		DisplayBackend: getEnvOrDefault("TURRET_DISPLAY", "tcell"),
		AudioEnabled:   getEnvAsBoolOrDefault("TURRET_AUDIO_ENABLED", true),

		BreakerMaxRequests:         getEnvAsIntOrDefault("TURRET_BREAKER_MAX_REQUESTS", 3),
		BreakerInterval:            getEnvAsDurationOrDefault("TURRET_BREAKER_INTERVAL", 60*time.Second),
		BreakerTimeout:             getEnvAsDurationOrDefault("TURRET_BREAKER_TIMEOUT", 30*time.Second),
		BreakerMaxConsecutiveFails: getEnvAsIntOrDefault("TURRET_BREAKER_MAX_CONSECUTIVE_FAILS", 5),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnvironmentOverrides overlays environment settings onto a file-loaded
// game configuration. Environment always wins.
func ApplyEnvironmentOverrides(gameConfig *GameConfig) error {
	envConfig, err := LoadConfigFromEnv()
	if err != nil {
		return err
	}

	if os.Getenv("TURRET_TICK_RATE") != "" {
		gameConfig.World.TickRate = envConfig.TickRate
	}
	if os.Getenv("TURRET_MIN_BULLET_SPEED") != "" {
		gameConfig.World.MinBulletSpeed = envConfig.MinBulletSpeed
	}
	if os.Getenv("TURRET_BULLET_RADIUS") != "" {
		gameConfig.World.BulletRadius = envConfig.BulletRadius
	}
	if os.Getenv("TURRET_DISPLAY") != "" {
		gameConfig.Display.Backend = envConfig.DisplayBackend
	}
	if os.Getenv("TURRET_AUDIO_ENABLED") != "" {
		gameConfig.Audio.Enabled = envConfig.AudioEnabled
	}

	return nil
}

// validateEnvironmentConfig checks that every field is inside its sane range.
func validateEnvironmentConfig(config *EnvironmentConfig) error {
	if config.TickRate < 1 || config.TickRate > 240 {
		return &ValidationError{
			Field:   "TickRate",
			Value:   config.TickRate,
			Message: "must be between 1 and 240",
		}
	}
	if config.MinBulletSpeed <= 0 || config.MinBulletSpeed > 10000 {
		return &ValidationError{
			Field:   "MinBulletSpeed",
			Value:   config.MinBulletSpeed,
			Message: "must be between 0 (exclusive) and 10000",
		}
	}
	if config.BulletRadius <= 0 || config.BulletRadius > 100 {
		return &ValidationError{
			Field:   "BulletRadius",
			Value:   config.BulletRadius,
			Message: "must be between 0 (exclusive) and 100",
		}
	}
	switch config.DisplayBackend {
	case "tcell", "engo", "headless":
	default:
		return &ValidationError{
			Field:   "DisplayBackend",
			Value:   config.DisplayBackend,
			Message: "must be one of tcell, engo, headless",
		}
	}
	if config.BreakerMaxRequests < 1 {
		return &ValidationError{
			Field:   "BreakerMaxRequests",
			Value:   config.BreakerMaxRequests,
			Message: "must be at least 1",
		}
	}
	if config.BreakerInterval < time.Second {
		return &ValidationError{
			Field:   "BreakerInterval",
			Value:   config.BreakerInterval,
			Message: "must be at least 1s",
		}
	}
	if config.BreakerTimeout < time.Second {
		return &ValidationError{
			Field:   "BreakerTimeout",
			Value:   config.BreakerTimeout,
			Message: "must be at least 1s",
		}
	}
	if config.BreakerMaxConsecutiveFails < 1 {
		return &ValidationError{
			Field:   "BreakerMaxConsecutiveFails",
			Value:   config.BreakerMaxConsecutiveFails,
			Message: "must be at least 1",
		}
	}

	return nil
}

// getEnvOrDefault returns the environment value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment value parsed as int, or a
// default when unset or unparseable
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment value parsed as float64, or
// a default when unset or unparseable
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment value parsed as bool, or a
// default when unset or unparseable
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment value parsed as a
// duration, or a default when unset or unparseable
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
