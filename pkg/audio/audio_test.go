// pkg/audio/audio_test.go
package audio

import (
	"testing"
	"time"

	"github.com/opd-ai/go-turret/pkg/config"
	"github.com/opd-ai/go-turret/pkg/event"
)

func testEnvConfig() *config.EnvironmentConfig {
	return &config.EnvironmentConfig{
		TickRate:                   60,
		MinBulletSpeed:             300,
		BulletRadius:               5,
		DisplayBackend:             "headless",
		AudioEnabled:               true,
		BreakerMaxRequests:         3,
		BreakerInterval:            60 * time.Second,
		BreakerTimeout:             30 * time.Second,
		BreakerMaxConsecutiveFails: 5,
	}
}

func TestNewEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	engine := NewEngine(cfg, testEnvConfig())

	if engine == nil {
		t.Fatal("NewEngine returned nil")
	}
	if engine.breaker == nil {
		t.Error("circuit breaker not configured")
	}
	if int(engine.sampleRate) != cfg.Audio.SampleRate {
		t.Errorf("sampleRate = %d, expected %d", engine.sampleRate, cfg.Audio.SampleRate)
	}
}

func TestEngine_Attach_SubscribesToSoundEvents(t *testing.T) {
	cfg := config.DefaultConfig()
	engine := NewEngine(cfg, testEnvConfig())
	bus := event.NewEventBus()

	engine.Attach(bus)
	defer engine.Close()

	if len(engine.subs) != 2 {
		t.Errorf("got %d subscriptions, expected 2 (fire and destroy)", len(engine.subs))
	}
}

func TestEngine_Attach_DisabledAudio_NoSubscriptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = false
	engine := NewEngine(cfg, testEnvConfig())
	bus := event.NewEventBus()

	engine.Attach(bus)

	if len(engine.subs) != 0 {
		t.Errorf("got %d subscriptions with audio disabled, expected 0", len(engine.subs))
	}
}

func TestEngine_Close_DetachesFromBus(t *testing.T) {
	cfg := config.DefaultConfig()
	engine := NewEngine(cfg, testEnvConfig())
	bus := event.NewEventBus()

	engine.Attach(bus)
	engine.Close()

	if len(engine.subs) != 0 {
		t.Errorf("got %d subscriptions after Close, expected 0", len(engine.subs))
	}
}

func TestEngine_Close_WithoutAttach_IsNoOp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = false
	engine := NewEngine(cfg, testEnvConfig())

	// Must not panic with a nil bus
	engine.Close()
}
