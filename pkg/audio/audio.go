// Package audio plays generated sound effects for game events. Tones are
// synthesized with beep and played through the default speaker; playback runs
// behind a circuit breaker so a missing or failing audio device trips open
// instead of being hammered on every shot. Audio is never fatal: the game
// runs silently when the device is unavailable.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-turret/pkg/config"
	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
)

// Effect frequencies and durations
const (
	fireToneHz     = 880
	fireToneLen    = 50 * time.Millisecond
	destroyToneHz  = 220
	destroyToneLen = 80 * time.Millisecond
)

// Engine owns the speaker and the event subscriptions that trigger effects
type Engine struct {
	logger     *logging.Logger
	breaker    *gobreaker.CircuitBreaker
	sampleRate beep.SampleRate
	enabled    bool

	initOnce sync.Once
	initErr  error

	bus  *event.Bus
	subs []subscription
}

type subscription struct {
	eventType event.Type
	id        event.SubscriptionID
}

// NewEngine creates an audio engine. The circuit breaker is configured from
// environment settings the same way the rest of the process is.
func NewEngine(cfg *config.GameConfig, envConfig *config.EnvironmentConfig) *Engine {
	logger := logging.NewLogger()

	settings := gobreaker.Settings{
		Name:        "turret-audio",
		MaxRequests: uint32(envConfig.BreakerMaxRequests),
		Interval:    envConfig.BreakerInterval,
		Timeout:     envConfig.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(envConfig.BreakerMaxConsecutiveFails)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "audio circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Engine{
		logger:     logger,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		sampleRate: beep.SampleRate(cfg.Audio.SampleRate),
		enabled:    cfg.Audio.Enabled,
	}
}

// Attach subscribes the engine to the domain events that carry sound
func (e *Engine) Attach(bus *event.Bus) {
	if !e.enabled {
		return
	}
	e.bus = bus
	e.subscribe(event.BulletFired, func(event.Event) {
		e.playTone(fireToneHz, fireToneLen)
	})
	e.subscribe(event.ObjectDestroyed, func(event.Event) {
		e.playTone(destroyToneHz, destroyToneLen)
	})
}

func (e *Engine) subscribe(eventType event.Type, handler event.Handler) {
	id := e.bus.Subscribe(eventType, handler)
	e.subs = append(e.subs, subscription{eventType: eventType, id: id})
}

// Close detaches the engine from the bus
func (e *Engine) Close() {
	for _, sub := range e.subs {
		e.bus.Unsubscribe(sub.eventType, sub.id)
	}
	e.subs = nil
}

// playTone synthesizes and plays a sine blip through the circuit breaker
func (e *Engine) playTone(freqHz float64, duration time.Duration) {
	_, err := e.breaker.Execute(func() (interface{}, error) {
		return nil, e.play(freqHz, duration)
	})
	if err != nil {
		e.logger.Debug(context.Background(), "audio effect skipped",
			"error", err.Error(),
			"state", e.breaker.State().String(),
		)
	}
}

// play initializes the speaker on first use, then queues the tone
func (e *Engine) play(freqHz float64, duration time.Duration) error {
	e.initOnce.Do(func() {
		e.initErr = speaker.Init(e.sampleRate, e.sampleRate.N(time.Second/10))
	})
	if e.initErr != nil {
		return logging.WrapError(e.initErr, "speaker unavailable")
	}

	sine, err := generators.SineTone(e.sampleRate, freqHz)
	if err != nil {
		return logging.WrapError(err, "failed to generate %gHz tone", freqHz)
	}
	speaker.Play(beep.Take(e.sampleRate.N(duration), sine))
	return nil
}
