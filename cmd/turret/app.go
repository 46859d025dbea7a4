// cmd/turret/app.go
package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/opd-ai/go-turret/pkg/config"
	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/engine"
	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
)

// app is the top-level controller. It is the single owner of the optional
// world: nil until the trigger click creates it, back to nil when Escape
// destroys it. The transitions are explicit edges, not ambient globals.
type app struct {
	cfg     *config.GameConfig
	bus     *event.Bus
	surface display.Surface
	logger  *logging.Logger
	quit    context.CancelFunc

	mu    sync.Mutex
	world *engine.World
}

// newApp wires the controller to the bus. The world is not created yet.
func newApp(cfg *config.GameConfig, bus *event.Bus, surface display.Surface, quit context.CancelFunc) *app {
	a := &app{
		cfg:     cfg,
		bus:     bus,
		surface: surface,
		logger:  logging.NewLogger(),
		quit:    quit,
	}
	bus.Subscribe(event.PointerClicked, a.handleClick)
	bus.Subscribe(event.KeyPressed, a.handleKey)
	return a
}

// handleClick starts the world on the trigger click. Later clicks reach the
// running world's own handler; a click after Escape starts a fresh world.
func (a *app) handleClick(e event.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.world != nil {
		return
	}

	ctx := logging.WithCorrelationID(context.Background(), "")
	world := engine.NewWorld(a.cfg, a.surface, a.bus)
	if err := world.Initialize(); err != nil {
		a.logger.Error(ctx, "failed to initialize world", err)
		return
	}
	a.world = world

	go func() {
		if err := world.Run(context.Background()); err != nil {
			a.logger.Error(ctx, "world loop exited", err)
		}
	}()
	a.logger.Info(ctx, "world started",
		"tick_rate", a.cfg.World.TickRate,
	)
}

// handleKey stops the world on Escape and quits the process on interrupt
func (a *app) handleKey(e event.Event) {
	key, ok := e.(*event.KeyEvent)
	if !ok {
		return
	}

	switch key.Key {
	case event.KeyEscape:
		a.mu.Lock()
		world := a.world
		a.world = nil
		a.mu.Unlock()

		if world != nil {
			world.Destroy()
		}
	case event.KeyInterrupt:
		a.quit()
	}
}

// shutdown destroys any live world during process teardown
func (a *app) shutdown() {
	a.mu.Lock()
	world := a.world
	a.world = nil
	a.mu.Unlock()

	if world != nil {
		world.Destroy()
	}
}

// status renders a one-line state summary for the terminal backend
func (a *app) status() string {
	a.mu.Lock()
	world := a.world
	a.mu.Unlock()

	if world == nil {
		return "click to launch - Esc stops, Ctrl-C quits"
	}
	state := world.Snapshot()
	return fmt.Sprintf("tick %d | objects %d | Esc stops", state.Tick, state.ObjectCount)
}
