// pkg/engine/world.go
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/opd-ai/go-turret/pkg/config"
	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/entity"
	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// WorldStatus tracks the world's lifecycle state
type WorldStatus int

const (
	WorldStatusNew WorldStatus = iota
	WorldStatusRunning
	WorldStatusDestroyed
)

// Lifecycle errors
var (
	ErrWorldDestroyed      = errors.New("engine: world has been destroyed")
	ErrWorldNotInitialized = errors.New("engine: world has not been initialized")
	ErrWorldRunning        = errors.New("engine: world is already running")
	ErrInvalidTickRate     = errors.New("engine: tick rate must be at least 1")
)

// World owns the object collection, the fixed-rate tick loop, input-event
// translation and bounds tracking. Input handlers and the tick loop exclude
// each other through entityLock, so handlers never interleave with a tick in
// progress and objects are visited exactly once per tick.
type World struct {
	Config   *config.GameConfig
	EventBus *event.Bus
	Surface  display.Surface
	Ship     *entity.Ship

	// objects in insertion order; ticks iterate newest to oldest so
	// destroyed objects can be removed in place
	objects []entity.GameObject

	bounds      physics.Rect
	LastUpdate  time.Time
	CurrentTick uint64

	status     WorldStatus
	entityLock sync.Mutex
	logger     *logging.Logger

	stopCh   chan struct{}
	stopOnce sync.Once

	subscriptions []subscription
}

// subscription records a bus registration so Destroy can detach it
type subscription struct {
	eventType event.Type
	id        event.SubscriptionID
}

// NewWorld creates a world bound to a surface and event bus. Call Initialize
// before Run.
func NewWorld(cfg *config.GameConfig, surface display.Surface, bus *event.Bus) *World {
	return &World{
		Config:   cfg,
		EventBus: bus,
		Surface:  surface,
		logger:   logging.NewLogger(),
		stopCh:   make(chan struct{}),
	}
}

// Initialize creates the ship, captures the initial bounds and attaches
// input listeners. The world stays in WorldStatusNew until Run.
func (w *World) Initialize() error {
	w.entityLock.Lock()
	defer w.entityLock.Unlock()

	if w.status == WorldStatusDestroyed {
		return ErrWorldDestroyed
	}
	if w.Ship != nil {
		return nil // already initialized
	}

	w.bounds = w.Surface.Bounds()

	ship := entity.NewShip(w.Surface, w, w.Config.World.MinBulletSpeed, w.Config.World.BulletRadius)
	if err := w.addObjectLocked(ship); err != nil {
		return logging.WrapError(err, "failed to initialize ship")
	}
	w.Ship = ship

	w.subscribe(event.PointerMoved, w.handlePointerMoved)
	w.subscribe(event.PointerClicked, w.handlePointerClicked)
	w.subscribe(event.SurfaceResized, w.handleSurfaceResized)

	return nil
}

// subscribe registers a bus handler and remembers it for teardown
func (w *World) subscribe(eventType event.Type, handler event.Handler) {
	id := w.EventBus.Subscribe(eventType, handler)
	w.subscriptions = append(w.subscriptions, subscription{eventType: eventType, id: id})
}

// Run drives the fixed-rate tick loop until the context is canceled or the
// world is destroyed. It blocks the calling goroutine.
func (w *World) Run(ctx context.Context) error {
	w.entityLock.Lock()
	if w.Ship == nil {
		w.entityLock.Unlock()
		return ErrWorldNotInitialized
	}
	switch w.status {
	case WorldStatusDestroyed:
		w.entityLock.Unlock()
		return ErrWorldDestroyed
	case WorldStatusRunning:
		w.entityLock.Unlock()
		return ErrWorldRunning
	}
	tickRate := w.Config.World.TickRate
	if tickRate < 1 {
		w.entityLock.Unlock()
		return ErrInvalidTickRate
	}
	w.status = WorldStatusRunning
	w.LastUpdate = time.Now()
	w.entityLock.Unlock()

	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.WorldStarted,
		Source:    w,
	})

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Destroy()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.Update()
		}
	}
}

// Update advances the world by one tick: computes the elapsed wall-clock
// time, updates every live object newest to oldest, and removes objects that
// flagged themselves destroyed during this tick.
func (w *World) Update() {
	w.entityLock.Lock()
	if w.status != WorldStatusRunning {
		w.entityLock.Unlock()
		return
	}
	pending := w.stepLocked(w.calculateDeltaTime())
	w.entityLock.Unlock()

	w.publishAll(pending)
}

// Step advances the world by one tick with an explicit elapsed time in
// seconds. Tests and scripted runs use it in place of the wall-clock loop.
func (w *World) Step(deltaTime float64) {
	w.entityLock.Lock()
	if w.status == WorldStatusDestroyed {
		w.entityLock.Unlock()
		return
	}
	pending := w.stepLocked(deltaTime)
	w.entityLock.Unlock()

	w.publishAll(pending)
}

// stepLocked runs one tick and returns the events it produced; caller holds
// entityLock and publishes after releasing it.
func (w *World) stepLocked(deltaTime float64) []event.Event {
	pending := w.updateObjectsLocked(deltaTime)
	w.CurrentTick++
	return pending
}

// publishAll dispatches events collected during a locked section. Publishing
// happens outside entityLock so subscribers may call back into the world.
func (w *World) publishAll(events []event.Event) {
	for _, e := range events {
		w.EventBus.Publish(e)
	}
}

// calculateDeltaTime calculates the time since the last update and caps it.
func (w *World) calculateDeltaTime() float64 {
	now := time.Now()
	deltaTime := now.Sub(w.LastUpdate).Seconds()
	w.LastUpdate = now

	// Cap delta time so a stalled timer cannot teleport bullets
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}
	return deltaTime
}

// updateObjectsLocked runs one tick over the object collection and returns
// the destruction events to publish once the lock is released. Reverse
// iteration keeps in-place removal safe; objects added during this tick (via
// input handlers) sit past the starting index and are first updated next
// tick.
func (w *World) updateObjectsLocked(deltaTime float64) []event.Event {
	var destroyed []event.Event
	for i := len(w.objects) - 1; i >= 0; i-- {
		obj := w.objects[i]
		obj.Update(deltaTime)

		if obj.Destroyed() {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			destroyed = append(destroyed, event.NewObjectEvent(event.ObjectDestroyed, w, uint64(obj.GetID())))
		}
	}
	return destroyed
}

// AddObject initializes the object and appends it to the collection. Objects
// added between ticks are first updated on the following tick.
func (w *World) AddObject(obj entity.GameObject) error {
	w.entityLock.Lock()
	defer w.entityLock.Unlock()

	if w.status == WorldStatusDestroyed {
		return ErrWorldDestroyed
	}
	return w.addObjectLocked(obj)
}

// addObjectLocked initializes and appends; caller holds entityLock.
func (w *World) addObjectLocked(obj entity.GameObject) error {
	if err := obj.Initialize(); err != nil {
		return logging.WrapError(err, "failed to initialize object %d", obj.GetID())
	}
	w.objects = append(w.objects, obj)
	return nil
}

// Destroy tears the world down: every object is destroyed, listeners are
// detached and the tick loop stops. Terminal and idempotent.
func (w *World) Destroy() {
	w.entityLock.Lock()
	if w.status == WorldStatusDestroyed {
		w.entityLock.Unlock()
		return
	}
	w.status = WorldStatusDestroyed

	for i := len(w.objects) - 1; i >= 0; i-- {
		w.objects[i].Destroy()
	}
	w.objects = nil
	w.Ship = nil

	for _, sub := range w.subscriptions {
		w.EventBus.Unsubscribe(sub.eventType, sub.id)
	}
	w.subscriptions = nil
	w.entityLock.Unlock()

	w.stopOnce.Do(func() { close(w.stopCh) })

	w.logger.Info(context.Background(), "world destroyed",
		"ticks", w.CurrentTick,
	)
	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.WorldStopped,
		Source:    w,
	})
}

// VisibleBounds implements entity.BoundsProvider: the world bounds expressed
// in the same viewport coordinates sprite rectangles use. Reads happen under
// the world lock (bullet updates run inside the tick), so no extra locking
// here; bounds are only written by the resize handler, which also holds the
// lock.
func (w *World) VisibleBounds() physics.Rect {
	return w.bounds.Translate(w.Surface.ScrollOffset().Neg())
}

// handlePointerMoved aims the ship at the pointer
func (w *World) handlePointerMoved(e event.Event) {
	pointer, ok := e.(*event.PointerEvent)
	if !ok {
		return
	}

	w.entityLock.Lock()
	defer w.entityLock.Unlock()

	if w.status == WorldStatusDestroyed || w.Ship == nil {
		return
	}
	w.Ship.AimAt(pointer.Position)
}

// handlePointerClicked fires a bullet toward the click location and registers
// it with the world
func (w *World) handlePointerClicked(e event.Event) {
	pointer, ok := e.(*event.PointerEvent)
	if !ok {
		return
	}

	w.entityLock.Lock()
	if w.status == WorldStatusDestroyed || w.Ship == nil {
		w.entityLock.Unlock()
		return
	}

	bullet := w.Ship.FireAt(pointer.Position)
	if bullet == nil {
		// Zero-distance click: nothing to aim the shot along
		w.entityLock.Unlock()
		return
	}
	err := w.addObjectLocked(bullet)
	w.entityLock.Unlock()

	if err != nil {
		w.logger.Error(context.Background(), "failed to register bullet", err)
		return
	}
	w.EventBus.Publish(event.NewObjectEvent(event.BulletFired, w, uint64(bullet.GetID())))
}

// handleSurfaceResized recaptures the bounds and has the ship re-measure its
// own location from layout
func (w *World) handleSurfaceResized(e event.Event) {
	resize, ok := e.(*event.ResizeEvent)
	if !ok {
		return
	}

	w.entityLock.Lock()
	defer w.entityLock.Unlock()

	if w.status == WorldStatusDestroyed {
		return
	}
	w.bounds = resize.Bounds
	if w.Ship != nil {
		w.Ship.SyncPosition()
	}
}

// WorldState is a snapshot of the world for status displays
type WorldState struct {
	Tick        uint64
	ObjectCount int
	Bounds      physics.Rect
	Status      WorldStatus
}

// Snapshot returns a consistent snapshot of the current world state
func (w *World) Snapshot() WorldState {
	w.entityLock.Lock()
	defer w.entityLock.Unlock()

	return WorldState{
		Tick:        w.CurrentTick,
		ObjectCount: len(w.objects),
		Bounds:      w.bounds,
		Status:      w.status,
	}
}

// ObjectCount returns the number of live objects
func (w *World) ObjectCount() int {
	w.entityLock.Lock()
	defer w.entityLock.Unlock()
	return len(w.objects)
}
