// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-turret/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	// Input events published by display backends
	PointerMoved   Type = "pointer_moved"
	PointerClicked Type = "pointer_clicked"
	SurfaceResized Type = "surface_resized"
	KeyPressed     Type = "key_pressed"

	// Domain events published by the engine
	WorldStarted    Type = "world_started"
	WorldStopped    Type = "world_stopped"
	BulletFired     Type = "bullet_fired"
	ObjectDestroyed Type = "object_destroyed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed later
type SubscriptionID uint64

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[SubscriptionID]Handler
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[SubscriptionID]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns an ID
// that can be passed to Unsubscribe.
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[SubscriptionID]Handler)
	}
	b.handlers[eventType][id] = handler
	return id
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[eventType]; ok {
		delete(handlers, id)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registered := b.handlers[event.GetType()]
	handlers := make([]Handler, 0, len(registered))
	for _, h := range registered {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// PointerEvent carries the screen location of a pointer move or click
type PointerEvent struct {
	BaseEvent
	Position physics.Vector2D
}

// NewPointerEvent creates a new pointer event
func NewPointerEvent(eventType Type, source interface{}, position physics.Vector2D) *PointerEvent {
	return &PointerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Position: position,
	}
}

// ResizeEvent carries the new surface bounds after a resize
type ResizeEvent struct {
	BaseEvent
	Bounds physics.Rect
}

// NewResizeEvent creates a new resize event
func NewResizeEvent(source interface{}, bounds physics.Rect) *ResizeEvent {
	return &ResizeEvent{
		BaseEvent: BaseEvent{
			EventType: SurfaceResized,
			Source:    source,
		},
		Bounds: bounds,
	}
}

// Key identifies a pressed key in a backend-independent way
type Key int

// Keys the engine and controller react to
const (
	KeyRune Key = iota
	KeyEscape
	KeyInterrupt
)

// KeyEvent carries a key press. Rune is only meaningful for KeyRune.
type KeyEvent struct {
	BaseEvent
	Key  Key
	Rune rune
}

// NewKeyEvent creates a new key event
func NewKeyEvent(source interface{}, key Key, r rune) *KeyEvent {
	return &KeyEvent{
		BaseEvent: BaseEvent{
			EventType: KeyPressed,
			Source:    source,
		},
		Key:  key,
		Rune: r,
	}
}

// ObjectEvent contains information about object lifecycle events
type ObjectEvent struct {
	BaseEvent
	ObjectID uint64
}

// NewObjectEvent creates a new object event
func NewObjectEvent(eventType Type, source interface{}, objectID uint64) *ObjectEvent {
	return &ObjectEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ObjectID: objectID,
	}
}
