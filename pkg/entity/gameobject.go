// pkg/entity/gameobject.go
package entity

import (
	"errors"
	"sync/atomic"

	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// ID is a unique identifier for a game object
type ID uint64

// ErrNoSpriteMaker is returned by AnimatedObject.Initialize when a variant
// never provided a sprite constructor. This is a programming-contract
// violation, not a runtime condition to recover from.
var ErrNoSpriteMaker = errors.New("entity: animated object has no sprite constructor")

// GameObject is the base interface for everything the world updates.
// The variant set is closed: Ship and Bullet.
type GameObject interface {
	GetID() ID
	GetPosition() physics.Vector2D
	// Initialize acquires the object's visual representation.
	Initialize() error
	// Update advances the object by deltaTime seconds. An object may mark
	// itself destroyed during Update; the world prunes it at end of tick.
	Update(deltaTime float64)
	// Destroy flags the object destroyed and releases its visual.
	// Idempotent: destroying twice is a no-op.
	Destroy()
	Destroyed() bool
}

// BoundsProvider reports the currently visible area of the world. The world
// implements it; bullets consult it to cull themselves off-screen.
type BoundsProvider interface {
	VisibleBounds() physics.Rect
}

// BaseObject contains common functionality for all game objects
type BaseObject struct {
	ID        ID
	Position  physics.Vector2D
	destroyed bool
}

// GetID returns the object's unique identifier
func (o *BaseObject) GetID() ID {
	return o.ID
}

// GetPosition returns the object's position
func (o *BaseObject) GetPosition() physics.Vector2D {
	return o.Position
}

// Destroyed reports whether the object has been destroyed
func (o *BaseObject) Destroyed() bool {
	return o.destroyed
}

// Destroy flags the object destroyed. Safe to call more than once.
func (o *BaseObject) Destroy() {
	o.destroyed = true
}

// Initialize is a no-op for objects without a visual representation
func (o *BaseObject) Initialize() error {
	return nil
}

// Update is a no-op for objects that do not move on their own
func (o *BaseObject) Update(deltaTime float64) {}

// SpriteMaker builds the visual element for an animated object variant
type SpriteMaker func(display.Surface) (display.Sprite, error)

// AnimatedObject extends BaseObject with velocity-based position integration
// and a visual element kept centered on that position. Velocity is constant;
// integration is exact explicit Euler: position += velocity * deltaTime.
type AnimatedObject struct {
	BaseObject
	Velocity physics.Vector2D

	surface    display.Surface
	sprite     display.Sprite
	makeSprite SpriteMaker
}

// Initialize creates the sprite and immediately places it so the object is
// positioned before first paint.
func (o *AnimatedObject) Initialize() error {
	if o.makeSprite == nil {
		return ErrNoSpriteMaker
	}
	sprite, err := o.makeSprite(o.surface)
	if err != nil {
		return err
	}
	o.sprite = sprite
	o.Update(0)
	return nil
}

// Update integrates the position and recenters the sprite on it
func (o *AnimatedObject) Update(deltaTime float64) {
	o.Position = o.Position.Add(o.Velocity.Scale(deltaTime))
	if o.sprite != nil {
		o.sprite.MoveTo(o.Position)
	}
}

// Destroy flags the object destroyed and removes its sprite
func (o *AnimatedObject) Destroy() {
	if o.destroyed {
		return
	}
	o.BaseObject.Destroy()
	if o.sprite != nil {
		o.sprite.Remove()
	}
}

// Sprite returns the object's visual element, or nil before Initialize
func (o *AnimatedObject) Sprite() display.Sprite {
	return o.sprite
}

// nextID is the object ID counter
var nextID atomic.Uint64

// GenerateID generates a unique ID for game objects
func GenerateID() ID {
	return ID(nextID.Add(1))
}
