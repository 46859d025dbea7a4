// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// Ship is the player's turret. Its position is authoritative from surface
// layout, not simulated: it is re-measured from the sprite's on-screen
// rectangle at initialization and after every resize.
type Ship struct {
	BaseObject

	surface display.Surface
	sprite  display.Sprite
	bounds  BoundsProvider

	// MinBulletSpeed is the launch speed floor in units per second
	MinBulletSpeed float64
	// BulletRadius is the radius given to spawned bullets
	BulletRadius float64
}

// NewShip creates the ship. One instance exists per world.
func NewShip(surface display.Surface, bounds BoundsProvider, minBulletSpeed, bulletRadius float64) *Ship {
	return &Ship{
		BaseObject: BaseObject{
			ID: GenerateID(),
		},
		surface:        surface,
		bounds:         bounds,
		MinBulletSpeed: minBulletSpeed,
		BulletRadius:   bulletRadius,
	}
}

// Initialize acquires the ship's visual element from the surface and measures
// the initial position from its layout.
func (s *Ship) Initialize() error {
	sprite, err := s.surface.ShipSprite()
	if err != nil {
		return err
	}
	s.sprite = sprite
	s.SyncPosition()
	return nil
}

// AimAt rotates the ship's visual to face the target location. Pure visual:
// no state changes besides the sprite rotation.
func (s *Ship) AimAt(target physics.Vector2D) {
	if s.sprite == nil {
		return
	}
	s.sprite.Rotate(physics.AimDegrees(s.Position, target))
}

// FireAt spawns a bullet heading from the ship toward the target. The raw
// velocity is target minus ship position; magnitudes below MinBulletSpeed are
// rescaled up to exactly that magnitude with direction preserved, so clicks
// near the ship still produce a usable shot. A click exactly on the ship's
// position has no direction to preserve and returns nil.
//
// The caller owns registration of the returned bullet with the world.
func (s *Ship) FireAt(target physics.Vector2D) *Bullet {
	velocity := target.Sub(s.Position)
	speed := velocity.Length()
	if speed == 0 {
		return nil
	}
	if speed < s.MinBulletSpeed {
		velocity = velocity.Normalize().Scale(s.MinBulletSpeed)
	}
	return NewBullet(s.surface, s.bounds, s.Position.Clone(), velocity, s.BulletRadius)
}

// SyncPosition re-measures the ship's position from its sprite's current
// screen rectangle. Called at initialization and on resize.
func (s *Ship) SyncPosition() {
	if s.sprite == nil {
		return
	}
	s.Position = s.sprite.Rect().Center
}

// Destroy flags the ship destroyed and releases its visual
func (s *Ship) Destroy() {
	if s.destroyed {
		return
	}
	s.BaseObject.Destroy()
	if s.sprite != nil {
		s.sprite.Remove()
	}
}
