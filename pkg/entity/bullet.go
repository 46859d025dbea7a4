// pkg/entity/bullet.go
package entity

import (
	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// Bullet is a projectile with a velocity fixed at spawn. It destroys itself
// the first tick its visual rectangle lies fully outside the visible bounds.
type Bullet struct {
	AnimatedObject

	// Radius of the bullet's circular visual
	Radius float64

	bounds BoundsProvider
}

// NewBullet creates a bullet at the given position with the given velocity
func NewBullet(surface display.Surface, bounds BoundsProvider, position, velocity physics.Vector2D, radius float64) *Bullet {
	b := &Bullet{
		AnimatedObject: AnimatedObject{
			BaseObject: BaseObject{
				ID:       GenerateID(),
				Position: position,
			},
			Velocity: velocity,
			surface:  surface,
		},
		Radius: radius,
		bounds: bounds,
	}
	b.makeSprite = func(s display.Surface) (display.Sprite, error) {
		return s.CreateBulletSprite(b.Radius)
	}
	return b
}

// Update integrates the position, then culls the bullet if its visual
// rectangle left the visible bounds on any side. Single-pass: once flagged,
// the world removes it at the end of the same tick.
func (b *Bullet) Update(deltaTime float64) {
	b.AnimatedObject.Update(deltaTime)

	if b.destroyed || b.sprite == nil || b.bounds == nil {
		return
	}
	if !b.sprite.Rect().Intersects(b.bounds.VisibleBounds()) {
		b.Destroy()
	}
}
