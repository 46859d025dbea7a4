// Package display abstracts the host environment the game runs in: a tree of
// positionable visual elements, a queryable surface geometry, and an input
// source. Backends (tcell terminal, engo GUI, headless) implement Surface and
// push input onto the event bus; the engine only ever talks to these
// interfaces, so it can run against a fake surface in tests.
package display

import (
	"errors"

	"github.com/opd-ai/go-turret/pkg/physics"
)

// ErrSurfaceClosed is returned by sprite constructors after Close.
var ErrSurfaceClosed = errors.New("display: surface closed")

// Sprite is a visual element bound to a game object. Coordinates are surface
// coordinates; MoveTo positions the sprite so its center sits on the given
// point.
type Sprite interface {
	MoveTo(center physics.Vector2D)
	Rotate(degrees float64)
	Rect() physics.Rect
	Remove()
}

// Surface is the host environment's drawing area. Input events (pointer
// moves, clicks, resizes, key presses) are published by the backend on the
// event bus supplied at construction, never polled through this interface.
type Surface interface {
	// ShipSprite acquires the ship's visual element. The ship element is
	// owned by the surface; calling Remove on it hides it rather than
	// destroying it.
	ShipSprite() (Sprite, error)

	// CreateBulletSprite creates a filled circular element of the given
	// radius, initially off-screen until MoveTo is called.
	CreateBulletSprite(radius float64) (Sprite, error)

	// Bounds returns the full scrollable area of the surface.
	Bounds() physics.Rect

	// ScrollOffset returns the current scroll position of the viewport
	// within Bounds. Backends without scrolling return the zero vector.
	ScrollOffset() physics.Vector2D

	// Close releases the surface and stops input delivery.
	Close() error
}
