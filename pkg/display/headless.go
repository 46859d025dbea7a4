// pkg/display/headless.go
package display

import (
	"context"
	"sync"

	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// defaultShipSize is the edge length of the headless ship sprite.
const defaultShipSize = 48.0

// HeadlessSurface implements Surface with purely in-memory geometry. It backs
// the engine tests and the headless demo: sprites track their own rectangles,
// and input is injected through MovePointer/Click/Resize/PressKey, which
// publish the same bus events a real backend would.
type HeadlessSurface struct {
	bus    *event.Bus
	logger *logging.Logger

	mu      sync.Mutex
	bounds  physics.Rect
	scroll  physics.Vector2D
	sprites []*HeadlessSprite
	ship    *HeadlessSprite
	closed  bool
}

// NewHeadlessSurface creates a headless surface with the given bounds. The
// ship sprite starts centered in the bounds.
func NewHeadlessSurface(bus *event.Bus, width, height float64) *HeadlessSurface {
	s := &HeadlessSurface{
		bus:    bus,
		logger: logging.NewLogger(),
		bounds: physics.RectFromEdges(0, 0, width, height),
	}
	s.ship = &HeadlessSprite{
		surface: s,
		rect: physics.Rect{
			Center: s.bounds.Center,
			Width:  defaultShipSize,
			Height: defaultShipSize,
		},
	}
	return s
}

// ShipSprite implements Surface.
func (s *HeadlessSurface) ShipSprite() (Sprite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSurfaceClosed
	}
	return s.ship, nil
}

// CreateBulletSprite implements Surface.
func (s *HeadlessSurface) CreateBulletSprite(radius float64) (Sprite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSurfaceClosed
	}
	sprite := &HeadlessSprite{
		surface: s,
		rect: physics.Rect{
			Width:  radius * 2,
			Height: radius * 2,
		},
	}
	s.sprites = append(s.sprites, sprite)
	return sprite, nil
}

// Bounds implements Surface.
func (s *HeadlessSurface) Bounds() physics.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// ScrollOffset implements Surface.
func (s *HeadlessSurface) ScrollOffset() physics.Vector2D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll
}

// Close implements Surface.
func (s *HeadlessSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sprites = nil
	return nil
}

// SpriteCount returns the number of live bullet sprites; the engine tests use
// it to verify that destroyed objects release their visuals.
func (s *HeadlessSurface) SpriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sp := range s.sprites {
		if !sp.removed {
			n++
		}
	}
	return n
}

// SetScroll moves the viewport scroll position.
func (s *HeadlessSurface) SetScroll(offset physics.Vector2D) {
	s.mu.Lock()
	s.scroll = offset
	s.mu.Unlock()
}

// MovePointer injects a pointer-move event at the given surface location.
func (s *HeadlessSurface) MovePointer(pos physics.Vector2D) {
	s.bus.Publish(event.NewPointerEvent(event.PointerMoved, s, pos))
}

// Click injects a pointer-click event at the given surface location.
func (s *HeadlessSurface) Click(pos physics.Vector2D) {
	s.bus.Publish(event.NewPointerEvent(event.PointerClicked, s, pos))
}

// Resize grows or shrinks the surface and publishes the resize event.
func (s *HeadlessSurface) Resize(width, height float64) {
	s.mu.Lock()
	s.bounds = physics.RectFromEdges(0, 0, width, height)
	bounds := s.bounds
	s.mu.Unlock()

	s.logger.Debug(context.Background(), "headless surface resized",
		"width", width,
		"height", height,
	)
	s.bus.Publish(event.NewResizeEvent(s, bounds))
}

// PressKey injects a key-press event.
func (s *HeadlessSurface) PressKey(key event.Key, r rune) {
	s.bus.Publish(event.NewKeyEvent(s, key, r))
}

// HeadlessSprite tracks position, rotation and removal in memory.
type HeadlessSprite struct {
	surface  *HeadlessSurface
	rect     physics.Rect
	rotation float64
	removed  bool
}

// MoveTo implements Sprite.
func (sp *HeadlessSprite) MoveTo(center physics.Vector2D) {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	sp.rect.Center = center
}

// Rotate implements Sprite.
func (sp *HeadlessSprite) Rotate(degrees float64) {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	sp.rotation = degrees
}

// Rect implements Sprite.
func (sp *HeadlessSprite) Rect() physics.Rect {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	return sp.rect
}

// Remove implements Sprite.
func (sp *HeadlessSprite) Remove() {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	sp.removed = true
}

// Rotation returns the last rotation applied, in degrees.
func (sp *HeadlessSprite) Rotation() float64 {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	return sp.rotation
}

// Removed reports whether Remove has been called.
func (sp *HeadlessSprite) Removed() bool {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	return sp.removed
}
