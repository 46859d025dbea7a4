// Package engo implements display.Surface with the Engo game engine. Sprites
// are ECS entities in Engo's render system; an input system translates mouse,
// key and window events onto the event bus every frame. Engo owns the process
// main loop, so Run must be called from the main goroutine.
package engo

import (
	"image/color"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// shipSize is the edge length of the ship's triangle drawable in pixels
const shipSize = 32.0

// Surface implements display.Surface on an Engo window
type Surface struct {
	bus    *event.Bus
	logger *logging.Logger

	title      string
	width      int
	height     int
	fullscreen bool

	mu      sync.Mutex
	ship    *Sprite
	sprites []*Sprite
	bounds  physics.Rect
	closed  bool
	ready   bool

	renderSystem *common.RenderSystem
}

// NewSurface creates an Engo-backed surface. The window does not open until
// Run.
func NewSurface(bus *event.Bus, title string, width, height int, fullscreen bool) *Surface {
	s := &Surface{
		bus:        bus,
		logger:     logging.NewLogger(),
		title:      title,
		width:      width,
		height:     height,
		fullscreen: fullscreen,
		bounds:     physics.RectFromEdges(0, 0, float64(width), float64(height)),
	}
	s.ship = &Sprite{
		surface: s,
		shape:   common.Triangle{},
		color:   color.RGBA{0, 255, 0, 255},
		rect: physics.Rect{
			Center: s.bounds.Center,
			Width:  shipSize,
			Height: shipSize,
		},
	}
	return s
}

// Run opens the window and blocks inside Engo's main loop until Close or
// window close. Must run on the main goroutine: Engo requires the OS thread
// that started the process for its GL context.
func (s *Surface) Run() {
	opts := engo.RunOptions{
		Title:      s.title,
		Width:      s.width,
		Height:     s.height,
		Fullscreen: s.fullscreen,
		VSync:      true,
	}
	engo.Run(opts, &gameScene{surface: s})
}

// ShipSprite implements display.Surface.
func (s *Surface) ShipSprite() (display.Sprite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, display.ErrSurfaceClosed
	}
	s.ship.removed = false
	return s.ship, nil
}

// CreateBulletSprite implements display.Surface.
func (s *Surface) CreateBulletSprite(radius float64) (display.Sprite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, display.ErrSurfaceClosed
	}
	sprite := &Sprite{
		surface: s,
		shape:   common.Circle{},
		color:   color.RGBA{255, 255, 0, 255},
		rect: physics.Rect{
			Width:  radius * 2,
			Height: radius * 2,
		},
	}
	s.sprites = append(s.sprites, sprite)
	if s.ready {
		s.addToRenderSystem(sprite)
	}
	return sprite, nil
}

// Bounds implements display.Surface.
func (s *Surface) Bounds() physics.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// ScrollOffset implements display.Surface. The Engo window does not scroll.
func (s *Surface) ScrollOffset() physics.Vector2D {
	return physics.Vector2D{}
}

// Close implements display.Surface.
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sprites = nil
	s.mu.Unlock()

	engo.Exit()
	return nil
}

// setup is called from the scene once the ECS world exists. Sprites created
// before the window opened are flushed into the render system here.
func (s *Surface) setup(renderSystem *common.RenderSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderSystem = renderSystem
	s.ready = true

	s.addToRenderSystem(s.ship)
	for _, sprite := range s.sprites {
		s.addToRenderSystem(sprite)
	}
}

// addToRenderSystem creates the ECS entity for a sprite; caller holds mu.
func (s *Surface) addToRenderSystem(sprite *Sprite) {
	basic := ecs.NewBasic()
	sprite.basic = &basic
	sprite.render = &common.RenderComponent{
		Drawable: sprite.shape,
		Color:    sprite.color,
	}
	sprite.space = &common.SpaceComponent{
		Position: engo.Point{
			X: float32(sprite.rect.Left()),
			Y: float32(sprite.rect.Top()),
		},
		Width:  float32(sprite.rect.Width),
		Height: float32(sprite.rect.Height),
	}
	s.renderSystem.Add(&basic, sprite.render, sprite.space)
}

// sync copies sprite geometry into the ECS components; called once per frame
// from the scene's sync system.
func (s *Surface) sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	live := s.sprites[:0]
	for _, sprite := range s.sprites {
		if sprite.removed {
			if sprite.basic != nil {
				s.renderSystem.Remove(*sprite.basic)
				sprite.basic = nil
			}
			continue
		}
		live = append(live, sprite)
		sprite.syncComponents()
	}
	s.sprites = live
	s.ship.syncComponents()
}

// resize records a window size change; caller publishes the bus event.
func (s *Surface) resize(width, height float64) physics.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = physics.RectFromEdges(0, 0, width, height)
	return s.bounds
}

// Sprite is an ECS-backed visual element
type Sprite struct {
	surface *Surface
	shape   common.Drawable
	color   color.RGBA

	rect     physics.Rect
	rotation float64
	removed  bool

	basic  *ecs.BasicEntity
	render *common.RenderComponent
	space  *common.SpaceComponent
}

// MoveTo implements display.Sprite.
func (sp *Sprite) MoveTo(center physics.Vector2D) {
	sp.surface.mu.Lock()
	sp.rect.Center = center
	sp.surface.mu.Unlock()
}

// Rotate implements display.Sprite.
func (sp *Sprite) Rotate(degrees float64) {
	sp.surface.mu.Lock()
	sp.rotation = degrees
	sp.surface.mu.Unlock()
}

// Rect implements display.Sprite.
func (sp *Sprite) Rect() physics.Rect {
	sp.surface.mu.Lock()
	defer sp.surface.mu.Unlock()
	return sp.rect
}

// Remove implements display.Sprite.
func (sp *Sprite) Remove() {
	sp.surface.mu.Lock()
	sp.removed = true
	sp.surface.mu.Unlock()
}

// syncComponents pushes geometry into the space component; caller holds the
// surface lock.
func (sp *Sprite) syncComponents() {
	if sp.space == nil || sp.removed {
		return
	}
	sp.space.Position = engo.Point{
		X: float32(sp.rect.Left()),
		Y: float32(sp.rect.Top()),
	}
	sp.space.Width = float32(sp.rect.Width)
	sp.space.Height = float32(sp.rect.Height)
	sp.space.Rotation = float32(sp.rotation)
}
