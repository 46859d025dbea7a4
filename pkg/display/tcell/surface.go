// Package tcell implements display.Surface on a terminal via tcell. One
// world unit is one terminal cell. The ship is an arrow glyph snapped to the
// nearest of eight headings; bullets are single bullet glyphs. Mouse motion,
// clicks, resizes and key presses are translated onto the event bus.
package tcell

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-turret/pkg/display"
	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/logging"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// frameInterval paces the draw loop; input is handled as it arrives.
const frameInterval = time.Second / 30

// headingGlyphs are the eight ship headings, clockwise from up.
var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Surface implements display.Surface on a tcell screen
type Surface struct {
	bus    *event.Bus
	logger *logging.Logger
	screen tcell.Screen

	mu       sync.Mutex
	ship     *Sprite
	sprites  []*Sprite
	bounds   physics.Rect
	status   func() string
	closed   bool
	lastBtns tcell.ButtonMask

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSurface initializes the terminal and returns a surface publishing input
// to the given bus. Call Run to start the input and draw loops.
func NewSurface(bus *event.Bus) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, logging.WrapError(err, "failed to create terminal screen")
	}
	return newSurface(bus, screen)
}

// newSurface wires a surface onto an existing screen; tests pass a
// simulation screen here.
func newSurface(bus *event.Bus, screen tcell.Screen) (*Surface, error) {
	if err := screen.Init(); err != nil {
		return nil, logging.WrapError(err, "failed to initialize terminal screen")
	}
	screen.EnableMouse()
	screen.HideCursor()

	width, height := screen.Size()
	s := &Surface{
		bus:    bus,
		logger: logging.NewLogger(),
		screen: screen,
		bounds: physics.RectFromEdges(0, 0, float64(width), float64(height)),
		stopCh: make(chan struct{}),
	}
	s.ship = &Sprite{
		surface: s,
		glyph:   headingGlyphs[0],
		rect: physics.Rect{
			Center: s.bounds.Center,
			Width:  1,
			Height: 1,
		},
	}
	return s, nil
}

// SetStatusFunc installs a provider for the status line drawn at the bottom
// of the screen.
func (s *Surface) SetStatusFunc(status func() string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
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
		glyph:   '•',
		rect: physics.Rect{
			Width:  math.Max(1, radius*2),
			Height: math.Max(1, radius*2),
		},
	}
	s.sprites = append(s.sprites, sprite)
	return sprite, nil
}

// Bounds implements display.Surface.
func (s *Surface) Bounds() physics.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// ScrollOffset implements display.Surface. Terminals do not scroll the game
// area.
func (s *Surface) ScrollOffset() physics.Vector2D {
	return physics.Vector2D{}
}

// Close implements display.Surface.
func (s *Surface) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sprites = nil
	s.mu.Unlock()

	s.screen.Fini()
	return nil
}

// Run drives the input poll loop and the draw loop until the context is
// canceled or the surface is closed. It blocks the calling goroutine.
func (s *Surface) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-s.stopCh:
				return
			}
		}
	}()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(ev)
		case <-frames.C:
			s.draw()
		}
	}
}

// handleEvent translates one tcell event into bus events
func (s *Surface) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventResize:
		width, height := ev.Size()
		s.mu.Lock()
		s.bounds = physics.RectFromEdges(0, 0, float64(width), float64(height))
		bounds := s.bounds
		s.mu.Unlock()
		s.screen.Sync()
		s.bus.Publish(event.NewResizeEvent(s, bounds))
	case *tcell.EventKey:
		s.handleKey(ev)
	}
}

// handleMouse publishes pointer moves, and clicks on the primary button's
// press edge
func (s *Surface) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := physics.Vector2D{X: float64(x), Y: float64(y)}

	s.mu.Lock()
	pressed := ev.Buttons()&tcell.ButtonPrimary != 0 &&
		s.lastBtns&tcell.ButtonPrimary == 0
	s.lastBtns = ev.Buttons()
	s.mu.Unlock()

	s.bus.Publish(event.NewPointerEvent(event.PointerMoved, s, pos))
	if pressed {
		s.bus.Publish(event.NewPointerEvent(event.PointerClicked, s, pos))
	}
}

// handleKey publishes key presses in backend-independent form
func (s *Surface) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.bus.Publish(event.NewKeyEvent(s, event.KeyEscape, 0))
	case tcell.KeyCtrlC:
		s.bus.Publish(event.NewKeyEvent(s, event.KeyInterrupt, 0))
	case tcell.KeyRune:
		s.bus.Publish(event.NewKeyEvent(s, event.KeyRune, ev.Rune()))
	}
}

// draw renders all live sprites and the status line
func (s *Surface) draw() {
	s.mu.Lock()
	statusFn := s.status
	s.mu.Unlock()

	// Render the status text before taking the surface lock. The provider
	// reads engine state under the world lock, and the tick loop moves
	// sprites (taking the surface lock) while holding that same world lock;
	// calling out with s.mu held would invert the lock order.
	var line string
	if statusFn != nil {
		line = statusFn()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.screen.Clear()

	if !s.ship.removed {
		x, y := int(s.ship.rect.Center.X), int(s.ship.rect.Center.Y)
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		s.screen.SetContent(x, y, s.ship.glyphForRotation(), nil, style)
	}

	live := s.sprites[:0]
	for _, sprite := range s.sprites {
		if sprite.removed {
			continue
		}
		live = append(live, sprite)
		x, y := int(sprite.rect.Center.X), int(sprite.rect.Center.Y)
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		s.screen.SetContent(x, y, sprite.glyph, nil, style)
	}
	s.sprites = live

	if line != "" {
		_, height := s.screen.Size()
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		col := 0
		for _, r := range line {
			s.screen.SetContent(col, height-1, r, nil, style)
			col++
		}
	}
	s.mu.Unlock()

	s.screen.Show()
}

// Sprite is a single-glyph visual element on the terminal
type Sprite struct {
	surface  *Surface
	glyph    rune
	rect     physics.Rect
	rotation float64
	removed  bool
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

// glyphForRotation snaps the rotation to the nearest of the eight headings.
// Caller holds the surface lock.
func (sp *Sprite) glyphForRotation() rune {
	octant := int(math.Round(sp.rotation/45)) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// String aids debugging in logs
func (sp *Sprite) String() string {
	return fmt.Sprintf("sprite(%c @ %.0f,%.0f)", sp.glyph, sp.rect.Center.X, sp.rect.Center.Y)
}
