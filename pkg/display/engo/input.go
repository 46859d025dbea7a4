// pkg/display/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-turret/pkg/event"
	"github.com/opd-ai/go-turret/pkg/physics"
)

// Button identifiers registered with Engo's input manager
const (
	buttonEscape = "escape"
)

// inputSystem polls Engo input every frame and publishes pointer, resize and
// key events on the bus
type inputSystem struct {
	surface *Surface

	lastPointer physics.Vector2D
	lastWidth   float32
	lastHeight  float32
}

// newInputSystem registers buttons and returns the system
func newInputSystem(surface *Surface) *inputSystem {
	engo.Input.RegisterButton(buttonEscape, engo.KeyEscape)
	return &inputSystem{
		surface:    surface,
		lastWidth:  engo.WindowWidth(),
		lastHeight: engo.WindowHeight(),
	}
}

// Update implements ecs.System.
func (is *inputSystem) Update(dt float32) {
	is.pollPointer()
	is.pollResize()
	is.pollKeys()
}

// Remove implements ecs.System.
func (is *inputSystem) Remove(basic ecs.BasicEntity) {}

// pollPointer publishes moves when the cursor travels and clicks on the
// press edge of the left button
func (is *inputSystem) pollPointer() {
	mouse := engo.Input.Mouse
	pos := physics.Vector2D{X: float64(mouse.X), Y: float64(mouse.Y)}

	if pos != is.lastPointer {
		is.lastPointer = pos
		is.surface.bus.Publish(event.NewPointerEvent(event.PointerMoved, is.surface, pos))
	}

	if mouse.Action == engo.Press && mouse.Button == engo.MouseButtonLeft {
		is.surface.bus.Publish(event.NewPointerEvent(event.PointerClicked, is.surface, pos))
	}
}

// pollResize publishes a resize event when the window dimensions change
func (is *inputSystem) pollResize() {
	width, height := engo.WindowWidth(), engo.WindowHeight()
	if width == is.lastWidth && height == is.lastHeight {
		return
	}
	is.lastWidth, is.lastHeight = width, height

	bounds := is.surface.resize(float64(width), float64(height))
	is.surface.bus.Publish(event.NewResizeEvent(is.surface, bounds))
}

// pollKeys publishes the keys the controller reacts to
func (is *inputSystem) pollKeys() {
	if engo.Input.Button(buttonEscape).JustPressed() {
		is.surface.bus.Publish(event.NewKeyEvent(is.surface, event.KeyEscape, 0))
	}
}
