// pkg/display/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// gameScene is the single Engo scene: a render system for the sprites, a
// sync system feeding sprite geometry into it, and an input system feeding
// the event bus.
type gameScene struct {
	surface *Surface
}

// Type implements engo.Scene.
func (sc *gameScene) Type() string {
	return "turretScene"
}

// Preload implements engo.Scene. All drawables are generated shapes, so there
// is nothing to load.
func (sc *gameScene) Preload() {}

// Setup implements engo.Scene.
func (sc *gameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	world.AddSystem(&syncSystem{surface: sc.surface})
	world.AddSystem(newInputSystem(sc.surface))

	sc.surface.setup(renderSystem)
}

// syncSystem copies sprite geometry into render components each frame
type syncSystem struct {
	surface *Surface
}

// Update implements ecs.System.
func (ss *syncSystem) Update(dt float32) {
	ss.surface.sync()
}

// Remove implements ecs.System.
func (ss *syncSystem) Remove(basic ecs.BasicEntity) {}
