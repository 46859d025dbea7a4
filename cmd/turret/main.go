// cmd/turret/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-turret/pkg/audio"
	"github.com/opd-ai/go-turret/pkg/config"
	"github.com/opd-ai/go-turret/pkg/display"
	engodisplay "github.com/opd-ai/go-turret/pkg/display/engo"
	tcelldisplay "github.com/opd-ai/go-turret/pkg/display/tcell"
	"github.com/opd-ai/go-turret/pkg/event"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	backend := flag.String("display", "", "Display backend: 'tcell', 'engo' or 'headless' (overrides config)")
	width := flag.Int("width", 0, "Window width (engo only, overrides config)")
	height := flag.Int("height", 0, "Window height (engo only, overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	flag.Parse()

	gameConfig := loadConfiguration(*configPath)
	applyFlagOverrides(gameConfig, *backend, *width, *height, *fullscreen)

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid environment configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := event.NewEventBus()

	audioEngine := audio.NewEngine(gameConfig, envConfig)
	audioEngine.Attach(bus)
	defer audioEngine.Close()

	switch gameConfig.Display.Backend {
	case "engo":
		runEngo(ctx, cancel, gameConfig, bus)
	case "headless":
		runHeadless(ctx, cancel, gameConfig, bus)
	case "tcell":
		fallthrough
	default:
		runTcell(ctx, cancel, gameConfig, bus)
	}
}

// loadConfiguration loads the config file, falling back to defaults when it
// does not exist, and applies environment overrides.
func loadConfiguration(path string) *config.GameConfig {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		gameConfig = config.DefaultConfig()
	} else {
		var err error
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		log.Fatalf("Failed to apply environment overrides: %v", err)
	}
	return gameConfig
}

// applyFlagOverrides lets command-line flags win over file and environment
func applyFlagOverrides(gameConfig *config.GameConfig, backend string, width, height int, fullscreen bool) {
	if backend != "" {
		gameConfig.Display.Backend = backend
	}
	if width > 0 {
		gameConfig.Display.Width = width
	}
	if height > 0 {
		gameConfig.Display.Height = height
	}
	if fullscreen {
		gameConfig.Display.Fullscreen = true
	}
}

// runTcell drives the terminal backend; its loop runs on this goroutine
func runTcell(ctx context.Context, cancel context.CancelFunc, gameConfig *config.GameConfig, bus *event.Bus) {
	surface, err := tcelldisplay.NewSurface(bus)
	if err != nil {
		log.Fatalf("Failed to initialize terminal display: %v", err)
	}
	defer surface.Close()

	a := newApp(gameConfig, bus, surface, cancel)
	defer a.shutdown()
	surface.SetStatusFunc(a.status)

	if err := surface.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Display loop exited: %v", err)
	}
}

// runEngo drives the GUI backend. Engo insists on the main goroutine, so the
// signal watcher runs on the side and closes the surface to unblock Run.
func runEngo(ctx context.Context, cancel context.CancelFunc, gameConfig *config.GameConfig, bus *event.Bus) {
	surface := engodisplay.NewSurface(
		bus,
		"go-turret",
		gameConfig.Display.Width,
		gameConfig.Display.Height,
		gameConfig.Display.Fullscreen,
	)

	a := newApp(gameConfig, bus, surface, cancel)
	defer a.shutdown()

	go func() {
		<-ctx.Done()
		surface.Close()
	}()

	surface.Run()
}

// runHeadless keeps a headless surface alive until interrupted; input only
// arrives programmatically, which makes this mode useful for smoke testing
// the full wiring without a terminal or GPU.
func runHeadless(ctx context.Context, cancel context.CancelFunc, gameConfig *config.GameConfig, bus *event.Bus) {
	surface := display.NewHeadlessSurface(
		bus,
		float64(gameConfig.Display.Width),
		float64(gameConfig.Display.Height),
	)
	defer surface.Close()

	a := newApp(gameConfig, bus, surface, cancel)
	defer a.shutdown()

	<-ctx.Done()
}
