// Package app wires the window, input, camera, scene and renderer into the
// viewer's frame loop.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hangar/internal/config"
	"github.com/Faultbox/hangar/internal/engine/audio"
	"github.com/Faultbox/hangar/internal/engine/camera"
	"github.com/Faultbox/hangar/internal/engine/input"
	"github.com/Faultbox/hangar/internal/engine/renderer"
	"github.com/Faultbox/hangar/internal/engine/screenshot"
	"github.com/Faultbox/hangar/internal/engine/window"
)

// App is the viewer instance.
type App struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	controller *Controller
	audio      *audio.Engine
	shots      *screenshot.Capture
	wantShot   bool

	reloads   <-chan *config.Config
	stopWatch context.CancelFunc
}

// New opens the window and builds everything the frame loop needs.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("segments", cfg.Model.Segments),
	)

	a := &App{
		config: cfg,
		log:    log,
		input:  input.New(),
	}

	var err error
	a.shots, err = screenshot.New(cfg.Screenshot.Dir, "hangar", cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	// Window first, it owns the GL context
	a.window, err = window.New(Window(cfg.Window), log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, log.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.controller, err = NewController(cfg, width, height, log)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, err
	}

	a.audio = audio.New(cfg.Audio.Volume, cfg.Audio.Pitch)
	if cfg.Audio.Enabled {
		// A missing sound device should not stop the viewer
		if err := a.audio.Init(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		}
	}

	if path := config.Resolve(); path != "" {
		a.watch(path)
	}

	log.Info("viewer initialized")
	return a, nil
}

// Run drives frames until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			a.dispatch(event)
		}
		if !a.running {
			break
		}

		a.reload()

		frame, err := a.controller.Tick()
		if err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		a.audio.SetRunning(a.controller.Camera().Held(camera.KeyFly))

		if err := a.renderer.Draw(a.controller.State(), frame); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if a.wantShot {
			a.wantShot = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.renderer.Stats()
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Int("draw_calls", stats.DrawCalls),
				zap.Int("vertices", stats.Vertices),
				zap.Float32("wing_roll", a.controller.Flap().Degrees()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) dispatch(event input.Event) {
	switch a.controller.Handle(event) {
	case CommandQuit:
		a.running = false

	case CommandResize:
		// Event sizes are in screen coordinates; the viewport wants pixels
		a.renderer.Resize(a.window.DrawableSize())

	case CommandScreenshot:
		// Read back after the next draw, before the swap
		a.wantShot = true
	}
}

// watch follows the config file; edits apply on the next frame.
func (a *App) watch(path string) {
	ctx, cancel := context.WithCancel(context.Background())
	reloads, err := config.Watch(ctx, path, a.log.Named("config"))
	if err != nil {
		cancel()
		a.log.Warn("config reload disabled", zap.Error(err))
		return
	}
	a.reloads = reloads
	a.stopWatch = cancel
}

func (a *App) reload() {
	select {
	case cfg, ok := <-a.reloads:
		if !ok {
			a.reloads = nil
			return
		}
		if err := a.controller.Reload(cfg); err != nil {
			a.log.Warn("config reload rejected", zap.Error(err))
			return
		}
		a.audio.SetVolume(cfg.Audio.Volume)
		a.config = cfg
	default:
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU and window resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
