package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hangar/internal/config"
	"github.com/Faultbox/hangar/internal/engine/camera"
	"github.com/Faultbox/hangar/internal/engine/debug"
	"github.com/Faultbox/hangar/internal/engine/input"
	"github.com/Faultbox/hangar/internal/engine/renderer"
	"github.com/Faultbox/hangar/internal/engine/scene"
)

// Command is what the frame loop must do after an event.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandResize
	CommandScreenshot
)

// Controller owns the viewer state that does not touch the GPU: the camera,
// the scene and the render state. The frame loop feeds it events and draws
// the frames it produces.
type Controller struct {
	log      *zap.Logger
	camera   *camera.Camera
	scene    *scene.Scene
	flap     *scene.WingFlap
	flapStep float32
	bindings input.Bindings
	state    renderer.State
	bounds   bool
}

const boundsPadding = 0.05

// NewController builds the camera and scene for a surface of the given size.
func NewController(cfg *config.Config, width, height int, log *zap.Logger) (*Controller, error) {
	cam, err := camera.New(CameraConfig(cfg.Camera, width, height))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	sc, err := scene.New(Model(cfg.Model), log.Named("scene"))
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Controller{
		log:      log,
		camera:   cam,
		scene:    sc,
		flap:     scene.NewWingFlap(cfg.Model.WingRollMax),
		flapStep: cfg.Camera.RotateSpeed,
		bindings: input.DefaultBindings(),
		state:    State(cfg),
	}, nil
}

// Reload swaps in a new model, light and camera speeds. The camera keeps its
// place and the debug toggles stay as they are. Nothing changes on error.
func (c *Controller) Reload(cfg *config.Config) error {
	sc := c.scene
	if model := Model(cfg.Model); model != sc.Model() {
		var err error
		if sc, err = scene.New(model, c.log.Named("scene")); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}

	rotate, fly := cfg.Camera.RotateSpeed, cfg.Camera.FlySpeed
	if err := c.camera.SetSpeeds(rotate, fly); err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	state := State(cfg)
	state.Wireframe = c.state.Wireframe

	c.scene = sc
	c.flap = scene.NewWingFlap(cfg.Model.WingRollMax)
	c.flapStep = cfg.Camera.RotateSpeed
	c.state = state
	return nil
}

// Camera returns the fly camera.
func (c *Controller) Camera() *camera.Camera { return c.camera }

// Flap returns the wing roll animation.
func (c *Controller) Flap() *scene.WingFlap { return c.flap }

// State returns the render state for the next frame.
func (c *Controller) State() renderer.State { return c.state }

// Handle applies one input event.
func (c *Controller) Handle(e input.Event) Command {
	if key, action, ok := c.bindings.Camera(e); ok {
		c.camera.OnKeyEvent(key, action)
		return CommandNone
	}

	switch e.Type {
	case input.EventQuit:
		return CommandQuit

	case input.EventWindowResize:
		// Minimized windows report 0x0; keep the last projection
		if err := c.camera.OnResize(e.Width, e.Height); err != nil {
			c.log.Debug("resize ignored", zap.Int("width", e.Width), zap.Int("height", e.Height), zap.Error(err))
			return CommandNone
		}
		return CommandResize

	case input.EventKeyDown:
		if e.Repeat {
			return CommandNone
		}
		switch e.Key {
		case sdl.SCANCODE_ESCAPE:
			return CommandQuit
		case sdl.SCANCODE_F1:
			c.state.Wireframe = !c.state.Wireframe
			c.log.Debug("wireframe toggled", zap.Bool("enabled", c.state.Wireframe))
		case sdl.SCANCODE_F2:
			c.bounds = !c.bounds
			c.log.Debug("part bounds toggled", zap.Bool("enabled", c.bounds))
		case sdl.SCANCODE_F12:
			return CommandScreenshot
		}
	}
	return CommandNone
}

// Tick advances one step and assembles the frame to draw.
func (c *Controller) Tick() (renderer.Frame, error) {
	c.camera.Update()
	if c.camera.Held(camera.KeyFly) {
		c.flap.Advance(c.flapStep)
	}

	batches, err := c.scene.Assemble(c.flap.Pose())
	if err != nil {
		return renderer.Frame{}, fmt.Errorf("assemble: %w", err)
	}
	if c.bounds {
		batches = append(batches, debug.Bounds(batches, boundsPadding)...)
	}

	return renderer.Frame{
		View:       c.camera.ViewMatrix(),
		Projection: c.camera.ProjectionMatrix(),
		Eye:        c.camera.Position(),
		Batches:    batches,
	}, nil
}
