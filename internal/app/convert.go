package app

import (
	"github.com/Faultbox/hangar/internal/config"
	"github.com/Faultbox/hangar/internal/engine/camera"
	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/internal/engine/lighting"
	"github.com/Faultbox/hangar/internal/engine/renderer"
	"github.com/Faultbox/hangar/internal/engine/scene"
	"github.com/Faultbox/hangar/internal/engine/window"
	"github.com/Faultbox/hangar/pkg/math"
)

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// aspect returns width/height, falling back to 1 for an empty surface.
func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// CameraConfig converts config settings into a camera for a surface size.
func CameraConfig(c config.CameraConfig, width, height int) camera.Config {
	return camera.Config{
		Position:    vec3(c.Position),
		Target:      vec3(c.Target),
		FOV:         math.Radians(c.FOVDegrees),
		Aspect:      aspect(width, height),
		Near:        c.Near,
		Far:         c.Far,
		RotateSpeed: c.RotateSpeed,
		FlySpeed:    c.FlySpeed,
	}
}

// Model converts config dimensions into the airplane model.
func Model(m config.ModelConfig) scene.Model {
	model := scene.DefaultModel()
	model.Body = geometry.Cylinder{Radius: m.BodyRadius, Height: m.BodyLength, Segments: m.Segments}
	model.BodyCenter = math.Vec3{Y: m.HoverHeight}
	model.Wing = geometry.Cuboid{Length: m.WingLength, Width: m.WingWidth, Height: m.WingHeight}
	model.WingOffset = m.WingOffset
	model.Tail = geometry.Tail{BaseEdge: m.TailBaseEdge, Height1: m.TailHeight1, Height2: m.TailHeight2}
	model.TailOffset = m.TailOffset
	model.ShowBoard = m.ShowBoard
	model.Board = geometry.Board{Width: m.BoardSize, Depth: m.BoardSize}
	model.BoardScale = math.Vec3{X: m.BoardScale, Y: 1, Z: m.BoardScale}
	return model
}

// Light converts config light settings.
func Light(l config.LightConfig) lighting.PointLight {
	return lighting.PointLight{
		Position:  vec3(l.Position),
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
		Shininess: l.Shininess,
	}
}

// Window converts config window settings.
func Window(w config.WindowConfig) window.Config {
	return window.Config{
		Title:         w.Title,
		Width:         w.Width,
		Height:        w.Height,
		Fullscreen:    w.Fullscreen,
		VSync:         w.VSync,
		CaptureCursor: w.CaptureCursor,
	}
}

// State builds the initial render state.
func State(cfg *config.Config) renderer.State {
	s := renderer.DefaultState()
	s.Light = Light(cfg.Light)
	return s
}
