package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/pkg/math"
)

// Part colors.
var (
	Red   = geometry.Color{0.905, 0.298, 0.235}
	Blue  = geometry.Color{0.203, 0.596, 0.858}
	Green = geometry.Color{0.18, 0.8, 0.443}
	White = geometry.Color{1, 1, 1}
)

// Model holds the airplane's fixed dimensions and attachment offsets.
// Offsets of the wings and tail are relative to the body center.
type Model struct {
	Body       geometry.Cylinder
	BodyCenter math.Vec3 // Hover origin of the airplane
	BodyPitch  float32   // Degrees about X laying the cylinder along the body axis

	Wing       geometry.Cuboid
	WingOffset float32 // Distance of each wing center from the centerline

	Tail       geometry.Tail
	TailOffset float32 // Distance of the tail apex behind the body center

	ShowBoard  bool
	Board      geometry.Board
	BoardScale math.Vec3
}

// DefaultModel returns the airplane hovering half a unit above a white board.
func DefaultModel() Model {
	return Model{
		Body:       geometry.Cylinder{Radius: 0.5, Height: 4, Segments: 64},
		BodyCenter: math.Vec3{Y: 0.5},
		BodyPitch:  -90,
		Wing:       geometry.Cuboid{Length: 4, Width: 1, Height: 0.5},
		WingOffset: 2,
		Tail:       geometry.Tail{BaseEdge: 2, Height1: 1, Height2: 0.5},
		TailOffset: 2,
		ShowBoard:  true,
		Board:      geometry.Board{Width: 10, Depth: 10},
		BoardScale: math.Vec3{X: 3, Y: 1, Z: 3},
	}
}

// Pose is the per-frame articulation of the model.
type Pose struct {
	// WingRoll rotates both wings about the body's centerline, in radians.
	WingRoll float32
}

// WingFlap oscillates a wing roll angle between -Limit and +Limit degrees.
type WingFlap struct {
	Limit float32
	angle float32
	dir   float32
}

// NewWingFlap returns a flap starting level and rising.
func NewWingFlap(limit float32) *WingFlap {
	return &WingFlap{Limit: limit, dir: 1}
}

// Advance moves the angle by deg degrees, bouncing off the limits. The angle
// stays within [-Limit, Limit] for any step; a zero limit holds it level.
func (f *WingFlap) Advance(deg float32) {
	if !(f.Limit > 0) {
		f.angle = 0
		return
	}
	// One full swing is 4*Limit; whole swings change nothing
	f.angle += f.dir * math32.Mod(deg, 4*f.Limit)
	for f.angle > f.Limit || f.angle < -f.Limit {
		if f.angle > f.Limit {
			f.angle = 2*f.Limit - f.angle
			f.dir = -1
		} else {
			f.angle = -2*f.Limit - f.angle
			f.dir = 1
		}
	}
	f.angle = max(-f.Limit, min(f.angle, f.Limit))
}

// Degrees returns the current angle.
func (f *WingFlap) Degrees() float32 { return f.angle }

// Pose returns the pose for the current angle.
func (f *WingFlap) Pose() Pose {
	return Pose{WingRoll: math.Radians(f.angle)}
}
