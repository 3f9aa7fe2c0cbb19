// Package camera provides the fly camera used to view the scene.
package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/hangar/pkg/math"
)

// ErrInvalidParameter is returned for out-of-range camera parameters.
var ErrInvalidParameter = errors.New("invalid camera parameter")

// WorldUp is the fixed up axis the camera turns about and flies along.
var WorldUp = math.UnitY

// Key is an input the camera reacts to.
type Key int

const (
	KeyTurnLeft Key = iota
	KeyTurnRight
	KeyFly
)

func (k Key) String() string {
	switch k {
	case KeyTurnLeft:
		return "turn_left"
	case KeyTurnRight:
		return "turn_right"
	case KeyFly:
		return "fly"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// Action is a key transition. Repeats are filtered before they reach the camera.
type Action int

const (
	Press Action = iota
	Release
)

// Config holds the camera's initial state and speeds.
type Config struct {
	Position math.Vec3
	Target   math.Vec3

	FOV    float32 // Vertical field of view in radians
	Aspect float32
	Near   float32
	Far    float32

	RotateSpeed float32 // Degrees per update step
	FlySpeed    float32 // World units per update step
}

// DefaultConfig returns the camera used by the viewer: above and behind the
// origin, looking at it.
func DefaultConfig() Config {
	return Config{
		Position:    math.Vec3{X: 0, Y: 5, Z: 10},
		Target:      math.Vec3{},
		FOV:         math.Radians(45),
		Aspect:      16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		RotateSpeed: 1.0,
		FlySpeed:    1.0 / 20,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !c.Position.IsFinite() || !c.Target.IsFinite() {
		return fmt.Errorf("position %v / target %v not finite: %w", c.Position, c.Target, ErrInvalidParameter)
	}
	if err := validateLens(c.FOV, c.Near, c.Far); err != nil {
		return err
	}
	if err := validateAspect(c.Aspect); err != nil {
		return err
	}
	if err := validateSpeeds(c.RotateSpeed, c.FlySpeed); err != nil {
		return err
	}
	forward := c.Target.Sub(c.Position).Normalize()
	if forward == (math.Vec3{}) {
		return fmt.Errorf("target equals position: %w", ErrInvalidParameter)
	}
	if forward.Cross(WorldUp).Length() < 1e-4 {
		return fmt.Errorf("view direction %v parallel to world up: %w", forward, ErrInvalidParameter)
	}
	return nil
}

func validateLens(fov, near, far float32) error {
	if !math.IsFinite(fov) || fov <= 0 || fov >= math32.Pi {
		return fmt.Errorf("fov %v outside (0, pi): %w", fov, ErrInvalidParameter)
	}
	if !math.IsFinite(near) || !math.IsFinite(far) || near <= 0 || near >= far {
		return fmt.Errorf("near %v / far %v: %w", near, far, ErrInvalidParameter)
	}
	return nil
}

func validateSpeeds(rotate, fly float32) error {
	if !math.IsFinite(rotate) || rotate < 0 {
		return fmt.Errorf("rotate speed %v: %w", rotate, ErrInvalidParameter)
	}
	if !math.IsFinite(fly) || fly < 0 {
		return fmt.Errorf("fly speed %v: %w", fly, ErrInvalidParameter)
	}
	return nil
}

func validateAspect(aspect float32) error {
	if !math.IsFinite(aspect) || aspect <= 0 {
		return fmt.Errorf("aspect %v: %w", aspect, ErrInvalidParameter)
	}
	return nil
}

// Camera is a fly camera. Orientation changes turn the forward direction
// about WorldUp; translation moves along forward and WorldUp.
//
// Matrices are derived from the current state on every call.
type Camera struct {
	position math.Vec3
	forward  math.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	rotateSpeed float32
	flySpeed    float32

	held map[Key]bool
}

// New creates a camera from cfg.
func New(cfg Config) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Camera{
		position:    cfg.Position,
		forward:     cfg.Target.Sub(cfg.Position).Normalize(),
		fov:         cfg.FOV,
		aspect:      cfg.Aspect,
		near:        cfg.Near,
		far:         cfg.Far,
		rotateSpeed: cfg.RotateSpeed,
		flySpeed:    cfg.FlySpeed,
		held:        make(map[Key]bool),
	}, nil
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 { return c.position }

// Forward returns the unit view direction.
func (c *Camera) Forward() math.Vec3 { return c.forward }

// Aspect returns the projection aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Basis returns the orthonormal forward, right and up vectors.
func (c *Camera) Basis() (forward, right, up math.Vec3) {
	forward = c.forward
	right = forward.Cross(WorldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Held reports whether key is currently pressed.
func (c *Camera) Held(key Key) bool { return c.held[key] }

// OnKeyEvent records a key transition; motion happens in Update.
func (c *Camera) OnKeyEvent(key Key, action Action) {
	switch action {
	case Press:
		c.held[key] = true
	case Release:
		delete(c.held, key)
	}
}

// Update advances one input step. Rotation is applied before translation so
// flying follows the new heading.
func (c *Camera) Update() {
	var turn float32
	if c.held[KeyTurnLeft] {
		turn += c.rotateSpeed
	}
	if c.held[KeyTurnRight] {
		turn -= c.rotateSpeed
	}
	if turn != 0 {
		c.Turn(math.Radians(turn))
	}
	if c.held[KeyFly] {
		c.Fly(c.flySpeed, c.flySpeed)
	}
}

// Turn rotates the forward direction by angle radians about WorldUp.
// Positive angles turn left.
func (c *Camera) Turn(angle float32) {
	q := math.QuatFromAxisAngle(WorldUp, angle)
	c.forward = q.Rotate(c.forward).Normalize()
}

// Fly moves the camera forward along its heading and up along WorldUp.
func (c *Camera) Fly(forward, up float32) {
	c.position = c.position.Add(c.forward.Scale(forward)).Add(WorldUp.Scale(up))
}

// OnResize updates the aspect ratio from a framebuffer size.
func (c *Camera) OnResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("framebuffer %dx%d: %w", width, height, ErrInvalidParameter)
	}
	return c.SetAspect(float32(width) / float32(height))
}

// SetSpeeds changes the per-step turn (degrees) and fly (world units) rates.
func (c *Camera) SetSpeeds(rotate, fly float32) error {
	if err := validateSpeeds(rotate, fly); err != nil {
		return err
	}
	c.rotateSpeed = rotate
	c.flySpeed = fly
	return nil
}

// SetAspect sets the projection aspect ratio.
func (c *Camera) SetAspect(aspect float32) error {
	if err := validateAspect(aspect); err != nil {
		return err
	}
	c.aspect = aspect
	return nil
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.position.Add(c.forward), WorldUp)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.fov, c.aspect, c.near, c.far)
}
