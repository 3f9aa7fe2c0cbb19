package camera

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hangar/pkg/math"
)

func newDefault(t *testing.T) *Camera {
	t.Helper()
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func vec(v math.Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func approx(a, b math.Vec3) bool { return a.ApproxEqual(b, 1e-5) }

// heading returns the yaw of a direction on the XZ plane.
func heading(v math.Vec3) float64 {
	return gomath.Atan2(float64(v.X), float64(v.Z))
}

func step(c *Camera, key Key) {
	c.OnKeyEvent(key, Press)
	c.Update()
	c.OnKeyEvent(key, Release)
}

func TestDefaultLooksAtOrigin(t *testing.T) {
	c := newDefault(t)
	want := math.Vec3{Y: -5, Z: -10}.Normalize()
	if !approx(c.Forward(), want) {
		t.Errorf("Forward() = %v, want %v", c.Forward(), want)
	}
	if c.Position() != (math.Vec3{Y: 5, Z: 10}) {
		t.Errorf("Position() = %v, want (0, 5, 10)", c.Position())
	}
}

func TestTurnLeftRotatesByConfiguredAngle(t *testing.T) {
	c := newDefault(t)
	before := c.Forward()

	step(c, KeyTurnLeft)

	after := c.Forward()
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(1))
	w := rot.Mul4x1(vec(before).Vec4(0)).Vec3()
	if !approx(after, math.Vec3{X: w[0], Y: w[1], Z: w[2]}) {
		t.Errorf("after one left turn forward = %v, want %v", after, w)
	}
	if d := gomath.Remainder(heading(after)-heading(before), 2*gomath.Pi); gomath.Abs(d-gomath.Pi/180) > 1e-5 {
		t.Errorf("heading changed by %v rad, want 1 degree", d)
	}
	if c.Position() != DefaultConfig().Position {
		t.Error("turning must not move the camera")
	}
}

func TestTurnFullCircle(t *testing.T) {
	c := newDefault(t)
	before := c.Forward()

	c.OnKeyEvent(KeyTurnLeft, Press)
	for i := 0; i < 360; i++ {
		c.Update()
	}

	if !c.Forward().ApproxEqual(before, 1e-4) {
		t.Errorf("after 360 steps forward = %v, want %v", c.Forward(), before)
	}
}

func TestTurnRightUndoesLeft(t *testing.T) {
	c := newDefault(t)
	before := c.Forward()
	step(c, KeyTurnLeft)
	step(c, KeyTurnRight)
	if !approx(c.Forward(), before) {
		t.Errorf("left then right forward = %v, want %v", c.Forward(), before)
	}
}

func TestOppositeTurnsCancel(t *testing.T) {
	c := newDefault(t)
	before := c.Forward()
	c.OnKeyEvent(KeyTurnLeft, Press)
	c.OnKeyEvent(KeyTurnRight, Press)
	c.Update()
	if c.Forward() != before {
		t.Errorf("both turn keys held changed forward to %v", c.Forward())
	}
}

func TestRepeatedTurnsEqualSingleTurn(t *testing.T) {
	const n = 37
	theta := float32(0.05)

	a := newDefault(t)
	for i := 0; i < n; i++ {
		a.Turn(theta)
	}
	b := newDefault(t)
	b.Turn(n * theta)

	if !a.Forward().ApproxEqual(b.Forward(), 1e-5) {
		t.Errorf("%d turns of %v = %v, one turn of %v = %v", n, theta, a.Forward(), n*theta, b.Forward())
	}
}

func TestFlyFollowsNewHeading(t *testing.T) {
	c := newDefault(t)
	start := c.Position()

	c.OnKeyEvent(KeyTurnLeft, Press)
	c.OnKeyEvent(KeyFly, Press)
	c.Update()

	speed := DefaultConfig().FlySpeed
	want := start.Add(c.Forward().Scale(speed)).Add(WorldUp.Scale(speed))
	if !approx(c.Position(), want) {
		t.Errorf("Position() = %v, want %v", c.Position(), want)
	}
}

func TestReleaseStopsMotion(t *testing.T) {
	c := newDefault(t)
	c.OnKeyEvent(KeyFly, Press)
	c.Update()
	c.OnKeyEvent(KeyFly, Release)
	if c.Held(KeyFly) {
		t.Fatal("fly still held after release")
	}
	p := c.Position()
	c.Update()
	if c.Position() != p {
		t.Errorf("camera moved after release: %v -> %v", p, c.Position())
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	c := newDefault(t)
	c.OnKeyEvent(KeyTurnLeft, Press)
	c.OnKeyEvent(KeyFly, Press)
	for i := 0; i < 1000; i++ {
		c.Update()
		f, r, u := c.Basis()
		for _, v := range []math.Vec3{f, r, u} {
			if l := v.Length(); gomath.Abs(float64(l-1)) > 1e-4 {
				t.Fatalf("step %d: basis vector %v has length %v", i, v, l)
			}
		}
		if gomath.Abs(float64(f.Dot(r))) > 1e-4 || gomath.Abs(float64(f.Dot(u))) > 1e-4 || gomath.Abs(float64(r.Dot(u))) > 1e-4 {
			t.Fatalf("step %d: basis not orthogonal: %v %v %v", i, f, r, u)
		}
	}
}

func TestResizeAfterTurnKeepsPose(t *testing.T) {
	c := newDefault(t)
	step(c, KeyTurnLeft)
	pos, fwd, view := c.Position(), c.Forward(), c.ViewMatrix()

	if err := c.OnResize(800, 600); err != nil {
		t.Fatalf("OnResize: %v", err)
	}

	if c.Position() != pos || c.Forward() != fwd {
		t.Errorf("resize moved the camera: pos %v -> %v, forward %v -> %v", pos, c.Position(), fwd, c.Forward())
	}
	if c.ViewMatrix() != view {
		t.Error("resize changed the view matrix")
	}
}

func TestResizeChangesOnlyHorizontalScale(t *testing.T) {
	c := newDefault(t)
	if err := c.OnResize(1600, 900); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	wide, view := c.ProjectionMatrix(), c.ViewMatrix()

	if err := c.OnResize(1024, 768); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	square := c.ProjectionMatrix()

	if wide[0] == square[0] {
		t.Error("horizontal scale term should change with aspect")
	}
	for i := 1; i < 16; i++ {
		if wide[i] != square[i] {
			t.Errorf("projection element %d changed: %v -> %v", i, wide[i], square[i])
		}
	}
	if c.ViewMatrix() != view {
		t.Error("resize changed the view matrix")
	}
	if got := c.Aspect(); gomath.Abs(float64(got-4.0/3.0)) > 1e-6 {
		t.Errorf("Aspect() = %v, want 4/3", got)
	}
}

func TestMatricesMatchMathgl(t *testing.T) {
	c := newDefault(t)
	step(c, KeyTurnLeft)

	eye := c.Position()
	center := eye.Add(c.Forward())
	wantView := mgl32.LookAtV(vec(eye), vec(center), mgl32.Vec3{0, 1, 0})
	if !c.ViewMatrix().ApproxEqual(math.Mat4(wantView), 1e-5) {
		t.Errorf("ViewMatrix() = %v, want %v", c.ViewMatrix(), wantView)
	}

	cfg := DefaultConfig()
	wantProj := mgl32.Perspective(cfg.FOV, cfg.Aspect, cfg.Near, cfg.Far)
	if !c.ProjectionMatrix().ApproxEqual(math.Mat4(wantProj), 1e-5) {
		t.Errorf("ProjectionMatrix() = %v, want %v", c.ProjectionMatrix(), wantProj)
	}
}

func TestMatricesArePure(t *testing.T) {
	c := newDefault(t)
	if c.ViewMatrix() != c.ViewMatrix() || c.ProjectionMatrix() != c.ProjectionMatrix() {
		t.Error("matrix derivation should be repeatable")
	}
}

func TestInvalidConfig(t *testing.T) {
	nan := float32(gomath.NaN())
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"negative fov", func(c *Config) { c.FOV = -1 }},
		{"fov pi", func(c *Config) { c.FOV = gomath.Pi }},
		{"near equals far", func(c *Config) { c.Near, c.Far = 10, 10 }},
		{"near beyond far", func(c *Config) { c.Near, c.Far = 10, 1 }},
		{"zero near", func(c *Config) { c.Near = 0 }},
		{"zero aspect", func(c *Config) { c.Aspect = 0 }},
		{"nan aspect", func(c *Config) { c.Aspect = nan }},
		{"nan position", func(c *Config) { c.Position.X = nan }},
		{"target at position", func(c *Config) { c.Target = c.Position }},
		{"looking straight down", func(c *Config) { c.Target = c.Position.Sub(WorldUp) }},
		{"negative rotate speed", func(c *Config) { c.RotateSpeed = -1 }},
		{"nan fly speed", func(c *Config) { c.FlySpeed = nan }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("New() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestInvalidResize(t *testing.T) {
	c := newDefault(t)
	before := c.ProjectionMatrix()
	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, -1}} {
		if err := c.OnResize(size[0], size[1]); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("OnResize(%d, %d) error = %v, want ErrInvalidParameter", size[0], size[1], err)
		}
	}
	if c.ProjectionMatrix() != before {
		t.Error("failed resize changed the projection")
	}
}

func TestKeyString(t *testing.T) {
	if KeyFly.String() != "fly" {
		t.Errorf("KeyFly.String() = %q", KeyFly.String())
	}
}

func TestSetSpeeds(t *testing.T) {
	c := newDefault(t)
	if err := c.SetSpeeds(2, 0.5); err != nil {
		t.Fatalf("SetSpeeds: %v", err)
	}

	before := c.Forward()
	step(c, KeyTurnLeft)
	if d := gomath.Remainder(heading(c.Forward())-heading(before), 2*gomath.Pi); gomath.Abs(d-2*gomath.Pi/180) > 1e-5 {
		t.Errorf("heading changed by %v rad, want 2 degrees", d)
	}

	for _, speeds := range [][2]float32{{-1, 0}, {0, -1}, {float32(gomath.NaN()), 0}, {0, float32(gomath.Inf(1))}} {
		if err := c.SetSpeeds(speeds[0], speeds[1]); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("SetSpeeds(%v, %v) = %v, want ErrInvalidParameter", speeds[0], speeds[1], err)
		}
	}
}
