package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	// +90 degrees about Y turns -Z into -X
	q := QuatFromAxisAngle(UnitY, float32(math.Pi/2))
	got := q.Rotate(Vec3{0, 0, -1})
	if !got.ApproxEqual(Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Rotate(-Z) = %v, want (-1, 0, 0)", got)
	}
}

func TestQuatRotateMatchesToMat4(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 0.7)
	v := Vec3{0.3, -1.2, 2.5}

	fromQuat := q.Rotate(v)
	fromMat := q.ToMat4().TransformDirection(v)
	if !fromQuat.ApproxEqual(fromMat, 1e-5) {
		t.Errorf("Rotate = %v, ToMat4 = %v", fromQuat, fromMat)
	}
}

func TestQuatMulComposesAngles(t *testing.T) {
	const steps = 12
	step := QuatFromAxisAngle(UnitY, Radians(5))
	acc := QuatIdentity()
	for i := 0; i < steps; i++ {
		acc = step.Mul(acc)
	}
	once := QuatFromAxisAngle(UnitY, Radians(5*steps))

	v := Vec3{0, 0.4, -1}
	if got, want := acc.Rotate(v), once.Rotate(v); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("%d composed steps = %v, single rotation = %v", steps, got, want)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}
