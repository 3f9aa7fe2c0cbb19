package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func toMat4(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"rotate y 90", RotateAxis(UnitY, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"rotate x -90", RotateAxis(UnitX, -math.Pi/2), Vec3{0, 2, 0}, Vec3{0, 0, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(4, 5, 6)
	if got := m.TransformDirection(UnitY); got != UnitY {
		t.Errorf("TransformDirection = %v, want %v", got, UnitY)
	}
}

func TestRotateAxisMatchesMathgl(t *testing.T) {
	axis := Vec3{1, -2, 0.5}
	got := RotateAxis(axis, 1.1)
	want := toMat4(mgl32.HomogRotate3D(1.1, mgl32.Vec3{1, -2, 0.5}.Normalize()))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("RotateAxis = %v, want %v", got, want)
	}
}

func TestRotateAxisZeroAxis(t *testing.T) {
	if got := RotateAxis(Vec3{}, 1); got != Identity() {
		t.Errorf("RotateAxis with zero axis = %v, want identity", got)
	}
}

func TestPerspectiveMatchesMathgl(t *testing.T) {
	fov := float32(math.Pi / 4)
	got := Perspective(fov, 16.0/9.0, 0.1, 100)
	want := toMat4(mgl32.Perspective(fov, 16.0/9.0, 0.1, 100))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Perspective = %v, want %v", got, want)
	}
	if got[11] != -1 || got[15] != 0 {
		t.Errorf("Perspective w row = (%f, %f), want (-1, 0)", got[11], got[15])
	}
}

func TestPerspectiveAspectOnlyTouchesHorizontalScale(t *testing.T) {
	fov := float32(math.Pi / 4)
	wide := Perspective(fov, 16.0/9.0, 0.1, 100)
	square := Perspective(fov, 4.0/3.0, 0.1, 100)
	for i := 1; i < 16; i++ {
		if wide[i] != square[i] {
			t.Errorf("element %d changed with aspect: %f vs %f", i, wide[i], square[i])
		}
	}
	if wide[0] == square[0] {
		t.Error("horizontal scale term should depend on aspect")
	}
}

func TestLookAtMatchesMathgl(t *testing.T) {
	eye := Vec3{0, 5, 10}
	center := Vec3{0, 0, 0}
	got := LookAt(eye, center, UnitY)
	want := toMat4(mgl32.LookAtV(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("LookAt = %v, want %v", got, want)
	}

	// The eye maps to the view-space origin.
	if p := got.TransformPoint(eye); !p.ApproxEqual(Vec3{}, 1e-5) {
		t.Errorf("eye in view space = %v, want origin", p)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose moved translation to %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be the original")
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateAxis(UnitZ, 0.4)).Mul(Scale(2, 3, 4))
	if got := m.Mul(m.Inverse()); !got.ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 = %v, want identity", got)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A 45 degree slope stretched 2x along X: the surface normal must tilt
	// toward Y, not follow the stretch.
	m := Translate(7, 8, 9).Mul(Scale(2, 1, 1))
	n := Vec3{1, 1, 0}.Normalize()
	tangent := Vec3{1, -1, 0}

	tn := m.NormalMatrix().TransformDirection(n)
	tt := m.TransformDirection(tangent)
	if d := tn.Dot(tt); abs32(d) > 1e-5 {
		t.Errorf("transformed normal not perpendicular to transformed tangent, dot = %f", d)
	}
}
