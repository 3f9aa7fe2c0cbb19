// Package transform composes ordered translate/rotate/scale operations into
// local-to-parent matrices and applies them to generated meshes.
//
// Ops compose like successive glTranslate/glRotate/glScale calls: each op
// acts in the frame established by the ops before it. A part that should
// pivot about its parent's origin lists its rotation before its translation;
// scale goes last so it only affects local geometry.
package transform

import (
	"fmt"

	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/pkg/math"
)

// Kind identifies an affine operation.
type Kind int

const (
	KindTranslate Kind = iota
	KindRotate
	KindScale
)

// Op is one affine operation.
type Op struct {
	Kind Kind
	// Vector is the offset, rotation axis or per-axis scale factors.
	Vector math.Vec3
	// Angle is the rotation angle in radians.
	Angle float32
}

// Translate returns an op moving by (x, y, z).
func Translate(x, y, z float32) Op {
	return Op{Kind: KindTranslate, Vector: math.Vec3{X: x, Y: y, Z: z}}
}

// Rotate returns an op rotating by angle radians about axis.
func Rotate(angle float32, axis math.Vec3) Op {
	return Op{Kind: KindRotate, Vector: axis, Angle: angle}
}

// RotateDegrees is Rotate with the angle in degrees.
func RotateDegrees(deg float32, axis math.Vec3) Op {
	return Rotate(math.Radians(deg), axis)
}

// Scale returns an op scaling by (x, y, z).
func Scale(x, y, z float32) Op {
	return Op{Kind: KindScale, Vector: math.Vec3{X: x, Y: y, Z: z}}
}

// Matrix returns the op as a 4x4 matrix.
func (o Op) Matrix() math.Mat4 {
	switch o.Kind {
	case KindTranslate:
		return math.Translate(o.Vector.X, o.Vector.Y, o.Vector.Z)
	case KindRotate:
		return math.RotateAxis(o.Vector, o.Angle)
	case KindScale:
		return math.Scale(o.Vector.X, o.Vector.Y, o.Vector.Z)
	default:
		return math.Identity()
	}
}

func (o Op) String() string {
	switch o.Kind {
	case KindTranslate:
		return fmt.Sprintf("translate(%g, %g, %g)", o.Vector.X, o.Vector.Y, o.Vector.Z)
	case KindRotate:
		return fmt.Sprintf("rotate(%g°, %g, %g, %g)", math.Degrees(o.Angle), o.Vector.X, o.Vector.Y, o.Vector.Z)
	case KindScale:
		return fmt.Sprintf("scale(%g, %g, %g)", o.Vector.X, o.Vector.Y, o.Vector.Z)
	default:
		return fmt.Sprintf("Op(%d)", int(o.Kind))
	}
}

// Compose post-multiplies ops onto base in list order.
func Compose(base math.Mat4, ops ...Op) math.Mat4 {
	m := base
	for _, op := range ops {
		m = m.Mul(op.Matrix())
	}
	return m
}

// Chain is an ordered op list for one part.
type Chain []Op

// Matrix composes the chain starting from the identity.
func (c Chain) Matrix() math.Mat4 {
	return Compose(math.Identity(), c...)
}

// Apply transforms a mesh by m. Positions go through m, normals through its
// inverse-transpose and are renormalized; zero normals stay zero.
func Apply(m math.Mat4, mesh geometry.Mesh) geometry.Mesh {
	nm := m.NormalMatrix()
	out := geometry.Mesh{
		Topology:   mesh.Topology,
		Vertices:   make([]geometry.Vertex, len(mesh.Vertices)),
		Degenerate: mesh.Degenerate,
	}
	for i, v := range mesh.Vertices {
		out.Vertices[i] = geometry.Vertex{
			Position: m.TransformPoint(v.Position),
			Normal:   nm.TransformDirection(v.Normal).Normalize(),
		}
	}
	return out
}
