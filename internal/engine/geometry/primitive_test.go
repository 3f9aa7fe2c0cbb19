package geometry

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hangar/pkg/math"
)

const eps = 1e-5

// faceNormal returns the geometric normal implied by a triangle's winding.
func faceNormal(tri [3]Vertex) math.Vec3 {
	return tri[1].Position.Sub(tri[0].Position).Cross(tri[2].Position.Sub(tri[0].Position))
}

func centroidOf(meshes ...Mesh) math.Vec3 {
	var sum math.Vec3
	var n int
	for _, m := range meshes {
		for _, v := range m.Vertices {
			sum = sum.Add(v.Position)
			n++
		}
	}
	return sum.Scale(1 / float32(n))
}

// requireOutward checks every non-degenerate triangle winds away from the
// solid's centroid and agrees with its vertex normals.
func requireOutward(t *testing.T, center math.Vec3, meshes ...Mesh) {
	t.Helper()
	for mi, m := range meshes {
		for ti, tri := range m.Triangles() {
			n := faceNormal(tri)
			if n.Length() < 1e-9 {
				continue
			}
			mid := tri[0].Position.Add(tri[1].Position).Add(tri[2].Position).Scale(1.0 / 3)
			assert.Greaterf(t, n.Dot(mid.Sub(center)), float32(0), "mesh %d triangle %d winds inward", mi, ti)
			for _, v := range tri {
				assert.Greaterf(t, n.Dot(v.Normal), float32(0), "mesh %d triangle %d normal %v disagrees with winding", mi, ti, v.Normal)
			}
		}
	}
}

func TestCylinderSideClosesRing(t *testing.T) {
	for _, segments := range []int{3, 4, 7, 64} {
		meshes, err := GenerateCylinder(0.5, 4, segments)
		require.NoError(t, err)
		require.Len(t, meshes, 3)

		side := meshes[0]
		assert.Equal(t, TriangleStrip, side.Topology)
		assert.Len(t, side.Vertices, 2*(segments+1), "segments=%d", segments)

		n := len(side.Vertices)
		assert.Equal(t, side.Vertices[0], side.Vertices[n-2], "bottom seam vertex must repeat")
		assert.Equal(t, side.Vertices[1], side.Vertices[n-1], "top seam vertex must repeat")

		angles := RingAngles(segments)
		assert.Equal(t, 2*gomath.Pi, angles[len(angles)-1]-angles[0])
	}
}

func TestCylinderSideNormalsAreRadial(t *testing.T) {
	meshes, err := GenerateCylinder(2, 1, 16)
	require.NoError(t, err)
	for i, v := range meshes[0].Vertices {
		radial := math.Vec3{X: v.Position.X, Z: v.Position.Z}.Normalize()
		assert.Truef(t, v.Normal.ApproxEqual(radial, eps), "vertex %d normal %v, want %v", i, v.Normal, radial)
		assert.InDelta(t, 1, v.Normal.Length(), eps)
	}
}

func TestCylinderCaps(t *testing.T) {
	meshes, err := GenerateCylinder(1, 2, 8)
	require.NoError(t, err)
	top, bottom := meshes[1], meshes[2]

	assert.Equal(t, TriangleFan, top.Topology)
	assert.Equal(t, math.Vec3{Y: 1}, top.Vertices[0].Position)
	assert.Equal(t, math.Vec3{Y: -1}, bottom.Vertices[0].Position)
	for _, v := range top.Vertices {
		assert.Equal(t, math.UnitY, v.Normal)
	}
	for _, v := range bottom.Vertices {
		assert.Equal(t, math.UnitY.Negate(), v.Normal)
	}
}

func TestCylinderOutwardFacing(t *testing.T) {
	meshes, err := GenerateCylinder(0.5, 4, 12)
	require.NoError(t, err)
	requireOutward(t, math.Vec3{}, meshes...)
}

func TestCylinderAreaConverges(t *testing.T) {
	const radius, height = 0.5, 4.0
	ideal := 2 * gomath.Pi * radius * height

	prev := 0.0
	for segments := 3; segments <= 64; segments++ {
		meshes, err := GenerateCylinder(radius, height, segments)
		require.NoError(t, err)
		area := meshes[0].Area()
		require.Greaterf(t, area, prev, "side area must grow with segments (%d)", segments)
		require.LessOrEqual(t, area, ideal+1e-4)
		prev = area
	}
	assert.InDelta(t, ideal, prev, ideal*1e-3, "64 segments should be within 0.1 percent")
}

func TestCylinderInvalidSegments(t *testing.T) {
	for _, segments := range []int{-1, 0, 1, 2} {
		_, err := GenerateCylinder(1, 1, segments)
		assert.ErrorIsf(t, err, ErrInvalidParameter, "segments=%d", segments)
	}
}

func TestCylinderZeroRadius(t *testing.T) {
	meshes, err := GenerateCylinder(0, 4, 8)
	require.NoError(t, err)
	for _, m := range meshes {
		assert.True(t, m.Degenerate)
		assert.Zero(t, m.Area())
		for _, v := range m.Vertices {
			assert.True(t, v.Normal.IsFinite())
			assert.True(t, v.Position.IsFinite())
		}
	}
}

func TestCuboidFaces(t *testing.T) {
	m, err := GenerateCuboid(4, 1, 0.5)
	require.NoError(t, err)
	require.Equal(t, Quads, m.Topology)
	require.Len(t, m.Vertices, 24)
	assert.False(t, m.Degenerate)

	for f := 0; f < 6; f++ {
		q := m.Vertices[f*4 : f*4+4]
		n := q[0].Normal
		e1 := q[1].Position.Sub(q[0].Position)
		e2 := q[3].Position.Sub(q[0].Position)

		for _, v := range q {
			assert.Equal(t, n, v.Normal, "face %d normal must be constant", f)
			// coplanar: every corner lies in the plane through q[0] with normal n
			assert.InDelta(t, 0, n.Dot(v.Position.Sub(q[0].Position)), eps, "face %d not planar", f)
		}
		assert.InDelta(t, 0, n.Dot(e1), eps, "face %d normal not perpendicular to edge", f)
		assert.InDelta(t, 0, n.Dot(e2), eps, "face %d normal not perpendicular to edge", f)

		faceCenter := q[0].Position.Add(q[1].Position).Add(q[2].Position).Add(q[3].Position).Scale(0.25)
		assert.Greater(t, n.Dot(faceCenter), float32(0), "face %d normal points inward", f)
	}
	requireOutward(t, math.Vec3{}, m)
}

func TestCuboidArea(t *testing.T) {
	m, err := GenerateCuboid(4, 1, 0.5)
	require.NoError(t, err)
	want := 2 * (4*1 + 4*0.5 + 1*0.5)
	assert.InDelta(t, want, m.Area(), 1e-4)

	lo, hi := m.Bounds()
	assert.Equal(t, math.Vec3{X: -2, Y: -0.25, Z: -0.5}, lo)
	assert.Equal(t, math.Vec3{X: 2, Y: 0.25, Z: 0.5}, hi)
}

func TestCuboidDegenerate(t *testing.T) {
	m, err := GenerateCuboid(2, 0, -3)
	require.NoError(t, err)
	assert.True(t, m.Degenerate)
	assert.Len(t, m.Vertices, 24)
	assert.Zero(t, m.Area())
}

func TestTailFacets(t *testing.T) {
	m, err := GenerateTail(2, 1, 0.5)
	require.NoError(t, err)
	require.Equal(t, Triangles, m.Topology)
	require.Len(t, m.Vertices, 12)
	assert.False(t, m.Degenerate)

	requireOutward(t, centroidOf(m), m)

	distinct := map[math.Vec3]bool{}
	for f := 0; f < 4; f++ {
		tri := m.Vertices[f*3 : f*3+3]
		assert.Equal(t, tri[0].Normal, tri[1].Normal, "facet %d must be flat shaded", f)
		assert.Equal(t, tri[0].Normal, tri[2].Normal, "facet %d must be flat shaded", f)
		assert.InDelta(t, 1, tri[0].Normal.Length(), eps)
		distinct[tri[0].Normal] = true
	}
	assert.Len(t, distinct, 4)

	// The top facet lies in the XZ plane with the keel below it.
	assert.True(t, m.Vertices[0].Normal.ApproxEqual(math.UnitY, eps), "top normal %v", m.Vertices[0].Normal)
}

func TestTailDegenerate(t *testing.T) {
	m, err := GenerateTail(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, m.Degenerate)
	for _, v := range m.Vertices {
		assert.True(t, v.Normal.IsFinite())
	}
}

func TestInvalidDimensions(t *testing.T) {
	nan := float32(gomath.NaN())
	inf := float32(gomath.Inf(1))
	tests := []struct {
		name string
		p    Primitive
	}{
		{"cylinder nan radius", Cylinder{Radius: nan, Height: 1, Segments: 8}},
		{"cylinder inf height", Cylinder{Radius: 1, Height: inf, Segments: 8}},
		{"cuboid nan", Cuboid{Length: 1, Width: nan, Height: 1}},
		{"tail inf", Tail{BaseEdge: 1, Height1: 1, Height2: inf}},
		{"board nan", Board{Width: nan, Depth: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Generate()
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestBoard(t *testing.T) {
	meshes, err := Board{Width: 10, Depth: 10}.Generate()
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.InDelta(t, 100, meshes[0].Area(), 1e-4)
	for _, tri := range meshes[0].Triangles() {
		assert.Greater(t, faceNormal(tri).Y, float32(0))
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	prims := []Primitive{
		Cylinder{Radius: 0.5, Height: 4, Segments: 64},
		Cuboid{Length: 4, Width: 1, Height: 0.5},
		Tail{BaseEdge: 2, Height1: 1, Height2: 0.5},
	}
	for _, p := range prims {
		a, err := p.Generate()
		require.NoError(t, err)
		b, err := p.Generate()
		require.NoError(t, err)
		assert.Equal(t, a, b, p.Kind())
	}
}
