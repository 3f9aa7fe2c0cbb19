package geometry

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/hangar/pkg/math"
)

// MinSegments is the smallest tessellation a curved primitive accepts.
const MinSegments = 3

// Primitive is a parametric shape that can generate its surface.
type Primitive interface {
	// Kind names the shape, e.g. "cylinder".
	Kind() string
	Generate() ([]Mesh, error)
}

// Cylinder is a closed cylinder centered on the origin with its axis along Y.
type Cylinder struct {
	Radius   float32
	Height   float32
	Segments int
}

// Kind implements Primitive.
func (Cylinder) Kind() string { return "cylinder" }

// Generate implements Primitive. It returns the side strip followed by the
// top and bottom cap fans.
func (c Cylinder) Generate() ([]Mesh, error) {
	return GenerateCylinder(c.Radius, c.Height, c.Segments)
}

// RingAngles returns segments+1 angles stepping 2π/segments from 0 to 2π.
// The last angle is exactly 2π so the ring closes on the seam.
func RingAngles(segments int) []float64 {
	angles := make([]float64, segments+1)
	step := 2 * gomath.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		angles[i] = float64(i) * step
	}
	angles[segments] = 2 * gomath.Pi
	return angles
}

// GenerateCylinder tessellates a cylinder into segments side facets.
func GenerateCylinder(radius, height float32, segments int) ([]Mesh, error) {
	if segments < MinSegments {
		return nil, fmt.Errorf("cylinder segments %d < %d: %w", segments, MinSegments, ErrInvalidParameter)
	}
	r, err := extent("cylinder radius", radius)
	if err != nil {
		return nil, err
	}
	h, err := extent("cylinder height", height)
	if err != nil {
		return nil, err
	}
	degenerate := r == 0 || h == 0
	y1, y2 := -h/2, h/2

	// Ring directions; the seam reuses index 0 so the strip closes exactly.
	angles := RingAngles(segments)
	dirs := make([]math.Vec3, len(angles))
	for i, a := range angles[:segments] {
		dirs[i] = math.Vec3{X: float32(gomath.Cos(a)), Z: float32(gomath.Sin(a))}
	}
	dirs[segments] = dirs[0]

	side := Mesh{Topology: TriangleStrip, Degenerate: degenerate}
	side.Vertices = make([]Vertex, 0, 2*(segments+1))
	for _, d := range dirs {
		p := d.Scale(r)
		side.Vertices = append(side.Vertices,
			Vertex{Position: math.Vec3{X: p.X, Y: y1, Z: p.Z}, Normal: d},
			Vertex{Position: math.Vec3{X: p.X, Y: y2, Z: p.Z}, Normal: d},
		)
	}

	// Caps wind counter-clockwise seen from outside: the top walks the ring
	// backwards, the bottom forwards.
	top := Mesh{Topology: TriangleFan, Degenerate: r == 0}
	bottom := Mesh{Topology: TriangleFan, Degenerate: r == 0}
	up, down := math.UnitY, math.UnitY.Negate()
	top.Vertices = append(top.Vertices, Vertex{Position: math.Vec3{Y: y2}, Normal: up})
	bottom.Vertices = append(bottom.Vertices, Vertex{Position: math.Vec3{Y: y1}, Normal: down})
	for i := range dirs {
		pt := dirs[segments-i].Scale(r)
		pb := dirs[i].Scale(r)
		top.Vertices = append(top.Vertices, Vertex{Position: math.Vec3{X: pt.X, Y: y2, Z: pt.Z}, Normal: up})
		bottom.Vertices = append(bottom.Vertices, Vertex{Position: math.Vec3{X: pb.X, Y: y1, Z: pb.Z}, Normal: down})
	}

	return []Mesh{side, top, bottom}, nil
}

// Cuboid is an axis-aligned box centered on the origin. Length runs along X,
// height along Y and width along Z.
type Cuboid struct {
	Length float32
	Width  float32
	Height float32
}

// Kind implements Primitive.
func (Cuboid) Kind() string { return "cuboid" }

// Generate implements Primitive.
func (c Cuboid) Generate() ([]Mesh, error) {
	m, err := GenerateCuboid(c.Length, c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	return []Mesh{m}, nil
}

// GenerateCuboid returns six quads, each wound counter-clockwise seen from
// outside and carrying its face's outward normal.
func GenerateCuboid(length, width, height float32) (Mesh, error) {
	l, err := extent("cuboid length", length)
	if err != nil {
		return Mesh{}, err
	}
	w, err := extent("cuboid width", width)
	if err != nil {
		return Mesh{}, err
	}
	h, err := extent("cuboid height", height)
	if err != nil {
		return Mesh{}, err
	}
	l, w, h = l/2, w/2, h/2

	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -l, Y: -h, Z: w}, {X: l, Y: -h, Z: w}, {X: l, Y: h, Z: w}, {X: -l, Y: h, Z: w}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: l, Y: -h, Z: -w}, {X: -l, Y: -h, Z: -w}, {X: -l, Y: h, Z: -w}, {X: l, Y: h, Z: -w}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: l, Y: -h, Z: w}, {X: l, Y: -h, Z: -w}, {X: l, Y: h, Z: -w}, {X: l, Y: h, Z: w}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -l, Y: -h, Z: -w}, {X: -l, Y: -h, Z: w}, {X: -l, Y: h, Z: w}, {X: -l, Y: h, Z: -w}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -l, Y: h, Z: w}, {X: l, Y: h, Z: w}, {X: l, Y: h, Z: -w}, {X: -l, Y: h, Z: -w}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -l, Y: -h, Z: -w}, {X: l, Y: -h, Z: -w}, {X: l, Y: -h, Z: w}, {X: -l, Y: -h, Z: w}}},
	}

	m := Mesh{
		Topology:   Quads,
		Vertices:   make([]Vertex, 0, 24),
		Degenerate: l == 0 || w == 0 || h == 0,
	}
	for _, f := range faces {
		for _, p := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: f.normal})
		}
	}
	return m, nil
}

// Tail is the tail wedge: an apex at the origin, a base edge of width
// BaseEdge lying Height1 behind it along +Z, and a keel vertex Height2 below
// the base edge's midpoint.
type Tail struct {
	BaseEdge float32
	Height1  float32
	Height2  float32
}

// Kind implements Primitive.
func (Tail) Kind() string { return "tail" }

// Generate implements Primitive.
func (t Tail) Generate() ([]Mesh, error) {
	m, err := GenerateTail(t.BaseEdge, t.Height1, t.Height2)
	if err != nil {
		return nil, err
	}
	return []Mesh{m}, nil
}

// GenerateTail returns four independent triangles with flat per-facet normals.
func GenerateTail(baseEdge, height1, height2 float32) (Mesh, error) {
	b, err := extent("tail base edge", baseEdge)
	if err != nil {
		return Mesh{}, err
	}
	h1, err := extent("tail height1", height1)
	if err != nil {
		return Mesh{}, err
	}
	h2, err := extent("tail height2", height2)
	if err != nil {
		return Mesh{}, err
	}

	apex := math.Vec3{}
	right := math.Vec3{X: b / 2, Z: h1}
	left := math.Vec3{X: -b / 2, Z: h1}
	keel := math.Vec3{Y: -h2, Z: h1}
	centroid := apex.Add(right).Add(left).Add(keel).Scale(0.25)

	facets := [][3]math.Vec3{
		{apex, right, left},
		{apex, keel, right},
		{apex, left, keel},
		{left, right, keel},
	}

	m := Mesh{Topology: Triangles, Vertices: make([]Vertex, 0, 12)}
	for _, f := range facets {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0]))
		if n.Length() == 0 {
			m.Degenerate = true
		}
		// Flip facets that face the interior so every facet winds outward.
		center := f[0].Add(f[1]).Add(f[2]).Scale(1.0 / 3)
		if n.Dot(center.Sub(centroid)) < 0 {
			f[1], f[2] = f[2], f[1]
			n = n.Negate()
		}
		n = n.Normalize()
		for _, p := range f {
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
		}
	}
	return m, nil
}

// Board is a flat rectangle on the XZ plane facing +Y.
type Board struct {
	Width float32
	Depth float32
}

// Kind implements Primitive.
func (Board) Kind() string { return "board" }

// Generate implements Primitive.
func (b Board) Generate() ([]Mesh, error) {
	w, err := extent("board width", b.Width)
	if err != nil {
		return nil, err
	}
	d, err := extent("board depth", b.Depth)
	if err != nil {
		return nil, err
	}
	w, d = w/2, d/2
	up := math.UnitY
	return []Mesh{{
		Topology: TriangleStrip,
		Vertices: []Vertex{
			{Position: math.Vec3{X: -w, Z: -d}, Normal: up},
			{Position: math.Vec3{X: -w, Z: d}, Normal: up},
			{Position: math.Vec3{X: w, Z: -d}, Normal: up},
			{Position: math.Vec3{X: w, Z: d}, Normal: up},
		},
		Degenerate: w == 0 || d == 0,
	}}, nil
}
