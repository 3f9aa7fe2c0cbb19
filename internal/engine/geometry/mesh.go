// Package geometry generates vertex streams for the parametric primitives the
// scene is built from: cylinder, cuboid, tail wedge and floor board.
//
// Generators are pure. They never cache, and every call with the same
// parameters returns an identical stream.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hangar/pkg/math"
)

// ErrInvalidParameter is returned when a shape parameter is out of range.
var ErrInvalidParameter = errors.New("invalid parameter")

// Topology is the primitive grouping implied by a stream's vertex order.
type Topology int

const (
	TriangleStrip Topology = iota
	TriangleFan
	Triangles
	Quads
	// Lines pairs vertices into segments. It encloses no area.
	Lines
)

func (t Topology) String() string {
	switch t {
	case TriangleStrip:
		return "strip"
	case TriangleFan:
		return "fan"
	case Triangles:
		return "triangles"
	case Quads:
		return "quads"
	case Lines:
		return "lines"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Vertex is a position with its surface normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh is a vertex stream with its topology.
type Mesh struct {
	Topology Topology
	Vertices []Vertex

	// Degenerate is set when a zero extent collapsed the mesh to zero area.
	Degenerate bool
}

// Triangles returns the mesh's triangles as vertex triples in the winding
// the topology implies.
func (m Mesh) Triangles() [][3]Vertex {
	v := m.Vertices
	var tris [][3]Vertex
	switch m.Topology {
	case TriangleStrip:
		for i := 2; i < len(v); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]Vertex{v[i-2], v[i-1], v[i]})
			} else {
				tris = append(tris, [3]Vertex{v[i-1], v[i-2], v[i]})
			}
		}
	case TriangleFan:
		for i := 2; i < len(v); i++ {
			tris = append(tris, [3]Vertex{v[0], v[i-1], v[i]})
		}
	case Triangles:
		for i := 0; i+2 < len(v); i += 3 {
			tris = append(tris, [3]Vertex{v[i], v[i+1], v[i+2]})
		}
	case Quads:
		for i := 0; i+3 < len(v); i += 4 {
			tris = append(tris,
				[3]Vertex{v[i], v[i+1], v[i+2]},
				[3]Vertex{v[i], v[i+2], v[i+3]},
			)
		}
	}
	return tris
}

// Area returns the total surface area of the mesh.
func (m Mesh) Area() float64 {
	var area float64
	for _, tri := range m.Triangles() {
		e1 := tri[1].Position.Sub(tri[0].Position)
		e2 := tri[2].Position.Sub(tri[0].Position)
		area += float64(e1.Cross(e2).Length()) / 2
	}
	return area
}

// Bounds returns the axis-aligned bounding box of the mesh positions.
func (m Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		p := v.Position
		lo = math.Vec3{X: min32(lo.X, p.X), Y: min32(lo.Y, p.Y), Z: min32(lo.Z, p.Z)}
		hi = math.Vec3{X: max32(hi.X, p.X), Y: max32(hi.Y, p.Y), Z: max32(hi.Z, p.Z)}
	}
	return lo, hi
}

// QuadsToTriangles expands a quad list into an independent triangle list.
// Pipelines without native quads draw the result instead.
func QuadsToTriangles(vertices []Vertex) []Vertex {
	out := make([]Vertex, 0, len(vertices)/4*6)
	for i := 0; i+3 < len(vertices); i += 4 {
		q := vertices[i : i+4]
		out = append(out, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	return out
}

// extent validates a dimension and clamps negatives to zero.
func extent(name string, v float32) (float32, error) {
	if !math.IsFinite(v) {
		return 0, fmt.Errorf("%s %v: %w", name, v, ErrInvalidParameter)
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
