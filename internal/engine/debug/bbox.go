// Package debug builds helper geometry drawn over the scene.
package debug

import (
	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/pkg/math"
)

// BoundsVertexCount is the number of vertices in one box wireframe (12 edges x 2).
const BoundsVertexCount = 24

// BoundsColor is the wireframe color.
var BoundsColor = geometry.Color{1, 0.85, 0.1}

// Bounds returns one wireframe box per part, enclosing every batch tagged
// with that part and padded on all sides. Parts keep their first-seen order.
func Bounds(batches []geometry.Batch, padding float32) []geometry.Batch {
	var order []string
	merged := make(map[string][]geometry.Vertex)
	for _, b := range batches {
		if _, seen := merged[b.Part]; !seen {
			order = append(order, b.Part)
		}
		merged[b.Part] = append(merged[b.Part], b.Vertices...)
	}

	out := make([]geometry.Batch, 0, len(order))
	for _, part := range order {
		verts := merged[part]
		if len(verts) == 0 {
			continue
		}
		lo, hi := geometry.Mesh{Vertices: verts}.Bounds()
		pad := math.Vec3{X: padding, Y: padding, Z: padding}
		out = append(out, geometry.Batch{
			Part:     part + ".bounds",
			Topology: geometry.Lines,
			Vertices: BoxEdges(lo.Sub(pad), hi.Add(pad)),
			Color:    BoundsColor,
		})
	}
	return out
}

// BoxEdges returns the 12 edges of an axis-aligned box as line vertices.
func BoxEdges(lo, hi math.Vec3) []geometry.Vertex {
	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	edges := [12][2]math.Vec3{
		// Bottom face
		{corner(false, false, false), corner(true, false, false)},
		{corner(true, false, false), corner(true, false, true)},
		{corner(true, false, true), corner(false, false, true)},
		{corner(false, false, true), corner(false, false, false)},
		// Top face
		{corner(false, true, false), corner(true, true, false)},
		{corner(true, true, false), corner(true, true, true)},
		{corner(true, true, true), corner(false, true, true)},
		{corner(false, true, true), corner(false, true, false)},
		// Verticals
		{corner(false, false, false), corner(false, true, false)},
		{corner(true, false, false), corner(true, true, false)},
		{corner(true, false, true), corner(true, true, true)},
		{corner(false, false, true), corner(false, true, true)},
	}

	out := make([]geometry.Vertex, 0, BoundsVertexCount)
	for _, e := range edges {
		// Lines are shaded like surfaces; an upward normal keeps them lit
		out = append(out,
			geometry.Vertex{Position: e[0], Normal: math.UnitY},
			geometry.Vertex{Position: e[1], Normal: math.UnitY},
		)
	}
	return out
}
