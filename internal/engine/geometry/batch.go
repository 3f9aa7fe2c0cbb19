package geometry

// FloatsPerVertex is the interleaved layout width: position, normal, color.
const FloatsPerVertex = 9

// Color is a linear RGB color.
type Color [3]float32

// Batch is one draw submission: a world-space mesh with a flat color.
type Batch struct {
	Part     string
	Topology Topology
	Vertices []Vertex
	Color    Color
}

// Interleave packs the batch as [px py pz nx ny nz r g b] per vertex.
func (b Batch) Interleave() []float32 {
	out := make([]float32, 0, len(b.Vertices)*FloatsPerVertex)
	for _, v := range b.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			b.Color[0], b.Color[1], b.Color[2],
		)
	}
	return out
}
