package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hangar/internal/engine/geometry"
)

// DrawCall is one glDrawArrays range inside the frame's vertex buffer.
type DrawCall struct {
	Part  string
	Mode  uint32
	First int32
	Count int32
}

// glMode maps a topology to the GL primitive it is drawn with. Quads have
// no core-profile primitive and must be expanded first.
func glMode(t geometry.Topology) (uint32, error) {
	switch t {
	case geometry.TriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	case geometry.TriangleFan:
		return gl.TRIANGLE_FAN, nil
	case geometry.Triangles:
		return gl.TRIANGLES, nil
	case geometry.Lines:
		return gl.LINES, nil
	default:
		return 0, fmt.Errorf("no GL mode for %s", t)
	}
}

// Pack concatenates batches into one interleaved buffer and the draw calls
// that cover it. Quad batches are split into triangles. Empty batches are
// skipped.
func Pack(batches []geometry.Batch, dst []float32) ([]float32, []DrawCall, error) {
	dst = dst[:0]
	calls := make([]DrawCall, 0, len(batches))

	for _, b := range batches {
		if b.Topology == geometry.Quads {
			b.Vertices = geometry.QuadsToTriangles(b.Vertices)
			b.Topology = geometry.Triangles
		}
		if len(b.Vertices) == 0 {
			continue
		}

		mode, err := glMode(b.Topology)
		if err != nil {
			return nil, nil, fmt.Errorf("part %s: %w", b.Part, err)
		}

		calls = append(calls, DrawCall{
			Part:  b.Part,
			Mode:  mode,
			First: int32(len(dst) / geometry.FloatsPerVertex),
			Count: int32(len(b.Vertices)),
		})
		dst = append(dst, b.Interleave()...)
	}
	return dst, calls, nil
}
