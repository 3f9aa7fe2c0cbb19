// Package scene assembles the airplane model from generated primitives.
//
// Assembly is stateless: every call regenerates each part from the model's
// dimensions, places it through its transform chain and tags it with the
// part color. Nothing is cached between frames.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hangar/internal/engine/geometry"
	"github.com/Faultbox/hangar/internal/engine/transform"
	"github.com/Faultbox/hangar/pkg/math"
)

// Part names.
const (
	PartBoard     = "board"
	PartBody      = "body"
	PartLeftWing  = "wing_left"
	PartRightWing = "wing_right"
	PartTail      = "tail"
)

// Part is one drawable piece of the scene.
type Part struct {
	Name      string
	Primitive geometry.Primitive
	Color     geometry.Color
	// Root is the frame the chain is composed onto.
	Root math.Mat4
	// Chain returns the part's ops for a pose.
	Chain func(Pose) transform.Chain
}

// Matrix returns the part's local-to-world matrix for a pose.
func (p Part) Matrix(pose Pose) math.Mat4 {
	return transform.Compose(p.Root, p.Chain(pose)...)
}

// Scene is the assembled airplane.
type Scene struct {
	model Model
	parts []Part
}

// New builds the scene and generates every part once so bad dimensions
// fail here rather than mid-frame.
func New(model Model, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{model: model, parts: buildParts(model)}

	meshCount, vertices := 0, 0
	for _, p := range s.parts {
		meshes, err := p.Primitive.Generate()
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Name, err)
		}
		degenerate := false
		for _, m := range meshes {
			degenerate = degenerate || m.Degenerate
			vertices += len(m.Vertices)
		}
		meshCount += len(meshes)
		if degenerate {
			log.Warn("degenerate part geometry",
				zap.String("part", p.Name),
				zap.String("kind", p.Primitive.Kind()),
			)
		}
	}

	log.Debug("scene assembled",
		zap.Int("parts", len(s.parts)),
		zap.Int("batches", meshCount),
		zap.Int("vertices", vertices),
	)
	return s, nil
}

// Model returns the scene's dimensions.
func (s *Scene) Model() Model { return s.model }

// Parts returns the scene parts in draw order.
func (s *Scene) Parts() []Part { return s.parts }

// Assemble generates every part for pose and returns one batch per mesh.
func (s *Scene) Assemble(pose Pose) ([]geometry.Batch, error) {
	var batches []geometry.Batch
	for _, p := range s.parts {
		meshes, err := p.Primitive.Generate()
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Name, err)
		}
		m := p.Matrix(pose)
		for _, mesh := range meshes {
			placed := transform.Apply(m, mesh)
			batches = append(batches, geometry.Batch{
				Part:     p.Name,
				Topology: placed.Topology,
				Vertices: placed.Vertices,
				Color:    p.Color,
			})
		}
	}
	return batches, nil
}

func buildParts(model Model) []Part {
	root := math.Translate(model.BodyCenter.X, model.BodyCenter.Y, model.BodyCenter.Z)
	fixed := func(ops ...transform.Op) func(Pose) transform.Chain {
		return func(Pose) transform.Chain { return ops }
	}
	wing := func(side float32) func(Pose) transform.Chain {
		return func(pose Pose) transform.Chain {
			chain := transform.Chain{transform.Translate(side*model.WingOffset, 0, 0)}
			if pose.WingRoll != 0 {
				// Roll before the attach offset so the wing pivots on the centerline.
				chain = append(transform.Chain{transform.Rotate(pose.WingRoll, math.UnitZ)}, chain...)
			}
			return chain
		}
	}

	var parts []Part
	if model.ShowBoard {
		s := model.BoardScale
		parts = append(parts, Part{
			Name:      PartBoard,
			Primitive: model.Board,
			Color:     White,
			Root:      math.Identity(),
			Chain:     fixed(transform.Scale(s.X, s.Y, s.Z)),
		})
	}
	return append(parts,
		Part{
			Name:      PartBody,
			Primitive: model.Body,
			Color:     Blue,
			Root:      root,
			Chain:     fixed(transform.RotateDegrees(model.BodyPitch, math.UnitX)),
		},
		Part{Name: PartRightWing, Primitive: model.Wing, Color: Red, Root: root, Chain: wing(1)},
		Part{Name: PartLeftWing, Primitive: model.Wing, Color: Red, Root: root, Chain: wing(-1)},
		Part{
			Name:      PartTail,
			Primitive: model.Tail,
			Color:     Green,
			Root:      root,
			Chain:     fixed(transform.Translate(0, 0, model.TailOffset)),
		},
	)
}
