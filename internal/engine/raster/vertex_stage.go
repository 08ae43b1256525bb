package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

// frameState holds values derived once per draw call.
type frameState struct {
	viewProj math.Mat4
	light    math.Vec3
	camera   math.Vec3
}

func (s *Surface) beginFrame() {
	s.frame = frameState{
		viewProj: s.projection.Matrix.Mul(s.view),
		light:    s.light.PositionAt(s.time),
		camera:   s.view.Translation(),
	}
}

// skinMatrix blends the bone poses referenced by v. Bones outside the
// table are ignored, and a skinned vertex with no usable weight stays
// unskinned.
func (s *Surface) skinMatrix(v *Vertex) math.Mat4 {
	if !v.Skinned {
		return math.Identity()
	}
	var m math.Mat4
	var total float32
	for i, w := range v.Weights {
		b := v.Bones[i]
		if w == 0 || b < 0 || b >= len(s.bones) {
			continue
		}
		m = m.Add(s.bones[b].ScaleScalar(w))
		total += w
	}
	if total == 0 {
		return math.Identity()
	}
	return m
}

// transformVertex runs the shared part of every vertex program: skinning,
// model and view-projection transforms and attribute pass-through.
// Normals use the skinned model matrix directly, so non-uniform scale
// skews them. Tangents take the model matrix alone and are not skinned.
func (s *Surface) transformVertex(v *Vertex) VertexOutput {
	model := s.model.Mul(s.skinMatrix(v))
	world := model.MulVec4(v.Position)

	normal := model.MulDirection(v.Normal).Normalize()
	tangent := s.model.MulDirection(v.Tangent).Normalize()

	return VertexOutput{
		Position:      s.frame.viewProj.MulVec4(world),
		WorldPosition: world.XYZ(),
		Normal:        normal,
		Tangent:       tangent,
		Color:         v.Color,
		UV:            v.UV,
	}
}

// tangentBasis returns the world-to-tangent matrix for a vertex output,
// with rows tangent, bitangent and normal.
func tangentBasis(o *VertexOutput) math.Mat3 {
	bitangent := o.Normal.Cross(o.Tangent).Normalize()
	return math.Mat3FromRows(o.Tangent, bitangent, o.Normal)
}
