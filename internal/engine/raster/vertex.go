package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

// Vertex is one mesh vertex in object space.
type Vertex struct {
	Position math.Vec4
	Normal   math.Vec3
	Tangent  math.Vec3
	Color    math.Vec3
	// UV holds (u, v, material index).
	UV math.Vec3

	// Skinned selects bone blending. Unskinned vertices use the model
	// transform alone.
	Skinned bool
	Bones   [4]int
	Weights [4]float32
}

// Face is a triangle referencing three submitted vertices.
type Face [3]*Vertex

// VertexOutput carries a vertex from the vertex stage to the fragment stage.
// Position is in clip space until the perspective divide, after which x, y
// and z are NDC and w keeps the clip-space w.
type VertexOutput struct {
	Position      math.Vec4
	WorldPosition math.Vec3
	Normal        math.Vec3
	Tangent       math.Vec3
	Color         math.Vec3
	UV            math.Vec3
	// Light and camera vectors, in world or tangent space depending on
	// the program.
	LightVector  math.Vec3
	CameraVector math.Vec3
}

// FaceOutput is a shaded triangle travelling through clipping.
type FaceOutput [3]VertexOutput

// LerpVertexOutput blends every attribute of a and b linearly.
func LerpVertexOutput(a, b *VertexOutput, t float32) VertexOutput {
	return VertexOutput{
		Position:      a.Position.Lerp(b.Position, t),
		WorldPosition: a.WorldPosition.Lerp(b.WorldPosition, t),
		Normal:        a.Normal.Lerp(b.Normal, t),
		Tangent:       a.Tangent.Lerp(b.Tangent, t),
		Color:         a.Color.Lerp(b.Color, t),
		UV:            a.UV.Lerp(b.UV, t),
		LightVector:   a.LightVector.Lerp(b.LightVector, t),
		CameraVector:  a.CameraVector.Lerp(b.CameraVector, t),
	}
}

// InterpolateBarycentric blends three post-divide vertices with weights
// (u, v, w). Varyings are perspective correct using each vertex's clip w;
// the position is blended linearly. UV coordinates outside [0, 1] wrap.
func InterpolateBarycentric(v0, v1, v2 *VertexOutput, u, v, w float32) VertexOutput {
	i0 := u / clipW(v0)
	i1 := v / clipW(v1)
	i2 := w / clipW(v2)
	sum := i0 + i1 + i2
	if sum == 0 {
		i0, i1, i2, sum = u, v, w, 1
	}
	i0, i1, i2 = i0/sum, i1/sum, i2/sum

	blend := func(a, b, c math.Vec3) math.Vec3 {
		return a.Scale(i0).Add(b.Scale(i1)).Add(c.Scale(i2))
	}

	out := VertexOutput{
		Position:      v0.Position.Scale(u).Add(v1.Position.Scale(v)).Add(v2.Position.Scale(w)),
		WorldPosition: blend(v0.WorldPosition, v1.WorldPosition, v2.WorldPosition),
		Normal:        blend(v0.Normal, v1.Normal, v2.Normal),
		Tangent:       blend(v0.Tangent, v1.Tangent, v2.Tangent),
		Color:         blend(v0.Color, v1.Color, v2.Color),
		UV:            blend(v0.UV, v1.UV, v2.UV),
		LightVector:   blend(v0.LightVector, v1.LightVector, v2.LightVector),
		CameraVector:  blend(v0.CameraVector, v1.CameraVector, v2.CameraVector),
	}
	out.UV[0] = wrapUV(out.UV[0])
	out.UV[1] = wrapUV(out.UV[1])
	return out
}

func clipW(o *VertexOutput) float32 {
	if o.Position[3] == 0 {
		return 1
	}
	return o.Position[3]
}

// uvEdgeEpsilon absorbs interpolation error at the texture edges.
const uvEdgeEpsilon = 1e-5

// wrapUV keeps the fractional part of coordinates outside [0, 1]. Values
// within uvEdgeEpsilon of the range snap to its edge.
func wrapUV(x float32) float32 {
	switch {
	case x >= 0 && x <= 1:
		return x
	case x > 1 && x <= 1+uvEdgeEpsilon:
		return 1
	case x < 0 && x >= -uvEdgeEpsilon:
		return 0
	}
	return x - math.Floor(x)
}
