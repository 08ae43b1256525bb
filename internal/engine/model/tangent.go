package model

import (
	"github.com/Faultbox/softras/pkg/math"
)

// ComputeTangents derives per-vertex tangents from UV derivatives.
// Each triangle's tangent is accumulated into its vertices, then
// orthogonalized against the vertex normal. Triangles with degenerate
// UVs contribute nothing; vertices left without a tangent get an
// arbitrary perpendicular.
func ComputeTangents(m *Mesh) {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2]

		dp0 := v1.Position.XYZ().Sub(v0.Position.XYZ())
		dp1 := v2.Position.XYZ().Sub(v0.Position.XYZ())
		du0, dv0 := v1.UV[0]-v0.UV[0], v1.UV[1]-v0.UV[1]
		du1, dv1 := v2.UV[0]-v0.UV[0], v2.UV[1]-v0.UV[1]

		det := du0*dv1 - dv0*du1
		if math.Abs(det) < 1e-8 {
			continue
		}
		t := dp0.Scale(dv1).Sub(dp1.Scale(dv0)).Scale(1 / det)
		acc[i0] = acc[i0].Add(t)
		acc[i1] = acc[i1].Add(t)
		acc[i2] = acc[i2].Add(t)
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := acc[i].Sub(n.Scale(n.Dot(acc[i])))
		if t.Length() < 1e-6 {
			t = perpendicular(n)
		}
		m.Vertices[i].Tangent = t.Normalize()
	}
}

func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.Vec3{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		axis = math.Vec3{0, 1, 0}
	}
	return axis.Sub(n.Scale(n.Dot(axis)))
}
