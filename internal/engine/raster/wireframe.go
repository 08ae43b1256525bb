package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

// Line draws a one-pixel line between two screen points without depth
// testing.
func (s *Surface) Line(a, b math.Vec2, c math.Vec4) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		s.plot(a, c)
		return
	}
	steps := int(length + 1)
	for i := 0; i <= steps; i++ {
		p := a.Lerp(b, float32(i)/float32(steps))
		s.plot(p, c)
	}
}

func (s *Surface) plot(p math.Vec2, c math.Vec4) {
	s.SetPixel(int(math.Floor(p[0]+0.5)), int(math.Floor(p[1]+0.5)), c)
}

// DrawWireframe overlays the edges of an indexed triangle list. Geometry is
// transformed and near clipped like DrawTriangles, but no depth test or
// shading runs.
func (s *Surface) DrawWireframe(vertices []Vertex, indices []uint32, c math.Vec4) error {
	if err := validateIndices(len(vertices), indices); err != nil {
		return err
	}
	s.beginFrame()

	s.outputs = s.outputs[:0]
	for i := 0; i < len(indices); i += 3 {
		s.outputs = append(s.outputs, FaceOutput{
			s.transformVertex(&vertices[indices[i]]),
			s.transformVertex(&vertices[indices[i+1]]),
			s.transformVertex(&vertices[indices[i+2]]),
		})
	}

	for _, face := range s.clipper.Clip(s.outputs) {
		perspectiveDivide(&face)
		var pts [3]math.Vec2
		for i := range face {
			pts[i] = s.viewport.ToScreen(face[i].Position.XYZ()).XY()
		}
		s.Line(pts[0], pts[1], c)
		s.Line(pts[1], pts[2], c)
		s.Line(pts[2], pts[0], c)
	}
	return nil
}
