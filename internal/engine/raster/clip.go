package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

// clipEpsilon admits vertices sitting just behind a plane.
const clipEpsilon = 1e-5

// Plane is a clip-space half-space: points p with
// dot(Normal, p - Point) >= 0 are inside.
type Plane struct {
	Point  math.Vec4
	Normal math.Vec4
}

// Distance returns the signed distance of p from the plane.
func (p Plane) Distance(v math.Vec4) float32 {
	return p.Normal.Dot(v.Sub(p.Point))
}

// NearPlane keeps points with clip-space z >= 0.
func NearPlane(near float32) Plane {
	return Plane{Point: math.Vec4{0, 0, 0, near}, Normal: math.Vec4{0, 0, 1, 0}}
}

// FarPlane keeps points with z <= w.
func FarPlane() Plane {
	return Plane{Normal: math.Vec4{0, 0, -1, 1}}
}

// LeftPlane keeps points with x >= -w.
func LeftPlane() Plane {
	return Plane{Normal: math.Vec4{1, 0, 0, 1}}
}

// RightPlane keeps points with x <= w.
func RightPlane() Plane {
	return Plane{Normal: math.Vec4{-1, 0, 0, 1}}
}

// BottomPlane keeps points with y >= -w.
func BottomPlane() Plane {
	return Plane{Normal: math.Vec4{0, 1, 0, 1}}
}

// TopPlane keeps points with y <= w.
func TopPlane() Plane {
	return Plane{Normal: math.Vec4{0, -1, 0, 1}}
}

// ClipResult reports what ClipFace did with a triangle.
type ClipResult int

const (
	// Unclipped means the triangle is wholly inside.
	Unclipped ClipResult = iota
	// Discarded means the triangle is wholly outside.
	Discarded
	// Split means one or two replacement triangles were appended.
	Split
)

// String implements fmt.Stringer.
func (r ClipResult) String() string {
	switch r {
	case Unclipped:
		return "unclipped"
	case Discarded:
		return "discarded"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ClipFace clips a triangle against one plane. Replacement triangles are
// appended to out and keep the input winding.
func ClipFace(face *FaceOutput, plane Plane, out []FaceOutput) ([]FaceOutput, ClipResult) {
	var inside [3]bool
	count := 0
	for i := range face {
		inside[i] = plane.Distance(face[i].Position) >= -clipEpsilon
		if inside[i] {
			count++
		}
	}

	switch count {
	case 0:
		return out, Discarded
	case 3:
		return out, Unclipped
	case 1:
		i := 0
		for !inside[i] {
			i++
		}
		j, k := (i+1)%3, (i+2)%3
		a := clipEdge(&face[i], &face[j], plane)
		b := clipEdge(&face[i], &face[k], plane)
		out = append(out, FaceOutput{face[i], a, b})
	default:
		o := 0
		for inside[o] {
			o++
		}
		j, k := (o+1)%3, (o+2)%3
		a := clipEdge(&face[o], &face[j], plane)
		b := clipEdge(&face[k], &face[o], plane)
		out = append(out,
			FaceOutput{a, face[j], face[k]},
			FaceOutput{a, face[k], b},
		)
	}
	return out, Split
}

func clipEdge(a, b *VertexOutput, plane Plane) VertexOutput {
	_, t := math.Intersect(plane.Point, plane.Normal, a.Position, b.Position)
	return LerpVertexOutput(a, b, t)
}

// Clipper runs triangles through a chain of planes. Triangles produced by a
// split continue with the next plane. Buffers are reused across calls.
type Clipper struct {
	planes  []Plane
	pending []clipItem
	out     []FaceOutput
	scratch []FaceOutput

	Discarded int
	Split     int
}

type clipItem struct {
	face  FaceOutput
	stage int
}

// NewClipper creates a clipper over the given planes, applied in order.
func NewClipper(planes ...Plane) *Clipper {
	c := &Clipper{}
	c.SetPlanes(planes...)
	return c
}

// SetPlanes replaces the plane chain.
func (c *Clipper) SetPlanes(planes ...Plane) {
	c.planes = append(c.planes[:0], planes...)
}

// Planes returns the plane chain.
func (c *Clipper) Planes() []Plane {
	return c.planes
}

// Clip returns the triangles that survive every plane. The returned slice
// is owned by the clipper and valid until the next call.
func (c *Clipper) Clip(faces []FaceOutput) []FaceOutput {
	c.pending = c.pending[:0]
	c.out = c.out[:0]
	c.Discarded = 0
	c.Split = 0

	for i := range faces {
		c.pending = append(c.pending, clipItem{face: faces[i]})
	}
	for head := 0; head < len(c.pending); head++ {
		item := c.pending[head]
		c.process(&item)
	}
	return c.out
}

func (c *Clipper) process(item *clipItem) {
	for stage := item.stage; stage < len(c.planes); stage++ {
		var res ClipResult
		c.scratch, res = ClipFace(&item.face, c.planes[stage], c.scratch[:0])
		switch res {
		case Discarded:
			c.Discarded++
			return
		case Split:
			c.Split++
			for _, f := range c.scratch {
				c.pending = append(c.pending, clipItem{face: f, stage: stage + 1})
			}
			return
		}
	}
	c.out = append(c.out, item.face)
}
