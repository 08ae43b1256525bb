package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

const (
	// edgeEpsilon admits pixels a hair outside an edge so shared edges
	// leave no gaps.
	edgeEpsilon = 1e-4
	// degenerateEpsilon rejects triangles whose edges are (nearly)
	// parallel, relative to the edge lengths.
	degenerateEpsilon = 1e-6
)

// edge is one oriented triangle edge in screen space with its inward
// unit normal.
type edge struct {
	origin math.Vec2
	normal math.Vec2
}

func newEdge(a, b math.Vec2) edge {
	return edge{origin: a, normal: b.Sub(a).Perp().Normalize()}
}

func (e edge) inside(p math.Vec2) bool {
	return p.Sub(e.origin).Dot(e.normal) >= -edgeEpsilon
}

// barycentric solves for the weights of p within triangle (a, b, c).
type barycentric struct {
	a      math.Vec2
	e0, e1 math.Vec2
	d00    float32
	d01    float32
	d11    float32
	denom  float32
}

func newBarycentric(a, b, c math.Vec2) barycentric {
	e0 := b.Sub(a)
	e1 := c.Sub(a)
	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	return barycentric{
		a: a, e0: e0, e1: e1,
		d00: d00, d01: d01, d11: d11,
		denom: d00*d11 - d01*d01,
	}
}

func (bc *barycentric) degenerate() bool {
	return !(bc.denom > degenerateEpsilon*bc.d00*bc.d11)
}

func (bc *barycentric) weights(p math.Vec2) (u, v, w float32) {
	e2 := p.Sub(bc.a)
	d20 := e2.Dot(bc.e0)
	d21 := e2.Dot(bc.e1)
	v = (bc.d11*d20 - bc.d01*d21) / bc.denom
	w = (bc.d00*d21 - bc.d01*d20) / bc.denom
	return 1 - v - w, v, w
}

// rasterize scan-converts one post-divide triangle, depth tests every
// covered pixel and shades the survivors with program.
func (s *Surface) rasterize(program Program, face *FaceOutput, materials []Material) {
	v0, v1, v2 := &face[0], &face[1], &face[2]
	p0 := s.viewport.ToScreen(v0.Position.XYZ())
	p1 := s.viewport.ToScreen(v1.Position.XYZ())
	p2 := s.viewport.ToScreen(v2.Position.XYZ())

	if s.doubleSided {
		e0 := p1.XY().Sub(p0.XY())
		e1 := p2.XY().Sub(p0.XY())
		if e0[0]*e1[1]-e0[1]*e1[0] < 0 {
			v1, v2 = v2, v1
			p1, p2 = p2, p1
		}
	}

	a, b, c := p0.XY(), p1.XY(), p2.XY()
	bc := newBarycentric(a, b, c)
	if bc.degenerate() {
		s.stats.Degenerate++
		return
	}
	edges := [3]edge{newEdge(a, b), newEdge(b, c), newEdge(c, a)}

	lo := p0.Min(p1).Min(p2)
	hi := p0.Max(p1).Max(p2)
	minX := max(int(math.Floor(lo[0])), 0)
	minY := max(int(math.Floor(lo[1])), 0)
	maxX := min(int(math.Floor(hi[0])), s.width-1)
	maxY := min(int(math.Floor(hi[1])), s.height-1)

	s.stats.Rasterized++
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math.Vec2{float32(x), float32(y)}
			if !edges[0].inside(p) || !edges[1].inside(p) || !edges[2].inside(p) {
				continue
			}

			u, v, w := bc.weights(p)
			z := u*p0[2] + v*p1[2] + w*p2[2]
			i := y*s.width + x
			if z > s.depth[i] {
				s.stats.DepthRejected++
				continue
			}
			s.depth[i] = z

			out := InterpolateBarycentric(v0, v1, v2, u, v, w)
			m := materialFor(materials, out.UV[2])
			s.SetPixel(x, y, program.Fragment(s, &out, m))
			s.stats.Fragments++
		}
	}
}

// perspectiveDivide moves x, y and z into NDC, keeping the clip w.
func perspectiveDivide(face *FaceOutput) {
	for i := range face {
		p := &face[i].Position
		w := p[3]
		if w == 0 {
			continue
		}
		p[0] /= w
		p[1] /= w
		p[2] /= w
	}
}
