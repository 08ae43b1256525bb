package model

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

// Triangles are clockwise when seen from the side their normal faces,
// which is the winding the rasterizer treats as front facing.

type builder struct {
	mesh *Mesh
	opts BuildOptions
}

func newBuilder(name string, opts BuildOptions) *builder {
	return &builder{mesh: &Mesh{Name: name}, opts: opts}
}

func (b *builder) vertex(p, n math.Vec3, u, v float32) uint32 {
	b.mesh.Vertices = append(b.mesh.Vertices, raster.Vertex{
		Position: p.Vec4(1),
		Normal:   n,
		Color:    b.opts.color(),
		UV:       math.Vec3{u, v, float32(b.opts.Material)},
	})
	return uint32(len(b.mesh.Vertices) - 1)
}

func (b *builder) triangle(i0, i1, i2 uint32) {
	if b.opts.ReverseWinding {
		i1, i2 = i2, i1
	}
	b.mesh.Indices = append(b.mesh.Indices, i0, i1, i2)
}

// quad adds a face whose corners are bottom-left, top-left, top-right,
// bottom-right as seen from outside.
func (b *builder) quad(c [4]math.Vec3, n math.Vec3) {
	i0 := b.vertex(c[0], n, 0, 1)
	i1 := b.vertex(c[1], n, 0, 0)
	i2 := b.vertex(c[2], n, 1, 0)
	i3 := b.vertex(c[3], n, 1, 1)
	b.triangle(i0, i1, i2)
	b.triangle(i0, i2, i3)
}

func (b *builder) finish() *Mesh {
	m := b.mesh
	m.Groups = []MaterialGroup{{Material: b.opts.Material, IndexCount: len(m.Indices)}}
	ComputeTangents(m)
	m.Bounds = ComputeBounds(m.Vertices)
	return m
}

// Quad builds a 2x2 square in the XY plane facing -Z.
func Quad(opts BuildOptions) *Mesh {
	b := newBuilder("quad", opts)
	b.quad([4]math.Vec3{{-1, -1, 0}, {-1, 1, 0}, {1, 1, 0}, {1, -1, 0}}, math.Vec3{0, 0, -1})
	return b.finish()
}

// Cube builds a 2x2x2 cube centered on the origin with flat faces.
func Cube(opts BuildOptions) *Mesh {
	b := newBuilder("cube", opts)
	faces := []struct{ n, up math.Vec3 }{
		{math.Vec3{0, 0, -1}, math.Vec3{0, 1, 0}},
		{math.Vec3{0, 0, 1}, math.Vec3{0, 1, 0}},
		{math.Vec3{-1, 0, 0}, math.Vec3{0, 1, 0}},
		{math.Vec3{1, 0, 0}, math.Vec3{0, 1, 0}},
		{math.Vec3{0, 1, 0}, math.Vec3{0, 0, 1}},
		{math.Vec3{0, -1, 0}, math.Vec3{0, 0, -1}},
	}
	for _, f := range faces {
		right := f.n.Cross(f.up)
		b.quad([4]math.Vec3{
			f.n.Sub(right).Sub(f.up),
			f.n.Sub(right).Add(f.up),
			f.n.Add(right).Add(f.up),
			f.n.Add(right).Sub(f.up),
		}, f.n)
	}
	return b.finish()
}

// Sphere builds a UV sphere of the given radius.
func Sphere(radius float32, segments, rings int, opts BuildOptions) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)
	b := newBuilder("sphere", opts)

	for i := 0; i <= rings; i++ {
		theta := gomath.Pi * float64(i) / float64(rings)
		for j := 0; j <= segments; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(segments)
			n := math.Vec3{
				float32(gomath.Sin(theta) * gomath.Cos(phi)),
				float32(gomath.Cos(theta)),
				float32(gomath.Sin(theta) * gomath.Sin(phi)),
			}
			b.vertex(n.Scale(radius), n, float32(j)/float32(segments), float32(i)/float32(rings))
		}
	}

	row := uint32(segments + 1)
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			tl := uint32(i)*row + uint32(j)
			tr := tl + 1
			bl := tl + row
			br := bl + 1
			// Pole rows collapse one triangle of each quad.
			if i != 0 {
				b.triangle(bl, tl, tr)
			}
			if i != rings-1 {
				b.triangle(bl, tr, br)
			}
		}
	}
	return b.finish()
}

// Column builds an open cylinder along +Y, skinned to a chain of bones
// and driven by a swaying animation.
func Column(radius, height float32, segments, rings, bones int, opts BuildOptions) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 1)
	bones = max(bones, 1)
	b := newBuilder("column", opts)

	for i := 0; i <= rings; i++ {
		h := height * (1 - float32(i)/float32(rings))
		b0, w1 := boneAt(h, height, bones)
		for j := 0; j <= segments; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(segments)
			n := math.Vec3{float32(gomath.Cos(phi)), 0, float32(gomath.Sin(phi))}
			idx := b.vertex(math.Vec3{n[0] * radius, h, n[2] * radius}, n, float32(j)/float32(segments), float32(i)/float32(rings))

			v := &b.mesh.Vertices[idx]
			v.Skinned = true
			v.Bones = [4]int{b0, min(b0+1, bones-1), 0, 0}
			v.Weights = [4]float32{1 - w1, w1, 0, 0}
		}
	}

	row := uint32(segments + 1)
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			tl := uint32(i)*row + uint32(j)
			tr := tl + 1
			bl := tl + row
			br := bl + 1
			b.triangle(bl, tl, tr)
			b.triangle(bl, tr, br)
		}
	}

	m := b.finish()
	m.Skeleton = ChainSkeleton(bones, height)
	m.Animation = SwayAnimation(bones, 2000, 0.35)
	return m
}

// boneAt returns the lower bone and the weight of the one above for a
// point at height h along a chain of bones spanning height.
func boneAt(h, height float32, bones int) (int, float32) {
	if bones == 1 || height <= 0 {
		return 0, 0
	}
	t := math.Clamp(h/height, 0, 1) * float32(bones-1)
	b0 := int(t)
	if b0 >= bones-1 {
		return bones - 1, 0
	}
	return b0, t - float32(b0)
}

// ComputeBounds returns the bounding box of the vertex positions.
func ComputeBounds(vertices []raster.Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	bounds := Bounds{
		Min: math.Vec3{1e10, 1e10, 1e10},
		Max: math.Vec3{-1e10, -1e10, -1e10},
	}
	for i := range vertices {
		p := vertices[i].Position.XYZ()
		bounds.Min = bounds.Min.Min(p)
		bounds.Max = bounds.Max.Max(p)
	}
	return bounds
}

var builtins = map[string]func() *Mesh{
	"quad":   func() *Mesh { return Quad(BuildOptions{}) },
	"cube":   func() *Mesh { return Cube(BuildOptions{}) },
	"sphere": func() *Mesh { return Sphere(1, 32, 16, BuildOptions{}) },
	"column": func() *Mesh { return Column(0.3, 2, 12, 8, 4, BuildOptions{}) },
}

// ByName builds one of the procedural meshes.
func ByName(name string) (*Mesh, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q (have %v)", name, Names())
	}
	return build(), nil
}

// Names lists the procedural meshes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
