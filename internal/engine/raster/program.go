package raster

import (
	"fmt"
	"sort"

	"github.com/Faultbox/softras/pkg/math"
)

// Program is a vertex and fragment shading pair.
type Program interface {
	Name() string
	Vertex(s *Surface, v *Vertex) VertexOutput
	Fragment(s *Surface, in *VertexOutput, m *Material) math.Vec4
}

// Shading constants.
const (
	lambertFloor      = 0.2
	normalMapFloor    = 0.3
	lambertShininess  = 32
	standardShininess = 128
)

// Lambert shades with the interpolated world normal, optional diffuse map
// and vertex color. It ignores normal maps.
type Lambert struct{}

// NormalMapped perturbs the normal with the material's normal map in
// tangent space, falling back to the world normal when no map is bound.
type NormalMapped struct{}

// Reflective is NormalMapped plus an environment reflection weighted by
// the inverse of the roughness map.
type Reflective struct{}

var programs = map[string]Program{
	"lambert":       Lambert{},
	"normal-mapped": NormalMapped{},
	"reflective":    Reflective{},
}

// ProgramByName looks up a shading program by its Name.
func ProgramByName(name string) (Program, error) {
	p, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown shading program %q (have %v)", name, ProgramNames())
	}
	return p, nil
}

// ProgramNames lists the registered program names in sorted order.
func ProgramNames() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name implements Program.
func (Lambert) Name() string { return "lambert" }

// Vertex implements Program. Light and camera vectors stay in world space.
func (Lambert) Vertex(s *Surface, v *Vertex) VertexOutput {
	out := s.transformVertex(v)
	out.LightVector = s.frame.light.Sub(out.WorldPosition)
	out.CameraVector = s.frame.camera.Sub(out.WorldPosition)
	return out
}

// Fragment implements Program.
func (Lambert) Fragment(s *Surface, in *VertexOutput, m *Material) math.Vec4 {
	n := in.Normal.Normalize()
	l := in.LightVector.Normalize()
	d := max(n.Dot(l), lambertFloor)

	albedo := math.Vec4{in.Color[0], in.Color[1], in.Color[2], 1}
	if m.Diffuse.Present() {
		albedo = m.Diffuse.Sample(in.UV)
	}
	rgb := albedo.XYZ().Scale(d).
		Add(specular(m, in.UV, l, n, in.CameraVector, lambertShininess)).
		Add(emissive(m, in.UV))
	return finish(m, in.UV, rgb, albedo[3])
}

// Name implements Program.
func (NormalMapped) Name() string { return "normal-mapped" }

// Vertex implements Program. Light and camera vectors are moved into
// tangent space.
func (NormalMapped) Vertex(s *Surface, v *Vertex) VertexOutput {
	return tangentVertex(s, v)
}

// Fragment implements Program.
func (NormalMapped) Fragment(s *Surface, in *VertexOutput, m *Material) math.Vec4 {
	sh := shadeNormalMapped(s, in, m)
	return finish(m, in.UV, sh.rgb, sh.alpha)
}

// Name implements Program.
func (Reflective) Name() string { return "reflective" }

// Vertex implements Program.
func (Reflective) Vertex(s *Surface, v *Vertex) VertexOutput {
	return tangentVertex(s, v)
}

// Fragment implements Program. Without an environment or a roughness map
// it matches NormalMapped.
func (Reflective) Fragment(s *Surface, in *VertexOutput, m *Material) math.Vec4 {
	sh := shadeNormalMapped(s, in, m)
	if s.environment != nil && m.Roughness.Present() {
		view := in.WorldPosition.Sub(s.frame.camera).Normalize()
		r := math.Reflect(view, sh.worldNormal).Normalize()
		env := s.environment.Sample(r).XYZ()
		rough := m.Roughness.Sample(in.UV).XYZ()
		sh.rgb = sh.rgb.Add(env.Mul(math.Vec3{1, 1, 1}.Sub(rough)))
	}
	return finish(m, in.UV, sh.rgb, sh.alpha)
}

func tangentVertex(s *Surface, v *Vertex) VertexOutput {
	out := s.transformVertex(v)
	basis := tangentBasis(&out)
	out.LightVector = basis.MulVec3(s.frame.light.Sub(out.WorldPosition))
	out.CameraVector = basis.MulVec3(s.frame.camera.Sub(out.WorldPosition))
	return out
}

type shaded struct {
	rgb         math.Vec3
	alpha       float32
	worldNormal math.Vec3
}

func shadeNormalMapped(s *Surface, in *VertexOutput, m *Material) shaded {
	var n, l, cam, worldNormal math.Vec3
	var floor float32

	if m.Normal.Present() {
		n = m.Normal.Sample(in.UV).XYZ().Scale(2).AddScalar(-1).Normalize()
		l = in.LightVector.Normalize()
		cam = in.CameraVector
		floor = normalMapFloor

		wn := in.Normal.Normalize()
		t := in.Tangent.Normalize()
		b := wn.Cross(t).Normalize()
		worldNormal = t.Scale(n[0]).Add(b.Scale(n[1])).Add(wn.Scale(n[2])).Normalize()
	} else {
		n = in.Normal.Normalize()
		l = s.frame.light.Sub(in.WorldPosition).Normalize()
		cam = s.frame.camera.Sub(in.WorldPosition)
		floor = lambertFloor
		worldNormal = n
	}

	d := max(n.Dot(l), floor)
	albedo := m.Diffuse.Sample(in.UV)
	rgb := albedo.XYZ().Scale(d).
		Add(specular(m, in.UV, l, n, cam, standardShininess)).
		Add(emissive(m, in.UV))
	return shaded{rgb: rgb, alpha: albedo[3], worldNormal: worldNormal}
}

// specular is a reflection-vector highlight scaled by the roughness map,
// present only when one is bound.
func specular(m *Material, uv math.Vec3, l, n, camera math.Vec3, shininess float32) math.Vec3 {
	if !m.Roughness.Present() {
		return math.Vec3{}
	}
	r := math.Reflect(l.Neg(), n).Normalize()
	sim := math.Pow(max(r.Dot(camera.Normalize()), 0), shininess)
	return m.Roughness.Sample(uv).XYZ().Scale(sim)
}

func emissive(m *Material, uv math.Vec3) math.Vec3 {
	if !m.Emissive.Present() {
		return math.Vec3{}
	}
	return m.Emissive.Sample(uv).XYZ()
}

// finish applies ambient occlusion to color and alpha.
func finish(m *Material, uv math.Vec3, rgb math.Vec3, alpha float32) math.Vec4 {
	ao := m.AmbientOcclusion.Sample(uv)
	rgb = rgb.Mul(ao.XYZ())
	return math.Vec4{rgb[0], rgb[1], rgb[2], alpha * ao[3]}
}
