package raster

import (
	"github.com/Faultbox/softras/pkg/math"
)

// CubeFace identifies one face of a cube map.
type CubeFace int

// Faces in the conventional +X, -X, +Y, -Y, +Z, -Z order.
const (
	PositiveX CubeFace = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

var cubeFaceNames = [...]string{"+x", "-x", "+y", "-y", "+z", "-z"}

// String implements fmt.Stringer.
func (f CubeFace) String() string {
	if f < 0 || int(f) >= len(cubeFaceNames) {
		return "unknown"
	}
	return cubeFaceNames[f]
}

// CubeMap is a six-face environment.
type CubeMap struct {
	Faces [6]*Surface
}

// NewCubeMap builds a cube map from faces in CubeFace order.
func NewCubeMap(faces [6]*Surface) *CubeMap {
	return &CubeMap{Faces: faces}
}

// CubeFaceFor picks the face a direction hits and the (u, v) within it.
// Ties between axes prefer x, then y.
func CubeFaceFor(dir math.Vec3) (CubeFace, math.Vec2) {
	ax, ay, az := math.Abs(dir[0]), math.Abs(dir[1]), math.Abs(dir[2])

	var face CubeFace
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir[0] >= 0 {
			face, sc, tc = PositiveX, -dir[2], -dir[1]
		} else {
			face, sc, tc = NegativeX, dir[2], -dir[1]
		}
	case ay >= az:
		ma = ay
		if dir[1] >= 0 {
			face, sc, tc = PositiveY, dir[0], dir[2]
		} else {
			face, sc, tc = NegativeY, dir[0], -dir[2]
		}
	default:
		ma = az
		if dir[2] >= 0 {
			face, sc, tc = PositiveZ, dir[0], -dir[1]
		} else {
			face, sc, tc = NegativeZ, -dir[0], -dir[1]
		}
	}
	if ma == 0 {
		return PositiveZ, math.Vec2{0.5, 0.5}
	}
	return face, math.Vec2{(sc/ma + 1) / 2, (tc/ma + 1) / 2}
}

// Sample returns the environment color seen along dir. A nil map or a
// missing face samples as transparent black.
func (c *CubeMap) Sample(dir math.Vec3) math.Vec4 {
	if c == nil {
		return math.Vec4{}
	}
	face, uv := CubeFaceFor(dir)
	tex := c.Faces[face]
	if !tex.Present() {
		return math.Vec4{}
	}
	return tex.SampleBilinear(math.Vec3{uv[0], uv[1], 0})
}
