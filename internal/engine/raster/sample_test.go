package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softras/pkg/math"
)

var (
	red   = math.Vec4{1, 0, 0, 1}
	green = math.Vec4{0, 1, 0, 1}
	blue  = math.Vec4{0, 0, 1, 1}
	black = math.Vec4{0, 0, 0, 1}
)

func solidTexture(t *testing.T, w, h int, c math.Vec4) *Surface {
	t.Helper()
	tex, err := NewTexture(w, h, make([]byte, w*h*4))
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

func TestSampleNearestCorners(t *testing.T) {
	tex := solidTexture(t, 2, 2, white)
	tex.SetPixel(0, 0, red)
	tex.SetPixel(1, 0, green)
	tex.SetPixel(0, 1, blue)

	tests := []struct {
		uv   math.Vec3
		want math.Vec4
	}{
		{math.Vec3{0, 0, 0}, red},
		{math.Vec3{1, 0, 0}, green},
		{math.Vec3{0, 1, 0}, blue},
		{math.Vec3{1, 1, 0}, white},
		{math.Vec3{0.49, 0.49, 0}, red},
		{math.Vec3{-3, 7, 0}, blue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tex.Sample(tt.uv), "uv %v", tt.uv)
	}
}

func TestSampleBilinearBlends(t *testing.T) {
	tex := solidTexture(t, 3, 3, white)
	for y := 0; y < 3; y++ {
		tex.SetPixel(0, y, black)
	}

	c := tex.SampleBilinear(math.Vec3{0.5, 0, 0})
	assert.InDelta(t, 0.5, c[0], 1e-6)
	assert.InDelta(t, 0.5, c[1], 1e-6)
	assert.InDelta(t, 1, c[3], 1e-6)

	assert.Equal(t, black, tex.SampleBilinear(math.Vec3{0, 0, 0}))
	assert.Equal(t, white, tex.SampleBilinear(math.Vec3{1, 1, 0}))
}

func TestSampleBilinearSmallTextureFallsBack(t *testing.T) {
	tex := solidTexture(t, 1, 4, green)
	assert.Equal(t, green, tex.SampleBilinear(math.Vec3{0.7, 0.7, 0}))
}

func TestSampleAbsentIsWhite(t *testing.T) {
	var tex *Surface
	assert.Equal(t, white, tex.Sample(math.Vec3{0.3, 0.3, 0}))
	assert.Equal(t, white, tex.SampleBilinear(math.Vec3{0.3, 0.3, 0}))
}

func TestCubeFaceFor(t *testing.T) {
	tests := []struct {
		dir  math.Vec3
		face CubeFace
		uv   math.Vec2
	}{
		{math.Vec3{1, 0, 0}, PositiveX, math.Vec2{0.5, 0.5}},
		{math.Vec3{-1, 0, 0}, NegativeX, math.Vec2{0.5, 0.5}},
		{math.Vec3{0, 1, 0}, PositiveY, math.Vec2{0.5, 0.5}},
		{math.Vec3{0, -1, 0}, NegativeY, math.Vec2{0.5, 0.5}},
		{math.Vec3{0, 0, 1}, PositiveZ, math.Vec2{0.5, 0.5}},
		{math.Vec3{0, 0, -1}, NegativeZ, math.Vec2{0.5, 0.5}},
		{math.Vec3{1, 1, 1}, PositiveX, math.Vec2{0, 0}},
		{math.Vec3{0.5, 0, 1}, PositiveZ, math.Vec2{0.75, 0.5}},
	}
	for _, tt := range tests {
		face, uv := CubeFaceFor(tt.dir)
		assert.Equal(t, tt.face, face, "dir %v", tt.dir)
		assert.InDelta(t, tt.uv[0], uv[0], 1e-6, "dir %v", tt.dir)
		assert.InDelta(t, tt.uv[1], uv[1], 1e-6, "dir %v", tt.dir)
	}
}

func TestCubeMapSample(t *testing.T) {
	var faces [6]*Surface
	faces[PositiveX] = solidTexture(t, 2, 2, red)
	faces[NegativeZ] = solidTexture(t, 2, 2, blue)
	env := NewCubeMap(faces)

	assert.Equal(t, red, env.Sample(math.Vec3{3, 1, 0}))
	assert.Equal(t, blue, env.Sample(math.Vec3{0, 0, -2}))
	assert.Equal(t, math.Vec4{}, env.Sample(math.Vec3{0, 1, 0}))

	var none *CubeMap
	assert.Equal(t, math.Vec4{}, none.Sample(math.Vec3{1, 0, 0}))
	assert.Equal(t, "-z", NegativeZ.String())
}
