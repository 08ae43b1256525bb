package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softras/pkg/math"
)

func clipFace(positions ...math.Vec3) FaceOutput {
	var f FaceOutput
	for i, p := range positions {
		f[i].Position = p.Vec4(1)
		f[i].Color = math.Vec3{p[2], 0, 0}
	}
	return f
}

// signedAreaXZ is the signed area of the triangle projected onto the
// x/z plane.
func signedAreaXZ(f FaceOutput) float32 {
	a := f[1].Position.Sub(f[0].Position)
	b := f[2].Position.Sub(f[0].Position)
	return 0.5 * (a[2]*b[0] - a[0]*b[2])
}

func totalArea(faces []FaceOutput) float32 {
	var sum float32
	for _, f := range faces {
		sum += signedAreaXZ(f)
	}
	return sum
}

func TestClipFaceInsideAndOutside(t *testing.T) {
	near := NearPlane(0.1)

	inside := clipFace(math.Vec3{0, 0, 1}, math.Vec3{1, 0, 2}, math.Vec3{-1, 0, 2})
	out, res := ClipFace(&inside, near, nil)
	assert.Equal(t, Unclipped, res)
	assert.Empty(t, out)

	behind := clipFace(math.Vec3{0, 0, -1}, math.Vec3{1, 0, -2}, math.Vec3{-1, 0, -2})
	out, res = ClipFace(&behind, near, nil)
	assert.Equal(t, Discarded, res)
	assert.Empty(t, out)
}

func TestClipFaceOnPlaneIsInside(t *testing.T) {
	f := clipFace(math.Vec3{0, 0, 0}, math.Vec3{1, 0, 0}, math.Vec3{0, 1, -1e-6})
	_, res := ClipFace(&f, NearPlane(0.1), nil)
	assert.Equal(t, Unclipped, res)
}

func TestClipFaceOneInside(t *testing.T) {
	f := clipFace(math.Vec3{0, 0, 2}, math.Vec3{-2, 0, -2}, math.Vec3{2, 0, -2})
	out, res := ClipFace(&f, NearPlane(0.1), nil)

	require.Equal(t, Split, res)
	require.Len(t, out, 1)
	assert.InDelta(t, -2, signedAreaXZ(out[0]), 1e-5)
	assert.Equal(t, math.Vec4{0, 0, 2, 1}, out[0][0].Position)
	assert.InDelta(t, -1, out[0][1].Position[0], 1e-6)
	assert.InDelta(t, 1, out[0][2].Position[0], 1e-6)

	// Attributes follow the position.
	assert.InDelta(t, 0, out[0][1].Color[0], 1e-6)
	for _, v := range out[0] {
		assert.GreaterOrEqual(t, v.Position[2], float32(-clipEpsilon))
	}
}

func TestClipFaceTwoInside(t *testing.T) {
	f := clipFace(math.Vec3{0, 0, -2}, math.Vec3{2, 0, 2}, math.Vec3{-2, 0, 2})
	out, res := ClipFace(&f, NearPlane(0.1), nil)

	require.Equal(t, Split, res)
	require.Len(t, out, 2)
	assert.InDelta(t, -4, signedAreaXZ(out[0]), 1e-5)
	assert.InDelta(t, -2, signedAreaXZ(out[1]), 1e-5)
	assert.InDelta(t, -6, totalArea(out), 1e-5)
}

func TestClipFaceAppends(t *testing.T) {
	f := clipFace(math.Vec3{0, 0, -2}, math.Vec3{2, 0, 2}, math.Vec3{-2, 0, 2})
	prior := []FaceOutput{{}}
	out, _ := ClipFace(&f, NearPlane(0.1), prior)
	assert.Len(t, out, 3)
}

func TestClipperChainsPlanes(t *testing.T) {
	// Crosses z = 0 and x = w.
	f := clipFace(math.Vec3{0, 0, -1}, math.Vec3{3, 0, 1}, math.Vec3{-0.5, 0, 1})

	c := NewClipper(NearPlane(0.1), RightPlane())
	out := c.Clip([]FaceOutput{f})

	require.NotEmpty(t, out)
	assert.Greater(t, c.Split, 0)
	for _, face := range out {
		for _, v := range face {
			assert.GreaterOrEqual(t, v.Position[2], float32(-clipEpsilon))
			assert.LessOrEqual(t, v.Position[0], v.Position[3]+clipEpsilon)
		}
	}
}

func TestClipperKeepsOrderAndCounts(t *testing.T) {
	a := clipFace(math.Vec3{0, 0, 1}, math.Vec3{1, 0, 2}, math.Vec3{-1, 0, 2})
	b := clipFace(math.Vec3{0, 0, -1}, math.Vec3{1, 0, -2}, math.Vec3{-1, 0, -2})
	c := clipFace(math.Vec3{0, 0, 3}, math.Vec3{1, 0, 4}, math.Vec3{-1, 0, 4})

	clipper := NewClipper(NearPlane(0.1))
	out := clipper.Clip([]FaceOutput{a, b, c})

	require.Len(t, out, 2)
	assert.Equal(t, a, out[0])
	assert.Equal(t, c, out[1])
	assert.Equal(t, 1, clipper.Discarded)
	assert.Equal(t, 0, clipper.Split)

	// Reuse resets the counters.
	out = clipper.Clip(nil)
	assert.Empty(t, out)
	assert.Equal(t, 0, clipper.Discarded)
}

func TestClipperWithoutPlanesPassesThrough(t *testing.T) {
	f := clipFace(math.Vec3{0, 0, -5}, math.Vec3{1, 0, -5}, math.Vec3{0, 1, -5})
	out := NewClipper().Clip([]FaceOutput{f})
	assert.Equal(t, []FaceOutput{f}, out)
}
