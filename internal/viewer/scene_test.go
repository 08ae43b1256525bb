package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softras/internal/assets"
	"github.com/Faultbox/softras/internal/config"
	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

func testConfig(mesh, shading string) *config.Config {
	cfg := config.Default()
	cfg.Graphics.Width = 64
	cfg.Graphics.Height = 48
	cfg.Scene.Mesh = mesh
	cfg.Scene.Shading = shading
	return cfg
}

func newTestScene(t *testing.T, cfg *config.Config) *Scene {
	t.Helper()
	s, err := NewScene(cfg, assets.NewManager(nil, t.TempDir()), nil)
	require.NoError(t, err)
	return s
}

func TestSceneRendersMesh(t *testing.T) {
	for _, mesh := range []string{"quad", "cube", "sphere", "column"} {
		t.Run(mesh, func(t *testing.T) {
			cfg := testConfig(mesh, "lambert")
			cfg.Scene.DoubleSided = true
			s := newTestScene(t, cfg)

			s.Update(0.1)
			require.NoError(t, s.Render())

			stats := s.Stats()
			assert.Greater(t, stats.Faces, 0)
			assert.Greater(t, stats.Rasterized, 0)
			assert.Greater(t, stats.Fragments, 0)
			assert.Less(t, s.Surface().Depth(32, 24), float32(1))
		})
	}
}

func TestNewLight(t *testing.T) {
	cfg := config.Default().Light
	l := newLight(cfg)
	assert.Equal(t, math.Vec3{10, 10, -1}, l.Position)
	assert.False(t, l.Orbiting())

	cfg.Latitude = 90
	cfg.Distance = 5
	cfg.OrbitRadius = 2
	l = newLight(cfg)
	assert.InDelta(t, 5, l.Position[1], 1e-4)
	assert.InDelta(t, 0, l.Position[0], 1e-4)
	assert.True(t, l.Orbiting())
}

func TestSceneUnknownNames(t *testing.T) {
	_, err := NewScene(testConfig("teapot", "lambert"), assets.NewManager(nil), nil)
	assert.Error(t, err)

	_, err = NewScene(testConfig("cube", "toon"), assets.NewManager(nil), nil)
	assert.Error(t, err)
}

func TestSceneMissingTexture(t *testing.T) {
	cfg := testConfig("cube", "lambert")
	cfg.Material.Diffuse = "missing.tga"
	_, err := NewScene(cfg, assets.NewManager(nil, t.TempDir()), nil)
	assert.ErrorIs(t, err, assets.ErrNotFound)
}

func TestSceneCycleShading(t *testing.T) {
	s := newTestScene(t, testConfig("cube", "lambert"))

	seen := []string{s.Program().Name()}
	for range raster.ProgramNames() {
		seen = append(seen, s.CycleShading())
	}
	assert.Equal(t, []string{"lambert", "normal-mapped", "reflective", "lambert"}, seen)
}

func TestSceneToggles(t *testing.T) {
	s := newTestScene(t, testConfig("quad", "lambert"))

	assert.True(t, s.ToggleWireframe())
	require.NoError(t, s.Render())
	assert.False(t, s.ToggleWireframe())

	assert.True(t, s.ToggleDoubleSided())
	assert.False(t, s.ToggleDoubleSided())
}

func TestSceneResize(t *testing.T) {
	s := newTestScene(t, testConfig("cube", "lambert"))
	s.Resize(32, 32)
	require.NoError(t, s.Render())
	assert.Equal(t, 32, s.Surface().Width())
	assert.Equal(t, float32(1), s.Surface().Projection().Aspect)
}

func TestSceneSkinnedAnimates(t *testing.T) {
	s := newTestScene(t, testConfig("column", "normal-mapped"))
	require.NotNil(t, s.animator)

	s.Update(0.5)
	assert.InDelta(t, 500, s.animator.Time(), 1e-3)
	require.NoError(t, s.Render())
}

func TestRunHeadless(t *testing.T) {
	s := newTestScene(t, testConfig("cube", "normal-mapped"))

	totals, err := RunHeadless(s, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, totals.Frames)
	assert.Equal(t, 3*len(s.mesh.Indices)/3, totals.Faces)
	assert.Greater(t, totals.Fragments, 0)
	assert.InDelta(t, 3*headlessStep, s.elapsed, 1e-6)
}
