// Package viewer drives the rasterizer: a Scene owns the render surface,
// mesh, material and camera, and the Viewer runs it in an SDL window or
// headless.
package viewer

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/assets"
	"github.com/Faultbox/softras/internal/config"
	"github.com/Faultbox/softras/internal/engine/camera"
	"github.com/Faultbox/softras/internal/engine/lighting"
	"github.com/Faultbox/softras/internal/engine/model"
	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

var (
	background     = math.Vec3{0.1, 0.1, 0.15}
	wireframeColor = math.Vec4{0.2, 1, 0.2, 1}
)

// Scene is everything drawn in one frame.
type Scene struct {
	surface   *raster.Surface
	mesh      *model.Mesh
	program   raster.Program
	materials []raster.Material
	animator  *model.Animator
	camera    *camera.OrbitCamera

	spinSpeed   float32
	spin        float32 // Model rotation about Y, radians
	elapsed     float32 // Seconds
	wireframe   bool
	doubleSided bool

	log *zap.Logger
}

// NewScene builds the surface and loads the mesh, material and
// environment named in cfg.
func NewScene(cfg *config.Config, am *assets.Manager, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	mesh, err := model.ByName(cfg.Scene.Mesh)
	if err != nil {
		return nil, err
	}
	program, err := raster.ProgramByName(cfg.Scene.Shading)
	if err != nil {
		return nil, err
	}

	m := cfg.Material
	mat, err := am.Material(m.Diffuse, m.Normal, m.Roughness, m.Metallic, m.AmbientOcclusion, m.Emissive)
	if err != nil {
		return nil, err
	}
	env, err := am.CubeMap(cfg.Environment.Faces())
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	light := newLight(cfg.Light)

	surface := raster.NewTarget(cfg.Graphics.Width, cfg.Graphics.Height,
		raster.WithLogger(log.Named("raster")),
		raster.WithLight(light),
	)
	surface.InitializePerspective(cfg.Projection.FOV, cfg.Projection.Near, cfg.Projection.Far)
	surface.SetEnvironment(env)
	surface.SetDoubleSided(cfg.Scene.DoubleSided)

	s := &Scene{
		surface:     surface,
		mesh:        mesh,
		program:     program,
		materials:   []raster.Material{mat},
		camera:      newCamera(cfg, mesh),
		spinSpeed:   cfg.Scene.SpinSpeed,
		wireframe:   cfg.Scene.Wireframe,
		doubleSided: cfg.Scene.DoubleSided,
		log:         log,
	}

	if mesh.Skinned() {
		s.animator, err = model.NewAnimator(mesh.Skeleton, mesh.Animation)
		if err != nil {
			return nil, err
		}
		surface.UploadBones(s.animator.Pose())
	}

	log.Info("scene ready",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.String("shading", program.Name()),
		zap.Bool("environment", env != nil),
		zap.Bool("skinned", mesh.Skinned()),
	)
	return s, nil
}

func newLight(cfg config.LightConfig) lighting.PointLight {
	light := lighting.PointLight{Position: math.Vec3(cfg.Position)}
	if cfg.Distance > 0 {
		light = lighting.FromAngles(cfg.Longitude, cfg.Latitude, cfg.Distance)
	}
	light.OrbitRadius = cfg.OrbitRadius
	light.OrbitSpeed = cfg.OrbitSpeed
	return light
}

func newCamera(cfg *config.Config, mesh *model.Mesh) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FitToBounds(mesh.Bounds.Min, mesh.Bounds.Max, cfg.Projection.FOV)
	if cfg.Camera.Distance > 0 {
		cam.Distance = cfg.Camera.Distance
	}
	if cfg.Camera.Pitch != 0 {
		cam.Pitch = cfg.Camera.Pitch
	}
	cam.Yaw = cfg.Camera.Yaw
	return cam
}

// Update advances time by dt seconds: model spin, light orbit and the
// skeletal animation.
func (s *Scene) Update(dt float32) {
	s.elapsed += dt
	s.spin += s.spinSpeed * dt
	s.surface.SetTime(s.elapsed)
	if s.animator != nil {
		s.surface.UploadBones(s.animator.Advance(dt * 1000))
	}
}

// Render clears the surface and draws the mesh, plus the wireframe
// overlay when enabled.
func (s *Scene) Render() error {
	s.surface.Clear(background)
	s.surface.SetViewTransform(s.camera.ViewMatrix())
	s.surface.SetModelTransform(math.RotateY(s.spin))

	if err := s.surface.DrawTrianglesWith(s.program, s.mesh.Vertices, s.mesh.Indices, s.materials); err != nil {
		return fmt.Errorf("drawing %s: %w", s.mesh.Name, err)
	}
	if s.wireframe {
		if err := s.surface.DrawWireframe(s.mesh.Vertices, s.mesh.Indices, wireframeColor); err != nil {
			return fmt.Errorf("drawing %s wireframe: %w", s.mesh.Name, err)
		}
	}
	return nil
}

// Resize changes the render surface size.
func (s *Scene) Resize(width, height int) {
	s.surface.Resize(width, height)
	s.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

// CycleShading switches to the next named program.
func (s *Scene) CycleShading() string {
	names := raster.ProgramNames()
	next := names[(slices.Index(names, s.program.Name())+1)%len(names)]
	s.program, _ = raster.ProgramByName(next)
	s.log.Info("shading", zap.String("program", next))
	return next
}

// ToggleWireframe flips the wireframe overlay.
func (s *Scene) ToggleWireframe() bool {
	s.wireframe = !s.wireframe
	return s.wireframe
}

// ToggleDoubleSided flips backface culling.
func (s *Scene) ToggleDoubleSided() bool {
	s.doubleSided = !s.doubleSided
	s.surface.SetDoubleSided(s.doubleSided)
	return s.doubleSided
}

// Camera returns the orbit camera.
func (s *Scene) Camera() *camera.OrbitCamera { return s.camera }

// Surface returns the render target.
func (s *Scene) Surface() *raster.Surface { return s.surface }

// Program returns the active shading program.
func (s *Scene) Program() raster.Program { return s.program }

// Stats returns the counters of the last Render.
func (s *Scene) Stats() raster.FrameStats { return s.surface.Stats() }
