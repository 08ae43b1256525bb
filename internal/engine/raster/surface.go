// Package raster is a CPU triangle pipeline: vertex transform and skinning,
// near-plane clipping in homogeneous space, perspective divide, depth-tested
// rasterization and per-pixel shading into a Surface.
//
// A Surface is both a render target and a texture. Pixels are stored as four
// bytes in A, B, G, R order, for reads and writes alike. Render targets also
// own a depth buffer (smaller is nearer, cleared to 1), model and view
// transforms, a projection and a bone table; textures carry none of these.
//
// Everything runs on the calling goroutine. A Surface is not safe for
// concurrent use.
package raster

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/engine/lighting"
	"github.com/Faultbox/softras/pkg/math"
)

// MaxBones is the capacity of a surface's bone table.
const MaxBones = 250

// Default projection parameters.
const (
	DefaultFOV  = 90
	DefaultNear = 0.1
	DefaultFar  = 100
)

var (
	// ErrInvalidIndices is returned for index buffers that are not whole
	// triangles or reference missing vertices.
	ErrInvalidIndices = errors.New("invalid index buffer")

	// ErrNoDepthBuffer is returned when drawing into a texture-only surface.
	ErrNoDepthBuffer = errors.New("surface has no depth buffer")

	// ErrPixelBuffer is returned when a pixel buffer does not match its size.
	ErrPixelBuffer = errors.New("pixel buffer size mismatch")
)

// impossibleColor marks out-of-bounds reads.
var impossibleColor = math.Vec4{1, 0, 1, 1}

// Viewport maps normalized device coordinates onto a pixel grid.
type Viewport struct {
	Width  int
	Height int
}

// ToScreen maps an NDC position to pixel space, keeping z.
func (v Viewport) ToScreen(ndc math.Vec3) math.Vec3 {
	return math.NDCToScreen(ndc, float32(v.Width), float32(v.Height))
}

// Projection holds the perspective parameters and the derived matrix.
type Projection struct {
	FOV    float32 // Horizontal field of view in degrees
	Near   float32
	Far    float32
	Aspect float32 // Derived from the surface size
	Matrix math.Mat4
}

func (p *Projection) update(width, height int) {
	p.Aspect = 1
	if height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
	p.Matrix = math.Perspective(math.Radians(p.FOV), p.Aspect, p.Near, p.Far)
}

// Surface is a pixel buffer with optional render-target state.
type Surface struct {
	width  int
	height int
	pix    []byte
	depth  []float32 // nil for textures

	viewport    Viewport
	projection  Projection
	model       math.Mat4
	view        math.Mat4
	bones       []math.Mat4
	environment *CubeMap
	light       lighting.PointLight
	time        float32
	doubleSided bool
	extraPlanes []Plane

	// Reused between draws
	faces   []Face
	outputs []FaceOutput
	clipper Clipper
	frame   frameState
	stats   FrameStats

	log *zap.Logger
}

// Option configures a render target.
type Option func(*Surface)

// WithLogger sets the logger used for draw diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) {
		if log != nil {
			s.log = log
		}
	}
}

// WithViewport overrides the viewport, which defaults to the full surface.
func WithViewport(vp Viewport) Option {
	return func(s *Surface) {
		s.viewport = vp
	}
}

// WithLight sets the point light.
func WithLight(l lighting.PointLight) Option {
	return func(s *Surface) {
		s.light = l
	}
}

// NewTarget creates a render target with a depth buffer, identity
// transforms and the default perspective.
func NewTarget(width, height int, opts ...Option) *Surface {
	width, height = max(width, 0), max(height, 0)
	s := &Surface{
		width:    width,
		height:   height,
		pix:      make([]byte, width*height*4),
		depth:    make([]float32, width*height),
		viewport: Viewport{Width: width, Height: height},
		projection: Projection{
			FOV:  DefaultFOV,
			Near: DefaultNear,
			Far:  DefaultFar,
		},
		model: math.Identity(),
		view:  math.Identity(),
		bones: make([]math.Mat4, MaxBones),
		light: lighting.Default(),
		log:   zap.NewNop(),
	}
	for i := range s.bones {
		s.bones[i] = math.Identity()
	}
	for i := range s.depth {
		s.depth[i] = 1
	}
	for _, opt := range opts {
		opt(s)
	}
	s.updateProjection()
	return s
}

// NewTexture wraps a pixel buffer already in A, B, G, R order.
// The surface takes ownership of pix.
func NewTexture(width, height int, pix []byte) (*Surface, error) {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrPixelBuffer, width, height, len(pix))
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    pix,
		log:    zap.NewNop(),
	}, nil
}

// Width returns the width in pixels.
func (s *Surface) Width() int {
	if s == nil {
		return 0
	}
	return s.width
}

// Height returns the height in pixels.
func (s *Surface) Height() int {
	if s == nil {
		return 0
	}
	return s.height
}

// Present reports whether the surface holds any pixels. Nil and
// zero-width surfaces stand for "no texture bound".
func (s *Surface) Present() bool {
	return s != nil && s.width > 0 && s.height > 0
}

// HasDepth reports whether the surface owns a depth buffer.
func (s *Surface) HasDepth() bool {
	return s != nil && s.depth != nil
}

// Pix returns the raw pixel buffer (A, B, G, R per pixel).
func (s *Surface) Pix() []byte {
	return s.pix
}

// Viewport returns the current viewport.
func (s *Surface) Viewport() Viewport {
	return s.viewport
}

// SetViewport replaces the viewport.
func (s *Surface) SetViewport(vp Viewport) {
	s.viewport = vp
}

// Projection returns the current projection.
func (s *Surface) Projection() Projection {
	return s.projection
}

// InitializePerspective sets the field of view (degrees), near and far
// planes. The aspect ratio comes from the surface size.
func (s *Surface) InitializePerspective(fovDegrees, near, far float32) {
	s.projection.FOV = fovDegrees
	s.projection.Near = near
	s.projection.Far = far
	s.updateProjection()
}

// Resize reallocates the pixel and depth buffers, resets the viewport to
// the new size and recomputes the projection.
func (s *Surface) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.pix = make([]byte, width*height*4)
	if s.depth != nil {
		s.depth = make([]float32, width*height)
		for i := range s.depth {
			s.depth[i] = 1
		}
	}
	s.viewport = Viewport{Width: width, Height: height}
	s.updateProjection()
}

func (s *Surface) updateProjection() {
	s.projection.update(s.width, s.height)
	s.clipper.SetPlanes(append([]Plane{NearPlane(s.projection.Near)}, s.extraPlanes...)...)
}

// SetExtraClipPlanes chains clip-space planes after the near plane.
func (s *Surface) SetExtraClipPlanes(planes ...Plane) {
	s.extraPlanes = append(s.extraPlanes[:0], planes...)
	s.updateProjection()
}

// SetModelTransform sets the object-to-world transform.
func (s *Surface) SetModelTransform(m math.Mat4) {
	s.model = m
}

// SetViewTransform sets the world-to-view transform. Its translation
// column doubles as the camera position for specular lighting.
func (s *Surface) SetViewTransform(m math.Mat4) {
	s.view = m
}

// ModelTransform returns the object-to-world transform.
func (s *Surface) ModelTransform() math.Mat4 {
	return s.model
}

// ViewTransform returns the world-to-view transform.
func (s *Surface) ViewTransform() math.Mat4 {
	return s.view
}

// UploadBones copies bone poses into the bone table. Slots past len(poses)
// keep their previous pose. More than MaxBones poses means the content and
// the pipeline disagree, which is fatal.
func (s *Surface) UploadBones(poses []math.Mat4) {
	if len(poses) > MaxBones {
		s.log.Panic("bone pose count exceeds table capacity",
			zap.Int("poses", len(poses)),
			zap.Int("capacity", MaxBones),
		)
	}
	if s.bones == nil {
		s.bones = make([]math.Mat4, MaxBones)
		for i := range s.bones {
			s.bones[i] = math.Identity()
		}
	}
	copy(s.bones, poses)
}

// SetEnvironment binds the cube map sampled by reflective shading.
func (s *Surface) SetEnvironment(env *CubeMap) {
	s.environment = env
}

// SetLight replaces the point light.
func (s *Surface) SetLight(l lighting.PointLight) {
	s.light = l
}

// SetTime sets the elapsed time used to animate the light.
func (s *Surface) SetTime(t float32) {
	s.time = t
}

// SetDoubleSided makes both windings pass the coverage test.
func (s *Surface) SetDoubleSided(on bool) {
	s.doubleSided = on
}

// Stats returns counters from the last draw call.
func (s *Surface) Stats() FrameStats {
	return s.stats
}

// Clear fills every pixel with color (opaque) and resets depth to the far
// plane.
func (s *Surface) Clear(color math.Vec3) {
	a := byte(255)
	b := toByte(color[2])
	g := toByte(color[1])
	r := toByte(color[0])
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i+0] = a
		s.pix[i+1] = b
		s.pix[i+2] = g
		s.pix[i+3] = r
	}
	for i := range s.depth {
		s.depth[i] = 1
	}
}

// GetPixel returns the color at (x, y) as (r, g, b, a) in [0, 1].
// Out-of-bounds reads return opaque magenta.
func (s *Surface) GetPixel(x, y int) math.Vec4 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return impossibleColor
	}
	i := (y*s.width + x) * 4
	return math.Vec4{
		float32(s.pix[i+3]) / 255,
		float32(s.pix[i+2]) / 255,
		float32(s.pix[i+1]) / 255,
		float32(s.pix[i+0]) / 255,
	}
}

// SetPixel writes (r, g, b, a) clamped to [0, 1]. Out-of-bounds writes are
// ignored.
func (s *Surface) SetPixel(x, y int, c math.Vec4) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i+0] = toByte(c[3])
	s.pix[i+1] = toByte(c[2])
	s.pix[i+2] = toByte(c[1])
	s.pix[i+3] = toByte(c[0])
}

// Depth returns the stored depth at (x, y), or 1 when out of bounds or
// when the surface has no depth buffer.
func (s *Surface) Depth(x, y int) float32 {
	if s.depth == nil || x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 1
	}
	return s.depth[y*s.width+x]
}

func toByte(c float32) byte {
	return byte(math.Clamp(c, 0, 1)*255 + 0.5)
}
