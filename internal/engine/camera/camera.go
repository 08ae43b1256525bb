// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/softras/pkg/math"
)

// OrbitCamera orbits around a center point. At zero yaw it sits on the -Z
// side of the center, looking down +Z.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4,
		Pitch:           0.3,
		MinDistance:     0.5,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := gomath.Cos(float64(c.Pitch)), gomath.Sin(float64(c.Pitch))
	cy, sy := gomath.Cos(float64(c.Yaw)), gomath.Sin(float64(c.Yaw))
	offset := math.Vec3{
		float32(cp * sy),
		float32(sp),
		float32(-cp * cy),
	}
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{0, 1, 0})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point on the XZ plane relative to the
// current yaw, plus vertically.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sy := float32(gomath.Sin(float64(c.Yaw)))
	cy := float32(gomath.Cos(float64(c.Yaw)))

	// Forward points from the camera toward the center.
	fwd := math.Vec3{-sy, 0, cy}
	rgt := math.Vec3{cy, 0, sy}

	move := fwd.Scale(forward).Add(rgt.Scale(right)).Add(math.Vec3{0, up, 0})
	c.Center = c.Center.Add(move.Scale(speed))
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough to see all of it with the given horizontal field of view.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3, fovDegrees float32) {
	c.Center = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	half := float64(math.Radians(fovDegrees)) / 2
	if half <= 0 {
		half = gomath.Pi / 4
	}
	c.Distance = math.Clamp(radius/float32(gomath.Sin(half)), c.MinDistance, c.MaxDistance)
}
