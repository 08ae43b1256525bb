// Package lighting describes the light sources fed to the vertex stage.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/softras/pkg/math"
)

// DefaultPosition is the world position of the fixed light used when
// nothing else is configured.
var DefaultPosition = math.Vec3{10, 10, -1}

// PointLight is a point light that either stays put or orbits its
// position around the Y axis as time advances.
type PointLight struct {
	Position math.Vec3 // World position (orbit center when orbiting)

	// Orbit parameters; a zero radius disables the orbit.
	OrbitRadius float32
	OrbitSpeed  float32 // Radians per time unit
}

// Default returns the static light at DefaultPosition.
func Default() PointLight {
	return PointLight{Position: DefaultPosition}
}

// Orbiting reports whether the light moves with time.
func (l PointLight) Orbiting() bool {
	return l.OrbitRadius != 0
}

// PositionAt returns the world position at the given elapsed time.
func (l PointLight) PositionAt(time float32) math.Vec3 {
	if !l.Orbiting() {
		return l.Position
	}
	angle := float64(time * l.OrbitSpeed)
	return math.Vec3{
		l.Position[0] + l.OrbitRadius*float32(gomath.Sin(angle)),
		l.Position[1],
		l.Position[2] + l.OrbitRadius*float32(gomath.Cos(angle)),
	}
}
