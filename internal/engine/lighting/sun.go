package lighting

import (
	gomath "math"

	"github.com/Faultbox/softras/pkg/math"
)

// Direction converts longitude/latitude angles in degrees to a unit vector.
// Longitude is rotation around Y, latitude is elevation from the horizon.
func Direction(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	x := float32(gomath.Cos(latRad) * gomath.Sin(lonRad))
	y := float32(gomath.Sin(latRad))
	z := float32(gomath.Cos(latRad) * gomath.Cos(lonRad))

	return math.Vec3{x, y, z}
}

// FromAngles places a static light at distance along Direction.
func FromAngles(longitude, latitude, distance float32) PointLight {
	return PointLight{Position: Direction(longitude, latitude).Scale(distance)}
}
