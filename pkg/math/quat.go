package math

import "math"

// Quat is a rotation quaternion; W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// slerpLinearThreshold is the dot product above which Slerp falls back to
// a normalized linear blend.
const slerpLinearThreshold = 0.9995

// QuatIdentity returns the quaternion with no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle rotates angle radians about a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math.Sincos(float64(angle) / 2)
	v := axis.Scale(float32(s))
	return Quat{X: v[0], Y: v[1], Z: v[2], W: float32(c)}
}

func (q Quat) scale(s float32) Quat {
	return Quat{X: q.X * s, Y: q.Y * s, Z: q.Z * s, W: q.W * s}
}

func (q Quat) add(o Quat) Quat {
	return Quat{X: q.X + o.X, Y: q.Y + o.Y, Z: q.Z + o.Z, W: q.W + o.W}
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(float64(q.Dot(q))))
}

// Normalize returns q scaled to unit length. Near-zero quaternions become
// the identity.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l < 1e-4 {
		return QuatIdentity()
	}
	return q.scale(1 / l)
}

// Dot returns the 4D dot product.
func (q Quat) Dot(o Quat) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Slerp interpolates along the shorter arc from q to o; t is in [0, 1].
func (q Quat) Slerp(o Quat, t float32) Quat {
	dot := q.Dot(o)
	if dot < 0 {
		o = o.scale(-1)
		dot = -dot
	}
	if dot > slerpLinearThreshold {
		return q.scale(1 - t).add(o.scale(t)).Normalize()
	}

	theta0 := math.Acos(float64(dot))
	sin0 := math.Sin(theta0)
	s0 := math.Sin((1-float64(t))*theta0) / sin0
	s1 := math.Sin(float64(t)*theta0) / sin0
	return q.scale(float32(s0)).add(o.scale(float32(s1)))
}

// ToMat4 returns the rotation matrix of the normalized quaternion. Bone
// poses are assembled as T * R * S with R from here.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	return FromRows(
		Vec4{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0},
		Vec4{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0},
		Vec4{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0},
		Vec4{0, 0, 0, 1},
	)
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.ToMat4().MulDirection(v)
}
