package math

import "math"

// Vec3 is a 3D vector.
type Vec3 [3]float32

// V3 builds a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component.
func (v Vec3) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float32 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float32 { return v[2] }

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v[0] * other[0], v[1] * other[1], v[2] * other[2]}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// AddScalar adds s to every component.
func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v[0] + s, v[1] + s, v[2] + s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2]
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v[1]*other[2] - v[2]*other[1],
		v[2]*other[0] - v[0]*other[2],
		v[0]*other[1] - v[1]*other[0],
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp interpolates between v and other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Scale(1 - t).Add(other.Scale(t))
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v[0], other[0]), min(v[1], other[1]), min(v[2], other[2])}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v[0], other[0]), max(v[1], other[1]), max(v[2], other[2])}
}

// Clamp clamps every component to [lo, hi].
func (v Vec3) Clamp(lo, hi float32) Vec3 {
	return Vec3{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi)}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// Vec4 extends v with the given w.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}
