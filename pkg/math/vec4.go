package math

import "math"

// Vec4 is a 4-component vector. Colors use it as (r, g, b, a).
type Vec4 [4]float32

// V4 builds a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// X returns the first component.
func (v Vec4) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec4) Y() float32 { return v[1] }

// Z returns the third component.
func (v Vec4) Z() float32 { return v[2] }

// W returns the fourth component.
func (v Vec4) W() float32 { return v[3] }

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v[0] - other[0], v[1] - other[1], v[2] - other[2], v[3] - other[3]}
}

// Mul returns the component-wise product.
func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v[0] * other[0], v[1] * other[1], v[2] * other[2], v[3] * other[3]}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot returns the dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// Length returns the magnitude.
func (v Vec4) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns a unit vector.
func (v Vec4) Normalize() Vec4 {
	l := v.Length()
	if l == 0 {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates between v and other.
func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	return v.Scale(1 - t).Add(other.Scale(t))
}

// Clamp clamps every component to [lo, hi].
func (v Vec4) Clamp(lo, hi float32) Vec4 {
	return Vec4{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi), Clamp(v[3], lo, hi)}
}
