// Package math provides the vector, matrix and quaternion types used by the
// rasterizer.
//
// Vectors are fixed-size float32 arrays with named accessors, so generic
// loops can index them while call sites read as v.X(), v.Y().
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 [2]float32

// V2 builds a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// X returns the first component.
func (v Vec2) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec2) Y() float32 { return v[1] }

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v[0] + other[0], v[1] + other[1]}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v[0] - other[0], v[1] - other[1]}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v[0]*other[0] + v[1]*other[1]
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1])))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v[0] / l, v[1] / l}
}

// Perp returns v rotated a quarter turn: (-y, x).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v[1], v[0]}
}

// Lerp interpolates between v and other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return v.Scale(1 - t).Add(other.Scale(t))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}
