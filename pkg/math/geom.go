package math

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Pow is float32 math.Pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Floor is float32 math.Floor.
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Reflect mirrors v about the plane with normal n: v - 2(v·n)n.
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Intersect returns the point where segment a→b crosses the plane through
// point with the given normal, and the parameter t along the segment.
// t = d(a) / (d(a) - d(b)) where d is the signed distance to the plane.
func Intersect(point, normal, a, b Vec4) (Vec4, float32) {
	d0 := normal.Dot(a.Sub(point))
	d1 := normal.Dot(b.Sub(point))
	t := d0 / (d0 - d1)
	return a.Lerp(b, t), t
}

// NDCToScreen maps normalized device coordinates to pixel space.
// Y is flipped so +1 is the top row; Z passes through.
func NDCToScreen(v Vec3, width, height float32) Vec3 {
	hw := width / 2
	hh := height / 2
	return Vec3{v[0]*hw + hw, -v[1]*hh + hh, v[2]}
}
