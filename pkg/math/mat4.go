package math

import "math"

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Set assigns the element at row r, column c.
func (m *Mat4) Set(r, c int, v float32) {
	m[c*4+r] = v
}

// Row returns row r.
func (m Mat4) Row(r int) Vec4 {
	return Vec4{m[r], m[4+r], m[8+r], m[12+r]}
}

// Col returns column c.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// FromRows builds a matrix from four rows.
func FromRows(r0, r1, r2, r3 Vec4) Mat4 {
	var m Mat4
	rows := [4]Vec4{r0, r1, r2, r3}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return m
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Perspective returns a left-handed projection looking down +Z.
// fovX is the horizontal field of view in radians, aspect is width/height.
// View depth near maps to NDC z 0 and far maps to 1; clip w is view z.
func Perspective(fovX, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovX)/2.0))
	zt := far / (far - near)

	return FromRows(
		Vec4{f, 0, 0, 0},
		Vec4{0, aspect * f, 0, 0},
		Vec4{0, 0, zt, -near * zt},
		Vec4{0, 0, 1, 0},
	)
}

// LookAt returns a left-handed view matrix looking from eye to center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)

	return FromRows(
		Vec4{s[0], s[1], s[2], -s.Dot(eye)},
		Vec4{u[0], u[1], u[2], -u.Dot(eye)},
		Vec4{f[0], f[1], f[2], -f.Dot(eye)},
		Vec4{0, 0, 0, 1},
	)
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateAxis creates a rotation matrix around an arbitrary axis.
// axis should be normalized, angle is in radians.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	x, y, z := axis[0], axis[1], axis[2]

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Add returns the element-wise sum.
func (m Mat4) Add(other Mat4) Mat4 {
	var result Mat4
	for i := range m {
		result[i] = m[i] + other[i]
	}
	return result
}

// ScaleScalar multiplies every element by s.
func (m Mat4) ScaleScalar(s float32) Mat4 {
	var result Mat4
	for i := range m {
		result[i] = m[i] * s
	}
	return result
}

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// MulPoint transforms a point (w=1) without a perspective divide.
func (m Mat4) MulPoint(p Vec3) Vec4 {
	return m.MulVec4(p.Vec4(1))
}

// MulDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) MulDirection(d Vec3) Vec3 {
	return m.MulVec4(d.Vec4(0)).XYZ()
}

// Mat3 returns the upper-left 3x3 portion of the matrix.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}
