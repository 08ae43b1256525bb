package math

// Mat3 is a 3x3 matrix in column-major order, matching Mat4.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromRows builds a matrix whose rows are a, b and c.
// With orthonormal rows this is a change of basis into (a, b, c) space.
func Mat3FromRows(a, b, c Vec3) Mat3 {
	return Mat3{
		a[0], b[0], c[0],
		a[1], b[1], c[1],
		a[2], b[2], c[2],
	}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float32 {
	return m[c*3+r]
}

// Row returns row r.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r], m[3+r], m[6+r]}
}

// MulVec3 multiplies the matrix by v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// Transpose swaps rows and columns.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
