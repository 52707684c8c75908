package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Used for bone world transforms.
//
// Model transforms follow the row-vector convention: a point is transformed
// as p × M and the translation sits in row 3.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromRows widens a float32 row-major matrix.
func Mat4FromRows(r [4][4]float32) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i*4+j] = float64(r[i][j])
		}
	}
	return m
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for i := range m {
		r, c := i/4, i%4
		for k := 0; k < 4; k++ {
			m[i] += a[r*4+k] * b[k*4+c]
		}
	}
	return m
}

// TransformPoint returns the point (v, 1) × M.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		v[0]*m[0] + v[1]*m[4] + v[2]*m[8] + m[12],
		v[0]*m[1] + v[1]*m[5] + v[2]*m[9] + m[13],
		v[0]*m[2] + v[1]*m[6] + v[2]*m[10] + m[14],
	}
}

// Translation returns row 3.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// IsIdentity reports whether every element is within 1e-8 of identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-8 {
			return false
		}
	}
	return true
}
