package mathutil

import "math"

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Mul returns the product ms[0] × ms[1] × …, or identity for no factors.
func Mat3Mul(ms ...Mat3) Mat3 {
	out := Mat3Identity()
	for _, b := range ms {
		var m Mat3
		for i := range m {
			r, c := i/3, i%3
			m[i] = out[r*3]*b[c] + out[r*3+1]*b[3+c] + out[r*3+2]*b[6+c]
		}
		out = m
	}
	return out
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	var out Vec3
	for r := range out {
		out[r] = Vec3{m[r*3], m[r*3+1], m[r*3+2]}.Dot(v)
	}
	return out
}

// AxisRotation returns the rotation of a radians about a unit axis
// (Rodrigues' formula).
func AxisRotation(axis Vec3, a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	x, y, z := axis[0], axis[1], axis[2]
	t := 1 - c
	return Mat3{
		c + t*x*x, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, c + t*y*y, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, c + t*z*z,
	}
}

// RotX returns a rotation around the X axis. Angle in radians.
func RotX(a float64) Mat3 { return AxisRotation(Vec3{1, 0, 0}, a) }

// RotZ returns a rotation around the Z axis. Angle in radians.
func RotZ(a float64) Mat3 { return AxisRotation(Vec3{0, 0, 1}, a) }

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
