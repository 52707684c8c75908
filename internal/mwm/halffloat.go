package mwm

import "math"

// HalfToFloat32 expands an IEEE-754 binary16 bit pattern to float32.
// Subnormals are normalised; exponent 31 maps to the binary32 Inf/NaN exponent.
func HalfToFloat32(h uint16) float32 {
	s := uint32(h>>15) & 0x1
	e := int32(h>>10) & 0x1f
	f := uint32(h) & 0x3ff

	// Zero is decided on the input: normalising 0x200 also ends at e=0, f=0.
	zero := e == 0 && f == 0

	if e == 0 && f != 0 {
		for f&0x400 == 0 {
			f <<= 1
			e--
		}
		e++
		f &^= 0x400
	}

	var exp uint32
	switch {
	case e == 31:
		exp = 0x7f800000
	case !zero:
		exp = uint32(e+(127-15)) << 23
	}

	if !zero {
		f <<= 13
	}

	return math.Float32frombits(s<<31 | exp | f)
}
