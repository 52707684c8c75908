package mathutil

import "math"

// ZUpToYUp converts decoded Z-up geometry to the camera's Y-up frame: Rx(-90°).
var ZUpToYUp = RotX(math.Pi / -2)

// WrapDegrees maps an angle in degrees into [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
