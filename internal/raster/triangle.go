package raster

import (
	"math"

	"mwm-renderer/internal/mathutil"
)

// triangle is the screen-space setup shared by both rasterizers.
type triangle struct {
	x2, y2, z0, z1, z2     float64
	dy12, dx21, dy20, dx02 float64
	invDet                 float64
	minX, maxX, minY, maxY int
	shade                  float64
}

// setupTriangle clips the triangle's bounding box to the framebuffer and
// computes its flat shade. Returns false for out-of-range indices, degenerate
// triangles and triangles entirely off screen.
func setupTriangle(fb *FrameBuffer, px, py, pz []float64, vi [3]int, lc *LightConfig) (triangle, bool) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return triangle{}, false
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal for flat shading
	e1 := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}
	e2 := mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return triangle{}, false
	}

	t := triangle{
		x2: x2, y2: y2, z0: z0, z1: z1, z2: z2,
		shade: lc.ComputeShade(n.Normalize()),
	}

	// Bounding box
	t.minX = max(int(math.Min(math.Min(x0, x1), x2)), 0)
	t.maxX = min(int(math.Max(math.Max(x0, x1), x2))+1, fb.Width-1)
	t.minY = max(int(math.Min(math.Min(y0, y1), y2)), 0)
	t.maxY = min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if t.minX >= t.maxX || t.minY >= t.maxY {
		return triangle{}, false
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return triangle{}, false
	}
	t.invDet = 1.0 / det

	// Precompute edge deltas
	t.dy12 = y1 - y2
	t.dx21 = x2 - x1
	t.dy20 = y2 - y0
	t.dx02 = x0 - x2
	return t, true
}

// weights returns the barycentric weights of pixel (sx, sy).
func (t *triangle) weights(sx, sy int) (w0, w1, w2 float64, inside bool) {
	dsx := float64(sx) - t.x2
	dsy := float64(sy) - t.y2
	w0 = (t.dy12*dsx + t.dx21*dsy) * t.invDet
	w1 = (t.dy20*dsx + t.dx02*dsy) * t.invDet
	w2 = 1.0 - w0 - w1
	return w0, w1, w2, w0 >= -0.001 && w1 >= -0.001 && w2 >= -0.001
}

// lit applies shading and ACES tone mapping in linear space and returns
// sRGB channel values in [0, 255].
func lit(col [3]uint8, shade float64, lc *LightConfig) (float64, float64, float64) {
	k := shade * lc.Exposure
	r := math.Pow(ACESTonemap(srgbToLinear[col[0]]*k), lc.InvGamma) * 255
	g := math.Pow(ACESTonemap(srgbToLinear[col[1]]*k), lc.InvGamma) * 255
	b := math.Pow(ACESTonemap(srgbToLinear[col[2]]*k), lc.InvGamma) * 255
	return r, g, b
}

// RasterizeTriangle rasterizes a single opaque, flat-shaded triangle with
// z-buffer, sRGB color space, lighting, and ACES tone mapping.
// vi holds indices into px/py/pz.
func RasterizeTriangle(fb *FrameBuffer, px, py, pz []float64, vi [3]int, col [3]uint8, lc *LightConfig) {
	t, ok := setupTriangle(fb, px, py, pz, vi, lc)
	if !ok {
		return
	}
	fr, fg, fbl := lit(col, t.shade, lc)
	r, g, b := clamp255(fr), clamp255(fg), clamp255(fbl)

	size := fb.Width
	for sy := t.minY; sy <= t.maxY; sy++ {
		rowOff := sy * size
		for sx := t.minX; sx <= t.maxX; sx++ {
			w0, w1, w2, inside := t.weights(sx, sy)
			if !inside {
				continue
			}

			z := w0*t.z0 + w1*t.z1 + w2*t.z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = r
			fb.Color[pxIdx+1] = g
			fb.Color[pxIdx+2] = b
			fb.Color[pxIdx+3] = 255
		}
	}
}

// RasterizeTriangleAdditive renders a triangle with additive blending.
// Pixels hidden behind opaque geometry are skipped; the z-buffer is not
// written, so overlapping transparent faces accumulate.
func RasterizeTriangleAdditive(fb *FrameBuffer, px, py, pz []float64, vi [3]int, col [3]uint8, lc *LightConfig) {
	t, ok := setupTriangle(fb, px, py, pz, vi, lc)
	if !ok {
		return
	}
	fr, fg, fbl := lit(col, t.shade, lc)
	// Alpha: use brightness of added color (dark pixels stay transparent)
	addAlpha := clamp255(fr*0.299 + fg*0.587 + fbl*0.114)

	size := fb.Width
	for sy := t.minY; sy <= t.maxY; sy++ {
		rowOff := sy * size
		for sx := t.minX; sx <= t.maxX; sx++ {
			w0, w1, w2, inside := t.weights(sx, sy)
			if !inside {
				continue
			}
			zIdx := rowOff + sx
			if w0*t.z0+w1*t.z1+w2*t.z2 <= fb.ZBuf[zIdx] {
				continue
			}

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(float64(fb.Color[pxIdx]) + fr)
			fb.Color[pxIdx+1] = clamp255(float64(fb.Color[pxIdx+1]) + fg)
			fb.Color[pxIdx+2] = clamp255(float64(fb.Color[pxIdx+2]) + fbl)
			if addAlpha > fb.Color[pxIdx+3] {
				fb.Color[pxIdx+3] = addAlpha
			}
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
