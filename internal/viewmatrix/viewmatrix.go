package viewmatrix

import (
	"math"

	"mwm-renderer/internal/mathutil"
)

// DefaultFOV is the perspective field of view in degrees.
const DefaultFOV = 60.0

// Camera describes the preview view of a Z-up model.
type Camera struct {
	Yaw         float64 // degrees around the model's up axis
	Pitch       float64 // degrees; positive looks down on the model
	Perspective bool
	FOV         float64 // degrees, perspective only
}

// PreviewMatrix builds the 3×3 view matrix for Z-up geometry: spin the model
// by yaw around Z, turn Z-up into Y-up, then tilt it by pitch.
func PreviewMatrix(yaw, pitch float64) mathutil.Mat3 {
	spin := mathutil.RotZ(mathutil.Deg2Rad(yaw))
	tilt := mathutil.RotX(mathutil.Deg2Rad(pitch))
	return mathutil.Mat3Mul(tilt, mathutil.ZUpToYUp, spin)
}

// Projection maps model-space vertices to screen pixels.
type Projection struct {
	R      mathutil.Mat3
	Center [3]float64 // of the framed (perspective-warped) vertices
	Scale  float64
	Size   int

	perspective  bool
	perspCamDist float64
	perspAxis    [2]float64 // view-space x, y of the optical axis
	perspZCenter float64
}

// NewProjection frames every vertex of meshes in a renderSize square with
// margin pixels on each side. The framed extent never drops below one pixel.
func NewProjection(cam Camera, meshes [][][3]float32, renderSize, margin int) Projection {
	p := Projection{R: PreviewMatrix(cam.Yaw, cam.Pitch), Size: renderSize}
	frame := float64(max(renderSize-2*margin, 1))

	lo, hi, ok := p.bounds(meshes)
	if !ok {
		p.Scale = frame / 0.001
		return p
	}

	if cam.Perspective {
		fov := cam.FOV
		if fov <= 0 {
			fov = DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)

		xyMax := math.Max(hi[0]-lo[0], hi[1]-lo[1]) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		p.perspective = true
		p.perspAxis = [2]float64{(lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2}
		p.perspZCenter = (lo[2] + hi[2]) / 2
		// Keep the camera in front of the nearest vertex.
		p.perspCamDist = xyMax/math.Tan(halfFOV) + (hi[2]-lo[2])/2
		lo, hi, _ = p.bounds(meshes)
	}

	for k := 0; k < 3; k++ {
		p.Center[k] = (lo[k] + hi[k]) / 2
	}
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	p.Scale = frame / span
	return p
}

// bounds returns the box of all view-space vertices after the current warp.
func (p *Projection) bounds(meshes [][][3]float32) (lo, hi [3]float64, ok bool) {
	lo = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, verts := range meshes {
		for _, v := range verts {
			t := p.view(v)
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], t[k])
				hi[k] = math.Max(hi[k], t[k])
			}
		}
	}
	return lo, hi, lo[0] <= hi[0]
}

// view rotates v into view space and applies the perspective divide.
func (p *Projection) view(v [3]float32) mathutil.Vec3 {
	t := p.R.MulVec3(mathutil.V3(v))
	if p.perspective {
		zOff := t[2] - p.perspZCenter
		depth := math.Max(p.perspCamDist-zOff, 0.1)
		factor := p.perspCamDist / depth
		t[0] = (t[0]-p.perspAxis[0])*factor + p.perspAxis[0]
		t[1] = (t[1]-p.perspAxis[1])*factor + p.perspAxis[1]
	}
	return t
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth); larger depth is nearer.
func (p *Projection) ProjectVertices(verts [][3]float32) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(p.Size) / 2

	for i := range verts {
		t := p.view(verts[i])
		px[i] = (t[0]-p.Center[0])*p.Scale + half
		py[i] = -(t[1]-p.Center[1])*p.Scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
