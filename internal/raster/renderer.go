package raster

import (
	"image"

	"mwm-renderer/internal/scene"
	"mwm-renderer/internal/viewmatrix"
)

// Base colours: untextured parts and materials without stored shading.
var (
	neutralColor = [3]uint8{160, 160, 170}
	glassTint    = 0.35
)

// Options controls one preview render.
type Options struct {
	Size        int // output edge in pixels before downsampling
	Supersample int
	Camera      viewmatrix.Camera
}

// RenderModel renders scene meshes to an NRGBA image of edge
// Size*Supersample. GLASS parts are drawn additively after opaque parts.
func RenderModel(meshes []scene.Mesh, opts Options) *image.NRGBA {
	supersample := max(opts.Supersample, 1)
	renderSize := opts.Size * supersample

	verts := make([][][3]float32, 0, len(meshes))
	for _, m := range meshes {
		if len(m.Positions) > 0 {
			verts = append(verts, m.Positions)
		}
	}
	if len(verts) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	margin := min(16*supersample, renderSize/8)
	proj := viewmatrix.NewProjection(opts.Camera, verts, renderSize, margin)

	// Allocate framebuffer
	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	var glass []int
	for i := range meshes {
		if isGlass(&meshes[i]) {
			glass = append(glass, i)
			continue
		}
		drawMesh(fb, &proj, &meshes[i], &lc, false)
	}
	for _, i := range glass {
		drawMesh(fb, &proj, &meshes[i], &lc, true)
	}

	return fb.Image()
}

func drawMesh(fb *FrameBuffer, proj *viewmatrix.Projection, mesh *scene.Mesh, lc *LightConfig, additive bool) {
	if len(mesh.Positions) == 0 {
		return
	}
	px, py, pz := proj.ProjectVertices(mesh.Positions)
	col := meshColor(mesh)
	if additive {
		col = [3]uint8{scale8(col[0], glassTint), scale8(col[1], glassTint), scale8(col[2], glassTint)}
	}

	for _, f := range mesh.Faces {
		if additive {
			RasterizeTriangleAdditive(fb, px, py, pz, f, col, lc)
		} else {
			RasterizeTriangle(fb, px, py, pz, f, col, lc)
		}
	}
}

func isGlass(m *scene.Mesh) bool {
	return m.Material != nil && m.Material.IsGlass()
}

// meshColor returns the material's diffuse colour, or the neutral colour when
// there is no material or its shading was defaulted.
func meshColor(m *scene.Mesh) [3]uint8 {
	if m.Material == nil || m.Material.ShadingDefaulted {
		return neutralColor
	}
	d := m.Material.DiffuseColor
	return [3]uint8{
		clamp255(float64(d[0]) * 255),
		clamp255(float64(d[1]) * 255),
		clamp255(float64(d[2]) * 255),
	}
}

func scale8(c uint8, f float64) uint8 {
	return clamp255(float64(c) * f)
}
