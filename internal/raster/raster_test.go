package raster

import (
	"testing"

	"mwm-renderer/internal/mwm"
	"mwm-renderer/internal/scene"
	"mwm-renderer/internal/viewmatrix"
)

// quad is a 2×2 square in the XZ plane, facing the front camera.
func quad(m *mwm.Material) scene.Mesh {
	return scene.Mesh{
		Name:      "quad",
		Positions: [][3]float32{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
		Faces:     [][3]int{{0, 1, 2}, {0, 2, 3}},
		Material:  m,
	}
}

func TestRenderModelOpaque(t *testing.T) {
	red := &mwm.Material{Name: "Red", DiffuseColor: [3]float32{1, 0, 0}, Technique: mwm.Technique{Name: "MESH"}}
	img := RenderModel([]scene.Mesh{quad(red)}, Options{Size: 64, Supersample: 2})

	if img.Bounds().Dx() != 128 {
		t.Fatalf("bounds = %v, want 128px", img.Bounds())
	}
	c := img.NRGBAAt(64, 64)
	if c.A != 255 || c.R == 0 || c.G != 0 || c.B != 0 {
		t.Errorf("centre = %v, want opaque red", c)
	}
	if corner := img.NRGBAAt(1, 1); corner.A != 0 {
		t.Errorf("corner = %v, want transparent margin", corner)
	}
}

func TestRenderModelDefaultedShadingIsNeutral(t *testing.T) {
	m := &mwm.Material{Name: "Plate", DiffuseColor: [3]float32{1, 1, 1}, ShadingDefaulted: true}
	img := RenderModel([]scene.Mesh{quad(m)}, Options{Size: 32, Supersample: 1})
	c := img.NRGBAAt(16, 16)
	if c.A != 255 || c.B <= c.R {
		t.Errorf("centre = %v, want neutral blue-grey", c)
	}
}

func TestRenderModelGlassIsAdditive(t *testing.T) {
	glass := &mwm.Material{Name: "Window", DiffuseColor: [3]float32{1, 1, 1}, Technique: mwm.Technique{Name: mwm.TechniqueGlass}}
	img := RenderModel([]scene.Mesh{quad(glass)}, Options{Size: 32, Supersample: 1})
	c := img.NRGBAAt(16, 16)
	if c.A == 0 || c.A == 255 {
		t.Errorf("glass alpha = %d, want partial", c.A)
	}
}

func TestRenderModelSmallSizes(t *testing.T) {
	red := &mwm.Material{Name: "Red", DiffuseColor: [3]float32{1, 0, 0}, Technique: mwm.Technique{Name: "MESH"}}
	for _, size := range []int{8, 16, 24, 32, 33} {
		img := RenderModel([]scene.Mesh{quad(red)}, Options{Size: size, Supersample: 1})
		if c := img.NRGBAAt(size/2, size/2); c.A != 255 {
			t.Errorf("size %d: centre = %v, want opaque", size, c)
		}
		if c := img.NRGBAAt(0, 0); c.A != 0 {
			t.Errorf("size %d: corner = %v, want transparent margin", size, c)
		}
		opaque := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] == 255 {
				opaque++
			}
		}
		if opaque < size*size/3 {
			t.Errorf("size %d: %d opaque pixels, want the quad to fill most of the frame", size, opaque)
		}
	}
}

func TestRenderModelEmpty(t *testing.T) {
	img := RenderModel(nil, Options{Size: 16, Supersample: 2, Camera: viewmatrix.Camera{Yaw: 35}})
	if img.Bounds().Dx() != 32 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("empty scene drew pixels")
		}
	}
}

func TestRasterizeTriangleSkipsBadIndices(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	px, py, pz := []float64{0, 7, 0}, []float64{0, 0, 7}, []float64{0, 0, 0}
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 5}, neutralColor, &lc)
	for _, b := range fb.Color {
		if b != 0 {
			t.Fatal("triangle with out-of-range index was drawn")
		}
	}
}
