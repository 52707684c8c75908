package gltfexport

import (
	"bytes"
	"testing"

	"mwm-renderer/internal/mwm"
	"mwm-renderer/internal/scene"

	"github.com/qmuntal/gltf"
)

func testMeshes() []scene.Mesh {
	steel := &mwm.Material{Name: "Steel", DiffuseColor: [3]float32{0.5, 0.25, 1}, Technique: mwm.Technique{Name: "MESH"}}
	glass := &mwm.Material{Name: "Window", DiffuseColor: [3]float32{1, 1, 1}, Technique: mwm.Technique{Name: mwm.TechniqueGlass}}
	return []scene.Mesh{
		{
			Name:      "ship#0",
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 2}},
			UVs:       [][2]float32{{0, 0}, {1, 0}, {0, 1}},
			Faces:     [][3]int{{0, 1, 2}},
			Material:  steel,
		},
		{
			Name:      "ship#1",
			Positions: [][3]float32{{0, 1, 0}, {1, 1, 0}, {0, 1, 2}},
			Faces:     [][3]int{{0, 1, 2}},
			Material:  glass,
		},
		{
			Name:      "ship#2",
			Positions: [][3]float32{{0, 2, 0}, {1, 2, 0}, {0, 2, 2}},
			Faces:     [][3]int{{2, 1, 0}},
			Material:  steel,
		},
		{Name: "ship#3"},
	}
}

func TestDocument(t *testing.T) {
	doc := Document(testMeshes())

	if len(doc.Meshes) != 3 || len(doc.Nodes) != 3 || len(doc.Scenes[0].Nodes) != 3 {
		t.Fatalf("meshes=%d nodes=%d scene nodes=%d, want 3", len(doc.Meshes), len(doc.Nodes), len(doc.Scenes[0].Nodes))
	}
	if len(doc.Materials) != 2 {
		t.Fatalf("materials = %d, want 2 shared by name", len(doc.Materials))
	}

	steel := doc.Materials[0]
	if got := *steel.PBRMetallicRoughness.BaseColorFactor; got != [4]float64{0.5, 0.25, 1, 1} {
		t.Errorf("steel base colour = %v", got)
	}
	glass := doc.Materials[1]
	if glass.AlphaMode != gltf.AlphaBlend || (*glass.PBRMetallicRoughness.BaseColorFactor)[3] != glassAlpha {
		t.Errorf("glass material = %+v", glass)
	}

	first := doc.Meshes[0].Primitives[0]
	if _, ok := first.Attributes[gltf.TEXCOORD_0]; !ok {
		t.Error("mesh 0 lost its texture coordinates")
	}
	if _, ok := doc.Meshes[1].Primitives[0].Attributes[gltf.TEXCOORD_0]; ok {
		t.Error("mesh 1 has texture coordinates")
	}
	pos := doc.Accessors[first.Attributes[gltf.POSITION]]
	// The third vertex is 2 units up (Z) in model space, so Y in glTF.
	if len(pos.Max) != 3 || pos.Max[0] != 1 || pos.Max[1] != 2 || pos.Max[2] != 0 {
		t.Errorf("position max = %v, want Y-up", pos.Max)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Document(testMeshes())); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatalf("output is not GLB: % x", buf.Bytes()[:4])
	}

	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Meshes) != 3 || doc.Meshes[2].Name != "ship#2" {
		t.Errorf("decoded %d meshes", len(doc.Meshes))
	}
}
