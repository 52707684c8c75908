// Package gltfexport converts decoded model meshes to glTF 2.0 documents.
package gltfexport

import (
	"fmt"
	"io"
	"os"

	"mwm-renderer/internal/scene"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// glassAlpha is the base-colour alpha of GLASS materials.
const glassAlpha = 0.35

var neutral = [4]float64{160.0 / 255, 160.0 / 255, 170.0 / 255, 1}

// Document builds a glTF document with one node per mesh. Positions are
// turned back from Z-up to glTF's Y-up frame. Materials are shared by name.
func Document(meshes []scene.Mesh) *gltf.Document {
	doc := gltf.NewDocument()
	materials := make(map[string]int)

	for _, m := range meshes {
		if len(m.Positions) == 0 || len(m.Faces) == 0 {
			continue
		}

		positions := make([][3]float32, len(m.Positions))
		for i, p := range m.Positions {
			positions[i] = [3]float32{p[0], p[2], p[1]}
		}
		indices := make([]uint32, 0, len(m.Faces)*3)
		for _, f := range m.Faces {
			indices = append(indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
		}

		attrs := map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
		}
		if len(m.UVs) == len(m.Positions) {
			attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, m.UVs)
		}
		prim := &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attrs,
		}
		if m.Material != nil {
			idx, ok := materials[m.Material.Name]
			if !ok {
				idx = len(doc.Materials)
				doc.Materials = append(doc.Materials, material(m))
				materials[m.Material.Name] = idx
			}
			prim.Material = gltf.Index(idx)
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

func material(m scene.Mesh) *gltf.Material {
	base := neutral
	if !m.Material.ShadingDefaulted {
		d := m.Material.DiffuseColor
		base = [4]float64{float64(d[0]), float64(d[1]), float64(d[2]), 1}
	}
	out := &gltf.Material{
		Name: m.Material.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}
	if m.Material.IsGlass() {
		base[3] = glassAlpha
		out.AlphaMode = gltf.AlphaBlend
		out.DoubleSided = true
	}
	return out
}

// Encode writes doc as binary glTF (GLB).
func Encode(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gltfexport: encode: %w", err)
	}
	return nil
}

// WriteFile writes meshes to a .glb file at path.
func WriteFile(path string, meshes []scene.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gltfexport: %w", err)
	}
	if err := Encode(f, Document(meshes)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
