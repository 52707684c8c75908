// Package scene turns decoded models into renderable per-part meshes.
package scene

import (
	"fmt"

	"mwm-renderer/internal/mwm"
)

// Mesh is one mesh part with vertices in dense order.
type Mesh struct {
	Name      string
	Positions [][3]float32
	UVs       [][2]float32 // empty when the model has no UV channel
	Faces     [][3]int
	Material  *mwm.Material // nil when the part has none
}

// Build selects each part's vertices through its vertex map. Any part that
// references a vertex outside the model's channels fails the whole build.
func Build(name string, m *mwm.Model) ([]Mesh, error) {
	positions := m.Vertices.Positions
	uvs := m.Vertices.UVs

	meshes := make([]Mesh, 0, len(m.Parts))
	for pi := range m.Parts {
		part := &m.Parts[pi]
		mesh := Mesh{
			Name:      fmt.Sprintf("%s#%d", name, pi),
			Positions: make([][3]float32, len(part.VertexMap)),
			Faces:     part.Faces,
			Material:  part.Material,
		}
		if len(uvs) > 0 {
			mesh.UVs = make([][2]float32, len(part.VertexMap))
		}

		for dense, orig := range part.VertexMap {
			if orig < 0 || int(orig) >= len(positions) {
				return nil, fmt.Errorf("scene: %s part %d: vertex %d outside %d positions", name, pi, orig, len(positions))
			}
			mesh.Positions[dense] = positions[orig]
			if mesh.UVs != nil {
				if int(orig) >= len(uvs) {
					return nil, fmt.Errorf("scene: %s part %d: vertex %d outside %d texture coordinates", name, pi, orig, len(uvs))
				}
				mesh.UVs[dense] = uvs[orig]
			}
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Stats summarises a decoded model.
type Stats struct {
	Version   int    `json:"version"`
	Era       string `json:"era"`
	Parts     int    `json:"parts"`
	Vertices  int    `json:"vertices"`
	Faces     int    `json:"faces"`
	Materials int    `json:"materials"`
	Glass     int    `json:"glass_parts"`
	Bones     int    `json:"bones"`
	Dummies   int    `json:"dummies"`

	// DefaultedShading counts materials whose shading fields were not stored.
	DefaultedShading int `json:"defaulted_shading,omitempty"`
}

// Summarize counts the contents of m. Materials are counted by name.
func Summarize(m *mwm.Model) Stats {
	s := Stats{
		Version:  m.Header.Version,
		Era:      m.Header.Era().String(),
		Parts:    len(m.Parts),
		Vertices: len(m.Vertices.Positions),
		Bones:    len(m.Params.Bones),
		Dummies:  len(m.Dummies),
	}
	names := make(map[string]bool)
	for _, p := range m.Parts {
		s.Faces += len(p.Faces)
		if p.Material == nil {
			continue
		}
		names[p.Material.Name] = true
		if p.Material.IsGlass() {
			s.Glass++
		}
		if p.Material.ShadingDefaulted {
			s.DefaultedShading++
		}
	}
	s.Materials = len(names)
	return s
}
