package mwm

import "slices"

func (d *decoder) readParts() []MeshPart {
	d.r.ReadString() // section name
	n := d.r.ReadCount("mesh part")
	parts := make([]MeshPart, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		p, err := d.readPart(i)
		if err != nil {
			d.r.fail(err)
			d.r.annotate("mesh part %d", i)
			break
		}
		parts = append(parts, p)
	}
	d.log.Debugf("%d mesh parts", len(parts))
	return parts
}

func (d *decoder) readPart(part int) (MeshPart, error) {
	var p MeshPart
	p.MaterialHash = d.r.ReadLong()
	if d.layout.PartDrawTechnique {
		d.r.ReadLong() // draw technique, superseded by the material technique
	}

	n := d.r.ReadCount("index")
	if d.r.Err() != nil {
		return p, d.r.Err()
	}
	if n%3 != 0 {
		return p, formatErrorf("index count %d is not a multiple of 3", n)
	}
	indices := make([]int32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		indices = append(indices, d.r.ReadLong())
	}
	if d.r.Err() != nil {
		return p, d.r.Err()
	}

	p.VertexMap = CompactIndices(indices)
	faces, err := Triangulate(indices, p.VertexMap)
	if err != nil {
		if ie, ok := err.(*IndexIntegrityError); ok {
			ie.Part = part
		}
		return p, err
	}
	p.Faces = faces
	d.log.Debugf("part %d: %d faces over %d vertices", part, len(faces), len(p.VertexMap))

	if d.r.ReadBool() {
		p.Material = d.readMaterial()
	}
	return p, d.r.Err()
}

// CompactIndices returns the distinct values of indices in ascending order.
// The position of a value in the result is its dense index.
func CompactIndices(indices []int32) []int32 {
	vm := slices.Clone(indices)
	slices.Sort(vm)
	return slices.Compact(vm)
}

// Triangulate maps each consecutive triple of indices through vertexMap.
func Triangulate(indices []int32, vertexMap []int32) ([][3]int, error) {
	dense := make(map[int32]int, len(vertexMap))
	for i, orig := range vertexMap {
		dense[orig] = i
	}
	faces := make([][3]int, 0, len(indices)/3)
	for f := 0; f+2 < len(indices); f += 3 {
		var face [3]int
		for k := 0; k < 3; k++ {
			idx, ok := dense[indices[f+k]]
			if !ok {
				return nil, &IndexIntegrityError{Face: f / 3, Index: indices[f+k]}
			}
			face[k] = idx
		}
		faces = append(faces, face)
	}
	return faces, nil
}
