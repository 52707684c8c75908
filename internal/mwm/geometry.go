package mwm

// Section names of the vertex channels, in stream order.
const (
	sectionVertices   = "Vertices"
	sectionNormals    = "Normals"
	sectionTexCoords0 = "TexCoords0"
	sectionBinormals  = "Binormals"
	sectionTangents   = "Tangents"
	sectionTexCoords1 = "TexCoords1"
	sectionMeshParts  = "MeshParts"
)

func (d *decoder) channelHeader(what string) int {
	d.r.ReadString() // channel name
	return d.r.ReadCount(what)
}

// readPositions reads (x, y, z, w) half-floats and emits (x, z, y).
func (d *decoder) readPositions() [][3]float32 {
	n := d.channelHeader("position")
	out := make([][3]float32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		x := d.r.ReadHalf()
		y := d.r.ReadHalf()
		z := d.r.ReadHalf()
		d.r.ReadHalf() // w
		out = append(out, [3]float32{x, z, y})
	}
	return out
}

// readPacked keeps each 4-byte element verbatim.
func (d *decoder) readPacked(what string) []uint32 {
	n := d.channelHeader(what)
	out := make([]uint32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		out = append(out, d.r.ReadUint32())
	}
	return out
}

func (d *decoder) readUVs() [][2]float32 {
	n := d.channelHeader("uv")
	out := make([][2]float32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		out = append(out, [2]float32{d.r.ReadHalf(), d.r.ReadHalf()})
	}
	return out
}

func (d *decoder) skipTexCoords1() {
	n := d.channelHeader("texcoord1")
	d.r.Skip(int64(n) * 4)
}

// readVertexData reads the six vertex channels. In current files each channel
// is located through the index table first.
func (d *decoder) readVertexData() VertexData {
	var v VertexData
	steps := []struct {
		section string
		read    func()
	}{
		{sectionVertices, func() { v.Positions = d.readPositions() }},
		{sectionNormals, func() { v.Normals = d.readPacked("normal") }},
		{sectionTexCoords0, func() { v.UVs = d.readUVs() }},
		{sectionBinormals, func() { v.Binormals = d.readPacked("binormal") }},
		{sectionTangents, func() { v.Tangents = d.readPacked("tangent") }},
		{sectionTexCoords1, d.skipTexCoords1},
	}
	for _, s := range steps {
		if d.index != nil {
			d.mustSeek(s.section)
		}
		if d.r.Err() != nil {
			break
		}
		d.section(s.section, s.read)
	}
	d.log.Debugf("vertex data: %d positions, %d uvs", len(v.Positions), len(v.UVs))
	return v
}
