package mwm

import "strconv"

// Header is the leading block of every MWM file.
type Header struct {
	Section string
	Flag    int32
	Version int // 0 when Flag is 0
}

// Era reports the format generation of the file.
func (h Header) Era() Era {
	if h.Flag == 0 {
		return EraEmpty
	}
	return LayoutFor(h.Version).Era
}

// IndexTable maps section names to absolute stream offsets (current era only).
type IndexTable map[string]int32

// Matrix is a 4×4 row-major transform.
type Matrix [4][4]float32

// Translation returns the translation row of an XNA-style (row-vector) matrix.
func (m Matrix) Translation() [3]float32 {
	return [3]float32{m[3][0], m[3][1], m[3][2]}
}

// VertexData holds the per-vertex channels, all indexed by original vertex index.
type VertexData struct {
	Positions [][3]float32 // (x, z, y) of the stored half-float position
	UVs       [][2]float32

	// Raw 4-byte words. Their packing is not known; nothing interprets them.
	Normals   []uint32
	Binormals []uint32
	Tangents  []uint32

	TexCoords1 [][2]float32 // always empty: the channel is skipped
}

// MeshPart is one sub-mesh with compacted topology.
type MeshPart struct {
	MaterialHash int32

	// VertexMap holds the distinct original indices referenced by the part in
	// ascending order; the position of an original index is its dense index.
	VertexMap []int32
	Faces     [][3]int
	Material  *Material
}

// DenseIndex returns the dense index of an original vertex index.
func (p *MeshPart) DenseIndex(original int32) (int, bool) {
	lo, hi := 0, len(p.VertexMap)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if p.VertexMap[mid] < original {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(p.VertexMap) && p.VertexMap[lo] == original {
		return lo, true
	}
	return 0, false
}

// Technique is a material's shading technique.
// Revisions before 1052001 store an opaque numeric code with no known name.
type Technique struct {
	Name   string
	Code   int32
	Legacy bool
}

func (t Technique) String() string {
	if t.Legacy {
		return "#" + strconv.Itoa(int(t.Code))
	}
	return t.Name
}

// TechniqueGlass is the technique that carries companion glass materials.
const TechniqueGlass = "GLASS"

// Material is the material bound to a mesh part.
type Material struct {
	Name   string
	Params map[string]string

	Glossiness    float32
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	// ShadingDefaulted is set when the revision stores no shading fields and
	// Glossiness/DiffuseColor/SpecularColor hold fixed defaults.
	ShadingDefaulted bool

	Technique Technique

	// GLASS only.
	GlassCW       string
	GlassCCW      string
	SmoothNormals bool
}

// IsGlass reports whether the material uses the GLASS technique.
func (m *Material) IsGlass() bool {
	return !m.Technique.Legacy && m.Technique.Name == TechniqueGlass
}

// Bone is one joint of the skeleton.
type Bone struct {
	Name      string
	Parent    int32 // as stored; negative means no parent
	Transform Matrix
}

// Dummy is a named attachment point (classic era only).
type Dummy struct {
	Name      string
	Transform Matrix
	Params    map[string]string
}

type BoundingBox struct {
	Min, Max [3]float32
}

type BoundingSphere struct {
	Center [3]float32
	Radius float32
}

// Params holds model-level parameters. Fields stay nil when the file does not carry them.
type Params struct {
	RescaleToLengthInMeters *bool
	LengthInMeters          *float32
	RescaleFactor           *float32
	Centered                *bool
	UseChannelTextures      *bool
	SpecularShininess       *float32
	SpecularPower           *float32
	BoundingBox             *BoundingBox
	BoundingSphere          *BoundingSphere
	SwapWindingOrder        *bool

	BlendIndices [][4]uint8
	BlendWeights [][4]float32
	Bones        []Bone
	BoneMapping  [][3]float32

	// Keys lists the key strings as stored in the file, in read order.
	Keys []string
}

// Model is the result of one decode.
type Model struct {
	Header   Header
	Layout   Layout
	Index    IndexTable // nil for classic files
	Dummies  []Dummy    // classic files only
	Vertices VertexData
	Params   Params
	Parts    []MeshPart
}
