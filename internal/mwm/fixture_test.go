package mwm

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// fixture assembles MWM byte streams for tests.
type fixture struct {
	bytes.Buffer
}

func (f *fixture) varint(v uint64) *fixture {
	f.Write(binary.AppendUvarint(nil, v))
	return f
}

func (f *fixture) str(s string) *fixture {
	f.varint(uint64(len(s)))
	f.WriteString(s)
	return f
}

func (f *fixture) long(v int32) *fixture {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	f.Write(b[:])
	return f
}

func (f *fixture) u32(v uint32) *fixture {
	return f.long(int32(v))
}

func (f *fixture) float(v float32) *fixture {
	return f.u32(math.Float32bits(v))
}

func (f *fixture) floats(vs ...float32) *fixture {
	for _, v := range vs {
		f.float(v)
	}
	return f
}

func (f *fixture) half(v float32) *fixture {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], float16.Fromfloat32(v).Bits())
	f.Write(b[:])
	return f
}

func (f *fixture) boolean(v bool) *fixture {
	if v {
		f.WriteByte(1)
	} else {
		f.WriteByte(0)
	}
	return f
}

func (f *fixture) header(version string) *fixture {
	return f.str("Debug").long(1).str(version)
}

func (f *fixture) matrix(m Matrix) *fixture {
	for _, row := range m {
		f.floats(row[:]...)
	}
	return f
}

func (f *fixture) stringMap(kv ...string) *fixture {
	f.long(int32(len(kv) / 2))
	for _, s := range kv {
		f.str(s)
	}
	return f
}

func (f *fixture) reader() *bytes.Reader {
	return bytes.NewReader(f.Bytes())
}

// vertexChannels writes the six vertex channels with the given positions and uvs.
// Each channel is reported through mark before it is written.
func (f *fixture) vertexChannels(positions [][3]float32, uvs [][2]float32, mark func(string)) {
	mark(sectionVertices)
	f.str("Vertices").long(int32(len(positions)))
	for _, p := range positions {
		f.half(p[0]).half(p[1]).half(p[2]).half(1)
	}
	mark(sectionNormals)
	f.str("Normals").long(int32(len(positions)))
	for i := range positions {
		f.u32(uint32(0xA0B0C0D0 + i))
	}
	mark(sectionTexCoords0)
	f.str("TexCoords0").long(int32(len(uvs)))
	for _, uv := range uvs {
		f.half(uv[0]).half(uv[1])
	}
	mark(sectionBinormals)
	f.str("Binormals").long(0)
	mark(sectionTangents)
	f.str("Tangents").long(0)
	mark(sectionTexCoords1)
	f.str("TexCoords1").long(2).u32(7).u32(8)
}

// current builds a current-era file. Sections are laid out after a fixed-size
// index table whose offsets are patched in once the body is written.
type current struct {
	names   []string
	offsets map[string]int32
	body    fixture
	base    int
}

func newCurrent(version string, names ...string) *current {
	c := &current{names: names, offsets: make(map[string]int32)}
	var head fixture
	head.header(version).long(int32(len(names)))
	for _, n := range names {
		head.str(n).long(0)
	}
	c.base = head.Len()
	return c
}

func (c *current) mark(name string) {
	c.offsets[name] = int32(c.base + c.body.Len())
}

func (c *current) build(version string) *bytes.Reader {
	var out fixture
	out.header(version).long(int32(len(c.names)))
	for _, n := range c.names {
		out.str(n).long(c.offsets[n])
	}
	out.Write(c.body.Bytes())
	return out.reader()
}
