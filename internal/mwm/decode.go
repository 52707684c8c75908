package mwm

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Decoder decodes MWM streams. The zero value is ready to use.
type Decoder struct {
	Logger Logger
}

type decoder struct {
	r      *Reader
	layout Layout
	index  IndexTable
	log    Logger
}

// eraDecoders holds the section order of each era after the header.
var eraDecoders = map[Era]func(d *decoder, m *Model){
	EraClassic: func(d *decoder, m *Model) {
		d.section("dummies", func() { m.Dummies = d.readDummies() })
		m.Vertices = d.readVertexData()
		d.section("parameters", func() { m.Params = d.readClassicParams() })
		m.Parts = d.readParts()
	},
	EraCurrent: func(d *decoder, m *Model) {
		d.section("index table", func() { d.index = d.readIndex() })
		m.Index = d.index
		m.Vertices = d.readVertexData()
		m.Params = d.readIndexedParams()
		d.mustSeek(sectionMeshParts)
		m.Parts = d.readParts()
	},
}

// section runs read and names the section in any error it leaves behind.
func (d *decoder) section(name string, read func()) {
	if d.r.Err() != nil {
		return
	}
	read()
	d.r.annotate("%s section", name)
}

// Decode reads one model from rs. On error no model is returned.
func (dec *Decoder) Decode(rs io.ReadSeeker) (*Model, error) {
	d := &decoder{r: NewReader(rs), log: dec.Logger}
	if d.log == nil {
		d.log = nopLogger{}
	}

	m := &Model{}
	m.Header = d.readHeader()
	if err := d.r.Err(); err != nil {
		return nil, err
	}

	era := m.Header.Era()
	if era == EraEmpty {
		d.log.Debugf("header flag is 0, nothing to decode")
		return m, nil
	}
	d.layout = LayoutFor(m.Header.Version)
	m.Layout = d.layout
	d.log.Debugf("version %d, %s layout", m.Header.Version, era)

	decode, ok := eraDecoders[era]
	if !ok {
		return nil, formatErrorf("no decoder for %s era", era)
	}
	decode(d, m)
	if err := d.r.Err(); err != nil {
		return nil, err
	}
	defaulted := 0
	for i := range m.Parts {
		if mat := m.Parts[i].Material; mat != nil && mat.ShadingDefaulted {
			defaulted++
		}
	}
	if defaulted > 0 {
		d.log.Warnf("version %d stores no material shading; defaults used for %d materials", m.Header.Version, defaulted)
	}
	return m, nil
}

// Decode reads one model from rs with a silent decoder.
func Decode(rs io.ReadSeeker) (*Model, error) {
	var dec Decoder
	return dec.Decode(rs)
}

// Parse reads and decodes an MWM file.
func (dec *Decoder) Parse(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mwm: read %s", path)
	}
	m, err := dec.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "mwm: decode %s", path)
	}
	return m, nil
}

// Parse reads and decodes an MWM file with a silent decoder.
func Parse(path string) (*Model, error) {
	var dec Decoder
	return dec.Parse(path)
}
