package mwm

func (d *decoder) readKey(p *Params) {
	key := d.r.ReadString()
	if d.r.Err() == nil {
		p.Keys = append(p.Keys, key)
	}
}

func (d *decoder) boolParam(p *Params) *bool {
	d.readKey(p)
	v := d.r.ReadBool()
	return &v
}

func (d *decoder) floatParam(p *Params) *float32 {
	d.readKey(p)
	v := d.r.ReadFloat()
	return &v
}

func (d *decoder) readVec3() [3]float32 {
	return [3]float32{d.r.ReadFloat(), d.r.ReadFloat(), d.r.ReadFloat()}
}

func (d *decoder) boxParam(p *Params) *BoundingBox {
	d.readKey(p)
	var b BoundingBox
	b.Min = d.readVec3()
	b.Max = d.readVec3()
	return &b
}

func (d *decoder) sphereParam(p *Params) *BoundingSphere {
	d.readKey(p)
	var s BoundingSphere
	s.Center = d.readVec3()
	s.Radius = d.r.ReadFloat()
	return &s
}

// readClassicParams reads the fixed parameter block of classic files.
// Each value is preceded by its key; keys are recorded but not checked.
func (d *decoder) readClassicParams() Params {
	var p Params
	p.RescaleToLengthInMeters = d.boolParam(&p)
	p.LengthInMeters = d.floatParam(&p)
	p.RescaleFactor = d.floatParam(&p)
	p.Centered = d.boolParam(&p)
	p.UseChannelTextures = d.boolParam(&p)
	p.SpecularShininess = d.floatParam(&p)
	p.SpecularPower = d.floatParam(&p)
	p.BoundingBox = d.boxParam(&p)
	p.BoundingSphere = d.sphereParam(&p)
	p.SwapWindingOrder = d.boolParam(&p)
	return p
}

// indexedParams lists the parameter sections of current files in visit order.
var indexedParams = []struct {
	name string
	read func(d *decoder, p *Params)
}{
	{"UseChannelTextures", func(d *decoder, p *Params) { p.UseChannelTextures = d.boolParam(p) }},
	{"BoundingBox", func(d *decoder, p *Params) { p.BoundingBox = d.boxParam(p) }},
	{"BoundingSphere", func(d *decoder, p *Params) { p.BoundingSphere = d.sphereParam(p) }},
	{"RescaleFactor", func(d *decoder, p *Params) { p.RescaleFactor = d.floatParam(p) }},
	{"SwapWindingOrder", func(d *decoder, p *Params) { p.SwapWindingOrder = d.boolParam(p) }},
	{"BlendIndices", func(d *decoder, p *Params) {
		d.readKey(p)
		p.BlendIndices = d.readBlendIndices()
	}},
	{"BlendWeights", func(d *decoder, p *Params) {
		d.readKey(p)
		p.BlendWeights = d.readBlendWeights()
	}},
	{"Bones", func(d *decoder, p *Params) {
		d.readKey(p)
		p.Bones = d.readBones()
	}},
	{"BoneMapping", func(d *decoder, p *Params) {
		d.readKey(p)
		p.BoneMapping = d.readBoneMapping()
	}},
}

// readIndexedParams reads every known parameter section present in the index table.
func (d *decoder) readIndexedParams() Params {
	var p Params
	for _, ip := range indexedParams {
		if d.r.Err() != nil {
			break
		}
		if d.seek(ip.name) {
			d.section(ip.name, func() { ip.read(d, &p) })
		}
	}
	return p
}
