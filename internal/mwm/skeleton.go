package mwm

func (d *decoder) readMatrix() Matrix {
	var m Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row][col] = d.r.ReadFloat()
		}
	}
	return m
}

func (d *decoder) readStringMap(what string) map[string]string {
	n := d.r.ReadCount(what)
	m := make(map[string]string, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		k := d.r.ReadString()
		m[k] = d.r.ReadString()
	}
	return m
}

func (d *decoder) readDummies() []Dummy {
	d.r.ReadString() // section name
	n := d.r.ReadCount("dummy")
	dummies := make([]Dummy, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		var dm Dummy
		dm.Name = d.r.ReadString()
		dm.Transform = d.readMatrix()
		dm.Params = d.readStringMap("dummy parameter")
		dummies = append(dummies, dm)
	}
	d.log.Debugf("%d dummies", len(dummies))
	return dummies
}

func (d *decoder) readBones() []Bone {
	n := d.r.ReadCount("bone")
	bones := make([]Bone, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		var b Bone
		b.Name = d.r.ReadString()
		b.Parent = d.r.ReadLong()
		b.Transform = d.readMatrix()
		bones = append(bones, b)
	}
	d.log.Debugf("%d bones", len(bones))
	return bones
}

func (d *decoder) readBoneMapping() [][3]float32 {
	n := d.r.ReadCount("bone mapping")
	out := make([][3]float32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		out = append(out, d.readVec3())
	}
	return out
}

// readBlendIndices keeps the low byte of each stored 32-bit component.
func (d *decoder) readBlendIndices() [][4]uint8 {
	n := d.r.ReadCount("blend index")
	out := make([][4]uint8, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		var v [4]uint8
		for k := range v {
			v[k] = uint8(d.r.ReadLong() & 0xff)
		}
		out = append(out, v)
	}
	return out
}

func (d *decoder) readBlendWeights() [][4]float32 {
	n := d.r.ReadCount("blend weight")
	out := make([][4]float32, 0, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		out = append(out, [4]float32{d.r.ReadFloat(), d.r.ReadFloat(), d.r.ReadFloat(), d.r.ReadFloat()})
	}
	return out
}
