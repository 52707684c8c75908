package mwm

// Parameter keys used for the two texture paths of legacy materials.
const (
	ParamDiffuseTexture = "DiffuseTexture"
	ParamNormalTexture  = "NormalTexture"
)

// Shading values used when a revision stores none.
const defaultGlossiness = 1.0

var defaultColor = [3]float32{1, 1, 1}

func (d *decoder) readMaterial() *Material {
	m := &Material{Name: d.r.ReadString()}

	if d.layout.LegacyTextures {
		m.Params = make(map[string]string, 2)
		if diffuse := d.r.ReadString(); diffuse != "" {
			m.Params[ParamDiffuseTexture] = diffuse
		}
		if normal := d.r.ReadString(); normal != "" {
			m.Params[ParamNormalTexture] = normal
		}
	} else {
		m.Params = d.readStringMap("material parameter")
	}

	if d.layout.MaterialUserData {
		// Parsed to stay aligned; not part of the returned material.
		userData := d.readStringMap("material user data")
		if len(userData) > 0 {
			d.log.Debugf("material %q: discarding %d user data entries", m.Name, len(userData))
		}
	}

	if d.layout.MaterialShading {
		m.Glossiness = d.r.ReadFloat()
		m.DiffuseColor = d.readVec3()
		m.SpecularColor = d.readVec3()
	} else {
		m.Glossiness = defaultGlossiness
		m.DiffuseColor = defaultColor
		m.SpecularColor = defaultColor
		m.ShadingDefaulted = true
	}

	if d.layout.NumericTechnique {
		m.Technique = Technique{Code: d.r.ReadLong(), Legacy: true}
		d.log.Debugf("material %q: legacy technique code %d", m.Name, m.Technique.Code)
	} else {
		m.Technique = Technique{Name: d.r.ReadString()}
	}

	if m.IsGlass() {
		d.readGlass(m)
	}
	return m
}

// readGlass reads the extra fields of a GLASS material.
func (d *decoder) readGlass(m *Material) {
	if d.layout.GlassCompanions {
		m.GlassCW = d.r.ReadString()
		m.GlassCCW = d.r.ReadString()
		m.SmoothNormals = d.r.ReadBool()
		return
	}
	d.r.Skip(4 * 4) // four obsolete floats
	m.GlassCW = "GlassCW"
	m.GlassCCW = "GlassCCW"
}
