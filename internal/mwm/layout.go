package mwm

import "math"

// Era is the format generation selected by the header version.
type Era int

const (
	// EraEmpty is a file whose header flag is zero; nothing follows the header.
	EraEmpty Era = iota
	// EraClassic files use a fixed positional layout.
	EraClassic
	// EraCurrent files carry an index table and are decoded with seeks.
	EraCurrent
)

func (e Era) String() string {
	switch e {
	case EraEmpty:
		return "empty"
	case EraClassic:
		return "classic"
	case EraCurrent:
		return "current"
	}
	return "unknown"
}

// Layout describes which optional fields a format revision carries.
type Layout struct {
	Era Era

	// PartDrawTechnique: each mesh part stores a 32-bit draw technique after its material hash.
	PartDrawTechnique bool
	// LegacyTextures: materials store exactly two texture paths instead of a parameter table.
	LegacyTextures bool
	// MaterialUserData: materials carry a user data table after their parameters.
	MaterialUserData bool
	// MaterialShading: glossiness, diffuse and specular colours are stored in the stream.
	MaterialShading bool
	// NumericTechnique: the material technique is a 32-bit code rather than a string.
	NumericTechnique bool
	// GlassCompanions: GLASS materials name their CW/CCW companions instead of four obsolete floats.
	GlassCompanions bool
}

type revision struct {
	Since  int // inclusive lower version bound
	Layout Layout
}

// revisions lists every known format revision in ascending order.
// A version uses the layout of the last row whose Since is not above it.
var revisions = []revision{
	{Since: math.MinInt, Layout: Layout{
		Era:               EraClassic,
		PartDrawTechnique: true,
		LegacyTextures:    true,
		MaterialShading:   true,
		NumericTechnique:  true,
	}},
	{Since: 1043001, Layout: Layout{
		Era:               EraClassic,
		PartDrawTechnique: true,
		LegacyTextures:    true,
		MaterialShading:   true,
		NumericTechnique:  true,
		GlassCompanions:   true,
	}},
	{Since: 1052001, Layout: Layout{
		Era:             EraClassic,
		LegacyTextures:  true,
		MaterialShading: true,
		GlassCompanions: true,
	}},
	{Since: 1052002, Layout: Layout{
		Era:             EraClassic,
		MaterialShading: true,
		GlassCompanions: true,
	}},
	{Since: 1066003, Layout: Layout{
		Era:             EraCurrent,
		MaterialShading: true,
		GlassCompanions: true,
	}},
	{Since: 1068001, Layout: Layout{
		Era:              EraCurrent,
		MaterialUserData: true,
		MaterialShading:  true,
		GlassCompanions:  true,
	}},
	{Since: 1157001, Layout: Layout{
		Era:              EraCurrent,
		MaterialUserData: true,
		GlassCompanions:  true,
	}},
}

// LayoutFor returns the layout of the given format version.
func LayoutFor(version int) Layout {
	l := revisions[0].Layout
	for _, rev := range revisions[1:] {
		if version < rev.Since {
			break
		}
		l = rev.Layout
	}
	return l
}
