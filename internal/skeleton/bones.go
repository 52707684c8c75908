package skeleton

import (
	"mwm-renderer/internal/mathutil"
	"mwm-renderer/internal/mwm"
)

// BuildWorldMatrices computes the bind-pose world transform of each bone.
// Returns a slice of 4×4 matrices indexed by bone index.
//
// Bone transforms are row-vector matrices, so world = local × parentWorld.
// A bone whose parent is negative, itself, or a later bone is a root.
func BuildWorldMatrices(bones []mwm.Bone) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(bones))
	for i, bone := range bones {
		local := mathutil.Mat4FromRows(bone.Transform)

		// Chain with parent
		if p := int(bone.Parent); p >= 0 && p < i {
			worlds[i] = mathutil.Mat4Mul(local, worlds[p])
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// Depths returns the hierarchy depth of each bone, roots at 0.
func Depths(bones []mwm.Bone) []int {
	depths := make([]int, len(bones))
	for i, bone := range bones {
		if p := int(bone.Parent); p >= 0 && p < i {
			depths[i] = depths[p] + 1
		}
	}
	return depths
}

// DummyPositions returns the translation of each dummy in model space.
func DummyPositions(dummies []mwm.Dummy) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(dummies))
	for i, d := range dummies {
		out[i] = mathutil.V3(d.Transform.Translation())
	}
	return out
}
