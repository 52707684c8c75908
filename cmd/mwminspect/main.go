package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"strings"

	"mwm-renderer/internal/logging"
	"mwm-renderer/internal/mathutil"
	"mwm-renderer/internal/mwm"
	"mwm-renderer/internal/scene"
	"mwm-renderer/internal/skeleton"
)

func main() {
	asJSON := flag.Bool("json", false, "Dump each decoded model as JSON (NaN is written as 0, ±Inf as ±max float32)")
	logLevel := flag.String("log", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := logging.Setup(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, arg := range flag.Args() {
		dec := mwm.Decoder{Logger: logging.Logger{Prefix: arg}}
		m, err := dec.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}

		if *asJSON {
			if n := clampNonFinite(reflect.ValueOf(m)); n > 0 {
				logging.Logger{Prefix: arg}.Warnf("%d non-finite values clamped for JSON", n)
			}
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "JSON error %s: %v\n", arg, err)
				failed = true
				continue
			}
			fmt.Println(string(data))
			continue
		}
		printModel(arg, m)
	}
	if failed {
		os.Exit(1)
	}
}

func printModel(name string, m *mwm.Model) {
	s := scene.Summarize(m)
	fmt.Printf("\n=== %s (%s, version=%d parts=%d vertices=%d) ===\n", name, s.Era, s.Version, s.Parts, s.Vertices)
	fmt.Printf("  Header: section=%q flag=%d\n", m.Header.Section, m.Header.Flag)
	if m.Header.Era() == mwm.EraEmpty {
		return
	}
	fmt.Printf("  Layout: %+v\n", m.Layout)

	if m.Index != nil {
		fmt.Println("--- INDEX ---")
		names := make([]string, 0, len(m.Index))
		for n := range m.Index {
			names = append(names, n)
		}
		slices.SortFunc(names, func(a, b string) int { return int(m.Index[a]) - int(m.Index[b]) })
		for _, n := range names {
			fmt.Printf("  %-24s @%d\n", n, m.Index[n])
		}
	}

	fmt.Println("--- PARAMS ---")
	printParams(&m.Params)

	v := &m.Vertices
	fmt.Println("--- CHANNELS ---")
	fmt.Printf("  positions=%d uvs=%d normals=%d binormals=%d tangents=%d\n",
		len(v.Positions), len(v.UVs), len(v.Normals), len(v.Binormals), len(v.Tangents))
	if len(v.Positions) > 0 {
		minV, maxV := v.Positions[0], v.Positions[0]
		for _, p := range v.Positions[1:] {
			for k := 0; k < 3; k++ {
				minV[k] = min(minV[k], p[k])
				maxV[k] = max(maxV[k], p[k])
			}
		}
		fmt.Printf("  bbox min=(%.3f,%.3f,%.3f) max=(%.3f,%.3f,%.3f)\n",
			minV[0], minV[1], minV[2], maxV[0], maxV[1], maxV[2])
	}

	fmt.Println("--- PARTS ---")
	for i, p := range m.Parts {
		fmt.Printf("  Part[%d]: hash=%d vertices=%d faces=%d", i, p.MaterialHash, len(p.VertexMap), len(p.Faces))
		if p.Material == nil {
			fmt.Println(" material=<none>")
			continue
		}
		mat := p.Material
		fmt.Printf(" material=%q technique=%s\n", mat.Name, mat.Technique)
		shading := ""
		if mat.ShadingDefaulted {
			shading = " (defaulted)"
		}
		fmt.Printf("    gloss=%.2f diffuse=%v specular=%v%s\n", mat.Glossiness, mat.DiffuseColor, mat.SpecularColor, shading)
		for _, k := range sortedKeys(mat.Params) {
			fmt.Printf("    %s = %s\n", k, mat.Params[k])
		}
		if mat.IsGlass() {
			fmt.Printf("    glass cw=%q ccw=%q smooth=%v\n", mat.GlassCW, mat.GlassCCW, mat.SmoothNormals)
		}
	}

	if bones := m.Params.Bones; len(bones) > 0 {
		fmt.Println("--- BONES ---")
		worlds := skeleton.BuildWorldMatrices(bones)
		depths := skeleton.Depths(bones)
		for i, b := range bones {
			t := worlds[i].Translation()
			fmt.Printf("  %s[%d] %s parent=%d world=(%.3f,%.3f,%.3f)\n",
				strings.Repeat("  ", depths[i]), i, b.Name, b.Parent, t[0], t[1], t[2])
		}
	}

	if len(m.Dummies) > 0 {
		fmt.Println("--- DUMMIES ---")
		positions := skeleton.DummyPositions(m.Dummies)
		for i, d := range m.Dummies {
			fmt.Printf("  %s at %s", d.Name, formatVec(positions[i]))
			for _, k := range sortedKeys(d.Params) {
				fmt.Printf(" %s=%s", k, d.Params[k])
			}
			fmt.Println()
		}
	}
}

func printParams(p *mwm.Params) {
	fmt.Printf("  keys: %s\n", strings.Join(p.Keys, ", "))
	if p.LengthInMeters != nil {
		fmt.Printf("  LengthInMeters = %g\n", *p.LengthInMeters)
	}
	if p.RescaleFactor != nil {
		fmt.Printf("  RescaleFactor = %g\n", *p.RescaleFactor)
	}
	if p.BoundingBox != nil {
		fmt.Printf("  BoundingBox = %v .. %v\n", p.BoundingBox.Min, p.BoundingBox.Max)
	}
	if p.BoundingSphere != nil {
		fmt.Printf("  BoundingSphere = %v r=%g\n", p.BoundingSphere.Center, p.BoundingSphere.Radius)
	}
	if p.SwapWindingOrder != nil {
		fmt.Printf("  SwapWindingOrder = %v\n", *p.SwapWindingOrder)
	}
	if n := len(p.BlendIndices); n > 0 {
		fmt.Printf("  blend indices=%d weights=%d\n", n, len(p.BlendWeights))
	}
	if n := len(p.BoneMapping); n > 0 {
		fmt.Printf("  bone mapping=%d\n", n)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatVec(v mathutil.Vec3) string {
	for k := range v {
		if math.Abs(v[k]) < 5e-4 {
			v[k] = 0
		}
	}
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v[0], v[1], v[2])
}

// clampNonFinite replaces NaN with 0 and ±Inf with ±MaxFloat32 in every
// float32 reachable from v through exported fields, and returns how many
// values it changed. v must be a pointer or otherwise addressable.
func clampNonFinite(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Float32:
		f := v.Float()
		switch {
		case math.IsNaN(f):
			v.SetFloat(0)
		case math.IsInf(f, 1):
			v.SetFloat(math.MaxFloat32)
		case math.IsInf(f, -1):
			v.SetFloat(-math.MaxFloat32)
		default:
			return 0
		}
		return 1
	case reflect.Pointer:
		if v.IsNil() {
			return 0
		}
		return clampNonFinite(v.Elem())
	case reflect.Struct:
		n := 0
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				n += clampNonFinite(v.Field(i))
			}
		}
		return n
	case reflect.Slice, reflect.Array:
		switch v.Type().Elem().Kind() {
		case reflect.Float32, reflect.Array, reflect.Slice, reflect.Struct, reflect.Pointer:
		default:
			return 0
		}
		n := 0
		for i := 0; i < v.Len(); i++ {
			n += clampNonFinite(v.Index(i))
		}
		return n
	}
	return 0
}
