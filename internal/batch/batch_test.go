package batch

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/x448/float16"
)

// mwmWriter writes the little-endian primitives of an MWM stream.
type mwmWriter struct {
	bytes.Buffer
}

func (w *mwmWriter) str(s string) {
	w.Write(binary.AppendUvarint(nil, uint64(len(s))))
	w.WriteString(s)
}

func (w *mwmWriter) long(v int32) {
	binary.Write(&w.Buffer, binary.LittleEndian, v)
}

func (w *mwmWriter) float(vs ...float32) {
	for _, v := range vs {
		binary.Write(&w.Buffer, binary.LittleEndian, math.Float32bits(v))
	}
}

func (w *mwmWriter) half(vs ...float32) {
	for _, v := range vs {
		binary.Write(&w.Buffer, binary.LittleEndian, float16.Fromfloat32(v).Bits())
	}
}

func (w *mwmWriter) boolean(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

// triangleModel returns a classic-era model holding one red triangle.
func triangleModel() []byte {
	var w mwmWriter
	w.str("Debug")
	w.long(1)
	w.str("Version:1066002")

	w.str("Dummies")
	w.long(0)

	w.str("Vertices")
	w.long(3)
	// Stored as (x, y, z, w) with y up; decoded as (x, z, y).
	w.half(-1, -1, 0, 1)
	w.half(1, -1, 0, 1)
	w.half(0, 1, 0, 1)
	w.str("Normals")
	w.long(0)
	w.str("TexCoords0")
	w.long(0)
	w.str("Binormals")
	w.long(0)
	w.str("Tangents")
	w.long(0)
	w.str("TexCoords1")
	w.long(0)

	for _, key := range []string{"RescaleToLengthInMeters", "LengthInMeters", "RescaleFactor", "Centered", "UseChannelTextures", "SpecularShininess", "SpecularPower", "BoundingBox", "BoundingSphere", "SwapWindingOrder"} {
		w.str(key)
		switch key {
		case "RescaleToLengthInMeters", "Centered", "UseChannelTextures", "SwapWindingOrder":
			w.boolean(false)
		case "BoundingBox":
			w.float(-1, -1, -1, 1, 1, 1)
		case "BoundingSphere":
			w.float(0, 0, 0, 1)
		default:
			w.float(1)
		}
	}

	w.str("MeshParts")
	w.long(1)
	w.long(42) // material hash
	w.long(3)
	w.long(0)
	w.long(1)
	w.long(2)
	w.boolean(true)
	w.str("Red")
	w.long(0) // no texture parameters
	w.float(1, 1, 0, 0, 1, 1, 1)
	w.str("MESH")
	return w.Bytes()
}

func writeModels(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindModels(t *testing.T) {
	dir := writeModels(t, map[string][]byte{
		"b.mwm":          nil,
		"sub/a.MWM":      nil,
		"sub/readme.txt": nil,
		"sub/deep/c.mwm": nil,
		"textures/x.dds": nil,
	})
	got, err := FindModels(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b.mwm", filepath.Join("sub", "a.MWM"), filepath.Join("sub", "deep", "c.mwm")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindModels = %v, want %v", got, want)
	}
}

func TestRun(t *testing.T) {
	in := writeModels(t, map[string][]byte{
		"ships/tri.mwm": triangleModel(),
		"broken.mwm":    triangleModel()[:40],
		"empty.mwm":     {5, 'D', 'e', 'b', 'u', 'g', 0, 0, 0, 0},
	})
	out := t.TempDir()
	models, err := FindModels(in)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		InputDir:    in,
		OutputDir:   out,
		RenderSize:  32,
		Supersample: 2,
		FillRatio:   0.8,
		Workers:     2,
		ExportGLB:   true,
		Quiet:       true,
	}
	results := Run(cfg, models)

	byName := make(map[string]Result)
	for _, r := range results {
		byName[filepath.ToSlash(r.Name)] = r
	}

	tri := byName["ships/tri.mwm"]
	if !tri.Success {
		t.Fatalf("tri.mwm failed: %s", tri.Error)
	}
	if tri.Image != "ships/tri.webp" || tri.Stats.Parts != 1 || tri.Stats.Faces != 1 || tri.Stats.Era != "classic" {
		t.Errorf("tri result = %+v", tri)
	}
	if info, err := os.Stat(filepath.Join(out, "ships", "tri.webp")); err != nil || info.Size() == 0 {
		t.Errorf("webp output: %v", err)
	}

	if tri.GLB != "ships/tri.glb" {
		t.Errorf("GLB = %q", tri.GLB)
	}
	if _, err := os.Stat(filepath.Join(out, "ships", "tri.glb")); err != nil {
		t.Errorf("glb output: %v", err)
	}

	if r := byName["broken.mwm"]; r.Success || !strings.Contains(r.Error, "truncated") {
		t.Errorf("broken result = %+v", r)
	}
	if r := byName["empty.mwm"]; r.Success || r.Stats.Era != "empty" {
		t.Errorf("empty result = %+v", r)
	}

	manifest := filepath.Join(out, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0]["image"] != "ships/tri.webp" || entries[0]["version"] != float64(1066002) || entries[0]["glb"] != "ships/tri.glb" {
		t.Errorf("manifest = %s", data)
	}
}
