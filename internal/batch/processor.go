package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mwm-renderer/internal/gltfexport"
	"mwm-renderer/internal/logging"
	"mwm-renderer/internal/mwm"
	"mwm-renderer/internal/postprocess"
	"mwm-renderer/internal/raster"
	"mwm-renderer/internal/scene"
	"mwm-renderer/internal/viewmatrix"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir    string
	OutputDir   string
	RenderSize  int
	Supersample int
	FillRatio   float64
	Camera      viewmatrix.Camera
	Workers     int

	// ExportGLB also writes each model as binary glTF next to its image.
	ExportGLB bool

	// Quiet disables the progress ticker.
	Quiet bool
}

// Result holds the outcome of processing one model.
type Result struct {
	Name    string // model path relative to InputDir
	Image   string // image path relative to OutputDir
	GLB     string // glTF path relative to OutputDir, when exported
	Stats   scene.Stats
	Success bool
	Error   string
}

// FindModels returns the .mwm files under dir as sorted relative paths.
func FindModels(dir string) ([]string, error) {
	var models []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".mwm") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		models = append(models, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	slices.Sort(models)
	return models, nil
}

// Run processes all models using a worker pool.
func Run(cfg Config, models []string) []Result {
	total := len(models)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if !cfg.Quiet {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	workers := max(cfg.Workers, 1)
	modelChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range modelChan {
				results[idx] = processModel(cfg, models[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range models {
		modelChan <- i
	}
	close(modelChan)

	wg.Wait()
	close(done)

	return results
}

// ImagePath maps a model path to its image path, both relative.
func ImagePath(model string) string {
	return strings.TrimSuffix(model, filepath.Ext(model)) + ".webp"
}

// GLBPath maps a model path to its glTF path, both relative.
func GLBPath(model string) string {
	return strings.TrimSuffix(model, filepath.Ext(model)) + ".glb"
}

func processModel(cfg Config, name string) Result {
	res := Result{Name: name}

	dec := mwm.Decoder{Logger: logging.Logger{Prefix: name}}
	model, err := dec.Parse(filepath.Join(cfg.InputDir, name))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Stats = scene.Summarize(model)

	if len(model.Parts) == 0 {
		res.Error = "no mesh parts in model"
		return res
	}

	meshes, err := scene.Build(name, model)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img := raster.RenderModel(meshes, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Camera:      cfg.Camera,
	})

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	img = postprocess.Fit(img, cfg.RenderSize, cfg.FillRatio)

	// Save as WebP
	res.Image = filepath.ToSlash(ImagePath(name))
	outPath := filepath.Join(cfg.OutputDir, ImagePath(name))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	if cfg.ExportGLB {
		if err := gltfexport.WriteFile(filepath.Join(cfg.OutputDir, GLBPath(name)), meshes); err != nil {
			res.Error = err.Error()
			return res
		}
		res.GLB = filepath.ToSlash(GLBPath(name))
	}

	res.Success = true
	return res
}
